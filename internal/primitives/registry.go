// Package primitives draws lit unit meshes. GPU resources are created on first draw so
// they exist only after the window and GL context do.
package primitives

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Kind is a mesh the registry knows how to build.
type Kind int

const (
	Cube Kind = iota
	Cylinder
)

type cached struct {
	mesh   rl.Mesh
	mtl    rl.Material
	locs   uniformLocs
	offset rl.Matrix
}

type uniformLocs struct {
	viewPos, lightDir, ambient, lightColor int32
}

// Registry caches one mesh and lit material per Kind.
type Registry struct {
	cache    map[Kind]*cached
	viewPos  [3]float32
	lightDir [3]float32
}

func NewRegistry() *Registry {
	return &Registry{
		cache:    make(map[Kind]*cached),
		lightDir: [3]float32{0.5, 1, 0.5},
	}
}

// SetView sets the eye position and the direction toward the light for this frame.
func (r *Registry) SetView(viewPos, lightDir [3]float32) {
	r.viewPos = viewPos
	r.lightDir = lightDir
}

var (
	ambient    = [4]float32{0.25, 0.27, 0.3, 1}
	lightColor = [3]float32{1, 0.97, 0.92}
)

func (r *Registry) ensure(k Kind) *cached {
	if c, ok := r.cache[k]; ok {
		return c
	}
	c := &cached{offset: rl.MatrixIdentity()}
	switch k {
	case Cylinder:
		c.mesh = rl.GenMeshCylinder(0.5, 1, 16)
		// raylib cylinders start at y=0; centre them on the node.
		c.offset = rl.MatrixTranslate(0, -0.5, 0)
	default:
		c.mesh = rl.GenMeshCube(1, 1, 1)
	}
	c.mtl = rl.LoadMaterialDefault()
	if sh := rl.LoadShaderFromMemory(litVS, litFS); rl.IsShaderValid(sh) {
		c.mtl.Shader = sh
		c.locs = uniformLocs{
			viewPos:    rl.GetShaderLocation(sh, "viewPos"),
			lightDir:   rl.GetShaderLocation(sh, "lightDir"),
			ambient:    rl.GetShaderLocation(sh, "ambient"),
			lightColor: rl.GetShaderLocation(sh, "lightColor"),
		}
	}
	r.cache[k] = c
	return c
}

func (r *Registry) setUniforms(c *cached) {
	sh := c.mtl.Shader
	if !rl.IsShaderValid(sh) {
		return
	}
	// Local copies; cgo must not see pointers into the registry.
	view := r.viewPos
	dir := r.lightDir
	amb := ambient
	lc := lightColor
	if c.locs.viewPos >= 0 {
		rl.SetShaderValueV(sh, c.locs.viewPos, view[:], rl.ShaderUniformVec3, 1)
	}
	if c.locs.lightDir >= 0 {
		rl.SetShaderValueV(sh, c.locs.lightDir, dir[:], rl.ShaderUniformVec3, 1)
	}
	if c.locs.ambient >= 0 {
		rl.SetShaderValueV(sh, c.locs.ambient, amb[:], rl.ShaderUniformVec4, 1)
	}
	if c.locs.lightColor >= 0 {
		rl.SetShaderValueV(sh, c.locs.lightColor, lc[:], rl.ShaderUniformVec3, 1)
	}
}

// Draw draws a unit mesh of kind k with the given model matrix and tint.
// Call between BeginMode3D and EndMode3D, after SetView.
func (r *Registry) Draw(k Kind, model rl.Matrix, tint color.RGBA) {
	c := r.ensure(k)
	r.setUniforms(c)
	if albedo := c.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = rl.NewColor(tint.R, tint.G, tint.B, tint.A)
	}
	rl.DrawMesh(c.mesh, c.mtl, rl.MatrixMultiply(c.offset, model))
}

// Unload frees every cached mesh and shader. Call before the window closes.
func (r *Registry) Unload() {
	for k, c := range r.cache {
		rl.UnloadMesh(&c.mesh)
		if rl.IsShaderValid(c.mtl.Shader) {
			rl.UnloadShader(c.mtl.Shader)
		}
		delete(r.cache, k)
	}
}

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec3 vertexNormal;
uniform mat4 mvp;
uniform mat4 matModel;
out vec3 fragPosition;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`
	litFS = `#version 330
in vec3 fragPosition;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec4 ambient;
uniform vec3 lightColor;
out vec4 finalColor;
void main() {
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightDir);
  vec3 V = normalize(viewPos - fragPosition);
  float NdotL = max(dot(N, L), 0.0);
  vec3 diffuse = colDiffuse.rgb * NdotL * lightColor * 0.75;
  float spec = pow(max(dot(N, normalize(L + V)), 0.0), 48.0) * 0.3;
  vec3 specular = lightColor * spec * step(0.0, NdotL);
  finalColor = vec4(ambient.rgb * colDiffuse.rgb + diffuse + specular, colDiffuse.a);
}
`
)
