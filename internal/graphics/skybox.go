package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"drive-demo/internal/environment"
)

const skyboxScale = 1000

// skybox is the GPU half of environment.Skybox: a panorama drawn on a camera-centred cube
// through an equirect shader, or a cubemap when the image is not 2:1.
type skybox struct {
	tex      rl.Texture2D
	mesh     rl.Mesh
	mtl      rl.Material
	equirect bool
	camLoc   int32
	texLoc   int32
	loaded   bool
}

// upload must run on the main thread with a live GL context. The mesh and material are
// only created once the texture (and shader) loaded, so a failure leaves nothing behind.
func (s *skybox) upload(sky *environment.Skybox) bool {
	img := rl.NewImageFromImage(sky.Image)
	if img == nil || img.Width <= 0 || img.Height <= 0 {
		return false
	}
	defer rl.UnloadImage(img)

	var tex rl.Texture2D
	if sky.Equirect {
		tex = rl.LoadTextureFromImage(img)
	} else {
		tex = rl.LoadTextureCubemap(img, rl.CubemapLayoutAutoDetect)
	}
	if !rl.IsTextureValid(tex) {
		return false
	}
	var sh rl.Shader
	if sky.Equirect {
		sh = rl.LoadShaderFromMemory(equirectVS, equirectFS)
		if !rl.IsShaderValid(sh) {
			rl.UnloadTexture(tex)
			return false
		}
	}

	s.tex = tex
	s.equirect = sky.Equirect
	s.mesh = rl.GenMeshCube(1, 1, 1)
	s.mtl = rl.LoadMaterialDefault()
	if sky.Equirect {
		s.mtl.Shader = sh
		s.camLoc = rl.GetShaderLocation(sh, "cameraPosition")
		s.texLoc = rl.GetShaderLocation(sh, "skybox")
	} else {
		rl.SetMaterialTexture(&s.mtl, rl.MapCubemap, s.tex)
	}
	s.loaded = true
	return true
}

func (s *skybox) draw(eye rl.Vector3) {
	if !s.loaded {
		return
	}
	rl.DisableDepthMask()
	rl.DisableBackfaceCulling()
	transform := rl.MatrixMultiply(
		rl.MatrixScale(skyboxScale, skyboxScale, skyboxScale),
		rl.MatrixTranslate(eye.X, eye.Y, eye.Z),
	)
	if s.equirect {
		if s.camLoc >= 0 {
			rl.SetShaderValueV(s.mtl.Shader, s.camLoc, []float32{eye.X, eye.Y, eye.Z}, rl.ShaderUniformVec3, 1)
		}
		if s.texLoc >= 0 {
			rl.SetShaderValueTexture(s.mtl.Shader, s.texLoc, s.tex)
		}
	}
	rl.DrawMesh(s.mesh, s.mtl, transform)
	rl.EnableBackfaceCulling()
	rl.EnableDepthMask()
}

func (s *skybox) unload() {
	if !s.loaded {
		return
	}
	rl.UnloadMesh(&s.mesh)
	if s.equirect {
		rl.UnloadTexture(s.tex)
	}
	// frees the shader, the cubemap bound to MapCubemap and the maps array
	rl.UnloadMaterial(s.mtl)
	s.loaded = false
}

const (
	equirectVS = `#version 330
in vec3 vertexPosition;
uniform mat4 mvp;
uniform mat4 matModel;
out vec3 fragWorldPos;
void main() {
  fragWorldPos = (matModel * vec4(vertexPosition, 1.0)).xyz;
  gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`
	equirectFS = `#version 330
in vec3 fragWorldPos;
out vec4 finalColor;
uniform sampler2D skybox;
uniform vec3 cameraPosition;
void main() {
  vec3 dir = normalize(fragWorldPos - cameraPosition);
  float u = atan(dir.z, dir.x) / 6.28318530718 + 0.5;
  float v = 0.5 - asin(clamp(dir.y, -1.0, 1.0)) / 3.14159265359;
  finalColor = texture(skybox, vec2(u, v));
}
`
)
