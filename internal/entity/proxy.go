// Package entity pairs scene nodes with physics bodies.
package entity

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"drive-demo/internal/physics"
	"drive-demo/internal/scene"
)

// ErrStaleBody is returned by Sync when the proxy's body no longer exists in the world.
var ErrStaleBody = errors.New("entity: physics body is gone")

// Proxy ties one visual node to one physics body. The graph owns the node and the world
// owns the body; the proxy only keeps references and copies the body pose onto the node.
type Proxy struct {
	Name  string
	Node  *scene.Node
	Body  physics.BodyHandle
	world *physics.World
	graph *scene.Graph
}

// spawn creates the body, its collider, and attaches node to the graph. Nothing is left
// behind if the collider is rejected.
func spawn(name string, g *scene.Graph, w *physics.World, node *scene.Node, body physics.BodyDesc, col physics.ColliderDesc) (*Proxy, error) {
	h := w.CreateBody(body)
	if err := w.CreateCollider(col, h); err != nil {
		_ = w.RemoveBody(h)
		return nil, fmt.Errorf("create %s collider: %w", name, err)
	}
	node.Position = body.Translation
	node.Rotation = body.Rotation
	g.Add(node)
	return &Proxy{Name: name, Node: node, Body: h, world: w, graph: g}, nil
}

// Sync copies the body's translation and rotation onto the node. It does not interpolate,
// so calling it twice without a physics step in between changes nothing.
func (p *Proxy) Sync() error {
	pose, err := p.world.Pose(p.Body)
	if err != nil {
		return fmt.Errorf("%s: %w", p.Name, ErrStaleBody)
	}
	p.Node.Position = pose.Translation
	p.Node.Rotation = pose.Rotation
	return nil
}

// Pose is the body's current pose.
func (p *Proxy) Pose() (physics.Pose, error) {
	return p.world.Pose(p.Body)
}

// Position is the node's last synced world position.
func (p *Proxy) Position() mgl32.Vec3 {
	return p.Node.WorldPosition()
}

// Remove deletes the body and detaches the node. Both halves go together.
func (p *Proxy) Remove() error {
	p.graph.Remove(p.Node)
	if err := p.world.RemoveBody(p.Body); err != nil {
		return fmt.Errorf("%s: %w", p.Name, ErrStaleBody)
	}
	return nil
}
