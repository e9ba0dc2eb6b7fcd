package scene

// Graph owns the visual nodes of the demo. Everything drawn hangs off Root.
type Graph struct {
	Root *Node
}

func NewGraph() *Graph {
	return &Graph{Root: NewNode("root", ShapeNone)}
}

func (g *Graph) Add(n *Node) {
	g.Root.Add(n)
}

// Remove detaches n from wherever it hangs in the graph.
func (g *Graph) Remove(n *Node) {
	if n == nil || n.parent == nil {
		return
	}
	n.parent.Remove(n)
}

// Walk visits nodes depth-first, parents before children. Invisible nodes and their
// subtrees are skipped.
func (g *Graph) Walk(fn func(n *Node)) {
	walk(g.Root, fn)
}

func walk(n *Node, fn func(*Node)) {
	if !n.Visible {
		return
	}
	fn(n)
	for _, c := range n.children {
		walk(c, fn)
	}
}

// Len counts every node under Root, Root excluded.
func (g *Graph) Len() int {
	count := -1
	var visit func(*Node)
	visit = func(n *Node) {
		count++
		for _, c := range n.children {
			visit(c)
		}
	}
	visit(g.Root)
	return count
}
