package ui

import "github.com/vanderheijden86/vidaboard/pkg/model"

// Dashboard is the state the view owns: its own copy of the nodes and edges
// plus the selected payload. Only SelectNode and Dismiss change the
// selection.
type Dashboard struct {
	nodes []model.GraphNode
	edges []model.GraphEdge

	selected    model.NodeData
	hasSelected bool
}

// NewDashboard copies g so later moves never touch the builder's output.
func NewDashboard(g model.Graph) Dashboard {
	c := g.Clone()
	return Dashboard{nodes: c.Nodes, edges: c.Edges}
}

// Nodes returns the current nodes, in draw order.
func (d Dashboard) Nodes() []model.GraphNode { return d.nodes }

// Edges returns the current edges.
func (d Dashboard) Edges() []model.GraphEdge { return d.edges }

// Graph snapshots the current state, moved positions included.
func (d Dashboard) Graph() model.Graph {
	return model.Graph{Nodes: d.nodes, Edges: d.edges}.Clone()
}

// Index returns the position of the node with the given id, or -1.
func (d Dashboard) Index(id string) int {
	for i := range d.nodes {
		if d.nodes[i].ID == id {
			return i
		}
	}
	return -1
}

// SelectNode makes n's payload the selection. Any node can be selected,
// root and categories included.
func (d *Dashboard) SelectNode(n model.GraphNode) {
	d.selected = n.Data
	d.hasSelected = true
}

// SelectID selects the node with the given id and reports whether it exists.
func (d *Dashboard) SelectID(id string) bool {
	i := d.Index(id)
	if i < 0 {
		return false
	}
	d.SelectNode(d.nodes[i])
	return true
}

// Dismiss clears the selection.
func (d *Dashboard) Dismiss() {
	d.selected = model.NodeData{}
	d.hasSelected = false
}

// Selected returns the selected payload, if any.
func (d Dashboard) Selected() (model.NodeData, bool) {
	return d.selected, d.hasSelected
}

// MoveNode translates the node with the given id. The selection is left
// alone even when the moved node is the selected one.
func (d *Dashboard) MoveNode(id string, dx, dy float64) bool {
	i := d.Index(id)
	if i < 0 {
		return false
	}
	nodes := make([]model.GraphNode, len(d.nodes))
	copy(nodes, d.nodes)
	nodes[i].Position = nodes[i].Position.Add(dx, dy)
	d.nodes = nodes
	return true
}
