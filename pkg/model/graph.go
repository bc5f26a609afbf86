package model

import "fmt"

// CategoryID identifies one of the four fixed groupings.
type CategoryID string

const (
	CategorySkills       CategoryID = "skills"
	CategoryIntegrations CategoryID = "integrations"
	CategoryCron         CategoryID = "cron"
	CategoryProjects     CategoryID = "projects"
)

// Position is a point on the graph canvas, in world units.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p translated by (dx, dy).
func (p Position) Add(dx, dy float64) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Category groups items under a fixed anchor and accent colour.
type Category struct {
	ID     CategoryID
	Label  string
	Anchor Position
	Color  string
	Items  []Item
}

// NodeKind distinguishes the three tiers of the tree.
type NodeKind int

const (
	NodeRoot NodeKind = iota
	NodeCategory
	NodeLeaf
)

func (k NodeKind) String() string {
	switch k {
	case NodeRoot:
		return "root"
	case NodeCategory:
		return "category"
	default:
		return "leaf"
	}
}

// MarshalText lets the kind travel as a string in JSON exports.
func (k NodeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText accepts the names MarshalText writes.
func (k *NodeKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "root":
		*k = NodeRoot
	case "category":
		*k = NodeCategory
	case "leaf":
		*k = NodeLeaf
	default:
		return fmt.Errorf("unknown node kind %q", b)
	}
	return nil
}

// NodeData is the display payload of a node. Optional numbers are nil when
// absent; a present zero is still shown.
type NodeData struct {
	Label           string   `json:"label"`
	Description     string   `json:"description,omitempty"`
	Icon            string   `json:"icon,omitempty"`
	Status          Status   `json:"status,omitempty"`
	LastStatus      Status   `json:"lastStatus,omitempty"`
	AutomationLevel *float64 `json:"automationLevel,omitempty"`
	Schedule        string   `json:"schedule,omitempty"`
	Progress        *float64 `json:"progress,omitempty"`
}

// Health resolves the display bucket of the payload.
func (d NodeData) Health() Health {
	return ResolveHealth(d.Status, d.LastStatus)
}

// Title is the icon and label joined the way the detail overlay shows it.
func (d NodeData) Title() string {
	if d.Icon == "" {
		return d.Label
	}
	return d.Icon + " " + d.Label
}

// DataFromItem copies an item's fields verbatim into a node payload.
func DataFromItem(it Item) NodeData {
	return NodeData{
		Label:           it.Name,
		Description:     it.Description,
		Icon:            it.Icon,
		Status:          it.Status,
		LastStatus:      it.LastStatus,
		AutomationLevel: it.AutomationLevel,
		Schedule:        it.Schedule,
		Progress:        it.Progress,
	}
}

// GraphNode is a vertex of the dashboard graph.
type GraphNode struct {
	ID       string     `json:"id"`
	Kind     NodeKind   `json:"kind"`
	Category CategoryID `json:"category,omitempty"`
	Position Position   `json:"position"`
	Data     NodeData   `json:"data"`
}

// EdgeStyle is pass-through presentation for an edge.
type EdgeStyle struct {
	Stroke   string  `json:"stroke"`
	Width    float64 `json:"strokeWidth"`
	Animated bool    `json:"animated"`
}

// GraphEdge connects a parent node to a child.
type GraphEdge struct {
	ID     string    `json:"id"`
	Source string    `json:"source"`
	Target string    `json:"target"`
	Style  EdgeStyle `json:"style"`
}

// Graph is the builder output.
type Graph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// Node returns the node with the given id, or nil.
func (g Graph) Node(id string) *GraphNode {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i]
		}
	}
	return nil
}

// Clone returns a deep enough copy for a consumer that mutates positions.
func (g Graph) Clone() Graph {
	out := Graph{
		Nodes: make([]GraphNode, len(g.Nodes)),
		Edges: make([]GraphEdge, len(g.Edges)),
	}
	copy(out.Nodes, g.Nodes)
	copy(out.Edges, g.Edges)
	return out
}

// Bounds returns the top-left and bottom-right node positions. An empty
// graph yields two zero positions.
func (g Graph) Bounds() (Position, Position) {
	if len(g.Nodes) == 0 {
		return Position{}, Position{}
	}
	lo, hi := g.Nodes[0].Position, g.Nodes[0].Position
	for _, n := range g.Nodes[1:] {
		lo.X = min(lo.X, n.Position.X)
		lo.Y = min(lo.Y, n.Position.Y)
		hi.X = max(hi.X, n.Position.X)
		hi.Y = max(hi.Y, n.Position.Y)
	}
	return lo, hi
}
