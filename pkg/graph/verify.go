package graph

import (
	"errors"
	"fmt"

	"github.com/vanderheijden86/vidaboard/pkg/metrics"
	"github.com/vanderheijden86/vidaboard/pkg/model"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// ErrInvariant is wrapped by every structural violation Verify reports.
var ErrInvariant = errors.New("graph invariant violated")

// MaxDepth is the depth of a well-formed dashboard tree.
const MaxDepth = 2

// Verify checks that g is a depth-2 tree rooted at RootID: unique ids, edges
// between existing nodes, one parent per non-root node, no cycles, and each
// kind sitting at its own tier.
func Verify(g model.Graph) error {
	defer metrics.Timer(metrics.GraphVerify)()

	ids := make(map[string]int64, len(g.Nodes))
	kinds := make(map[string]model.NodeKind, len(g.Nodes))
	dg := simple.NewDirectedGraph()

	roots := 0
	for i, n := range g.Nodes {
		if _, dup := ids[n.ID]; dup {
			return fmt.Errorf("%w: duplicate node id %q", ErrInvariant, n.ID)
		}
		ids[n.ID] = int64(i)
		kinds[n.ID] = n.Kind
		dg.AddNode(simple.Node(int64(i)))
		if n.Kind == model.NodeRoot {
			roots++
			if n.ID != RootID {
				return fmt.Errorf("%w: root node has id %q, want %q", ErrInvariant, n.ID, RootID)
			}
		}
	}
	if roots != 1 {
		return fmt.Errorf("%w: found %d root nodes", ErrInvariant, roots)
	}

	edgeIDs := make(map[string]bool, len(g.Edges))
	inDegree := make(map[string]int, len(g.Nodes))
	for _, e := range g.Edges {
		if edgeIDs[e.ID] {
			return fmt.Errorf("%w: duplicate edge id %q", ErrInvariant, e.ID)
		}
		edgeIDs[e.ID] = true

		from, ok := ids[e.Source]
		if !ok {
			return fmt.Errorf("%w: edge %q has unknown source %q", ErrInvariant, e.ID, e.Source)
		}
		to, ok := ids[e.Target]
		if !ok {
			return fmt.Errorf("%w: edge %q has unknown target %q", ErrInvariant, e.ID, e.Target)
		}
		if from == to {
			return fmt.Errorf("%w: edge %q is a self loop", ErrInvariant, e.ID)
		}
		inDegree[e.Target]++
		dg.SetEdge(simple.Edge{F: simple.Node(from), T: simple.Node(to)})
	}

	for _, n := range g.Nodes {
		want := 1
		if n.Kind == model.NodeRoot {
			want = 0
		}
		if inDegree[n.ID] != want {
			return fmt.Errorf("%w: node %q has %d parents, want %d", ErrInvariant, n.ID, inDegree[n.ID], want)
		}
	}

	if _, err := topo.Sort(dg); err != nil {
		return fmt.Errorf("%w: %v", ErrInvariant, err)
	}

	// Breadth-first from the root; every node must be reached at its tier.
	depth := map[int64]int{ids[RootID]: 0}
	queue := []int64{ids[RootID]}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		children := dg.From(cur)
		for children.Next() {
			child := children.Node().ID()
			depth[child] = depth[cur] + 1
			if depth[child] > MaxDepth {
				return fmt.Errorf("%w: node %q is deeper than %d", ErrInvariant, g.Nodes[child].ID, MaxDepth)
			}
			queue = append(queue, child)
		}
	}
	for _, n := range g.Nodes {
		d, reached := depth[ids[n.ID]]
		if !reached {
			return fmt.Errorf("%w: node %q is not reachable from the root", ErrInvariant, n.ID)
		}
		if d != tierOf(kinds[n.ID]) {
			return fmt.Errorf("%w: %s node %q sits at depth %d", ErrInvariant, n.Kind, n.ID, d)
		}
	}

	return nil
}

func tierOf(k model.NodeKind) int {
	switch k {
	case model.NodeRoot:
		return 0
	case model.NodeCategory:
		return 1
	default:
		return 2
	}
}
