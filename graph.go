package statement

import (
	"strings"

	"github.com/google/uuid"
)

// NodeType classifies a node of the entity graph.
type NodeType string

const (
	NodePortfolio         NodeType = "portfolio"
	NodeAllocation        NodeType = "allocation"
	NodeSecurity          NodeType = "security"
	NodeStructuredProduct NodeType = "structured_product"
	NodeAccount           NodeType = "account"
)

// EdgeType classifies an edge. Containment edges link the portfolio and its
// asset classes to the entities they hold; parent_of edges mirror the
// allocation hierarchy and are independent of containment.
type EdgeType string

const (
	EdgeContains EdgeType = "contains"
	EdgeParentOf EdgeType = "parent_of"
)

// Node is one entity of the graph. Ref indexes the entity in its owning
// model slice (securities or allocations); -1 for the portfolio root.
type Node struct {
	ID    string
	Type  NodeType
	Label string
	Ref   int
}

// Edge is a directed edge between two node IDs.
type Edge struct {
	Source string
	Target string
	Type   EdgeType
}

// Graph links portfolio, asset classes, securities and accounts for
// hierarchical queries. The portfolio node is the unique root and every node
// is reachable from it: entities with no matching asset class attach
// directly to the root rather than dangling.
type Graph struct {
	Nodes []Node
	Edges []Edge
	Root  string

	byID map[string]int
}

// classKeywords maps a security type to the asset-class vocabulary it may
// live under.
var classKeywords = map[SecurityType][]string{
	Bond:              {"bond", "fixed income", "debt", "obligation"},
	Equity:            {"equit", "stock", "share", "action"},
	Fund:              {"fund", "etf"},
	StructuredProduct: {"structured", "certificate"},
	Cash:              {"cash", "liquidity", "liquid"},
}

// BuildGraph assembles the entity graph for a reconciled model.
func BuildGraph(m *Model) *Graph {
	g := &Graph{byID: map[string]int{}}
	g.Root = g.addNode(NodePortfolio, "Portfolio", -1)

	// allocation nodes, with parent_of edges mirroring the hierarchy
	allocIDs := make([]string, len(m.Allocations))
	for i, a := range m.Allocations {
		allocIDs[i] = g.addNode(NodeAllocation, a.AssetClass, i)
	}
	for i, a := range m.Allocations {
		if a.Parent >= 0 {
			g.addEdge(allocIDs[a.Parent], allocIDs[i], EdgeParentOf)
		}
		// top-level classes are contained by the portfolio itself
		if a.Parent < 0 {
			g.addEdge(g.Root, allocIDs[i], EdgeContains)
		} else {
			g.addEdge(allocIDs[a.Parent], allocIDs[i], EdgeContains)
		}
	}

	for i, sec := range m.Securities {
		if sec.IsTotal {
			continue
		}
		kind := NodeSecurity
		if sec.Type == StructuredProduct {
			kind = NodeStructuredProduct
		}
		if sec.Type == Cash {
			kind = NodeAccount
		}
		label := sec.Description
		if label == "" {
			label = sec.ISIN
		}
		id := g.addNode(kind, label, i)

		parent := g.Root
		if match := bestClassMatch(sec, m.Allocations); match >= 0 {
			parent = allocIDs[match]
		}
		g.addEdge(parent, id, EdgeContains)
	}
	return g
}

// bestClassMatch finds the allocation entry whose class name matches the
// security's type vocabulary, preferring top-level classes. Returns -1 when
// nothing matches.
func bestClassMatch(sec Security, allocations []Allocation) int {
	words := classKeywords[sec.Type]
	if len(words) == 0 {
		return -1
	}
	best := -1
	for i, a := range allocations {
		if a.IsTotal {
			continue
		}
		lower := strings.ToLower(a.AssetClass)
		for _, w := range words {
			if strings.Contains(lower, w) {
				if best < 0 || allocations[i].Level < allocations[best].Level {
					best = i
				}
				break
			}
		}
	}
	return best
}

func (g *Graph) addNode(kind NodeType, label string, ref int) string {
	id := uuid.NewString()
	g.Nodes = append(g.Nodes, Node{ID: id, Type: kind, Label: label, Ref: ref})
	g.byID[id] = len(g.Nodes) - 1
	return id
}

func (g *Graph) addEdge(source, target string, kind EdgeType) {
	g.Edges = append(g.Edges, Edge{Source: source, Target: target, Type: kind})
}

// Node returns the node with the given ID, or nil.
func (g *Graph) Node(id string) *Node {
	i, ok := g.byID[id]
	if !ok {
		return nil
	}
	return &g.Nodes[i]
}

// Children returns the targets of the given node's outgoing edges of a type.
func (g *Graph) Children(id string, kind EdgeType) []string {
	var out []string
	for _, e := range g.Edges {
		if e.Source == id && e.Type == kind {
			out = append(out, e.Target)
		}
	}
	return out
}

// Reachable reports whether a directed path exists from the root to id.
func (g *Graph) Reachable(id string) bool {
	if id == g.Root {
		return true
	}
	visited := map[string]bool{g.Root: true}
	queue := []string{g.Root}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, e := range g.Edges {
			if e.Source != current || visited[e.Target] {
				continue
			}
			if e.Target == id {
				return true
			}
			visited[e.Target] = true
			queue = append(queue, e.Target)
		}
	}
	return false
}
