package entities

import (
	"fmt"
	"sort"

	"cathedral-bridge/domain/core/valueobjects"
	pkgerrors "cathedral-bridge/pkg/errors"
)

// FractalNode is one node of a fractal graph
type FractalNode struct {
	ID         string
	Attributes map[string]valueobjects.Scalar
}

// AttributeKeys returns the attribute names in sorted order
func (n FractalNode) AttributeKeys() []string {
	keys := make([]string, 0, len(n.Attributes))
	for k := range n.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FractalGraph is an ordered node list plus connections that reference nodes by id
type FractalGraph struct {
	nodes       []FractalNode
	connections []valueobjects.Connection
	index       map[string]int
}

// NewFractalGraph creates an empty fractal graph
func NewFractalGraph() *FractalGraph {
	return &FractalGraph{
		nodes:       []FractalNode{},
		connections: []valueobjects.Connection{},
		index:       make(map[string]int),
	}
}

// ReconstructFractalGraph rebuilds a graph from already-validated slices.
// Nodes and their attribute maps are copied.
func ReconstructFractalGraph(nodes []FractalNode, connections []valueobjects.Connection) *FractalGraph {
	g := &FractalGraph{
		nodes:       make([]FractalNode, 0, len(nodes)),
		connections: make([]valueobjects.Connection, len(connections)),
		index:       make(map[string]int, len(nodes)),
	}
	for _, n := range nodes {
		g.index[n.ID] = len(g.nodes)
		g.nodes = append(g.nodes, copyNode(n))
	}
	copy(g.connections, connections)
	return g
}

// AddNode appends a node; ids must be unique within the graph
func (g *FractalGraph) AddNode(id string, attributes map[string]valueobjects.Scalar) error {
	path := fmt.Sprintf("fractals.nodes[%d].id", len(g.nodes))
	if id == "" {
		return pkgerrors.NewShapeError(path, "node id must not be empty")
	}
	if _, exists := g.index[id]; exists {
		return pkgerrors.NewDuplicateIDError(path, id)
	}
	g.index[id] = len(g.nodes)
	g.nodes = append(g.nodes, copyNode(FractalNode{ID: id, Attributes: attributes}))
	return nil
}

// Connect appends a connection between two existing nodes
func (g *FractalGraph) Connect(source, target string) error {
	path := fmt.Sprintf("fractals.connections[%d]", len(g.connections))
	if _, ok := g.index[source]; !ok {
		return pkgerrors.NewReferenceError(path, fmt.Sprintf("unknown source node %q", source))
	}
	if _, ok := g.index[target]; !ok {
		return pkgerrors.NewReferenceError(path, fmt.Sprintf("unknown target node %q", target))
	}
	g.connections = append(g.connections, valueobjects.NewConnection(source, target))
	return nil
}

// Node returns the node with the given id
func (g *FractalGraph) Node(id string) (FractalNode, bool) {
	i, ok := g.index[id]
	if !ok {
		return FractalNode{}, false
	}
	return copyNode(g.nodes[i]), true
}

// Nodes returns a copy of the node list
func (g *FractalGraph) Nodes() []FractalNode {
	out := make([]FractalNode, len(g.nodes))
	for i, n := range g.nodes {
		out[i] = copyNode(n)
	}
	return out
}

// Connections returns a copy of the connection list
func (g *FractalGraph) Connections() []valueobjects.Connection {
	out := make([]valueobjects.Connection, len(g.connections))
	copy(out, g.connections)
	return out
}

// NodeCount returns the number of nodes
func (g *FractalGraph) NodeCount() int {
	return len(g.nodes)
}

// ConnectionCount returns the number of connections
func (g *FractalGraph) ConnectionCount() int {
	return len(g.connections)
}

// Neighbors returns the targets of connections leaving id, in connection order
func (g *FractalGraph) Neighbors(id string) []string {
	var out []string
	for _, c := range g.connections {
		if c.Source == id {
			out = append(out, c.Target)
		}
	}
	return out
}

func copyNode(n FractalNode) FractalNode {
	attrs := make(map[string]valueobjects.Scalar, len(n.Attributes))
	for k, v := range n.Attributes {
		attrs[k] = v
	}
	return FractalNode{ID: n.ID, Attributes: attrs}
}
