package valueobjects

// Edge references two vertices of a geometry by position
type Edge struct {
	From int
	To   int
}

// NewEdge creates an edge between two vertex indices
func NewEdge(from, to int) Edge {
	return Edge{From: from, To: to}
}

// InRange reports whether both endpoints fall inside [0, vertexCount)
func (e Edge) InRange(vertexCount int) bool {
	return e.From >= 0 && e.From < vertexCount && e.To >= 0 && e.To < vertexCount
}

// Connection references two fractal nodes by id
type Connection struct {
	Source string
	Target string
}

// NewConnection creates a connection between two node ids
func NewConnection(source, target string) Connection {
	return Connection{Source: source, Target: target}
}
