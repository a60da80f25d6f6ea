package catalog

import (
	"math"

	"cathedral-bridge/domain/core/entities"
	"cathedral-bridge/domain/core/valueobjects"
)

const goldenRatio = 1.618

// GeometryPreset is a named sacred geometry that can be built on demand
type GeometryPreset struct {
	Name      string `json:"name"`
	Title     string `json:"title"`
	Kind      string `json:"kind"`
	Frequency int    `json:"frequency"`
	Meaning   string `json:"meaning"`

	build func() *entities.Geometry
}

// Build returns a fresh geometry for the preset
func (p GeometryPreset) Build() *entities.Geometry {
	return p.build()
}

func geometryPresets() []GeometryPreset {
	return []GeometryPreset{
		{
			Name: "flower_of_life", Title: "Flower of Life", Kind: "circle_pattern", Frequency: 528,
			Meaning: "Unity of all creation, sacred blueprint of existence",
			build:   flowerOfLife,
		},
		{
			Name: "metatrons_cube", Title: "Metatron's Cube", Kind: "polyhedric_pattern", Frequency: 741,
			Meaning: "Archangel Metatron's divine blueprint, container of all forms",
			build:   metatronsCube,
		},
		{
			Name: "golden_spiral", Title: "Golden Spiral", Kind: "spiral_pattern", Frequency: 639,
			Meaning: "Natural growth pattern, divine proportion in nature",
			build:   func() *entities.Geometry { return goldenSpiral(5, 200) },
		},
		{
			Name: "sri_yantra", Title: "Sri Yantra", Kind: "triangular_mandala", Frequency: 852,
			Meaning: "Cosmic union of masculine and feminine principles",
			build:   sriYantra,
		},
		{
			Name: "merkaba", Title: "Merkaba", Kind: "tetrahedron_star", Frequency: 963,
			Meaning: "Light-spirit-body vehicle, divine chariot of ascension",
			build:   merkaba,
		},
		{
			Name: "vesica_piscis", Title: "Vesica Piscis", Kind: "lens_pattern", Frequency: 396,
			Meaning: "Birth portal, intersection of matter and spirit",
			build:   vesicaPiscis,
		},
		{
			Name: "seed_of_life", Title: "Seed of Life", Kind: "circle_pattern", Frequency: 417,
			Meaning: "Genesis pattern, foundation of creation",
			build:   seedOfLife,
		},
		{
			Name: "tree_of_life", Title: "Tree of Life", Kind: "spherical_network", Frequency: 741,
			Meaning: "Map of consciousness, divine emanation structure",
			build:   func() *entities.Geometry { return sephirothTree(treeOfLifeCoords) },
		},
		{
			Name: "achad_tree", Title: "Frater Achad's Tree", Kind: "reversed_tree", Frequency: 418,
			Meaning: "The reversed tree of the Aeon of Maat, Achad's great revelation",
			build:   func() *entities.Geometry { return sephirothTree(achadTreeCoords) },
		},
		{
			Name: "qblh_cube", Title: "QBLH Cube of Space", Kind: "cubic_letters", Frequency: 777,
			Meaning: "Achad's arrangement of the 22 Hebrew letters in cosmic space",
			build:   cubeOfSpace,
		},
	}
}

// sephiroth 1..10 in the classic layout
var treeOfLifeCoords = [10][2]float64{
	{0, 3}, {-1, 2}, {1, 2}, {-1, 1}, {1, 1},
	{0, 1}, {-1, 0}, {1, 0}, {0, 0}, {0, -1},
}

// Malkuth above, Kether below
var achadTreeCoords = [10][2]float64{
	{0, -1.6}, {0.6, -1.0}, {-0.6, -1.0}, {0.6, -0.3}, {-0.6, -0.3},
	{0, 0.3}, {0.6, 0.6}, {-0.6, 0.6}, {0, 1.2}, {0, 1.8},
}

// the 22 paths, 1-based sephirah numbers
var treePaths = [22][2]int{
	{1, 2}, {1, 3}, {1, 6}, {2, 3}, {2, 4}, {2, 6}, {3, 5}, {3, 6}, {4, 5}, {4, 6}, {4, 7},
	{5, 6}, {5, 8}, {6, 7}, {6, 8}, {6, 9}, {7, 8}, {7, 9}, {7, 10}, {8, 9}, {8, 10}, {9, 10},
}

func sephirothTree(coords [10][2]float64) *entities.Geometry {
	g := entities.NewGeometry()
	for _, c := range coords {
		g.AddVertex(valueobjects.NewVertex(c[0], c[1]))
	}
	for _, p := range treePaths {
		mustEdge(g, p[0]-1, p[1]-1)
	}
	return g
}

func vesicaPiscis() *entities.Geometry {
	g := entities.NewGeometry()
	g.AddPolygon(
		valueobjects.NewVertex(-1, 0),
		valueobjects.NewVertex(0, 1.732),
		valueobjects.NewVertex(1, 0),
		valueobjects.NewVertex(0, -1.732),
	)
	mustEdge(g, 0, 2)
	mustEdge(g, 1, 3)
	return g
}

// ring returns n points evenly spaced on a circle, starting at angle offset
func ring(n int, radius, offset float64) []valueobjects.Vertex {
	points := make([]valueobjects.Vertex, n)
	for i := range points {
		angle := offset + float64(i)*2*math.Pi/float64(n)
		points[i] = valueobjects.NewVertex(round(radius*math.Cos(angle)), round(radius*math.Sin(angle)))
	}
	return points
}

func seedOfLife() *entities.Geometry {
	g := entities.NewGeometry()
	center := g.AddVertex(valueobjects.NewVertex(0, 0))
	inner := g.AddPolygon(ring(6, 1, 0)...)
	for i := 0; i < 6; i++ {
		mustEdge(g, center, inner+i)
	}
	return g
}

func flowerOfLife() *entities.Geometry {
	g := seedOfLife()
	outer := g.AddPolygon(ring(12, 2, 0)...)
	// each inner circle touches the outer ring at every second position
	for i := 0; i < 6; i++ {
		mustEdge(g, 1+i, outer+2*i)
	}
	return g
}

func metatronsCube() *entities.Geometry {
	g := entities.NewGeometry()
	g.AddVertex(valueobjects.NewVertex(0, 0))
	for _, v := range ring(6, 1, math.Pi/6) {
		g.AddVertex(v)
	}
	for _, v := range ring(6, 2, math.Pi/6) {
		g.AddVertex(v)
	}
	// every circle center joins every other
	n := g.VertexCount()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			mustEdge(g, i, j)
		}
	}
	return g
}

func goldenSpiral(turns, samples int) *entities.Geometry {
	g := entities.NewGeometry()
	maxTheta := float64(turns) * 2 * math.Pi
	maxR := math.Exp(maxTheta / (2 * math.Pi) * math.Log(goldenRatio))
	for i := 0; i < samples; i++ {
		theta := maxTheta * float64(i) / float64(samples-1)
		r := math.Exp(theta/(2*math.Pi)*math.Log(goldenRatio)) / maxR * 1.8
		idx := g.AddVertex(valueobjects.NewVertex(round(r*math.Cos(theta)), round(r*math.Sin(theta))))
		if idx > 0 {
			mustEdge(g, idx-1, idx)
		}
	}
	return g
}

func triangle(scale float64, up bool) []valueobjects.Vertex {
	height := scale * math.Sqrt(3) / 2
	dir := 1.0
	if !up {
		dir = -1
	}
	return []valueobjects.Vertex{
		valueobjects.NewVertex(0, round(dir*height*2/3)),
		valueobjects.NewVertex(round(-scale/2), round(-dir*height/3)),
		valueobjects.NewVertex(round(scale/2), round(-dir*height/3)),
	}
}

func sriYantra() *entities.Geometry {
	g := entities.NewGeometry()
	for i := 0; i < 4; i++ {
		g.AddPolygon(triangle(1.0-float64(i)*0.2, true)...)
	}
	for i := 0; i < 5; i++ {
		g.AddPolygon(triangle(1.1-float64(i)*0.18, false)...)
	}
	return g
}

func merkaba() *entities.Geometry {
	g := entities.NewGeometry()
	tetrahedron := [4][3]float64{{1, 1, 1}, {1, -1, -1}, {-1, 1, -1}, {-1, -1, 1}}
	for _, sign := range []float64{1, -1} {
		base := g.VertexCount()
		for _, p := range tetrahedron {
			g.AddVertex(valueobjects.NewVertex3D(sign*p[0], sign*p[1], sign*p[2]))
		}
		for i := 0; i < 4; i++ {
			for j := i + 1; j < 4; j++ {
				mustEdge(g, base+i, base+j)
			}
		}
	}
	return g
}

// cubeOfSpace places the 12 single letters on the cube edges, the 7 doubles on
// the face centers and the center, and the 3 mothers on the axes.
func cubeOfSpace() *entities.Geometry {
	g := entities.NewGeometry()
	for _, x := range []float64{-1, 1} {
		for _, y := range []float64{-1, 1} {
			for _, z := range []float64{-1, 1} {
				g.AddVertex(valueobjects.NewVertex3D(x, y, z))
			}
		}
	}
	// corners differing in exactly one coordinate share an edge
	for i := 0; i < 8; i++ {
		for j := i + 1; j < 8; j++ {
			if d := i ^ j; d == 1 || d == 2 || d == 4 {
				mustEdge(g, i, j)
			}
		}
	}

	center := g.AddVertex(valueobjects.NewVertex3D(0, 0, 0))
	faces := [6][3]float64{{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}}
	for _, f := range faces {
		idx := g.AddVertex(valueobjects.NewVertex3D(f[0], f[1], f[2]))
		mustEdge(g, center, idx)
	}
	return g
}

func mustEdge(g *entities.Geometry, from, to int) {
	if err := g.AddEdge(from, to); err != nil {
		panic(err)
	}
}

// round keeps preset coordinates stable across platforms in exported JSON
func round(f float64) float64 {
	const scale = 1e6
	r := math.Round(f*scale) / scale
	if r == 0 {
		return 0
	}
	return r
}
