package catalog

import (
	"fmt"
	"sort"

	"cathedral-bridge/domain/core/entities"
	"cathedral-bridge/domain/core/valueobjects"
)

// FractalPreset is a named fractal pattern exported as a node graph
type FractalPreset struct {
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Algorithm   string   `json:"algorithm"`
	Iterations  int      `json:"iterations"`
	Complexity  float64  `json:"complexity"`
	ColorScheme []string `json:"colorScheme"`

	Properties map[string]valueobjects.Scalar `json:"-"`
}

// Build returns the pattern as a fractal graph:
//
//	<name>                root: algorithm, iterations, complexity
//	<name>/properties     the pattern's properties as attributes
//	<name>/color/<i>      one node per color band, chained in gradient order
func (p FractalPreset) Build() *entities.FractalGraph {
	g := entities.NewFractalGraph()

	mustNode(g, p.Name, map[string]valueobjects.Scalar{
		"title":      valueobjects.StringValue(p.Title),
		"algorithm":  valueobjects.StringValue(p.Algorithm),
		"iterations": valueobjects.IntValue(p.Iterations),
		"complexity": valueobjects.NumberValue(p.Complexity),
		"colorCount": valueobjects.IntValue(len(p.ColorScheme)),
	})

	if len(p.Properties) > 0 {
		propsID := p.Name + "/properties"
		mustNode(g, propsID, p.Properties)
		mustConnect(g, p.Name, propsID)
	}

	prev := p.Name
	bands := float64(len(p.ColorScheme))
	for i, hex := range p.ColorScheme {
		id := fmt.Sprintf("%s/color/%d", p.Name, i)
		mustNode(g, id, map[string]valueobjects.Scalar{
			"hex":   valueobjects.StringValue(hex),
			"lower": valueobjects.NumberValue(round(float64(i) / bands)),
			"upper": valueobjects.NumberValue(round(float64(i+1) / bands)),
		})
		mustConnect(g, prev, id)
		prev = id
	}
	return g
}

// PropertyKeys returns the property names in sorted order
func (p FractalPreset) PropertyKeys() []string {
	keys := make([]string, 0, len(p.Properties))
	for k := range p.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func fractalPresets() []FractalPreset {
	flag := valueobjects.BoolValue(true)
	text := valueobjects.StringValue

	return []FractalPreset{
		{
			Name: "mandelbrot_cathedral", Title: "Cathedral Mandelbrot", Algorithm: "mandelbrot",
			Iterations: 100, Complexity: 0.8,
			ColorScheme: []string{"#2c1810", "#8b4513", "#daa520", "#ffd700", "#ffffff"},
			Properties: map[string]valueobjects.Scalar{
				"infinite_depth":      flag,
				"self_similarity":     flag,
				"chaos_order_balance": flag,
				"meditation_focus":    text("infinity_contemplation"),
			},
		},
		{
			Name: "julia_mystical", Title: "Mystical Julia Set", Algorithm: "julia",
			Iterations: 80, Complexity: 0.7,
			ColorScheme: []string{"#1a0033", "#4b0082", "#9932cc", "#dda0dd", "#f0e68c"},
			Properties: map[string]valueobjects.Scalar{
				"transformation":          flag,
				"boundary_dissolution":    flag,
				"consciousness_expansion": flag,
				"meditation_focus":        text("inner_transformation"),
			},
		},
		{
			Name: "dragon_curve_wisdom", Title: "Dragon Curve Wisdom", Algorithm: "dragon_curve",
			Iterations: 15, Complexity: 0.9,
			ColorScheme: []string{"#8b0000", "#dc143c", "#ff4500", "#ffd700"},
			Properties: map[string]valueobjects.Scalar{
				"serpent_wisdom":       flag,
				"kundalini_activation": flag,
				"ancient_knowledge":    flag,
				"meditation_focus":     text("serpent_power"),
			},
		},
		{
			Name: "abyss_crossing", Title: "Abyss Crossing Fractal", Algorithm: "mandelbrot",
			Iterations: 333, Complexity: 0.93,
			ColorScheme: []string{"#000000", "#1a0033", "#330066", "#4b0082", "#8b00ff"},
			Properties: map[string]valueobjects.Scalar{
				"oath_of_abyss":           flag,
				"ego_dissolution":         flag,
				"choronzon_confrontation": flag,
				"babalon_gateway":         flag,
				"meditation_focus":        text("crossing_the_abyss"),
				"invocation":              text("I will interpret every phenomenon as a particular dealing of God with my soul"),
			},
		},
		{
			Name: "achad_reversal", Title: "Achad's Reversal Pattern", Algorithm: "julia",
			Iterations: 418, Complexity: 0.88,
			ColorScheme: []string{"#4b0082", "#8b00ff", "#da70d6", "#ee82ee", "#dda0dd"},
			Properties: map[string]valueobjects.Scalar{
				"aeon_of_maat":     flag,
				"tree_reversal":    flag,
				"daughter_formula": flag,
				"magical_child":    flag,
				"meditation_focus": text("the_great_reversal"),
				"formula":          text("MAAT = 451, the completion of Thelema"),
			},
		},
	}
}

func mustNode(g *entities.FractalGraph, id string, attrs map[string]valueobjects.Scalar) {
	if err := g.AddNode(id, attrs); err != nil {
		panic(err)
	}
}

func mustConnect(g *entities.FractalGraph, source, target string) {
	if err := g.Connect(source, target); err != nil {
		panic(err)
	}
}
