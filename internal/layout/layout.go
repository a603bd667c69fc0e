// Package layout assigns canvas positions to graph nodes.
package layout

import (
	"math/rand/v2"

	"searchviz/internal/model"
)

// Canvas bounds used by the web page (800x600 with a 50px margin).
const (
	MinX, SpanX = 50.0, 700.0
	MinY, SpanY = 50.0, 500.0
)

// Position is a node centre on the canvas.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Layout remembers a random position per node. A node keeps its position
// for as long as the layout lives.
type Layout struct {
	rng       *rand.Rand
	positions map[model.Node]Position
}

// New returns a layout seeded from the runtime's random source.
func New() *Layout {
	return NewWithRand(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
}

// NewWithRand returns a layout drawing from rng, for reproducible tests.
func NewWithRand(rng *rand.Rand) *Layout {
	return &Layout{rng: rng, positions: make(map[model.Node]Position)}
}

// Place gives n a position if it has none and returns it.
func (l *Layout) Place(n model.Node) Position {
	if p, ok := l.positions[n]; ok {
		return p
	}
	p := Position{
		X: MinX + l.rng.Float64()*SpanX,
		Y: MinY + l.rng.Float64()*SpanY,
	}
	l.positions[n] = p
	return p
}

// PlaceEdge places both endpoints of e.
func (l *Layout) PlaceEdge(e model.Edge) {
	l.Place(e.From)
	l.Place(e.To)
}

// Position returns the position of n, if placed.
func (l *Layout) Position(n model.Node) (Position, bool) {
	p, ok := l.positions[n]
	return p, ok
}

// Reset forgets every position.
func (l *Layout) Reset() {
	clear(l.positions)
}
