package model

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrInvalidEdge is returned by NewEdge when the form values can't make an edge.
var ErrInvalidEdge = errors.New("invalid edge")

// Node is a case-normalized node identifier (e.g. "A").
type Node string

// NormalizeNode trims whitespace and upper-cases a raw node name.
func NormalizeNode(s string) Node {
	return Node(strings.ToUpper(strings.TrimSpace(s)))
}

// Adjacency is one out-edge entry of a node.
type Adjacency struct {
	To   Node `json:"to"`
	Cost int  `json:"cost"`
}

// Edge is a directed, weighted edge.
type Edge struct {
	From Node `json:"from"`
	To   Node `json:"to"`
	Cost int  `json:"cost"`
}

// NewEdge validates raw input and builds an Edge.
// Names are normalized; cost must be a positive integer.
func NewEdge(from, to string, cost int) (Edge, error) {
	f, t := NormalizeNode(from), NormalizeNode(to)
	if f == "" || t == "" {
		return Edge{}, fmt.Errorf("%w: both endpoints are required", ErrInvalidEdge)
	}
	if cost < 1 {
		return Edge{}, fmt.Errorf("%w: cost must be a positive integer, got %d", ErrInvalidEdge, cost)
	}
	return Edge{From: f, To: t, Cost: cost}, nil
}

// Key returns the highlight key of the edge, "{from}-{to}".
func (e Edge) Key() string {
	return EdgeKey(e.From, e.To)
}

// EdgeKey joins two endpoints into a highlight key.
func EdgeKey(from, to Node) string {
	return string(from) + "-" + string(to)
}

// PathEdgeKeys converts a node path into the keys of its consecutive edges.
// A path with fewer than two nodes has no edges.
func PathEdgeKeys(path []Node) []string {
	if len(path) < 2 {
		return nil
	}
	keys := make([]string, 0, len(path)-1)
	for i := 0; i < len(path)-1; i++ {
		keys = append(keys, EdgeKey(path[i], path[i+1]))
	}
	return keys
}

// Graph is an adjacency list. Entry order is insertion order and drives
// neighbor expansion order in the searches.
//
// Graph is not safe for concurrent use; owners that share it across
// goroutines must guard it (see web.Store).
type Graph struct {
	adj   map[Node][]Adjacency
	order []Node // first-seen order of every node, sinks included
	seen  map[Node]bool
	edges []Edge // insertion order
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		adj:  make(map[Node][]Adjacency),
		seen: make(map[Node]bool),
	}
}

// AddEdge appends e to the adjacency list of e.From.
// Parallel edges are kept as separate entries.
func (g *Graph) AddEdge(e Edge) {
	g.touch(e.From)
	g.touch(e.To)
	g.adj[e.From] = append(g.adj[e.From], Adjacency{To: e.To, Cost: e.Cost})
	g.edges = append(g.edges, e)
}

func (g *Graph) touch(n Node) {
	if !g.seen[n] {
		g.seen[n] = true
		g.order = append(g.order, n)
	}
}

// Neighbors returns the out-edges of n in insertion order.
// Unknown and sink nodes have no neighbors.
func (g *Graph) Neighbors(n Node) []Adjacency {
	return slices.Clone(g.adj[n])
}

// HasNode reports whether n was ever an edge endpoint.
func (g *Graph) HasNode(n Node) bool {
	return g.seen[n]
}

// Nodes returns every node in the order it first appeared.
func (g *Graph) Nodes() []Node {
	return slices.Clone(g.order)
}

// Edges returns all edges in insertion order.
func (g *Graph) Edges() []Edge {
	return slices.Clone(g.edges)
}

// NodeCount returns the number of distinct nodes.
func (g *Graph) NodeCount() int { return len(g.order) }

// EdgeCount returns the number of edges, parallel edges included.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Reset removes every node and edge.
func (g *Graph) Reset() {
	clear(g.adj)
	clear(g.seen)
	g.order = nil
	g.edges = nil
}
