package web

import (
	"sync"

	"searchviz/internal/layout"
	"searchviz/internal/model"
	"searchviz/internal/search"
)

// Store owns the session graph and its node positions. The edge and reset
// handlers are its only writers; searches hold the read lock until done.
type Store struct {
	mu     sync.RWMutex
	graph  *model.Graph
	layout *layout.Layout
}

// NewStore returns an empty store placing nodes with l.
func NewStore(l *layout.Layout) *Store {
	return &Store{graph: model.NewGraph(), layout: l}
}

// AddEdge inserts e and places its endpoints.
func (s *Store) AddEdge(e model.Edge) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.graph.AddEdge(e)
	s.layout.PlaceEdge(e)
}

// Reset clears the graph and every position.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.graph.Reset()
	s.layout.Reset()
}

// Search runs one search against the current graph.
func (s *Store) Search(start, goal model.Node, algo model.Algorithm) (model.SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return search.Search(s.graph, start, goal, algo)
}

// NodeView is a node with its canvas position.
type NodeView struct {
	ID model.Node `json:"id"`
	layout.Position
}

// EdgeView is an edge with its highlight key.
type EdgeView struct {
	model.Edge
	Key string `json:"key"`
}

// GraphView is the JSON shape of /api/graph.
type GraphView struct {
	Nodes []NodeView `json:"nodes"`
	Edges []EdgeView `json:"edges"`
}

// Snapshot copies the graph for rendering.
func (s *Store) Snapshot() GraphView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	view := GraphView{Nodes: []NodeView{}, Edges: []EdgeView{}}
	for _, n := range s.graph.Nodes() {
		pos, _ := s.layout.Position(n)
		view.Nodes = append(view.Nodes, NodeView{ID: n, Position: pos})
	}
	for _, e := range s.graph.Edges() {
		view.Edges = append(view.Edges, EdgeView{Edge: e, Key: e.Key()})
	}
	return view
}

// EdgeCount returns the number of edges.
func (s *Store) EdgeCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.graph.EdgeCount()
}
