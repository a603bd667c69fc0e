package model

import (
	"fmt"
	"strings"
)

// Algorithm names one of the supported uninformed searches.
type Algorithm string

const (
	BFS Algorithm = "BFS"
	DFS Algorithm = "DFS"
	UCS Algorithm = "UCS"
)

// Algorithms lists the supported algorithms in menu order.
var Algorithms = []Algorithm{BFS, DFS, UCS}

// Describe returns the long name shown in the UI.
func (a Algorithm) Describe() string {
	switch a {
	case BFS:
		return "Breadth-First Search"
	case DFS:
		return "Depth-First Search"
	case UCS:
		return "Uniform-Cost Search"
	}
	return string(a)
}

// Next cycles to the following algorithm in menu order.
func (a Algorithm) Next() Algorithm {
	for i, alg := range Algorithms {
		if alg == a {
			return Algorithms[(i+1)%len(Algorithms)]
		}
	}
	return Algorithms[0]
}

// SearchResult is the outcome of one search run.
type SearchResult struct {
	Algorithm Algorithm `json:"algorithm"`
	Start     Node      `json:"start"`
	Goal      Node      `json:"goal"`
	Path      []Node    `json:"path"`  // empty when the goal was not reached
	Steps     []Node    `json:"steps"` // visitation order, each node once
	Cost      int       `json:"cost"`
	HasCost   bool      `json:"hasCost"` // only UCS accumulates a cost
	Popped    int       `json:"popped"`  // frontier pops, stale duplicates included
}

// Found reports whether a path to the goal was found.
func (r SearchResult) Found() bool {
	return len(r.Path) > 0
}

// EdgeKeys returns the highlight keys of the path edges.
func (r SearchResult) EdgeKeys() []string {
	return PathEdgeKeys(r.Path)
}

// PathText joins the path with arrows, or "N/A" when there is none.
func (r SearchResult) PathText() string {
	if !r.Found() {
		return "N/A"
	}
	parts := make([]string, len(r.Path))
	for i, n := range r.Path {
		parts[i] = string(n)
	}
	return strings.Join(parts, " "+IconArrow+" ")
}

// CostText renders the cost, "N/A" for algorithms that ignore costs.
func (r SearchResult) CostText() string {
	if !r.HasCost || !r.Found() {
		return "N/A"
	}
	return fmt.Sprintf("%d", r.Cost)
}
