package search

import (
	"errors"
	"fmt"
	"strings"

	"searchviz/internal/model"
)

// ErrUnknownAlgorithm is returned for an algorithm name other than BFS, DFS or UCS.
var ErrUnknownAlgorithm = errors.New("search: unknown algorithm")

// Neighborer is the read-only view of a graph the searches need.
// Unknown nodes must yield no neighbors rather than fail.
type Neighborer interface {
	Neighbors(n model.Node) []model.Adjacency
}

// ParseAlgorithm maps "bfs", "dfs" or "ucs" (any case) to an Algorithm.
func ParseAlgorithm(s string) (model.Algorithm, error) {
	alg := model.Algorithm(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range model.Algorithms {
		if alg == known {
			return alg, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
}

// Search runs algo from start to goal over g.
// The only error is ErrUnknownAlgorithm; "no path" is reported by an empty
// SearchResult.Path.
func Search(g Neighborer, start, goal model.Node, algo model.Algorithm) (model.SearchResult, error) {
	switch algo {
	case model.BFS:
		return BreadthFirst(g, start, goal), nil
	case model.DFS:
		return DepthFirst(g, start, goal), nil
	case model.UCS:
		return UniformCost(g, start, goal), nil
	}
	return model.SearchResult{}, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algo)
}

// BreadthFirst expands nodes in FIFO order. Edge costs are ignored.
func BreadthFirst(g Neighborer, start, goal model.Node) model.SearchResult {
	w := newWalker(g, model.BFS, start, goal, newFIFO())
	return w.run()
}

// DepthFirst expands the most recently pushed node first. Neighbors are
// pushed in adjacency order, so siblings are explored last-to-first.
func DepthFirst(g Neighborer, start, goal model.Node) model.SearchResult {
	w := newWalker(g, model.DFS, start, goal, newLIFO())
	return w.run()
}

// UniformCost expands the cheapest accumulated path first and reports its
// cost. Equal-cost entries pop in the order they were pushed.
func UniformCost(g Neighborer, start, goal model.Node) model.SearchResult {
	w := newWalker(g, model.UCS, start, goal, newCostFrontier())
	w.res.HasCost = true
	return w.run()
}

// walker holds the mutable state of one search run.
type walker struct {
	graph    Neighborer
	goal     model.Node
	frontier frontier
	visited  map[model.Node]bool
	seq      int
	res      model.SearchResult
}

func newWalker(g Neighborer, algo model.Algorithm, start, goal model.Node, f frontier) *walker {
	w := &walker{
		graph:    g,
		goal:     goal,
		frontier: f,
		visited:  make(map[model.Node]bool),
		res: model.SearchResult{
			Algorithm: algo,
			Start:     start,
			Goal:      goal,
			Path:      []model.Node{},
			Steps:     []model.Node{},
		},
	}
	w.push(entry{node: start, path: []model.Node{start}})
	return w
}

func (w *walker) push(e entry) {
	e.seq = w.seq
	w.seq++
	w.frontier.push(e)
}

// run pops until the goal is visited or the frontier is exhausted.
func (w *walker) run() model.SearchResult {
	for {
		cur, ok := w.frontier.pop()
		if !ok {
			break
		}
		w.res.Popped++

		// duplicate entry of a node already expanded
		if w.visited[cur.node] {
			continue
		}
		w.visited[cur.node] = true
		w.res.Steps = append(w.res.Steps, cur.node)

		if cur.node == w.goal {
			w.res.Path = cur.path
			w.res.Cost = cur.cost
			if !w.res.HasCost {
				w.res.Cost = 0
			}
			return w.res
		}

		for _, nbr := range w.graph.Neighbors(cur.node) {
			if w.visited[nbr.To] {
				continue
			}
			w.push(entry{
				node: nbr.To,
				path: extend(cur.path, nbr.To),
				cost: cur.cost + nbr.Cost,
			})
		}
	}
	return w.res
}

// extend returns a copy of path with n appended.
func extend(path []model.Node, n model.Node) []model.Node {
	out := make([]model.Node, len(path), len(path)+1)
	copy(out, path)
	return append(out, n)
}
