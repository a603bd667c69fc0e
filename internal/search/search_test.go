package search

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"searchviz/internal/model"
)

// classroomGraph is A→B(1) A→C(4) B→C(1) B→D(5) C→D(1).
func classroomGraph() *model.Graph {
	g := model.NewGraph()
	for _, e := range []model.Edge{
		{From: "A", To: "B", Cost: 1},
		{From: "A", To: "C", Cost: 4},
		{From: "B", To: "C", Cost: 1},
		{From: "B", To: "D", Cost: 5},
		{From: "C", To: "D", Cost: 1},
	} {
		g.AddEdge(e)
	}
	return g
}

func nodes(ss ...string) []model.Node {
	out := make([]model.Node, len(ss))
	for i, s := range ss {
		out[i] = model.Node(s)
	}
	return out
}

func TestUniformCost_FindsCheapestPath(t *testing.T) {
	res := UniformCost(classroomGraph(), "A", "D")

	assert.Equal(t, nodes("A", "B", "C", "D"), res.Path)
	assert.Equal(t, 3, res.Cost)
	assert.True(t, res.HasCost)
	assert.Equal(t, nodes("A", "B", "C", "D"), res.Steps)
	assert.Equal(t, 4, res.Popped)
}

func TestBreadthFirst_FewestEdges(t *testing.T) {
	res := BreadthFirst(classroomGraph(), "A", "D")

	require.True(t, res.Found())
	assert.Len(t, res.EdgeKeys(), 2)
	assert.Equal(t, nodes("A", "B", "D"), res.Path)
	assert.Equal(t, nodes("A", "B", "C", "D"), res.Steps)
	// C is queued twice (via A and via B); the second pop is skipped.
	assert.Equal(t, 5, res.Popped)
	assert.False(t, res.HasCost)
	assert.Zero(t, res.Cost)
}

func TestDepthFirst_LastNeighborFirst(t *testing.T) {
	res := DepthFirst(classroomGraph(), "A", "D")

	assert.Equal(t, nodes("A", "C", "D"), res.Path)
	assert.Equal(t, nodes("A", "C", "D"), res.Steps)
	assert.Zero(t, res.Cost)
}

func TestDepthFirst_SiblingOrderIsReversed(t *testing.T) {
	g := model.NewGraph()
	g.AddEdge(model.Edge{From: "A", To: "B", Cost: 1})
	g.AddEdge(model.Edge{From: "A", To: "C", Cost: 1})
	g.AddEdge(model.Edge{From: "A", To: "D", Cost: 1})

	res := DepthFirst(g, "A", "X")

	assert.Empty(t, res.Path)
	assert.Equal(t, nodes("A", "D", "C", "B"), res.Steps)
}

func TestSearch_StartIsGoal(t *testing.T) {
	for _, alg := range model.Algorithms {
		t.Run(string(alg), func(t *testing.T) {
			res, err := Search(classroomGraph(), "B", "B", alg)
			require.NoError(t, err)
			assert.Equal(t, nodes("B"), res.Path)
			assert.Equal(t, nodes("B"), res.Steps)
			assert.Zero(t, res.Cost)
		})
	}
}

func TestSearch_Unreachable(t *testing.T) {
	g := classroomGraph()
	cases := []struct {
		alg   model.Algorithm
		steps []model.Node
	}{
		{model.BFS, nodes("A", "B", "C", "D")},
		{model.DFS, nodes("A", "C", "D", "B")},
		{model.UCS, nodes("A", "B", "C", "D")},
	}
	for _, tc := range cases {
		t.Run(string(tc.alg), func(t *testing.T) {
			res, err := Search(g, "A", "E", tc.alg)
			require.NoError(t, err)
			assert.False(t, res.Found())
			assert.NotNil(t, res.Path)
			assert.Empty(t, res.Path)
			assert.Equal(t, tc.steps, res.Steps)
			assert.Zero(t, res.Cost)
			assert.Equal(t, "N/A", res.PathText())
		})
	}
}

func TestSearch_UnknownStart(t *testing.T) {
	res, err := Search(classroomGraph(), "Z", "A", model.BFS)
	require.NoError(t, err)
	assert.Empty(t, res.Path)
	assert.Equal(t, nodes("Z"), res.Steps)
}

func TestSearch_SinkGoalWithoutOwnEntry(t *testing.T) {
	g := model.NewGraph()
	g.AddEdge(model.Edge{From: "A", To: "S", Cost: 2})

	res, err := Search(g, "A", "S", model.UCS)
	require.NoError(t, err)
	assert.Equal(t, nodes("A", "S"), res.Path)
	assert.Equal(t, 2, res.Cost)
}

func TestSearch_UnknownAlgorithm(t *testing.T) {
	_, err := Search(classroomGraph(), "A", "D", "A*")
	assert.True(t, errors.Is(err, ErrUnknownAlgorithm))
}

func TestUniformCost_ParallelEdges(t *testing.T) {
	g := model.NewGraph()
	g.AddEdge(model.Edge{From: "A", To: "B", Cost: 5})
	g.AddEdge(model.Edge{From: "A", To: "B", Cost: 1})

	res := UniformCost(g, "A", "B")
	assert.Equal(t, 1, res.Cost)
	assert.Equal(t, 2, res.Popped) // A, then B(1); B(5) is never popped
}

func TestUniformCost_TiesPopInPushOrder(t *testing.T) {
	g := model.NewGraph()
	g.AddEdge(model.Edge{From: "A", To: "B", Cost: 1})
	g.AddEdge(model.Edge{From: "A", To: "C", Cost: 1})
	g.AddEdge(model.Edge{From: "B", To: "D", Cost: 1})
	g.AddEdge(model.Edge{From: "C", To: "D", Cost: 1})

	res := UniformCost(g, "A", "D")
	assert.Equal(t, nodes("A", "B", "D"), res.Path)
	assert.Equal(t, nodes("A", "B", "C", "D"), res.Steps)
	assert.Equal(t, 2, res.Cost)
}

func TestSearch_Idempotent(t *testing.T) {
	g := classroomGraph()
	for _, alg := range model.Algorithms {
		first, err := Search(g, "A", "D", alg)
		require.NoError(t, err)
		second, err := Search(g, "A", "D", alg)
		require.NoError(t, err)
		assert.Equal(t, first, second, alg)
	}
}

func TestParseAlgorithm(t *testing.T) {
	for in, want := range map[string]model.Algorithm{"bfs": model.BFS, " Dfs ": model.DFS, "UCS": model.UCS} {
		got, err := ParseAlgorithm(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseAlgorithm("astar")
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
}

// randomGraph builds a small graph over n nodes with m random edges.
func randomGraph(r *rand.Rand, n, m int) *model.Graph {
	g := model.NewGraph()
	for i := 0; i < m; i++ {
		from := model.Node(fmt.Sprintf("N%d", r.IntN(n)))
		to := model.Node(fmt.Sprintf("N%d", r.IntN(n)))
		g.AddEdge(model.Edge{From: from, To: to, Cost: 1 + r.IntN(9)})
	}
	return g
}

// bruteForce enumerates every simple path and returns the minimum cost and
// minimum edge count to reach goal, or -1 when unreachable.
func bruteForce(g *model.Graph, start, goal model.Node) (minCost, minHops int) {
	minCost, minHops = -1, -1
	onPath := map[model.Node]bool{}
	var walk func(n model.Node, cost, hops int)
	walk = func(n model.Node, cost, hops int) {
		if n == goal {
			if minCost < 0 || cost < minCost {
				minCost = cost
			}
			if minHops < 0 || hops < minHops {
				minHops = hops
			}
			return
		}
		onPath[n] = true
		for _, a := range g.Neighbors(n) {
			if !onPath[a.To] {
				walk(a.To, cost+a.Cost, hops+1)
			}
		}
		onPath[n] = false
	}
	walk(start, 0, 0)
	return minCost, minHops
}

func reachable(g *model.Graph, start model.Node) map[model.Node]bool {
	seen := map[model.Node]bool{start: true}
	stack := []model.Node{start}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, a := range g.Neighbors(n) {
			if !seen[a.To] {
				seen[a.To] = true
				stack = append(stack, a.To)
			}
		}
	}
	return seen
}

func TestSearch_RandomGraphProperties(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 42))
	for i := 0; i < 200; i++ {
		g := randomGraph(r, 6, 3+r.IntN(10))
		start := model.Node(fmt.Sprintf("N%d", r.IntN(6)))
		goal := model.Node(fmt.Sprintf("N%d", r.IntN(6)))
		wantCost, wantHops := bruteForce(g, start, goal)

		ucs := UniformCost(g, start, goal)
		bfs := BreadthFirst(g, start, goal)
		dfs := DepthFirst(g, start, goal)

		if wantCost < 0 {
			reach := reachable(g, start)
			for _, res := range []model.SearchResult{ucs, bfs, dfs} {
				require.Empty(t, res.Path, "case %d %s", i, res.Algorithm)
				require.Len(t, res.Steps, len(reach), "case %d %s", i, res.Algorithm)
				for _, n := range res.Steps {
					require.True(t, reach[n])
				}
			}
			continue
		}

		require.Equal(t, wantCost, ucs.Cost, "case %d", i)
		got, ok := PathCost(g, ucs.Path)
		require.True(t, ok)
		require.Equal(t, wantCost, got, "case %d", i)
		require.Len(t, bfs.Path, wantHops+1, "case %d", i)
		require.True(t, dfs.Found(), "case %d", i)
		require.Equal(t, goal, dfs.Path[len(dfs.Path)-1])
	}
}

func TestGenerateReport(t *testing.T) {
	g := classroomGraph()
	res := UniformCost(g, "A", "D")

	short := GenerateReport(g, res, false)
	assert.Contains(t, short, "A → B → C → D")
	assert.Contains(t, short, "Steps:      4")
	assert.Contains(t, short, "Cost:       3")
	assert.NotContains(t, short, "Visitation Order")

	long := GenerateReport(g, res, true)
	assert.Contains(t, long, "--- Visitation Order ---")
	assert.Contains(t, long, "C-D")

	miss := GenerateReport(g, BreadthFirst(g, "D", "A"), false)
	assert.Contains(t, miss, "No path found.")
	assert.Contains(t, miss, "Cost:       N/A")
}
