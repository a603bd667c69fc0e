package search

import (
	"fmt"
	"strings"

	"searchviz/internal/model"
)

// PathCost returns the cheapest total cost of walking path over g, taking
// the lowest cost among parallel edges. ok is false if a hop has no edge.
func PathCost(g Neighborer, path []model.Node) (cost int, ok bool) {
	for i := 0; i < len(path)-1; i++ {
		best := -1
		for _, a := range g.Neighbors(path[i]) {
			if a.To == path[i+1] && (best < 0 || a.Cost < best) {
				best = a.Cost
			}
		}
		if best < 0 {
			return 0, false
		}
		cost += best
	}
	return cost, true
}

// GenerateReport renders a plain-text summary of a search run.
func GenerateReport(g Neighborer, res model.SearchResult, verbose bool) string {
	var b strings.Builder

	b.WriteString("=== Search Report ===\n\n")
	fmt.Fprintf(&b, "Algorithm:  %s (%s)\n", res.Algorithm, res.Algorithm.Describe())
	fmt.Fprintf(&b, "Start:      %s\n", res.Start)
	fmt.Fprintf(&b, "Goal:       %s\n\n", res.Goal)

	if res.Found() {
		fmt.Fprintf(&b, "%s Path:     %s\n", model.IconOK, res.PathText())
	} else {
		fmt.Fprintf(&b, "%s No path found.\n", model.IconNoPath)
	}
	fmt.Fprintf(&b, "Steps:      %d\n", len(res.Steps))
	fmt.Fprintf(&b, "Cost:       %s\n", res.CostText())

	if !verbose {
		return b.String()
	}

	b.WriteString("\n--- Visitation Order ---\n")
	for i, n := range res.Steps {
		fmt.Fprintf(&b, "%4d. %s\n", i+1, n)
	}
	fmt.Fprintf(&b, "\nFrontier pops: %d (%d stale duplicates skipped)\n", res.Popped, res.Popped-len(res.Steps))

	if len(res.Path) > 1 {
		b.WriteString("\n--- Path Edges ---\n")
		total := 0
		for i := 0; i < len(res.Path)-1; i++ {
			hop := res.Path[i : i+2]
			c, _ := PathCost(g, hop)
			total += c
			fmt.Fprintf(&b, "  %-12s cost %3d  (running %d)\n", model.EdgeKey(hop[0], hop[1]), c, total)
		}
		if !res.HasCost {
			fmt.Fprintf(&b, "\nEdge-weight total: %d (%s ignores costs)\n", total, res.Algorithm)
		}
	}

	return b.String()
}
