package tui

import (
	"strings"

	"searchviz/internal/model"
)

const helpText = `searchviz {{VERSION}}

Build a weighted directed graph, then watch a search explore it.

KEYS
  e        Add an edge. Type FROM TO COST, e.g. "a b 3" or "A -> B 3".
           Node names are case-insensitive; COST is an integer >= 1.
  s        Search. Type START GOAL, optionally followed by BFS, DFS or UCS.
  a        Cycle the default algorithm (BFS, DFS, UCS).
  x        Cancel the running animation.
  r        Clear the graph and cancel the animation.
  w        Save the graph as YAML (searchviz-graph.yaml, or --save).
  ↑/↓      Scroll the result pane.
  ?        Toggle this help.
  q        Quit.

ANIMATION
  Visited nodes turn yellow in the order the algorithm visits them,
  half a second apart with a one second pause after every third node.
  Then the path edges turn red, one per second. Path, step count and
  cost are shown when the animation is over.

ALGORITHMS
  BFS  explores by number of edges; the path has the fewest edges.
  DFS  follows one branch as deep as it goes before backtracking.
  UCS  expands the cheapest frontier entry; the path has the lowest cost.
       Cost is only reported for UCS.
`

// HelpContent returns the help text for the current version.
func HelpContent() string {
	return strings.ReplaceAll(helpText, "{{VERSION}}", model.Version)
}
