// Package search implements the three uninformed searches used by the
// visualizer: breadth-first, depth-first and uniform-cost.
//
// All three share one walker: a frontier of (node, path, cost) entries is
// seeded with the start node, and each iteration pops one entry, marks its
// node visited, stops on the goal, and otherwise pushes every neighbor that
// is not visited yet. Only the frontier discipline differs:
//
//	BFS  FIFO queue        (fewest edges first; costs ignored)
//	DFS  LIFO stack        (neighbors pushed in adjacency order, so the last
//	                        neighbor is expanded first)
//	UCS  min-heap on cost  (ties pop in insertion order)
//
// Nodes are marked visited when popped, not when pushed, so the same node can
// sit in the frontier more than once. Stale entries are skipped when popped;
// they never appear in SearchResult.Steps but are counted in Popped.
//
// The searches are pure: no timing, no rendering, no mutation of the graph.
// An unreachable or unknown goal is not an error, it yields an empty path.
package search
