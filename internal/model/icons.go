package model

// Centralized icons for the UI components
// Using simple single-width characters for consistent terminal rendering
const (
	IconArrow     = "→" // Path separator
	IconVisited   = "●" // Node revealed by the visitation replay
	IconUnvisited = "○" // Node not yet visited
	IconStart     = "▶" // Start node marker
	IconGoal      = "◆" // Goal node marker
	IconNoPath    = "✗" // Goal unreachable
	IconOK        = "✓" // Path found
)
