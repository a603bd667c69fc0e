package model

// Phase identifies which replay produced a frame.
type Phase string

const (
	PhaseVisitation Phase = "visitation"
	PhasePath       Phase = "path"
)

// Frame is a point-in-time snapshot handed to a renderer.
type Frame struct {
	Run     string   `json:"run"`
	Phase   Phase    `json:"phase"`
	Index   int      `json:"index"`   // 0-based within its phase
	Edges   []string `json:"edges"`   // highlighted edge keys, in path order
	Visited []Node   `json:"visited"` // visited nodes, in reveal order
}

// HasEdge reports whether key is highlighted in this frame.
func (f Frame) HasEdge(key string) bool {
	for _, k := range f.Edges {
		if k == key {
			return true
		}
	}
	return false
}

// VisitedSet returns the visited nodes as a lookup set.
func (f Frame) VisitedSet() map[Node]bool {
	set := make(map[Node]bool, len(f.Visited))
	for _, n := range f.Visited {
		set[n] = true
	}
	return set
}
