package animate

import (
	"slices"
	"time"

	"searchviz/internal/model"
)

// Renderer receives animation frames. Render must not call back into the
// Sequencer or the Run that produced the frame.
type Renderer interface {
	Render(frame model.Frame)
}

// RenderFunc adapts a plain function to Renderer.
type RenderFunc func(frame model.Frame)

func (f RenderFunc) Render(frame model.Frame) { f(frame) }

// Pacing controls the delays between frames.
type Pacing struct {
	Step       time.Duration // after each visited node
	GroupPause time.Duration // replaces Step after every GroupSize-th node
	GroupSize  int
	PathStep   time.Duration // after each path edge
}

// DefaultPacing is 500ms per node, 1s after every third node and 1s per path edge.
func DefaultPacing() Pacing {
	return Pacing{
		Step:       500 * time.Millisecond,
		GroupPause: time.Second,
		GroupSize:  3,
		PathStep:   time.Second,
	}
}

// visitDelay is the pause after the n-th (1-based) visited node.
func (p Pacing) visitDelay(n int) time.Duration {
	if p.GroupSize > 0 && n%p.GroupSize == 0 {
		return p.GroupPause
	}
	return p.Step
}

func (p Pacing) pathDelay(int) time.Duration {
	return p.PathStep
}

// Duration is the total playback time of a result with the given number
// of steps and path nodes.
func (p Pacing) Duration(steps, pathNodes int) time.Duration {
	var d time.Duration
	for n := 1; n <= steps; n++ {
		d += p.visitDelay(n)
	}
	if pathNodes > 1 {
		d += time.Duration(pathNodes-1) * p.PathStep
	}
	return d
}

// VisitationFrames builds one frame per step, each revealing one more
// visited node. No edges are highlighted.
func VisitationFrames(steps []model.Node) []model.Frame {
	frames := make([]model.Frame, 0, len(steps))
	var visited []model.Node
	seen := make(map[model.Node]bool, len(steps))
	for i, n := range steps {
		if !seen[n] {
			seen[n] = true
			visited = append(visited, n)
		}
		frames = append(frames, model.Frame{
			Phase:   model.PhaseVisitation,
			Index:   i,
			Edges:   []string{},
			Visited: slices.Clone(visited),
		})
	}
	return frames
}

// PathFrames builds one frame per path edge. Each frame highlights the
// edges walked so far and the endpoints they touch.
func PathFrames(path []model.Node) []model.Frame {
	keys := model.PathEdgeKeys(path)
	frames := make([]model.Frame, 0, len(keys))
	var touched []model.Node
	seen := make(map[model.Node]bool, len(path))
	for i := range keys {
		for _, n := range path[i : i+2] {
			if !seen[n] {
				seen[n] = true
				touched = append(touched, n)
			}
		}
		frames = append(frames, model.Frame{
			Phase:   model.PhasePath,
			Index:   i,
			Edges:   slices.Clone(keys[:i+1]),
			Visited: slices.Clone(touched),
		})
	}
	return frames
}
