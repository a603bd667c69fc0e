package tui

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"searchviz/internal/animate"
	"searchviz/internal/graphio"
	"searchviz/internal/model"
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var enter = tea.KeyMsg{Type: tea.KeyEnter}

func update(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	am, ok := next.(AppModel)
	require.True(t, ok)
	return am, cmd
}

// submit opens a form with k, fills it with value and presses enter.
func submit(t *testing.T, m AppModel, k, value string) (AppModel, tea.Cmd) {
	t.Helper()
	m, _ = update(t, m, key(k))
	require.NotEqual(t, InputNone, m.Input)
	m.InputBuffer.SetValue(value)
	return update(t, m, enter)
}

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

func sized(m AppModel) AppModel {
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(AppModel)
}

func TestAddEdgeForm(t *testing.T) {
	m := sized(InitialModel(nil, nil, nil))

	m, _ = submit(t, m, "e", "a -> b 3")
	assert.Equal(t, InputNone, m.Input)
	assert.Equal(t, 1, m.Graph.EdgeCount())
	assert.Equal(t, []model.Adjacency{{To: "B", Cost: 3}}, m.Graph.Neighbors("A"))
	assert.Contains(t, m.Status, "Added A")

	m, _ = submit(t, m, "e", "a b zero")
	assert.Equal(t, 1, m.Graph.EdgeCount())
	assert.Contains(t, m.Status, "Please provide valid inputs")

	m, _ = submit(t, m, "e", "a b 0")
	assert.Equal(t, 1, m.Graph.EdgeCount())
	assert.Contains(t, m.Status, "Please provide valid inputs")
}

func TestInputEscapeDiscards(t *testing.T) {
	m := InitialModel(nil, nil, nil)
	m, _ = update(t, m, key("e"))
	m.InputBuffer.SetValue("a b 1")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, InputNone, m.Input)
	assert.Zero(t, m.Graph.EdgeCount())
}

func TestSearchWithoutSequencerShowsResult(t *testing.T) {
	m := sized(InitialModel(classroomGraph(), nil, nil))

	m, cmd := submit(t, m, "s", "a d ucs")
	assert.Nil(t, cmd)
	require.NotNil(t, m.Result)
	assert.Equal(t, model.UCS, m.Algorithm)
	assert.Equal(t, animate.Done, m.AnimState)
	assert.Equal(t, 3, m.Result.Cost)

	view := m.View()
	assert.Contains(t, view, "A → B → C → D")
	assert.Contains(t, m.detailsContent(), "Cost:")
}

func TestSearchForm_Invalid(t *testing.T) {
	m := InitialModel(classroomGraph(), nil, nil)

	m, _ = submit(t, m, "s", "a")
	assert.Nil(t, m.Result)
	assert.Contains(t, m.Status, "Please provide valid inputs")

	m, _ = submit(t, m, "s", "a d astar")
	assert.Nil(t, m.Result)
	assert.Contains(t, m.Status, "unknown algorithm")
}

func TestSearchNoPath(t *testing.T) {
	m := sized(InitialModel(classroomGraph(), nil, nil))
	m, _ = submit(t, m, "s", "a z")
	require.NotNil(t, m.Result)
	assert.False(t, m.Result.Found())
	assert.Contains(t, m.detailsContent(), "No path found.")
	assert.Contains(t, m.detailsContent(), "N/A")
}

func instant(ctx context.Context, _ time.Duration) error { return ctx.Err() }

func TestSearchReplaysFrames(t *testing.T) {
	seq := animate.NewSequencer(animate.WithSleeper(instant))
	m := sized(InitialModel(classroomGraph(), seq, nil))

	m, cmd := submit(t, m, "s", "a d")
	require.NotNil(t, cmd)
	assert.Equal(t, model.BFS, m.Result.Algorithm)
	assert.Equal(t, animate.Idle, m.AnimState)

	started, ok := cmd().(MsgRunStarted)
	require.True(t, ok)
	require.NotNil(t, started.Run)
	assert.Equal(t, m.SearchSeq, started.Search)

	m, cmd = update(t, m, started)
	done, ok := cmd().(MsgAnimationDone)
	require.True(t, ok)
	assert.Equal(t, animate.Done, done.State)

	// BFS visits A B C D, then highlights A-B and B-D
	wantFrames := 4 + 2
	for i := 0; i < wantFrames; i++ {
		f, ok := m.frames.next()().(MsgFrame)
		require.True(t, ok)
		m, _ = update(t, m, f)
		if i == 2 {
			assert.Equal(t, animate.VisitationReplay, m.AnimState)
			assert.Equal(t, []model.Node{"A", "B", "C"}, m.Frame.Visited)
			assert.Contains(t, m.detailsContent(), "visiting 3/4")
		}
	}
	assert.Equal(t, animate.PathReplay, m.AnimState)
	assert.True(t, m.Frame.HasEdge("A-B"))
	assert.True(t, m.Frame.HasEdge("B-D"))
	assert.NotContains(t, m.detailsContent(), "Steps:")

	m, _ = update(t, m, done)
	assert.Equal(t, animate.Done, m.AnimState)
	assert.Contains(t, m.detailsContent(), "A → B → D")
	assert.Contains(t, m.detailsContent(), "Steps:")
}

func TestStaleFramesAreDropped(t *testing.T) {
	m := InitialModel(classroomGraph(), nil, nil)
	m, _ = submit(t, m, "s", "a d")
	current := m.Frame

	m, cmd := update(t, m, MsgFrame{Search: m.SearchSeq - 1, Frame: model.Frame{Visited: []model.Node{"Z"}}})
	assert.NotNil(t, cmd, "frame listener is re-armed")
	assert.Equal(t, current, m.Frame)

	m, _ = update(t, m, MsgAnimationDone{Search: m.SearchSeq - 1, State: animate.Cancelled})
	assert.Equal(t, animate.Done, m.AnimState)
}

func TestCancelKey(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	sleeper := func(ctx context.Context, _ time.Duration) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-block:
			return nil
		}
	}
	seq := animate.NewSequencer(animate.WithSleeper(sleeper))
	m := InitialModel(classroomGraph(), seq, nil)

	m, cmd := submit(t, m, "s", "a d")
	started := cmd().(MsgRunStarted)
	f := m.frames.next()().(MsgFrame)
	m, _ = update(t, m, f)
	assert.Equal(t, animate.VisitationReplay, m.AnimState)

	m, cmd = update(t, m, key("x"))
	assert.Equal(t, animate.Cancelled, m.AnimState)
	assert.Nil(t, cmd())
	assert.Equal(t, animate.Cancelled, started.Run.Wait())
}

func TestAlgorithmCycleAndReset(t *testing.T) {
	m := InitialModel(classroomGraph(), nil, nil)
	assert.Equal(t, model.BFS, m.Algorithm)

	m, _ = update(t, m, key("a"))
	assert.Equal(t, model.DFS, m.Algorithm)
	m, _ = update(t, m, key("a"))
	m, _ = update(t, m, key("a"))
	assert.Equal(t, model.BFS, m.Algorithm)

	m, _ = submit(t, m, "s", "a d")
	require.NotNil(t, m.Result)
	m, _ = update(t, m, key("r"))
	assert.Nil(t, m.Result)
	assert.Zero(t, m.Graph.NodeCount())
	assert.Contains(t, m.View(), "No edges yet")
}

func TestUnknownKeysAreIgnored(t *testing.T) {
	m := InitialModel(classroomGraph(), nil, nil)
	before := m.Graph.EdgeCount()
	m, cmd := update(t, m, key("z"))
	assert.Nil(t, cmd)
	assert.Equal(t, before, m.Graph.EdgeCount())
	assert.Equal(t, InputNone, m.Input)
}

func TestHelpToggle(t *testing.T) {
	m := sized(InitialModel(nil, nil, nil))
	m, _ = update(t, m, key("?"))
	assert.True(t, m.ShowHelp)
	assert.Contains(t, m.View(), model.Version)

	m, _ = update(t, m, key("q"))
	assert.False(t, m.ShowHelp, "q closes help before quitting")
}

func TestInitialSearch(t *testing.T) {
	m := InitialModel(classroomGraph(), nil, nil).
		WithInitialSearch(MsgSearchRequest{Start: "A", Goal: "D", Algorithm: model.DFS})
	require.NotNil(t, m.Init())

	m, _ = update(t, m, *m.pending)
	require.NotNil(t, m.Result)
	assert.Equal(t, []model.Node{"A", "C", "D"}, m.Result.Path)
}

func TestPathFrameShowsOnlyTouchedNodes(t *testing.T) {
	m := sized(InitialModel(classroomGraph(), nil, nil))
	m, _ = submit(t, m, "s", "a d")
	m.AnimState = animate.VisitationReplay

	frame := animate.PathFrames([]model.Node{"A", "B", "D"})[0]
	m, _ = update(t, m, MsgFrame{Search: m.SearchSeq, Frame: frame})

	assert.Equal(t, animate.PathReplay, m.AnimState)
	assert.Equal(t, map[model.Node]bool{"A": true, "B": true}, m.visitedSet())
	assert.Contains(t, m.nodeChip("A", m.visitedSet()), model.IconVisited)
	assert.Contains(t, m.nodeChip("C", m.visitedSet()), model.IconUnvisited)
	assert.Contains(t, m.nodeChip("D", m.visitedSet()), model.IconUnvisited)
}

func TestLateFrameDoesNotReopenFinishedRun(t *testing.T) {
	m := InitialModel(classroomGraph(), nil, nil)
	m, _ = submit(t, m, "s", "a d")
	m.AnimState = animate.PathReplay
	m, _ = update(t, m, MsgAnimationDone{Search: m.SearchSeq, State: animate.Done})
	finished := m.Frame

	late := animate.PathFrames([]model.Node{"A", "B", "D"})[1]
	m, cmd := update(t, m, MsgFrame{Search: m.SearchSeq, Frame: late})
	assert.NotNil(t, cmd, "frame listener is re-armed")
	assert.Equal(t, animate.Done, m.AnimState)
	assert.Equal(t, finished, m.Frame)
	assert.Contains(t, m.detailsContent(), "Steps:")
}

func TestSaveKeyWritesYAML(t *testing.T) {
	m := InitialModel(classroomGraph(), nil, nil)
	m.SavePath = filepath.Join(t.TempDir(), "g.yaml")

	m, _ = update(t, m, key("w"))
	assert.Contains(t, m.Status, "Saved 5 edges")

	edges, err := graphio.Load(m.SavePath)
	require.NoError(t, err)
	assert.Equal(t, m.Graph.Edges(), edges)
}

func TestSaveKeyReportsErrors(t *testing.T) {
	m := InitialModel(classroomGraph(), nil, nil)
	m.SavePath = filepath.Join(t.TempDir(), "missing", "g.yaml")

	m, _ = update(t, m, key("w"))
	assert.Contains(t, m.Status, "Save failed")
	_, err := os.Stat(m.SavePath)
	assert.True(t, os.IsNotExist(err))
}
