package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"searchviz/internal/animate"
	"searchviz/internal/graphio"
	"searchviz/internal/metrics"
	"searchviz/internal/model"
	"searchviz/internal/search"
)

// MsgSearchRequest asks for a search and its replay.
type MsgSearchRequest struct {
	Start     model.Node
	Goal      model.Node
	Algorithm model.Algorithm
}

// MsgFrame carries one replay frame into the program.
type MsgFrame struct {
	Search int
	Frame  model.Frame
}

// MsgRunStarted reports the run playing a search.
type MsgRunStarted struct {
	Search int
	Run    *animate.Run
}

// MsgAnimationDone reports the final state of a run.
type MsgAnimationDone struct {
	Search int
	State  animate.State
}

// frameSink moves frames from the sequencer goroutine into the program.
// Replays are started and cancelled through it so that a slow command
// for an older search can never supersede a newer one.
type frameSink struct {
	ch       chan MsgFrame
	quit     chan struct{}
	quitOnce sync.Once

	mu     sync.Mutex
	latest int
}

func newFrameSink() *frameSink {
	return &frameSink{
		ch:   make(chan MsgFrame, 16),
		quit: make(chan struct{}),
	}
}

func (s *frameSink) renderer(search int) animate.Renderer {
	return animate.RenderFunc(func(f model.Frame) {
		select {
		case s.ch <- MsgFrame{Search: search, Frame: f}:
		case <-s.quit:
		}
	})
}

// next waits for the following frame.
func (s *frameSink) next() tea.Cmd {
	return func() tea.Msg {
		select {
		case f := <-s.ch:
			return f
		case <-s.quit:
			return nil
		}
	}
}

func (s *frameSink) start(seq *animate.Sequencer, search int, res model.SearchResult) *animate.Run {
	s.mu.Lock()
	defer s.mu.Unlock()
	if search < s.latest {
		return nil
	}
	s.latest = search
	return seq.Start(context.Background(), res, s.renderer(search))
}

func (s *frameSink) cancel(seq *animate.Sequencer, search int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if search < s.latest {
		return
	}
	s.latest = search
	seq.Cancel()
}

func (s *frameSink) close() {
	s.quitOnce.Do(func() { close(s.quit) })
}

// WithInitialSearch runs req as soon as the program starts.
func (m AppModel) WithInitialSearch(req MsgSearchRequest) AppModel {
	m.pending = &req
	return m
}

// Update handles events.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.WindowSize = msg
		m.DetailsViewport.Width = msg.Width / 2
		m.DetailsViewport.Height = msg.Height - 8 // minus title, borders and footer
		if m.DetailsViewport.Height < 2 {
			m.DetailsViewport.Height = 2
		}
		m.refreshDetails()
		return m, nil

	case MsgSearchRequest:
		return m, m.startSearch(msg)

	case MsgFrame:
		// A frame delivered after the run finished must not reopen it.
		if msg.Search == m.SearchSeq && !m.AnimState.Terminal() {
			m.Frame = msg.Frame
			m.AnimState = phaseState(msg.Frame.Phase)
			m.refreshDetails()
		}
		return m, m.frames.next()

	case MsgRunStarted:
		if msg.Run == nil {
			return m, nil
		}
		return m, waitForRun(msg)

	case MsgAnimationDone:
		if msg.Search == m.SearchSeq {
			m.AnimState = msg.State
			m.refreshDetails()
		}
		return m, nil

	case tea.KeyMsg:
		if m.Input != InputNone {
			switch msg.Type {
			case tea.KeyEnter:
				value := m.InputBuffer.Value()
				kind := m.Input
				m.closeInput()
				if kind == InputEdge {
					m.addEdge(value)
					return m, nil
				}
				req, err := m.parseSearch(value)
				if err != nil {
					m.Status = "Please provide valid inputs: " + err.Error()
					return m, nil
				}
				return m, m.startSearch(req)
			case tea.KeyEsc:
				m.closeInput()
				return m, nil
			}
			m.InputBuffer, cmd = m.InputBuffer.Update(msg)
			return m, cmd
		}

		if m.ShowHelp {
			switch msg.String() {
			case "?", "esc", "q":
				m.ShowHelp = false
			case "up", "k":
				if m.HelpScrollY > 0 {
					m.HelpScrollY--
				}
			case "down", "j":
				m.HelpScrollY++
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "q":
			m.frames.close()
			if m.Seq != nil {
				m.Seq.Cancel()
			}
			return m, tea.Quit
		case "e":
			return m, m.openInput(InputEdge, "Edge (FROM TO COST): ")
		case "s":
			return m, m.openInput(InputSearch, "Search (START GOAL [ALGO]): ")
		case "a":
			m.Algorithm = m.Algorithm.Next()
			m.refreshDetails()
		case "r":
			m.Graph.Reset()
			metrics.GraphEdges.Set(0)
			m.Result = nil
			m.Status = "Graph cleared."
			m.log.Info("graph reset")
			return m, m.stopReplay()
		case "x":
			m.Status = ""
			return m, m.stopReplay()
		case "w":
			m.saveGraph()
		case "?":
			m.ShowHelp = true
			m.HelpScrollY = 0
		case "up", "k", "down", "j", "pgup", "pgdown":
			m.DetailsViewport, cmd = m.DetailsViewport.Update(msg)
			return m, cmd
		}
	}

	return m, cmd
}

func (m *AppModel) openInput(kind InputKind, prompt string) tea.Cmd {
	m.Input = kind
	m.Status = ""
	m.InputBuffer.Prompt = prompt
	m.InputBuffer.SetValue("")
	m.InputBuffer.Focus()
	return textinput.Blink
}

func (m *AppModel) closeInput() {
	m.Input = InputNone
	m.InputBuffer.Blur()
	m.InputBuffer.SetValue("")
}

// addEdge validates a "FROM TO COST" line and inserts it.
func (m *AppModel) addEdge(line string) {
	e, err := m.parser.ParseLine(line)
	if err != nil {
		m.Status = "Please provide valid inputs: " + err.Error()
		return
	}
	m.Graph.AddEdge(e)
	metrics.GraphEdges.Set(float64(m.Graph.EdgeCount()))
	m.Status = fmt.Sprintf("Added %s %s %s (%d).", e.From, model.IconArrow, e.To, e.Cost)
	m.log.WithFields(logrus.Fields{"from": e.From, "to": e.To, "cost": e.Cost}).Debug("edge added")
}

// saveGraph writes the graph as YAML to SavePath.
func (m *AppModel) saveGraph() {
	if err := graphio.Save(m.SavePath, m.Graph.Edges()); err != nil {
		m.Status = "Save failed: " + err.Error()
		m.log.WithError(err).Error("save graph")
		return
	}
	m.Status = fmt.Sprintf("Saved %d edges to %s.", m.Graph.EdgeCount(), m.SavePath)
	m.log.WithField("path", m.SavePath).Info("graph saved")
}

// parseSearch reads "START GOAL [ALGO]". Without ALGO the selected
// algorithm is used.
func (m *AppModel) parseSearch(line string) (MsgSearchRequest, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 || len(fields) > 3 {
		return MsgSearchRequest{}, fmt.Errorf("want START GOAL [ALGO], got %d fields", len(fields))
	}
	req := MsgSearchRequest{
		Start:     model.NormalizeNode(fields[0]),
		Goal:      model.NormalizeNode(fields[1]),
		Algorithm: m.Algorithm,
	}
	if len(fields) == 3 {
		algo, err := search.ParseAlgorithm(fields[2])
		if err != nil {
			return MsgSearchRequest{}, err
		}
		req.Algorithm = algo
	}
	return req, nil
}

// startSearch runs the search on the event loop, where the graph lives,
// and hands the replay to the sequencer.
func (m *AppModel) startSearch(req MsgSearchRequest) tea.Cmd {
	res, err := search.Search(m.Graph, req.Start, req.Goal, req.Algorithm)
	if err != nil {
		m.Status = err.Error()
		return nil
	}
	metrics.ObserveSearch(res)
	m.log.WithFields(logrus.Fields{
		"algorithm": res.Algorithm,
		"start":     res.Start,
		"goal":      res.Goal,
		"found":     res.Found(),
		"steps":     len(res.Steps),
	}).Info("search finished")

	m.Algorithm = req.Algorithm
	m.Result = &res
	m.Status = ""
	m.SearchSeq++
	m.Frame = model.Frame{}
	m.AnimState = animate.Idle
	m.refreshDetails()

	if m.Seq == nil {
		m.AnimState = animate.Done
		m.refreshDetails()
		return nil
	}
	seq, sink, n := m.Seq, m.frames, m.SearchSeq
	return func() tea.Msg {
		return MsgRunStarted{Search: n, Run: sink.start(seq, n, res)}
	}
}

// stopReplay cancels the current run and forgets its frames.
func (m *AppModel) stopReplay() tea.Cmd {
	m.SearchSeq++
	m.Frame = model.Frame{}
	if m.AnimState != animate.Idle && !m.AnimState.Terminal() {
		m.AnimState = animate.Cancelled
	}
	m.refreshDetails()
	if m.Seq == nil {
		return nil
	}
	seq, sink, n := m.Seq, m.frames, m.SearchSeq
	return func() tea.Msg {
		sink.cancel(seq, n)
		return nil
	}
}

func waitForRun(msg MsgRunStarted) tea.Cmd {
	return func() tea.Msg {
		return MsgAnimationDone{Search: msg.Search, State: msg.Run.Wait()}
	}
}

func phaseState(p model.Phase) animate.State {
	if p == model.PhasePath {
		return animate.PathReplay
	}
	return animate.VisitationReplay
}
