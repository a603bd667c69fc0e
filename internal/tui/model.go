package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"searchviz/internal/animate"
	"searchviz/internal/graphio"
	"searchviz/internal/model"
)

// InputKind selects what the input line is collecting.
type InputKind int

const (
	InputNone InputKind = iota
	InputEdge
	InputSearch
)

// DefaultSavePath is where w writes the graph unless SavePath is changed.
const DefaultSavePath = "searchviz-graph.yaml"

// AppModel holds the TUI state.
type AppModel struct {
	// Data
	Graph     *model.Graph
	Algorithm model.Algorithm
	Result    *model.SearchResult
	Status    string // last validation message, cleared by the next action
	SavePath  string // target of the w key

	// Animation
	Seq       *animate.Sequencer
	Frame     model.Frame
	AnimState animate.State
	SearchSeq int // bumped by every search and reset; older frames are dropped

	// UI State
	WindowSize  tea.WindowSizeMsg
	ShowHelp    bool
	HelpScrollY int

	// Input State
	Input       InputKind
	InputBuffer textinput.Model

	// Components
	DetailsViewport viewport.Model

	log     *logrus.Logger
	parser  *graphio.Parser
	frames  *frameSink
	pending *MsgSearchRequest
}

// InitialModel returns the initial state for g. The sequencer drives
// every replay started from the TUI.
func InitialModel(g *model.Graph, seq *animate.Sequencer, log *logrus.Logger) AppModel {
	ti := textinput.New()
	ti.CharLimit = 50
	ti.Width = 30

	if g == nil {
		g = model.NewGraph()
	}
	if log == nil {
		log = logrus.New()
		log.SetLevel(logrus.PanicLevel)
	}

	return AppModel{
		Graph:           g,
		Algorithm:       model.BFS,
		SavePath:        DefaultSavePath,
		Seq:             seq,
		InputBuffer:     ti,
		DetailsViewport: viewport.New(40, 10),
		log:             log,
		parser:          graphio.NewParser(),
		frames:          newFrameSink(),
	}
}
