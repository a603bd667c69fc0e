package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"searchviz/internal/animate"
	"searchviz/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nodeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	visitedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("226")). // Yellow
			Bold(true)

	edgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // Grey

	highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")). // Red
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208")) // Orange
)

func (m AppModel) View() string {
	if m.ShowHelp {
		return m.renderHelpDialog()
	}

	width := m.WindowSize.Width
	height := m.WindowSize.Height

	// Subtracting 6 for borders and a buffer column on each side
	netWidth := width - 6
	if netWidth < 40 {
		netWidth = 40
	}
	leftWidth := netWidth / 2
	rightWidth := netWidth - leftWidth

	interiorHeight := height - 8
	if interiorHeight < 4 {
		interiorHeight = 4
	}
	borderColor := lipgloss.Color("63")

	left := lipgloss.NewStyle().
		Width(leftWidth).
		Height(interiorHeight).
		Border(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		Render(m.renderGraph(leftWidth, interiorHeight))

	right := lipgloss.NewStyle().
		Width(rightWidth).
		Height(interiorHeight).
		Border(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		Render(titleStyle.Render("Result") + "\n\n" + m.DetailsViewport.View())

	help := "e: Add Edge • s: Search • a: Algorithm • x: Cancel • r: Reset • w: Save • ?: Help • q: Quit"
	footer := "\n\n" + help
	if m.Status != "" {
		footer = "\n" + statusStyle.Render(m.Status) + "\n" + help
	}
	if m.Input != InputNone {
		footer = "\n\n" + m.InputBuffer.View()
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, left, right) + footer
}

// renderGraph lists every node with its out-edges. Visited nodes are
// yellow and the edges of the revealed path are red.
func (m AppModel) renderGraph(width, height int) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("Graph (%d nodes, %d edges)", m.Graph.NodeCount(), m.Graph.EdgeCount())))
	sb.WriteString("\n\n")

	nodes := m.Graph.Nodes()
	if len(nodes) == 0 {
		sb.WriteString(edgeStyle.Render("No edges yet. Press e to add one."))
		return sb.String()
	}

	visited := m.visitedSet()
	lines := 0
	for _, n := range nodes {
		if lines >= height-2 {
			sb.WriteString(edgeStyle.Render("..."))
			break
		}
		sb.WriteString(m.nodeChip(n, visited))

		for _, adj := range m.Graph.Neighbors(n) {
			style := edgeStyle
			if m.Frame.HasEdge(model.EdgeKey(n, adj.To)) {
				style = highlightStyle
			}
			sb.WriteString(style.Render(fmt.Sprintf("  %s %s (%d)", model.IconArrow, adj.To, adj.Cost)))
		}
		sb.WriteString("\n")
		lines++
	}
	return truncateLines(sb.String(), width)
}

func (m AppModel) nodeChip(n model.Node, visited map[model.Node]bool) string {
	marker := " "
	if m.Result != nil {
		switch n {
		case m.Result.Start:
			marker = model.IconStart
		case m.Result.Goal:
			marker = model.IconGoal
		}
	}
	if visited[n] {
		return marker + " " + visitedStyle.Render(model.IconVisited+" "+string(n))
	}
	return marker + " " + nodeStyle.Render(model.IconUnvisited+" "+string(n))
}

// visitedSet is the set of nodes the current frame marks as visited.
func (m AppModel) visitedSet() map[model.Node]bool {
	return m.Frame.VisitedSet()
}

// refreshDetails rebuilds the result pane.
func (m *AppModel) refreshDetails() {
	m.DetailsViewport.SetContent(m.detailsContent())
}

func (m AppModel) detailsContent() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s (%s)\n", labelStyle.Render("Algorithm:"), m.Algorithm.Describe(), m.Algorithm)

	if m.Result == nil {
		sb.WriteString("\nPress s to run a search.")
		return sb.String()
	}
	res := m.Result
	fmt.Fprintf(&sb, "%s %s %s %s\n", labelStyle.Render("Search:   "), res.Start, model.IconArrow, res.Goal)
	fmt.Fprintf(&sb, "%s %s\n", labelStyle.Render("Animation:"), m.progress())

	if len(m.Frame.Visited) > 0 || m.Frame.Phase == model.PhasePath {
		revealed := m.Frame.Visited
		if m.Frame.Phase == model.PhasePath {
			revealed = res.Steps
		}
		fmt.Fprintf(&sb, "%s %s\n", labelStyle.Render("Visited:  "), joinNodes(revealed, " "))
	}

	// The outputs are shown once the replay is over, as on the web page.
	if !m.AnimState.Terminal() {
		return sb.String()
	}
	sb.WriteString("\n")
	if res.Found() {
		fmt.Fprintf(&sb, "%s %s %s\n", labelStyle.Render("Path:     "), model.IconOK, res.PathText())
	} else {
		fmt.Fprintf(&sb, "%s %s No path found.\n", labelStyle.Render("Path:     "), model.IconNoPath)
	}
	fmt.Fprintf(&sb, "%s %d\n", labelStyle.Render("Steps:    "), len(res.Steps))
	fmt.Fprintf(&sb, "%s %s\n", labelStyle.Render("Cost:     "), res.CostText())
	return sb.String()
}

func (m AppModel) progress() string {
	switch m.AnimState {
	case animate.VisitationReplay:
		return fmt.Sprintf("visiting %d/%d", m.Frame.Index+1, len(m.Result.Steps))
	case animate.PathReplay:
		return fmt.Sprintf("tracing path %d/%d", m.Frame.Index+1, len(m.Result.Path)-1)
	}
	return m.AnimState.String()
}

func joinNodes(nodes []model.Node, sep string) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = string(n)
	}
	return strings.Join(parts, sep)
}

func truncateLines(s string, width int) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if lipgloss.Width(line) > width {
			lines[i] = lipgloss.NewStyle().MaxWidth(width-3).Render(line) + "..."
		}
	}
	return strings.Join(lines, "\n")
}

func (m AppModel) renderHelpDialog() string {
	w, h := m.WindowSize.Width, m.WindowSize.Height
	if w < 20 || h < 10 {
		return "Window too small"
	}

	helpWidth := w * 80 / 100
	if helpWidth < 40 {
		helpWidth = 40
	}
	if helpWidth > w-4 {
		helpWidth = w - 4
	}
	helpHeight := h - 6
	if helpHeight < 5 {
		helpHeight = 5
	}

	lines := strings.Split(HelpContent(), "\n")
	// Adjust height for title and border
	contentHeight := helpHeight - 2

	startY := m.HelpScrollY
	if startY > len(lines)-contentHeight {
		startY = len(lines) - contentHeight
	}
	if startY < 0 {
		startY = 0
	}

	endY := startY + contentHeight
	if endY > len(lines) {
		endY = len(lines)
	}

	content := strings.Join(lines[startY:endY], "\n")

	dialog := lipgloss.NewStyle().
		Width(helpWidth).
		Height(helpHeight).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(0, 1).
		Render(content)

	return lipgloss.Place(w, h,
		lipgloss.Center, lipgloss.Center,
		dialog,
	)
}

func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.frames.next()}
	if m.pending != nil {
		req := *m.pending
		cmds = append(cmds, func() tea.Msg { return req })
	}
	return tea.Batch(cmds...)
}
