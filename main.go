package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"github.com/tcnksm/go-latest"

	"searchviz/internal/animate"
	"searchviz/internal/config"
	"searchviz/internal/graphio"
	"searchviz/internal/layout"
	"searchviz/internal/logging"
	"searchviz/internal/metrics"
	"searchviz/internal/model"
	"searchviz/internal/search"
	"searchviz/internal/tui"
	"searchviz/internal/web"
)

func checkUpdate(currentVer string) {
	githubTag := &latest.GithubTag{
		Owner:      "searchviz",
		Repository: "searchviz",
	}

	res, err := latest.Check(githubTag, currentVer)
	if err != nil {
		return // Silently fail
	}

	if res.Outdated {
		fmt.Printf("\n✨ A new version is available: %s (you have %s)\n", res.Current, currentVer)
		fmt.Println("👉 Download it from https://github.com/searchviz/searchviz/releases")
	} else if pflag.Lookup("update").Changed {
		fmt.Printf("✅ You are using the latest version: %s\n", currentVer)
	}
}

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: searchviz [options]\n\n")
		fmt.Fprintf(os.Stderr, "searchviz builds a weighted directed graph and animates how breadth-first,\n")
		fmt.Fprintf(os.Stderr, "depth-first and uniform-cost search explore it.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  searchviz                          # Start TUI mode with an empty graph\n")
		fmt.Fprintf(os.Stderr, "  searchviz -g g.txt -s A -t D       # TUI mode, replay a search on start\n")
		fmt.Fprintf(os.Stderr, "  searchviz -g g.txt -s A -t D -a ucs --report\n")
		fmt.Fprintf(os.Stderr, "  searchviz -g g.yaml -s A -t D --json\n")
		fmt.Fprintf(os.Stderr, "  searchviz --web -p 9000            # Canvas page on http://localhost:9000\n")
	}

	jsonFlag := pflag.BoolP("json", "j", false, "Output the graph and search result as JSON")
	reportFlag := pflag.BoolP("report", "r", false, "Print a search report (CLI mode)")
	outputFlag := pflag.StringP("output", "o", "", "Save report to the specified file (combined with --report)")
	verboseFlag := pflag.BoolP("verbose", "v", false, "Include visitation order and path edges in the report")
	webFlag := pflag.BoolP("web", "w", false, "Start Web Mode on http://localhost:8080")
	versionFlag := pflag.BoolP("version", "V", false, "Print version information")
	updateFlag := pflag.BoolP("update", "u", false, "Check for latest version")
	helpFlag := pflag.BoolP("help", "h", false, "Show this help message")
	graphFlag := pflag.StringP("graph", "g", "", "Load edges from a text or YAML graph file")
	startFlag := pflag.StringP("start", "s", "", "Start node")
	goalFlag := pflag.StringP("goal", "t", "", "Goal node")
	algoFlag := pflag.StringP("algorithm", "a", "BFS", "Search algorithm: BFS, DFS or UCS")
	portFlag := pflag.StringP("port", "p", "", "Web Mode port (default 8080, or $SEARCHVIZ_PORT)")
	logFileFlag := pflag.String("log-file", "", "Write TUI mode logs to this file")
	saveFlag := pflag.String("save", tui.DefaultSavePath, "File the TUI w key saves the graph to (.yaml or text)")
	pflag.Parse()

	if *helpFlag {
		pflag.Usage()
		return
	}

	if *versionFlag {
		fmt.Printf("searchviz version %s\n", model.Version)
		return
	}

	if *updateFlag {
		checkUpdate(model.Version)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if pflag.Lookup("graph").Changed {
		cfg.GraphFile = *graphFlag
	}
	if pflag.Lookup("port").Changed {
		cfg.Port = *portFlag
	}
	if pflag.Lookup("log-file").Changed {
		cfg.LogFile = *logFileFlag
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	algo, err := search.ParseAlgorithm(*algoFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	edges := loadGraph(cfg.GraphFile)
	req := tui.MsgSearchRequest{
		Start:     model.NormalizeNode(*startFlag),
		Goal:      model.NormalizeNode(*goalFlag),
		Algorithm: algo,
	}

	if *webFlag {
		runWebMode(cfg, edges)
		return
	}

	if *reportFlag {
		runReportMode(edges, req, *outputFlag, *verboseFlag)
		return
	}

	if *jsonFlag {
		runJsonMode(edges, req)
		return
	}

	// Default: TUI
	runTuiMode(cfg, edges, req, *saveFlag)
}

// loadGraph reads the graph file, if any, and exits with the offending
// line shown in context when it does not parse.
func loadGraph(path string) []model.Edge {
	if path == "" {
		return nil
	}
	edges, err := graphio.Load(path)
	if err == nil {
		return edges
	}

	fmt.Fprintf(os.Stderr, "Error loading graph: %v\n", err)
	var syntaxErr *graphio.SyntaxError
	if errors.As(err, &syntaxErr) {
		fmt.Fprintln(os.Stderr)
		fmt.Fprint(os.Stderr, graphio.GetLineContext(path, syntaxErr.Line).String())
	}
	os.Exit(1)
	return nil
}

func requireEndpoints(req tui.MsgSearchRequest) {
	if req.Start == "" || req.Goal == "" {
		fmt.Fprintln(os.Stderr, "Error: --start and --goal are required in this mode")
		os.Exit(1)
	}
}

func runReportMode(edges []model.Edge, req tui.MsgSearchRequest, outputFile string, verbose bool) {
	requireEndpoints(req)
	g := graphio.Build(edges)

	res, err := search.Search(g, req.Start, req.Goal, req.Algorithm)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	report := search.GenerateReport(g, res, verbose)

	if outputFile != "" {
		err := os.WriteFile(outputFile, []byte(report), 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing report to %s: %v\n", outputFile, err)
			os.Exit(1)
		}
		fmt.Printf("Report saved to %s\n", outputFile)
	} else {
		fmt.Println(report)
	}
}

type jsonOutput struct {
	Nodes  []model.Node        `json:"nodes"`
	Edges  []model.Edge        `json:"edges"`
	Result *model.SearchResult `json:"result,omitempty"`
}

func runJsonMode(edges []model.Edge, req tui.MsgSearchRequest) {
	g := graphio.Build(edges)
	out := jsonOutput{Nodes: g.Nodes(), Edges: g.Edges()}

	if req.Start != "" && req.Goal != "" {
		res, err := search.Search(g, req.Start, req.Goal, req.Algorithm)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		out.Result = &res
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(out)
}

func runWebMode(cfg *config.Config, edges []model.Edge) {
	log := logging.New(cfg.LogLevel, os.Stderr)

	store := web.NewStore(layout.New())
	for _, e := range edges {
		store.AddEdge(e)
	}
	srv := web.NewServer(store, log, web.WithPacing(cfg.Pacing()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Starting web server on http://%s\n", cfg.Addr())
	if err := web.StartServer(ctx, cfg.Addr(), srv); err != nil {
		log.WithError(err).Error("web server stopped")
		os.Exit(1)
	}
}

func runTuiMode(cfg *config.Config, edges []model.Edge, req tui.MsgSearchRequest, savePath string) {
	log, closer, err := logging.NewForTUI(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	g := graphio.Build(edges)
	metrics.GraphEdges.Set(float64(g.EdgeCount()))
	seq := animate.NewSequencer(
		animate.WithPacing(cfg.Pacing()),
		animate.WithLogger(log),
		animate.WithHooks(metrics.SequencerHooks()),
	)

	m := tui.InitialModel(g, seq, log)
	m.SavePath = savePath
	if req.Start != "" && req.Goal != "" {
		m = m.WithInitialSearch(req)
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
}
