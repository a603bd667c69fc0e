package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"searchviz/internal/animate"
	"searchviz/internal/metrics"
	"searchviz/internal/model"
	"searchviz/internal/search"
)

//go:embed static/*
var staticFS embed.FS

//go:embed help.md
var helpMD string

const (
	maxBodyBytes    = 4096
	shutdownTimeout = 5 * time.Second
)

// Server serves the canvas page, the graph API and the frame stream.
type Server struct {
	store    *Store
	log      *logrus.Logger
	pacing   animate.Pacing
	sleeper  animate.Sleeper
	registry *prometheus.Registry
	mux      *http.ServeMux

	// sequencers of open websocket connections, cancelled on reset
	mu         sync.Mutex
	sequencers map[*animate.Sequencer]struct{}
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithPacing sets the animation pacing of streamed replays.
func WithPacing(p animate.Pacing) ServerOption {
	return func(s *Server) { s.pacing = p }
}

// WithSleeper replaces the timer between frames, for tests.
func WithSleeper(fn animate.Sleeper) ServerOption {
	return func(s *Server) { s.sleeper = fn }
}

// NewServer wires the routes.
func NewServer(store *Store, log *logrus.Logger, opts ...ServerOption) *Server {
	s := &Server{
		store:      store,
		log:        log,
		pacing:     animate.DefaultPacing(),
		sleeper:    animate.Sleep,
		registry:   prometheus.NewRegistry(),
		sequencers: make(map[*animate.Sequencer]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	metrics.Register(s.registry)

	mux := http.NewServeMux()

	// Serve static files
	subFS, _ := fs.Sub(staticFS, "static")
	mux.Handle("GET /", http.FileServer(http.FS(subFS)))

	// API Endpoints
	mux.HandleFunc("GET /api/graph", s.handleGraph)
	mux.HandleFunc("POST /api/edges", s.handleAddEdge)
	mux.HandleFunc("POST /api/reset", s.handleReset)
	mux.HandleFunc("POST /api/search", s.handleSearch)
	mux.HandleFunc("GET /api/animate", s.handleAnimate)
	mux.HandleFunc("GET /api/help", s.handleHelp)
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	s.mux = mux
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.mux }

// StartServer listens on addr until ctx is cancelled, then shuts down
// gracefully.
func StartServer(ctx context.Context, addr string, s *Server) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.WithField("addr", addr).Info("web server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.cancelAnimations()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Snapshot())
}

type edgeRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
	Cost int    `json:"cost"`
}

func (s *Server) handleAddEdge(w http.ResponseWriter, r *http.Request) {
	var req edgeRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	e, err := model.NewEdge(req.From, req.To, req.Cost)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Please provide valid inputs: "+err.Error())
		return
	}
	s.store.AddEdge(e)
	metrics.GraphEdges.Set(float64(s.store.EdgeCount()))
	s.log.WithFields(logrus.Fields{"from": e.From, "to": e.To, "cost": e.Cost}).Debug("edge added")

	writeJSON(w, http.StatusOK, s.store.Snapshot())
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.cancelAnimations()
	s.store.Reset()
	metrics.GraphEdges.Set(0)
	s.log.Info("graph reset")

	writeJSON(w, http.StatusOK, s.store.Snapshot())
}

type searchRequest struct {
	Start     string `json:"start"`
	Goal      string `json:"goal"`
	Algorithm string `json:"algorithm"`
}

// resultView adds the display strings the page shows next to the canvas.
type resultView struct {
	model.SearchResult
	PathText  string   `json:"pathText"`
	StepCount int      `json:"stepCount"`
	CostText  string   `json:"costText"`
	EdgeKeys  []string `json:"edgeKeys"`
}

func newResultView(res model.SearchResult) resultView {
	keys := res.EdgeKeys()
	if keys == nil {
		keys = []string{}
	}
	return resultView{
		SearchResult: res,
		PathText:     res.PathText(),
		StepCount:    len(res.Steps),
		CostText:     res.CostText(),
		EdgeKeys:     keys,
	}
}

// runSearch parses a request and runs it against the store.
func (s *Server) runSearch(req searchRequest) (model.SearchResult, error) {
	algo, err := search.ParseAlgorithm(req.Algorithm)
	if err != nil {
		return model.SearchResult{}, err
	}
	start, goal := model.NormalizeNode(req.Start), model.NormalizeNode(req.Goal)
	if start == "" || goal == "" {
		return model.SearchResult{}, errors.New("start and goal are required")
	}

	res, err := s.store.Search(start, goal, algo)
	if err != nil {
		return model.SearchResult{}, err
	}
	metrics.ObserveSearch(res)
	s.log.WithFields(logrus.Fields{
		"algorithm": algo,
		"start":     start,
		"goal":      goal,
		"found":     res.Found(),
		"steps":     len(res.Steps),
	}).Info("search finished")
	return res, nil
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	res, err := s.runSearch(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, newResultView(res))
}

func (s *Server) handleHelp(w http.ResponseWriter, r *http.Request) {
	// Use the embedded help content
	text := strings.ReplaceAll(helpMD, "{{VERSION}}", model.Version)

	w.Header().Set("Content-Type", "text/markdown")
	w.Write([]byte(text))
}

func (s *Server) track(seq *animate.Sequencer) {
	s.mu.Lock()
	s.sequencers[seq] = struct{}{}
	s.mu.Unlock()
}

func (s *Server) untrack(seq *animate.Sequencer) {
	s.mu.Lock()
	delete(s.sequencers, seq)
	s.mu.Unlock()
}

// cancelAnimations stops every streamed replay.
func (s *Server) cancelAnimations() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for seq := range s.sequencers {
		seq.Cancel()
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
