package web

import (
	"context"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/sirupsen/logrus"

	"searchviz/internal/animate"
	"searchviz/internal/metrics"
	"searchviz/internal/model"
)

const (
	writeTimeout = 10 * time.Second
	wsReadLimit  = 4096
)

// wsRequest is a client message on /api/animate.
//
//	{"type":"search","start":"A","goal":"D","algorithm":"UCS"}
//	{"type":"cancel"}
type wsRequest struct {
	Type string `json:"type"`
	searchRequest
}

// wsMessage is a server message on /api/animate. Type is one of
// result, frame, done or error.
type wsMessage struct {
	Type       string       `json:"type"`
	Result     *resultView  `json:"result,omitempty"`
	DurationMs int64        `json:"durationMs,omitempty"` // playback time of the replay that follows a result
	Frame      *model.Frame `json:"frame,omitempty"`
	Run        string       `json:"run,omitempty"`
	State      string       `json:"state,omitempty"`
	Error      string       `json:"error,omitempty"`
}

// handleAnimate streams replays over a websocket. Each search request
// supersedes the replay still playing on the same connection.
func (s *Server) handleAnimate(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		s.log.WithError(err).Error("websocket accept failed")
		return
	}
	defer conn.CloseNow() //nolint:errcheck // best-effort close on teardown
	conn.SetReadLimit(wsReadLimit)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	seq := animate.NewSequencer(
		animate.WithPacing(s.pacing),
		animate.WithSleeper(s.sleeper),
		animate.WithLogger(s.log),
		animate.WithHooks(metrics.SequencerHooks()),
	)
	s.track(seq)
	defer s.untrack(seq)
	defer seq.Cancel()

	renderer := animate.RenderFunc(func(f model.Frame) {
		s.send(ctx, conn, wsMessage{Type: "frame", Frame: &f})
	})

	for {
		var req wsRequest
		if err := wsjson.Read(ctx, conn, &req); err != nil {
			if websocket.CloseStatus(err) != -1 {
				s.log.WithField("status", websocket.CloseStatus(err)).Debug("client disconnected")
			}
			return
		}

		switch req.Type {
		case "cancel":
			seq.Cancel()
		case "search":
			res, err := s.runSearch(req.searchRequest)
			if err != nil {
				s.send(ctx, conn, wsMessage{Type: "error", Error: err.Error()})
				continue
			}
			view := newResultView(res)
			// The page sizes its progress bar from the replay duration.
			seq.Cancel()
			s.send(ctx, conn, wsMessage{
				Type:       "result",
				Result:     &view,
				DurationMs: seq.Pacing().Duration(len(res.Steps), len(res.Path)).Milliseconds(),
			})

			run := seq.Start(ctx, res, renderer)
			go func() {
				state := run.Wait()
				s.send(ctx, conn, wsMessage{Type: "done", Run: run.ID.String(), State: state.String()})
			}()
		default:
			s.send(ctx, conn, wsMessage{Type: "error", Error: "unknown message type " + req.Type})
		}
	}
}

func (s *Server) send(ctx context.Context, conn *websocket.Conn, msg wsMessage) {
	wctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	if err := wsjson.Write(wctx, conn, msg); err != nil {
		s.log.WithFields(logrus.Fields{"type": msg.Type}).WithError(err).Debug("websocket write failed")
	}
}
