package graphio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"searchviz/internal/model"
)

// ErrSyntax marks a line that is not "FROM TO COST".
var ErrSyntax = errors.New("malformed edge line")

// SyntaxError locates a bad line in a graph file.
type SyntaxError struct {
	Line int
	Text string
	Err  error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// EdgeEvent is one parsed edge with its source line.
type EdgeEvent struct {
	Line int
	Edge model.Edge
}

// Parser reads the text graph format: one edge per line as
//
//	FROM TO COST
//	FROM -> TO COST
//	FROM,TO,COST
//
// Blank lines and everything after '#' are ignored.
type Parser struct {
	sep *regexp.Regexp
}

// NewParser creates a Parser.
func NewParser() *Parser {
	return &Parser{
		sep: regexp.MustCompile(`\s*(?:->|,)\s*|\s+`),
	}
}

// Parse reads the stream and returns a channel of edges.
// It runs asynchronously and stops at the first bad line, which is
// reported on the error channel.
func (p *Parser) Parse(r io.Reader) (chan EdgeEvent, chan error) {
	events := make(chan EdgeEvent)
	errs := make(chan error, 1) // Buffered to avoid blocking if receiver stops

	go func() {
		defer close(events)
		defer close(errs)

		scanner := bufio.NewScanner(r)
		lineNum := 0
		for scanner.Scan() {
			lineNum++
			raw := scanner.Text()
			line := raw
			if idx := strings.IndexByte(line, '#'); idx != -1 {
				line = line[:idx]
			}
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}

			edge, err := p.ParseLine(line)
			if err != nil {
				errs <- &SyntaxError{Line: lineNum, Text: raw, Err: err}
				return
			}
			events <- EdgeEvent{Line: lineNum, Edge: edge}
		}
		if err := scanner.Err(); err != nil {
			errs <- err
		}
	}()

	return events, errs
}

// ParseLine parses a single edge definition, e.g. "a b 3" or "A -> B 3".
// This is also the format of the TUI edge form.
func (p *Parser) ParseLine(line string) (model.Edge, error) {
	fields := p.sep.Split(strings.TrimSpace(line), -1)
	if len(fields) != 3 {
		return model.Edge{}, fmt.Errorf("%w: want FROM TO COST, got %d fields", ErrSyntax, len(fields))
	}
	cost, err := strconv.Atoi(fields[2])
	if err != nil {
		return model.Edge{}, fmt.Errorf("%w: cost %q is not an integer", model.ErrInvalidEdge, fields[2])
	}
	return model.NewEdge(fields[0], fields[1], cost)
}

// ReadText collects every edge of a text graph.
func ReadText(r io.Reader) ([]model.Edge, error) {
	events, errs := NewParser().Parse(r)

	var edges []model.Edge
	for ev := range events {
		edges = append(edges, ev.Edge)
	}
	if err := <-errs; err != nil {
		return nil, err
	}
	return edges, nil
}

// WriteText writes edges one per line in the form ReadText accepts.
func WriteText(w io.Writer, edges []model.Edge) error {
	bw := bufio.NewWriter(w)
	for _, e := range edges {
		if _, err := fmt.Fprintf(bw, "%s -> %s %d\n", e.From, e.To, e.Cost); err != nil {
			return err
		}
	}
	return bw.Flush()
}
