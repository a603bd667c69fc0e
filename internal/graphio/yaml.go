package graphio

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"searchviz/internal/model"
)

// yamlEdge is one item of the "edges" list:
//
//	edges:
//	  - {from: A, to: B, cost: 1}
type yamlEdge struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
	Cost int    `yaml:"cost"`
}

// ReadYAML collects every edge of a YAML graph document.
func ReadYAML(r io.Reader) ([]model.Edge, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, &SyntaxError{Line: root.Line, Text: root.Value, Err: fmt.Errorf("%w: top level must be a mapping", ErrSyntax)}
	}

	var list *yaml.Node
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == "edges" {
			list = root.Content[i+1]
			break
		}
	}
	if list == nil {
		return nil, nil
	}
	if list.Kind != yaml.SequenceNode {
		return nil, &SyntaxError{Line: list.Line, Text: list.Value, Err: fmt.Errorf("%w: edges must be a list", ErrSyntax)}
	}

	edges := make([]model.Edge, 0, len(list.Content))
	for _, item := range list.Content {
		var ye yamlEdge
		if err := item.Decode(&ye); err != nil {
			return nil, &SyntaxError{Line: item.Line, Err: fmt.Errorf("%w: %v", ErrSyntax, err)}
		}
		e, err := model.NewEdge(ye.From, ye.To, ye.Cost)
		if err != nil {
			return nil, &SyntaxError{Line: item.Line, Text: fmt.Sprintf("%s %s %d", ye.From, ye.To, ye.Cost), Err: err}
		}
		edges = append(edges, e)
	}
	return edges, nil
}

// WriteYAML writes edges in the format ReadYAML accepts.
func WriteYAML(w io.Writer, edges []model.Edge) error {
	doc := struct {
		Edges []yamlEdge `yaml:"edges"`
	}{Edges: make([]yamlEdge, len(edges))}
	for i, e := range edges {
		doc.Edges[i] = yamlEdge{From: string(e.From), To: string(e.To), Cost: e.Cost}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
