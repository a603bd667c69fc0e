// Package graphio reads graph files in a line-oriented text format or YAML.
package graphio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"searchviz/internal/model"
)

// Load reads edges from path. Files ending in .yaml or .yml are YAML,
// anything else is the text format.
func Load(path string) ([]model.Edge, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var edges []model.Edge
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		edges, err = ReadYAML(f)
	default:
		edges, err = ReadText(f)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return edges, nil
}

// Save writes edges to path. Files ending in .yaml or .yml are YAML,
// anything else is the text format.
func Save(path string, edges []model.Edge) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = WriteYAML(f, edges)
	default:
		err = WriteText(f, edges)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Build adds edges to a fresh graph.
func Build(edges []model.Edge) *model.Graph {
	g := model.NewGraph()
	for _, e := range edges {
		g.AddEdge(e)
	}
	return g
}
