package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/bwcolor/pkg/color"
	bwerrors "github.com/matzehuels/bwcolor/pkg/errors"
	"github.com/matzehuels/bwcolor/pkg/tree"
)

type document struct {
	Nodes []node `json:"nodes" yaml:"nodes"`
	Edges []edge `json:"edges" yaml:"edges"`
}

type node struct {
	ID    string `json:"id" yaml:"id"`
	Color string `json:"color,omitempty" yaml:"color,omitempty"`
}

type edge struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// newDocument lists nodes in level order. c may be nil or partial.
func newDocument(t *tree.Tree, c *color.Coloring) document {
	doc := document{
		Nodes: make([]node, 0, t.Len()),
		Edges: make([]edge, 0, t.Len()-1),
	}
	for _, id := range t.LevelOrder() {
		n := node{ID: t.Label(id)}
		if c != nil {
			if col, ok := c.Color(id); ok {
				n.Color = col.String()
			}
		}
		doc.Nodes = append(doc.Nodes, n)
	}
	for _, e := range t.Edges() {
		doc.Edges = append(doc.Edges, edge{From: t.Label(e.Parent), To: t.Label(e.Child)})
	}
	return doc
}

// WriteJSON encodes t, and the colors of c if c is non-nil, as indented
// JSON. The output can be read back with [ReadJSON].
func WriteJSON(w io.Writer, t *tree.Tree, c *color.Coloring) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(newDocument(t, c)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// MarshalJSON returns the compact JSON encoding of t.
func MarshalJSON(t *tree.Tree) ([]byte, error) {
	return json.Marshal(newDocument(t, nil))
}

// WriteYAML encodes t, and the colors of c if c is non-nil, as YAML.
func WriteYAML(w io.Writer, t *tree.Tree, c *color.Coloring) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(newDocument(t, c)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return enc.Close()
}

// WriteParents writes the parent list of t on one line.
func WriteParents(w io.Writer, t *tree.Tree) error {
	parents := t.Parents()
	fields := make([]string, len(parents))
	for i, p := range parents {
		fields[i] = strconv.Itoa(p)
	}
	_, err := fmt.Fprintln(w, strings.Join(fields, " "))
	return err
}

// Write encodes t in format f. The parent list format has no room for
// colors, so a non-nil coloring is rejected for it.
func Write(w io.Writer, f Format, t *tree.Tree, c *color.Coloring) error {
	if f == FormatParents && c != nil {
		return errParentsColoring
	}
	switch f {
	case FormatJSON:
		return WriteJSON(w, t, c)
	case FormatYAML:
		return WriteYAML(w, t, c)
	case FormatParents:
		return WriteParents(w, t)
	}
	return bwerrors.New(bwerrors.ErrCodeInvalidFormat, "unknown tree format %q", f)
}

var errParentsColoring = bwerrors.New(bwerrors.ErrCodeInvalidFormat,
	"the parent list format cannot store colors (use .json or .yaml)")

// CheckColoringPath reports whether a coloring can be exported to path.
func CheckColoringPath(path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if format == FormatParents {
		return errParentsColoring
	}
	return nil
}

// ExportFile writes t to path in the format implied by its extension.
// The file is not created when the format cannot hold c.
func ExportFile(path string, t *tree.Tree, c *color.Coloring) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if format == FormatParents && c != nil {
		return errParentsColoring
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(f, format, t, c); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
