package io

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	bwerrors "github.com/matzehuels/bwcolor/pkg/errors"
	"github.com/matzehuels/bwcolor/pkg/tree"
)

// Format identifies a tree file format.
type Format string

const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatParents Format = "txt"
)

// FormatFromPath returns the format implied by the extension of path.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".txt":
		return FormatParents, nil
	}
	return "", bwerrors.New(bwerrors.ErrCodeInvalidFormat, "cannot infer tree format from %q (want .json, .yaml, .yml or .txt)", path)
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatYAML, FormatParents:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", bwerrors.New(bwerrors.ErrCodeInvalidFormat, "unknown tree format %q", s)
}

// Read decodes a tree in the given format. Read does not close r.
func Read(r io.Reader, f Format) (*tree.Tree, error) {
	switch f {
	case FormatJSON:
		return ReadJSON(r)
	case FormatYAML:
		return ReadYAML(r)
	case FormatParents:
		return ReadParents(r)
	}
	return nil, bwerrors.New(bwerrors.ErrCodeInvalidFormat, "unknown tree format %q", f)
}

// ReadJSON decodes a JSON node/edge document.
func ReadJSON(r io.Reader) (*tree.Tree, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, bwerrors.Wrap(bwerrors.ErrCodeInvalidFormat, err, "decode JSON tree")
	}
	return doc.tree()
}

// ReadYAML decodes a YAML node/edge document.
func ReadYAML(r io.Reader) (*tree.Tree, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, bwerrors.Wrap(bwerrors.ErrCodeInvalidFormat, err, "decode YAML tree")
	}
	return doc.tree()
}

// ReadParents decodes a whitespace-separated parent list. Lines starting
// with '#' are comments. Node labels are the input indices.
func ReadParents(r io.Reader) (*tree.Tree, error) {
	var parents []int
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		for _, field := range strings.Fields(line) {
			p, err := strconv.Atoi(field)
			if err != nil {
				return nil, bwerrors.Wrap(bwerrors.ErrCodeInvalidFormat, err, "parent list entry %d", len(parents))
			}
			parents = append(parents, p)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, bwerrors.Wrap(bwerrors.ErrCodeInvalidFormat, err, "read parent list")
	}
	return tree.FromParents(parents, nil)
}

// ImportFile reads the tree at path, inferring the format from the
// extension.
func ImportFile(path string) (*tree.Tree, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, bwerrors.Wrap(bwerrors.ErrCodeFileNotFound, err, "tree file %s", path)
		}
		return nil, bwerrors.Wrap(bwerrors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return Read(f, format)
}

// tree converts the document into a tree. Children are ordered by their
// position in the node list.
func (doc document) tree() (*tree.Tree, error) {
	if len(doc.Nodes) == 0 {
		return nil, bwerrors.New(bwerrors.ErrCodeDegenerateTree, "tree has no nodes")
	}

	index := make(map[string]int, len(doc.Nodes))
	labels := make([]string, len(doc.Nodes))
	for i, n := range doc.Nodes {
		if _, dup := index[n.ID]; dup {
			return nil, bwerrors.New(bwerrors.ErrCodeInvalidTree, "duplicate node id %q", n.ID)
		}
		index[n.ID] = i
		labels[i] = n.ID
	}

	parents := make([]int, len(doc.Nodes))
	for i := range parents {
		parents[i] = -1
	}
	for _, e := range doc.Edges {
		from, ok := index[e.From]
		if !ok {
			return nil, bwerrors.New(bwerrors.ErrCodeInvalidTree, "edge %s->%s: unknown node %q", e.From, e.To, e.From)
		}
		to, ok := index[e.To]
		if !ok {
			return nil, bwerrors.New(bwerrors.ErrCodeInvalidTree, "edge %s->%s: unknown node %q", e.From, e.To, e.To)
		}
		if parents[to] != -1 {
			return nil, bwerrors.New(bwerrors.ErrCodeInvalidTree, "node %q has two parents", e.To)
		}
		parents[to] = from
	}
	return tree.FromParents(parents, labels)
}
