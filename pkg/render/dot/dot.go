package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/bwcolor/pkg/color"
	bwerrors "github.com/matzehuels/bwcolor/pkg/errors"
	"github.com/matzehuels/bwcolor/pkg/tree"
)

// Output formats.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPNG = "png"
)

// Formats lists the supported output formats.
var Formats = []string{FormatSVG, FormatPNG, FormatDOT}

// Options configures diagram generation.
type Options struct {
	// Detailed adds the node id and its color name under each label.
	Detailed bool
}

var fill = [color.Count]string{
	color.Black: `fillcolor=black, fontcolor=white`,
	color.White: `fillcolor=white, fontcolor=black`,
	color.Gray:  `fillcolor=grey, fontcolor=black`,
}

// ToDOT converts t, colored by c, to Graphviz DOT source. c may be nil or
// partial. Nodes are emitted in level order so that siblings keep their
// left-to-right order.
func ToDOT(t *tree.Tree, c *color.Coloring, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [arrowhead=none];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, id := range t.LevelOrder() {
		col, ok := color.Color(0), false
		if c != nil {
			col, ok = c.Color(id)
		}
		attrs := []string{fmt.Sprintf("label=%q", fmtLabel(t, id, col, ok, opts.Detailed))}
		if ok {
			attrs = append(attrs, fill[col])
		} else {
			attrs = append(attrs, `style="rounded,dashed"`)
		}
		fmt.Fprintf(&buf, "  n%d [%s];\n", id, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range t.Edges() {
		fmt.Fprintf(&buf, "  n%d -> n%d;\n", e.Parent, e.Child)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(t *tree.Tree, id tree.NodeID, col color.Color, colored, detailed bool) string {
	label := t.Label(id)
	if !detailed {
		return label
	}
	state := "uncolored"
	if colored {
		state = col.String()
	}
	return fmt.Sprintf("%s\nid: %d\n%s", label, id, state)
}

// Render produces the artifact for format from DOT source.
func Render(ctx context.Context, src, format string) ([]byte, error) {
	switch format {
	case FormatDOT:
		return []byte(src), nil
	case FormatSVG:
		return RenderSVG(ctx, src)
	case FormatPNG:
		return RenderPNG(ctx, src)
	default:
		return nil, bwerrors.New(bwerrors.ErrCodeInvalidFormat, "unknown render format %q (want svg, png or dot)", format)
	}
}

// RenderSVG renders DOT source to SVG with a normalized viewBox.
func RenderSVG(ctx context.Context, src string) ([]byte, error) {
	out, err := render(ctx, src, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders DOT source to PNG.
func RenderPNG(ctx context.Context, src string) ([]byte, error) {
	return render(ctx, src, graphviz.PNG)
}

func render(ctx context.Context, src string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(src))
	if err != nil {
		return nil, bwerrors.Wrap(bwerrors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with one whose
// viewBox starts at the origin, so the SVG scales cleanly when embedded.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
