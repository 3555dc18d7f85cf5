// Package dot renders colored trees as Graphviz diagrams.
//
// [ToDOT] produces DOT source with one filled box per node: black nodes are
// drawn black with white text, gray nodes grey, white nodes white.
// Uncolored nodes (when no coloring is given) keep a plain outline.
//
//	src := dot.ToDOT(t, c, dot.Options{})
//	svg, err := dot.RenderSVG(ctx, src)
//
// Rendering uses [github.com/goccy/go-graphviz], which embeds Graphviz as
// WebAssembly, so no system installation is needed for SVG or PNG output.
package dot
