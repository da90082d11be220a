// Package render turns a layer classification into visual artifacts.
//
// The package produces Graphviz DOT text where every layer becomes a
// same-rank row and every ingested relation becomes an edge, SVG and PNG
// renderings of that DOT via goccy/go-graphviz, and a plain text table
// for terminal output.
//
// Typical usage:
//
//	dot := render.ToDOT(layering, set.Relations)
//	svg, err := render.RenderSVG(dot)
package render
