package render

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/goccy/go-graphviz"

	"github.com/mvidal/strata/pkg/layers"
)

// ToDOT converts a layering to Graphviz DOT format. Every layer becomes a
// rank=same group so Graphviz preserves the computed ordering, and the
// recorded relations are drawn as edges (duplicates collapsed). Output is
// deterministic: buckets come ordered from the engine and edges are sorted.
func ToDOT(l layers.Layering, rels []layers.Relation) string {
	var buf bytes.Buffer
	buf.WriteString("digraph layers {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.8;\n")
	buf.WriteString("\n")

	for _, bucket := range l.Layers {
		buf.WriteString("  { rank=same;")
		for _, entity := range bucket {
			fmt.Fprintf(&buf, " %q;", entity)
		}
		buf.WriteString(" }\n")
	}

	buf.WriteString("\n")
	for _, r := range dedupe(rels) {
		fmt.Fprintf(&buf, "  %q -> %q;\n", r.Left, r.Right)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func dedupe(rels []layers.Relation) []layers.Relation {
	seen := make(map[layers.Relation]struct{}, len(rels))
	out := make([]layers.Relation, 0, len(rels))
	for _, r := range rels {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Left != out[j].Left {
			return out[i].Left < out[j].Left
		}
		return out[i].Right < out[j].Right
	})
	return out
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.PNG)
}

func renderFormat(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
