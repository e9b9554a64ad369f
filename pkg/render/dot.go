package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/valvepath/pkg/network"
	"github.com/matzehuels/valvepath/pkg/route"
	"github.com/matzehuels/valvepath/pkg/valve"
)

// Options configures DOT generation.
type Options struct {
	// Highlight is drawn with bold red edges and filled nodes. Usually the
	// best path returned by the scorer.
	Highlight route.Path

	// Rates labels every valve with its flow rate, not only useful ones.
	Rates bool
}

// ToDOT converts a valve network to Graphviz DOT source.
//
// Useful valves are labelled with their rate, the entry is drawn as a double
// circle and edges traversed by opts.Highlight are bold. Nodes and edges are
// emitted in network insertion order, so the output is stable for a given
// network.
func ToDOT(n *network.Network, opts Options) string {
	onPath := make(map[string]bool, len(opts.Highlight))
	walked := make(map[network.Edge]bool, len(opts.Highlight))
	for i, v := range opts.Highlight {
		onPath[v.ID] = true
		if i > 0 {
			walked[network.Edge{From: opts.Highlight[i-1].ID, To: v.ID}] = true
		}
	}

	var buf bytes.Buffer
	buf.WriteString("digraph valves {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=14];\n")
	buf.WriteString("\n")

	entry := n.Entry().ID
	for _, v := range n.Valves() {
		attrs := nodeAttrs(v, v.ID == entry, onPath[v.ID], opts.Rates)
		fmt.Fprintf(&buf, "  %q [%s];\n", v.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range n.Edges() {
		if walked[e] {
			fmt.Fprintf(&buf, "  %q -> %q [penwidth=3, color=red];\n", e.From, e.To)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(v valve.Valve, entry, highlighted, rates bool) []string {
	label := v.ID
	if v.Useful() || rates {
		label = fmt.Sprintf("%s\n%d", v.ID, v.Rate)
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if entry {
		attrs = append(attrs, "shape=doublecircle")
	}
	switch {
	case highlighted:
		attrs = append(attrs, "fillcolor=\"#ffd6d6\"")
	case v.Useful():
		attrs = append(attrs, "fillcolor=\"#e8f4ff\"")
	default:
		attrs = append(attrs, "fontcolor=grey40")
	}
	return attrs
}

// RenderSVG renders DOT source to SVG using the embedded Graphviz runtime.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
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
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the drawing scales with
// its container instead of using Graphviz's point-based size.
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

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
