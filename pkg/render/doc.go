// Package render draws valve networks as Graphviz diagrams.
//
// [ToDOT] produces DOT source for a network, optionally highlighting a
// walk through it:
//
//	dot := render.ToDOT(n, render.Options{Highlight: best.Path})
//	svg, err := render.RenderSVG(ctx, dot)
//
// The DOT output is plain text and can also be fed to external Graphviz
// tools. SVG rendering runs in-process via [github.com/goccy/go-graphviz],
// so no system Graphviz install is needed.
package render
