// Package viz renders group structures as diagrams.
//
// # Overview
//
// This package produces directed graph visualizations using Graphviz:
// Schreier trees (the breadth-first spanning tree of a fundamental orbit,
// with edges labelled by the discovering generator) and block quotients
// (the induced action of the generators on a block system).
//
// # Usage
//
// Convert a structure to DOT format, then render:
//
//	dot := viz.SchreierTreeDOT(g, 0, viz.Options{})
//	svg, err := viz.RenderSVG(dot)
//
// For PNG output:
//
//	png, err := viz.RenderPNG(dot, 2.0)  // 2x scale
//
// # DOT Format
//
// The generated DOT can be rendered directly via [RenderSVG], saved and
// processed with external Graphviz tools, or customized before rendering.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process
// rendering.
package viz
