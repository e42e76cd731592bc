package viz

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/permkit/permkit/pkg/group"
	"github.com/permkit/permkit/pkg/perm"
)

// Options configures diagram generation.
type Options struct {
	// OneBased renders point labels 1-based, matching GAP notation.
	// When false, labels use the internal 0-based numbering.
	OneBased bool
}

func (o Options) point(pt int) int {
	if o.OneBased {
		return pt + 1
	}
	return pt
}

// SchreierTreeDOT renders the Schreier tree of one chain level as
// Graphviz DOT. Nodes are the points of the fundamental orbit; each
// non-root point hangs off the point that discovered it, with the edge
// labelled by the discovering generator's cycle form.
//
// The tree is recomputed by breadth-first closure over the strong
// generators fixing the earlier base points, so its shape matches the
// explicit transversal storage regardless of the chain's own strategy.
func SchreierTreeDOT(g *group.Group, level int, opts Options) (string, error) {
	b := g.BSGS()
	if level < 0 || level >= b.Levels() {
		return "", fmt.Errorf("level %d out of range, chain has %d levels", level, b.Levels())
	}

	gens := levelGens(b, level)
	root := b.Base()[level]

	type edge struct {
		from, to int
		gen      perm.Perm
	}
	var edges []edge

	seen := make(map[int]bool)
	seen[root] = true
	queue := []int{root}
	for len(queue) > 0 {
		pt := queue[0]
		queue = queue[1:]
		for _, gen := range gens {
			if dest := gen.Image(pt); !seen[dest] {
				seen[dest] = true
				edges = append(edges, edge{pt, dest, gen})
				queue = append(queue, dest)
			}
		}
	}

	var buf bytes.Buffer
	buf.WriteString("digraph schreier {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=18];\n")
	buf.WriteString("  edge [fontsize=12];\n")
	buf.WriteString("\n")

	fmt.Fprintf(&buf, "  %d [fillcolor=lightgrey];\n", opts.point(root))
	for _, e := range edges {
		fmt.Fprintf(&buf, "  %d -> %d [label=%q];\n",
			opts.point(e.from), opts.point(e.to), permLabel(e.gen, opts))
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

// BlockQuotientDOT renders a block system's quotient action as DOT. Each
// block is one node; an edge from block i to block j labelled with a
// generator means the generator maps block i onto block j.
func BlockQuotientDOT(g *group.Group, bs *group.BlockSystem, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph blocks {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=18, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=12];\n")
	buf.WriteString("\n")

	for i := 0; i < bs.Size(); i++ {
		fmt.Fprintf(&buf, "  b%d [label=%q];\n", i, blockLabel(bs.Block(i), opts))
	}

	buf.WriteString("\n")
	for _, gen := range g.Generators().WithoutIdentity().Perms() {
		label := permLabel(gen, opts)
		for i := 0; i < bs.Size(); i++ {
			if j := bs.IndexOf(gen.Image(bs.Block(i)[0])); j != i {
				fmt.Fprintf(&buf, "  b%d -> b%d [label=%q];\n", i, j, label)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// levelGens collects the strong generators fixing the base points before
// the given level.
func levelGens(b *group.BSGS, level int) []perm.Perm {
	base := b.Base()
	var gens []perm.Perm

outer:
	for _, g := range b.StrongGenerators().Perms() {
		for i := 0; i < level; i++ {
			if g.Image(base[i]) != base[i] {
				continue outer
			}
		}
		gens = append(gens, g)
	}
	return gens
}

func permLabel(p perm.Perm, opts Options) string {
	if !opts.OneBased {
		return p.String()
	}

	cycles := p.Cycles()
	if len(cycles) == 0 {
		return "()"
	}
	var b strings.Builder
	for _, cycle := range cycles {
		b.WriteByte('(')
		for i, pt := range cycle {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Itoa(pt + 1))
		}
		b.WriteByte(')')
	}
	return b.String()
}

func blockLabel(block []int, opts Options) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, pt := range block {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Itoa(opts.point(pt)))
	}
	b.WriteByte('}')
	return b.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return render(dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return render(dot, graphviz.PNG)
}

func render(dot string, format graphviz.Format) ([]byte, error) {
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
	if format == graphviz.SVG {
		return normalizeViewBox(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

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

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
