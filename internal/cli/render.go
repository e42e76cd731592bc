package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/permkit/permkit/pkg/group"
	"github.com/permkit/permkit/pkg/viz"
)

const (
	diagramTree   = "tree"   // Schreier tree of one chain level
	diagramBlocks = "blocks" // quotient action on a block system
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	buildOpts
	output  string // output file path; derived from the diagram type when empty
	diagram string // diagram type: "tree" or "blocks"
	format  string // output format: "svg", "png" or "dot"
	level   int    // chain level for the tree diagram
	system  int    // block system index for the blocks diagram
}

// renderCommand creates the render command for drawing group structure
// diagrams via Graphviz.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render EXPR",
		Short: "Render a Schreier tree or block quotient diagram",
		Long: `Draw structure diagrams of the group generated by a GAP generator
expression: the Schreier tree of a stabilizer chain level, or the induced
action on one of the group's block systems.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateDiagram(opts.diagram); err != nil {
				return err
			}
			if err := validateRenderFormat(opts.format); err != nil {
				return err
			}
			return c.runRender(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <diagram>.<format>)")
	cmd.Flags().StringVarP(&opts.diagram, "diagram", "d", diagramTree, "diagram type: tree, blocks")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "svg", "output format: svg, png, dot")
	cmd.Flags().IntVar(&opts.level, "level", 0, "chain level for the tree diagram")
	cmd.Flags().IntVar(&opts.system, "system", 0, "block system index for the blocks diagram")
	opts.addBuildFlags(cmd)
	return cmd
}

// validDiagrams is the set of supported diagram types.
var validDiagrams = map[string]bool{diagramTree: true, diagramBlocks: true}

func validateDiagram(d string) error {
	if !validDiagrams[d] {
		return fmt.Errorf("invalid diagram: %s (must be 'tree' or 'blocks')", d)
	}
	return nil
}

// validRenderFormats is the set of supported output formats.
var validRenderFormats = map[string]bool{"svg": true, "png": true, "dot": true}

func validateRenderFormat(f string) error {
	if !validRenderFormats[f] {
		return fmt.Errorf("invalid format: %s (must be 'svg', 'png', or 'dot')", f)
	}
	return nil
}

func (c *CLI) runRender(cmd *cobra.Command, expr string, opts *renderOpts) error {
	ctx := cmd.Context()
	store := newCache(opts.noCache)
	defer store.Close()

	g, cached, err := loadGroup(ctx, store, expr, &opts.buildOpts)
	if err != nil {
		return err
	}
	printStats(g.Degree(), g.BSGS().Levels(), g.BSGS().StrongGenerators().Len(), cached)

	dot, err := c.buildDiagram(g, opts)
	if err != nil {
		return err
	}

	data, err := renderDiagram(dot, opts.format)
	if err != nil {
		return err
	}
	c.Logger.Debugf("Generated %s: %d bytes", opts.format, len(data))

	path := opts.output
	if path == "" {
		path = opts.diagram + "." + opts.format
	}
	if filepath.Ext(path) == "" {
		path += "." + opts.format
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}

	printSuccess("Rendered %s diagram", opts.diagram)
	printFile(path)
	return nil
}

func (c *CLI) buildDiagram(g *group.Group, opts *renderOpts) (string, error) {
	vizOpts := viz.Options{OneBased: true}

	switch opts.diagram {
	case diagramBlocks:
		systems := group.NonTrivialBlockSystems(g)
		if len(systems) == 0 {
			return "", fmt.Errorf("group has no non-trivial block system")
		}
		if opts.system < 0 || opts.system >= len(systems) {
			return "", fmt.Errorf("block system index %d out of range, group has %d", opts.system, len(systems))
		}
		return viz.BlockQuotientDOT(g, systems[opts.system], vizOpts), nil
	default:
		return viz.SchreierTreeDOT(g, opts.level, vizOpts)
	}
}

func renderDiagram(dot, format string) ([]byte, error) {
	switch format {
	case "dot":
		return []byte(dot), nil
	case "png":
		return viz.RenderPNG(dot)
	case "svg":
		return viz.RenderSVG(dot)
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}
