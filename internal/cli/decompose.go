package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/permkit/permkit/pkg/gapfmt"
	"github.com/permkit/permkit/pkg/group"
)

const (
	kindDisjoint = "disjoint"
	kindWreath   = "wreath"
)

// decomposeOpts holds the command-line flags for the decompose command.
type decomposeOpts struct {
	buildOpts
	kind           string // decomposition kind: "disjoint" or "wreath"
	complete       bool   // run the complete disjoint search
	optimizeOrbits bool   // pre-merge dependent orbits in the complete search
}

// decomposeCommand creates the decompose command for disjoint and wreath
// product decompositions.
func (c *CLI) decomposeCommand() *cobra.Command {
	var opts decomposeOpts

	cmd := &cobra.Command{
		Use:   "decompose EXPR",
		Short: "Decompose a group into a disjoint or wreath product",
		Long: `Search for product structure in the group generated by a GAP generator
expression. The disjoint decomposition splits the group into factors with
disjoint support; the wreath decomposition looks for a wreath product
structure over a block system.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.kind != kindDisjoint && opts.kind != kindWreath {
				return fmt.Errorf("invalid kind: %s (must be %q or %q)", opts.kind, kindDisjoint, kindWreath)
			}
			return c.runDecompose(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.kind, "kind", "k", kindDisjoint, "decomposition kind: disjoint, wreath")
	cmd.Flags().BoolVar(&opts.complete, "complete", false, "run the complete disjoint search (slower, finds finer splits)")
	cmd.Flags().BoolVar(&opts.optimizeOrbits, "optimize-orbits", false, "pre-merge dependent orbits in the complete search")
	opts.addBuildFlags(cmd)
	return cmd
}

func (c *CLI) runDecompose(cmd *cobra.Command, expr string, opts *decomposeOpts) error {
	ctx := cmd.Context()
	store := newCache(opts.noCache)
	defer store.Close()

	g, cached, err := loadGroup(ctx, store, expr, &opts.buildOpts)
	if err != nil {
		return err
	}
	printStats(g.Degree(), g.BSGS().Levels(), g.BSGS().StrongGenerators().Len(), cached)

	switch opts.kind {
	case kindWreath:
		return c.runWreath(ctx, g)
	default:
		return c.runDisjoint(ctx, g, opts)
	}
}

func (c *CLI) runDisjoint(ctx context.Context, g *group.Group, opts *decomposeOpts) error {
	spinner := newSpinnerWithContext(ctx, "Searching for disjoint factors...")
	spinner.Start()
	factors := g.DisjointDecomposition(opts.complete, opts.optimizeOrbits)
	spinner.Stop()
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(factors) == 1 {
		printInfo("Group does not split into disjoint factors")
		return nil
	}
	printSuccess("Split into %d factors", len(factors))
	for i, factor := range factors {
		printKeyValue(fmt.Sprintf("factor %d", i+1),
			fmt.Sprintf("%s, order %s", gapfmt.FormatGroup(factor), factor.Order()))
	}
	return nil
}

func (c *CLI) runWreath(ctx context.Context, g *group.Group) error {
	spinner := newSpinnerWithContext(ctx, "Searching for a wreath structure...")
	spinner.Start()
	w := g.WreathDecomposition()
	spinner.Stop()
	if err := ctx.Err(); err != nil {
		return err
	}

	switch w.Status {
	case group.WreathFound:
		printSuccess("Wreath structure over %s", w.Blocks)
		printKeyValue("block action", gapfmt.FormatGroup(w.Components[0]))
		for i, comp := range w.Components[1:] {
			printKeyValue(fmt.Sprintf("block %d", i+1), gapfmt.FormatGroup(comp))
		}
	case group.WreathNotDecomposable:
		printInfo("No non-trivial block system exists; no wreath structure is possible")
	default:
		printWarning("No wreath structure found; the search is not exhaustive, so one may still exist")
	}
	return nil
}
