package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/permkit/permkit/pkg/gapfmt"
)

// orderCommand creates the order command: build a stabilizer chain and
// report the group's order and basic structure.
func (c *CLI) orderCommand() *cobra.Command {
	var opts buildOpts

	cmd := &cobra.Command{
		Use:   "order EXPR",
		Short: "Compute the exact order of a permutation group",
		Long: `Compute the exact order of the group generated by a GAP generator
expression, e.g. "Group((1,2),(1,2,3))". The order is the product of the
fundamental orbit sizes of the group's stabilizer chain.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runOrder(cmd, args[0], &opts)
		},
	}

	opts.addBuildFlags(cmd)
	return cmd
}

func (c *CLI) runOrder(cmd *cobra.Command, expr string, opts *buildOpts) error {
	ctx := cmd.Context()
	store := newCache(opts.noCache)
	defer store.Close()

	prog := newProgress(c.Logger)
	g, cached, err := loadGroup(ctx, store, expr, opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Built chain for %s", gapfmt.FormatGroup(g)))

	printKeyValue("order", g.Order().String())
	printKeyValue("degree", fmt.Sprintf("%d", g.Degree()))
	printKeyValue("base", fmt.Sprintf("%v", g.BSGS().Base()))
	printKeyValue("transitive", fmt.Sprintf("%t", g.IsTransitive()))
	switch {
	case g.IsSymmetric():
		printKeyValue("structure", fmt.Sprintf("symmetric group S%d", g.Degree()))
	case g.IsAlternating():
		printKeyValue("structure", fmt.Sprintf("alternating group A%d", g.Degree()))
	}
	printStats(g.Degree(), g.BSGS().Levels(), g.BSGS().StrongGenerators().Len(), cached)

	printNewline()
	printNextStep("Find block systems", fmt.Sprintf("permkit blocks %q", expr))
	return nil
}
