package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/permkit/permkit/pkg/group"
)

// blocksCommand creates the blocks command: enumerate the non-trivial
// block systems of a group.
func (c *CLI) blocksCommand() *cobra.Command {
	var opts buildOpts

	cmd := &cobra.Command{
		Use:   "blocks EXPR",
		Short: "Enumerate the non-trivial block systems of a group",
		Long: `Enumerate the non-trivial invariant partitions of the group generated
by a GAP generator expression. A partition is a block system when every
generator maps each class onto some class.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBlocks(cmd, args[0], &opts)
		},
	}

	opts.addBuildFlags(cmd)
	return cmd
}

func (c *CLI) runBlocks(cmd *cobra.Command, expr string, opts *buildOpts) error {
	ctx := cmd.Context()
	store := newCache(opts.noCache)
	defer store.Close()

	g, cached, err := loadGroup(ctx, store, expr, opts)
	if err != nil {
		return err
	}
	printStats(g.Degree(), g.BSGS().Levels(), g.BSGS().StrongGenerators().Len(), cached)

	prog := newProgress(c.Logger)
	systems := group.NonTrivialBlockSystems(g)
	prog.done(fmt.Sprintf("Found %d non-trivial block system(s)", len(systems)))

	if len(systems) == 0 {
		printInfo("Only trivial block systems exist")
		return nil
	}
	for i, bs := range systems {
		printKeyValue(fmt.Sprintf("system %d", i+1), bs.String())
	}
	return nil
}
