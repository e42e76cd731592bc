package cli

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/permkit/permkit/pkg/errors"
	"github.com/permkit/permkit/pkg/gapfmt"
	"github.com/permkit/permkit/pkg/group"
	"github.com/permkit/permkit/pkg/perm"
)

// profileConfig is the TOML layout of a benchmark description.
type profileConfig struct {
	// Repetitions is the default repetition count for all tasks.
	Repetitions int           `toml:"repetitions"`
	Tasks       []profileTask `toml:"task"`
}

// profileTask describes one group to benchmark across construction and
// storage variants.
type profileTask struct {
	Name          string   `toml:"name"`
	Expr          string   `toml:"expr"`
	Constructions []string `toml:"constructions"`
	Storages      []string `toml:"storages"`
	Repetitions   int      `toml:"repetitions"`
}

// profileCommand creates the profile command: run timed chain
// constructions described by a TOML config.
func (c *CLI) profileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile CONFIG",
		Short: "Benchmark chain construction variants from a TOML config",
		Long: `Run timed stabilizer chain constructions for the groups described in a
TOML config, across the requested construction and storage variants.

Example config:

	repetitions = 3

	[[task]]
	name = "s6"
	expr = "Group((1,2),(1,2,3,4,5,6))"
	constructions = ["deterministic", "randomized"]
	storages = ["explicit", "tree", "shallow-tree"]`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runProfile(args[0])
		},
	}
	return cmd
}

func (c *CLI) runProfile(path string) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}

	var config profileConfig
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "loading %s", path)
	}
	if len(config.Tasks) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "config %s defines no tasks", path)
	}

	runID := uuid.NewString()
	c.Logger.Infof("Profile run %s: %d task(s)", runID, len(config.Tasks))

	for _, task := range config.Tasks {
		if err := c.profileTask(task, config.Repetitions); err != nil {
			return err
		}
	}

	printSuccess("Profile run %s complete", runID)
	return nil
}

func (c *CLI) profileTask(task profileTask, defaultReps int) error {
	degree, gens, err := gapfmt.ParseGenerators(task.Expr)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "task %q", task.Name)
	}

	reps := task.Repetitions
	if reps <= 0 {
		reps = defaultReps
	}
	if reps <= 0 {
		reps = 1
	}
	constructions := task.Constructions
	if len(constructions) == 0 {
		constructions = []string{"deterministic"}
	}
	storages := task.Storages
	if len(storages) == 0 {
		storages = []string{"explicit"}
	}

	fmt.Println(StyleTitle.Render(task.Name))
	for _, constructionName := range constructions {
		construction, err := group.ParseConstruction(constructionName)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "task %q", task.Name)
		}
		for _, storageName := range storages {
			storage, err := group.ParseStorage(storageName)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidConfig, err, "task %q", task.Name)
			}

			opts := &group.Options{Construction: construction, Storage: storage}
			elapsed, order, err := timeConstruction(degree, gens, opts, reps)
			if err != nil {
				return err
			}

			printKeyValue(
				fmt.Sprintf("%s/%s", construction, storage),
				fmt.Sprintf("order %s, mean %s over %d run(s)", order, elapsed, reps))
		}
	}
	printNewline()
	return nil
}

// timeConstruction builds the chain reps times and returns the mean
// duration and the computed order.
func timeConstruction(degree int, gens *perm.Set, opts *group.Options, reps int) (time.Duration, string, error) {
	var total time.Duration
	var order string

	for i := 0; i < reps; i++ {
		start := time.Now()
		g, err := group.NewWithOptions(degree, gens, opts)
		if err != nil {
			return 0, "", err
		}
		total += time.Since(start)
		order = g.Order().String()
	}
	return (total / time.Duration(reps)).Round(time.Microsecond), order, nil
}
