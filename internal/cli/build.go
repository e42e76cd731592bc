package cli

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/permkit/permkit/pkg/cache"
	"github.com/permkit/permkit/pkg/errors"
	"github.com/permkit/permkit/pkg/gapfmt"
	"github.com/permkit/permkit/pkg/group"
	"github.com/permkit/permkit/pkg/observability"
	"github.com/permkit/permkit/pkg/perm"
)

// buildOpts holds the chain construction flags shared by every command
// that takes a group expression.
type buildOpts struct {
	construction string // "deterministic" or "randomized"
	storage      string // "explicit", "tree" or "shallow-tree"
	reduce       bool   // reduce strong generators after construction
	seed         uint64 // seed for the randomized construction
	noCache      bool   // bypass the chain cache
}

// addBuildFlags registers the shared construction flags on a command.
func (o *buildOpts) addBuildFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&o.construction, "construction", "deterministic", "chain construction: deterministic, randomized")
	f.StringVar(&o.storage, "storage", "explicit", "transversal storage: explicit, tree, shallow-tree")
	f.BoolVar(&o.reduce, "reduce", false, "reduce strong generators after construction")
	f.Uint64Var(&o.seed, "seed", 0, "seed for the randomized construction")
	f.BoolVar(&o.noCache, "no-cache", false, "bypass the chain cache")
}

// groupOptions translates the flag values into construction options.
func (o *buildOpts) groupOptions() (*group.Options, error) {
	construction, err := group.ParseConstruction(o.construction)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "--construction")
	}
	storage, err := group.ParseStorage(o.storage)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "--storage")
	}
	return &group.Options{
		Construction:     construction,
		Storage:          storage,
		ReduceGenerators: o.reduce,
		Seed:             o.seed,
	}, nil
}

// chainPayload is the cached form of a constructed chain: enough to
// rebuild the transversals without re-running Schreier-Sims.
type chainPayload struct {
	Degree int     `json:"degree"`
	Base   []int   `json:"base"`
	Strong [][]int `json:"strong"`
}

// loadGroup parses a GAP generator expression and builds (or restores
// from cache) its stabilizer chain. The second return reports a cache
// hit.
func loadGroup(ctx context.Context, c cache.Cache, expr string, opts *buildOpts) (*group.Group, bool, error) {
	degree, gens, err := gapfmt.ParseGenerators(expr)
	if err != nil {
		return nil, false, err
	}

	groupOpts, err := opts.groupOptions()
	if err != nil {
		return nil, false, err
	}

	keyer := cache.NewDefaultKeyer()
	key := keyer.GroupKey(gapfmt.FormatGenerators(gens), cache.GroupKeyOpts{
		Construction: groupOpts.Construction.String(),
		Storage:      groupOpts.Storage.String(),
		Seed:         groupOpts.Seed,
	})

	if data, hit, err := c.Get(ctx, key); err == nil && hit {
		if g, ok := restoreChain(data, groupOpts); ok {
			observability.Cache().OnCacheHit(ctx, "chain")
			return g, true, nil
		}
		_ = c.Delete(ctx, key)
	}
	observability.Cache().OnCacheMiss(ctx, "chain")

	g, err := group.NewWithOptions(degree, gens, groupOpts)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(snapshotChain(g)); err == nil {
		if c.Set(ctx, key, data, chainCacheTTL) == nil {
			observability.Cache().OnCacheSet(ctx, "chain", len(data))
		}
	}
	return g, false, nil
}

func snapshotChain(g *group.Group) chainPayload {
	b := g.BSGS()
	payload := chainPayload{
		Degree: b.Degree(),
		Base:   b.Base(),
	}
	for _, s := range b.StrongGenerators().Perms() {
		payload.Strong = append(payload.Strong, s)
	}
	return payload
}

func restoreChain(data []byte, opts *group.Options) (*group.Group, bool) {
	var payload chainPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, false
	}
	if payload.Degree < 1 {
		return nil, false
	}

	strong := perm.NewSet(payload.Degree)
	for _, images := range payload.Strong {
		p, err := perm.New(images)
		if err != nil || p.Degree() != payload.Degree {
			return nil, false
		}
		strong.Insert(p)
	}

	b := group.ReconstructBSGS(payload.Degree, payload.Base, strong, opts)
	return group.FromBSGS(b), true
}
