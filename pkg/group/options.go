package group

import "fmt"

// Construction selects the Schreier-Sims variant used to build a BSGS.
type Construction int

const (
	// ConstructionDeterministic closes the chain by exhaustively stripping
	// Schreier generators, certifying completeness.
	ConstructionDeterministic Construction = iota
	// ConstructionRandomized strips pseudo-random elements produced by
	// product replacement and accepts the chain after a fixed number of
	// consecutive failures to find a new strong generator. Completeness is
	// probabilistic; the false-negative probability shrinks exponentially
	// with RandomFailures.
	ConstructionRandomized
)

func (c Construction) String() string {
	if c == ConstructionRandomized {
		return "randomized"
	}
	return "deterministic"
}

// ParseConstruction maps the user-facing construction names to values.
func ParseConstruction(s string) (Construction, error) {
	switch s {
	case "deterministic", "":
		return ConstructionDeterministic, nil
	case "randomized":
		return ConstructionRandomized, nil
	}
	return 0, fmt.Errorf("unknown construction %q (must be 'deterministic' or 'randomized')", s)
}

// Storage selects how transversals are stored at each BSGS level.
type Storage int

const (
	// StorageExplicit keeps one full permutation per orbit point: O(1)
	// lookup, O(orbit * degree) memory.
	StorageExplicit Storage = iota
	// StorageSchreierTree keeps one generator index and parent pointer per
	// orbit point: O(1) memory per point, O(depth) lookup.
	StorageSchreierTree
	// StorageShallowSchreierTree is a Schreier tree whose depth is bounded
	// by attaching shortcut edges at the root whenever a path grows too
	// long, trading shortcut storage for bounded lookup cost.
	StorageShallowSchreierTree
)

func (s Storage) String() string {
	switch s {
	case StorageSchreierTree:
		return "tree"
	case StorageShallowSchreierTree:
		return "shallow-tree"
	default:
		return "explicit"
	}
}

// ParseStorage maps the user-facing storage names to values.
func ParseStorage(s string) (Storage, error) {
	switch s {
	case "explicit", "":
		return StorageExplicit, nil
	case "tree":
		return StorageSchreierTree, nil
	case "shallow-tree":
		return StorageShallowSchreierTree, nil
	}
	return 0, fmt.Errorf("unknown storage %q (must be 'explicit', 'tree' or 'shallow-tree')", s)
}

// Options configures BSGS construction. The zero value selects the
// deterministic construction with explicit transversals.
type Options struct {
	Construction Construction
	Storage      Storage

	// ReduceGenerators removes redundant strong generators after
	// construction.
	ReduceGenerators bool

	// RandomFailures is the consecutive-failure threshold of the randomized
	// construction. Zero selects DefaultRandomFailures.
	RandomFailures int

	// Seed seeds the randomized construction's product-replacement source,
	// making it reproducible. Zero selects a fixed default seed.
	Seed uint64
}

// DefaultRandomFailures bounds the error probability of the randomized
// construction at roughly 2^-32.
const DefaultRandomFailures = 32

func (o *Options) randomFailures() int {
	if o.RandomFailures <= 0 {
		return DefaultRandomFailures
	}
	return o.RandomFailures
}

func (o *Options) seed() uint64 {
	if o.Seed == 0 {
		return 0x5eed5eed5eed5eed
	}
	return o.Seed
}
