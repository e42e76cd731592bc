package group

import (
	"math/rand/v2"

	"github.com/permkit/permkit/pkg/perm"
)

// schreierSims runs the deterministic Schreier-Sims algorithm: absorb the
// input generators, then close the chain by stripping Schreier generators
// level by level, from the deepest level upward, until a full pass yields
// no new strong generator. Schreier generators are produced lazily through
// a per-level queue to bound memory.
//
// Throughout the loop, every level below the current one satisfies the
// chain invariant. Adjoining a residue at a deeper level jumps back down
// to it; climbing past level 0 certifies the whole chain.
func (b *BSGS) schreierSims(gens *perm.Set) {
	for _, g := range gens.Perms() {
		b.strongGens.Insert(g)
		b.ensureBaseCovers(g)
	}
	for level := range b.base {
		b.rebuildTransversals(level)
	}

	queues := make([]*schreierGeneratorQueue, len(b.base))

	level := len(b.base) - 1
	for level >= 0 {
		if queues[level] == nil {
			queues[level] = newSchreierGeneratorQueue()
		}
		queue := queues[level]
		queue.Update(b.stabilizerGens(level), b.transversals[level])

		adjoined := false
		for {
			sg, ok := queue.Next()
			if !ok {
				break
			}

			residue, failed := b.stripFrom(sg, level+1)
			if failed == len(b.base) && residue.IsIdentity() {
				continue
			}

			if failed == len(b.base) {
				// the residue fixes every base point but is not the
				// identity, so the base must grow
				b.extendBase(residue.SmallestMoved())
				queues = append(queues, nil)
			}

			// The residue fixes base[0..failed-1], so it joins the
			// stabilizer generator sets of every level up to failed.
			// All of them must resync or a later queue.Update would
			// pair the grown generator set with a transversal built
			// from the shorter one.
			b.strongGens.Insert(residue)
			for l := 0; l <= failed && l < len(b.base); l++ {
				b.rebuildTransversals(l)
				if queues[l] != nil {
					queues[l].Invalidate()
				}
			}
			level = failed
			adjoined = true
			break
		}

		if !adjoined {
			level--
		}
	}
}

// randomSchreierSims builds the chain by stripping pseudo-random group
// elements drawn by product replacement, accepting once RandomFailures
// consecutive strips produce no new strong generator. The resulting chain
// is complete with probability at least 1 - 2^-RandomFailures.
func (b *BSGS) randomSchreierSims(gens *perm.Set) {
	for _, g := range gens.Perms() {
		b.strongGens.Insert(g)
		b.ensureBaseCovers(g)
	}
	for level := range b.base {
		b.rebuildTransversals(level)
	}

	seed := b.opts.seed()
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	randomizer := newProductReplacement(gens.Perms(), rng)

	fails := 0
	for fails < b.opts.randomFailures() {
		residue, failed := b.Strip(randomizer.Next())
		if failed == len(b.base) && residue.IsIdentity() {
			fails++
			continue
		}

		fails = 0
		if failed == len(b.base) {
			b.extendBase(residue.SmallestMoved())
		}
		b.strongGens.Insert(residue)
		for level := range b.base {
			b.rebuildTransversals(level)
		}
	}
}

// productReplacement is a Markov chain over a pool of group elements:
// each step multiplies one pool entry by another and returns an
// accumulator mixed with the changed entry. After a short burn-in the
// returned elements are distributed close to uniformly over the generated
// group.
type productReplacement struct {
	pool        []perm.Perm
	accumulator perm.Perm
	rng         *rand.Rand
}

const (
	prMinPoolSize = 10
	prBurnIn      = 50
)

func newProductReplacement(gens []perm.Perm, rng *rand.Rand) *productReplacement {
	degree := gens[0].Degree()

	pool := make([]perm.Perm, 0, max(prMinPoolSize, len(gens)))
	for len(pool) < prMinPoolSize || len(pool) < len(gens) {
		pool = append(pool, gens[len(pool)%len(gens)])
	}

	pr := &productReplacement{
		pool:        pool,
		accumulator: perm.Identity(degree),
		rng:         rng,
	}
	for i := 0; i < prBurnIn; i++ {
		pr.step()
	}
	return pr
}

func (pr *productReplacement) step() {
	i := pr.rng.IntN(len(pr.pool))
	j := pr.rng.IntN(len(pr.pool) - 1)
	if j >= i {
		j++
	}

	if pr.rng.IntN(2) == 0 {
		pr.pool[i] = pr.pool[i].Mul(pr.pool[j])
	} else {
		pr.pool[i] = pr.pool[i].Mul(pr.pool[j].Inverse())
	}
	pr.accumulator = pr.accumulator.Mul(pr.pool[i])
}

// Next returns the next pseudo-random element of the generated group.
func (pr *productReplacement) Next() perm.Perm {
	pr.step()
	return pr.accumulator
}
