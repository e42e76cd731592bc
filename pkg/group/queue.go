package group

import "github.com/permkit/permkit/pkg/perm"

// schreierGeneratorQueue lazily produces the Schreier generators of one
// BSGS level - the products u_beta * x * u_{x(beta)}^-1 over every orbit
// point beta and level generator x - one at a time instead of
// materializing all |orbit| * |generators| of them. Pairs lying on a
// transversal discovery edge yield trivial generators and are skipped.
//
// The queue caches a snapshot of the level's generators and transversal.
// When the chain underneath it mutates, the owner must call Invalidate;
// the next Update then resynchronizes the snapshot and restarts. Update on
// a still-valid queue is a no-op, preserving iteration state.
type schreierGeneratorQueue struct {
	gens  []perm.Perm
	orbit []int
	tr    Transversals

	genIdx  int
	betaIdx int
	uBeta   perm.Perm

	valid     bool
	exhausted bool
}

func newSchreierGeneratorQueue() *schreierGeneratorQueue {
	return &schreierGeneratorQueue{}
}

// Update resynchronizes the queue with the level's current generators and
// transversal if the queue was invalidated; otherwise it keeps the current
// position.
func (q *schreierGeneratorQueue) Update(gens []perm.Perm, tr Transversals) {
	if q.valid {
		return
	}

	q.gens = gens
	q.orbit = tr.Orbit()
	q.tr = tr
	q.genIdx = 0
	q.betaIdx = 0
	q.uBeta = tr.Transversal(q.orbit[0])
	q.valid = true
	q.exhausted = false
}

// Invalidate marks the cached chain snapshot stale.
func (q *schreierGeneratorQueue) Invalidate() { q.valid = false }

// Next returns the next non-trivial Schreier generator, or false when the
// level is exhausted.
func (q *schreierGeneratorQueue) Next() (perm.Perm, bool) {
	for !q.exhausted {
		if q.betaIdx >= len(q.orbit) {
			q.exhausted = true
			break
		}
		if q.genIdx >= len(q.gens) {
			q.genIdx = 0
			q.betaIdx++
			if q.betaIdx < len(q.orbit) {
				q.uBeta = q.tr.Transversal(q.orbit[q.betaIdx])
			}
			continue
		}

		beta := q.orbit[q.betaIdx]
		if q.tr.Incoming(beta, q.genIdx) {
			q.genIdx++
			continue
		}

		x := q.gens[q.genIdx]
		q.genIdx++
		sg := q.uBeta.Mul(x).Mul(q.tr.Transversal(x.Image(beta)).Inverse())
		if !sg.IsIdentity() {
			return sg, true
		}
	}
	return nil, false
}
