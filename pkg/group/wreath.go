package group

import (
	"time"

	"github.com/permkit/permkit/pkg/observability"
	"github.com/permkit/permkit/pkg/perm"
)

// WreathStatus classifies the outcome of a wreath decomposition attempt.
// The search is not a decision procedure: failing to verify a candidate
// proves nothing, so the negative outcomes are kept apart.
type WreathStatus int

const (
	// WreathFound means a verified decomposition was produced.
	WreathFound WreathStatus = iota
	// WreathNotDecomposable means no non-trivial block system exists, so
	// no wreath structure is possible.
	WreathNotDecomposable
	// WreathUnknown means candidates existed but none could be verified.
	WreathUnknown
)

func (s WreathStatus) String() string {
	switch s {
	case WreathFound:
		return "found"
	case WreathNotDecomposable:
		return "not decomposable"
	default:
		return "unknown"
	}
}

// Wreath is the result of a wreath decomposition attempt. When Status is
// WreathFound, Blocks holds the block system the decomposition is built
// on and Components holds, in order, the lifted block action followed by
// the lifted per-block kernel actions. All components have the degree of
// the decomposed group and generate it jointly.
type Wreath struct {
	Status     WreathStatus
	Blocks     *BlockSystem
	Components []*Group
}

// WreathDecomposition searches for a wreath product structure over the
// non-trivial block systems of the group. Only block systems with blocks
// of uniform size can carry one; every candidate that does is verified by
// reconstruction before being returned.
func (g *Group) WreathDecomposition() *Wreath {
	start := time.Now()
	observability.Decomposition().OnStart("wreath", g.Degree())

	w := g.wreathSearch()

	observability.Decomposition().OnComplete("wreath", g.Degree(), len(w.Components), time.Since(start))
	return w
}

func (g *Group) wreathSearch() *Wreath {
	systems := NonTrivialBlockSystems(g)
	if len(systems) == 0 {
		return &Wreath{Status: WreathNotDecomposable}
	}

	for _, bs := range systems {
		if !uniformBlockSize(bs) {
			continue
		}
		if w := g.wreathOver(bs); w != nil {
			return w
		}
	}
	return &Wreath{Status: WreathUnknown}
}

func uniformBlockSize(bs *BlockSystem) bool {
	size := len(bs.Block(0))
	for _, block := range bs.Blocks() {
		if len(block) != size {
			return false
		}
	}
	return true
}

// wreathOver attempts to decompose the group over one block system,
// returning nil when the candidate does not verify.
func (g *Group) wreathOver(bs *BlockSystem) *Wreath {
	gens := g.Generators().Perms()

	blockAction, err := bs.BlockPermuter(gens)
	if err != nil {
		return nil
	}
	// the kernel transversal below enumerates the block action element by
	// element, so bail out on astronomically large actions
	if !blockAction.Order().IsInt64() {
		return nil
	}

	kernelGens := g.kernelGenerators(bs, blockAction)

	components := make([]*Group, 0, bs.Size()+1)
	lifted := perm.NewSet(g.Degree())

	top := perm.NewSet(g.Degree())
	for _, k := range blockAction.Generators().Perms() {
		lift := liftBlockPerm(k, bs)
		top.Insert(lift)
		lifted.Insert(lift)
	}
	topGroup, err := New(g.Degree(), top)
	if err != nil {
		return nil
	}
	components = append(components, topGroup)

	for i := 0; i < bs.Size(); i++ {
		local := perm.NewSet(g.Degree())
		for _, kg := range kernelGens.Perms() {
			restricted := kg.Restricted(bs.Block(i))
			local.Insert(restricted)
			lifted.Insert(restricted)
		}
		bottom, err := New(g.Degree(), local)
		if err != nil {
			return nil
		}
		components = append(components, bottom)
	}

	// reconstruction check: the components must generate exactly g
	for _, p := range lifted.Perms() {
		if !g.Contains(p) {
			return nil
		}
	}
	reconstructed, err := New(g.Degree(), lifted)
	if err != nil || reconstructed.Order().Cmp(g.Order()) != 0 {
		return nil
	}

	return &Wreath{Status: WreathFound, Blocks: bs, Components: components}
}

// kernelGenerators produces generators of the subgroup fixing every block
// setwise, via Schreier's lemma over a transversal of the block action.
func (g *Group) kernelGenerators(bs *BlockSystem, blockAction *Group) *perm.Set {
	gens := g.Generators().Perms()

	index := make([]int, g.Degree())
	for i, block := range bs.Blocks() {
		for _, pt := range block {
			index[pt] = i
		}
	}
	actionOf := func(p perm.Perm) perm.Perm {
		images := make([]int, bs.Size())
		for i, block := range bs.Blocks() {
			images[i] = index[p.Image(block[0])]
		}
		return perm.Perm(images)
	}

	// one group element per block action element, found by breadth-first
	// closure from the identity
	type entry struct {
		action perm.Perm
		rep    perm.Perm
	}
	transversal := map[string]entry{}
	identity := entry{perm.Identity(bs.Size()), perm.Identity(g.Degree())}
	transversal[identity.action.String()] = identity

	queue := []entry{identity}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, gen := range gens {
			next := entry{cur.action.Mul(actionOf(gen)), cur.rep.Mul(gen)}
			if _, ok := transversal[next.action.String()]; !ok {
				transversal[next.action.String()] = next
				queue = append(queue, next)
			}
		}
	}

	kernel := perm.NewSet(g.Degree())
	for _, e := range transversal {
		for _, gen := range gens {
			target := e.action.Mul(actionOf(gen))
			rep := transversal[target.String()].rep
			schreier := e.rep.Mul(gen).Mul(rep.Inverse())
			if !schreier.IsIdentity() {
				kernel.Insert(schreier)
			}
		}
	}
	return kernel
}

// liftBlockPerm embeds a permutation of blocks back into the full degree:
// the j-th point of a block, counting in ascending order, maps to the
// j-th point of the image block.
func liftBlockPerm(k perm.Perm, bs *BlockSystem) perm.Perm {
	images := make([]int, bs.Degree())
	for i, block := range bs.Blocks() {
		target := bs.Block(k.Image(i))
		for j, pt := range block {
			images[pt] = target[j]
		}
	}
	return perm.Perm(images)
}
