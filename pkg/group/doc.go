// Package group computes with finite permutation groups given by generating
// sets. Groups are represented by a base and strong generating set (BSGS)
// built with the Schreier-Sims algorithm, which supports exact order
// computation, membership testing, uniform random sampling and lazy
// enumeration of all elements without ever storing the group explicitly.
//
// # Construction
//
// A group is built from a degree and a generator set:
//
//	gens := perm.SetOf(3, transposition)
//	g, err := group.New(3, gens)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(g.Order()) // 2
//
// Construction strategy and transversal storage are configurable through
// [Options]: deterministic or randomized Schreier-Sims, and explicit,
// Schreier-tree or depth-bounded shallow-tree transversal tables. All
// combinations produce equivalent groups and differ only in time/memory
// trade-offs.
//
// # Structure
//
// On top of the BSGS the package implements group-invariant partitions
// ([BlockSystem]), disjoint subgroup decomposition ([Group.DisjointDecomposition])
// and wreath product decomposition ([Group.WreathDecomposition]).
//
// Points are 0-based. Degree mismatches between a group and permutation
// arguments are contract violations and are not defensively checked on hot
// paths; validate inputs at the parsing boundary instead.
package group
