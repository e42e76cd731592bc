// Package gapfmt reads and writes permutations and generator lists in the
// GAP computer algebra system's notation.
//
// GAP numbers points from 1 and writes permutations as products of
// disjoint cycles, e.g. (1,2,3)(4,5). A generator list is wrapped in a
// Group(...) expression: Group((1,2),(1,2,3)). Internally everything is
// 0-based; the shift happens only at this boundary.
//
// Formatting is canonical: no whitespace, cycles ordered by their
// smallest point, each cycle starting at its smallest point. Parsing a
// canonically formatted string and formatting the result reproduces the
// input byte for byte.
package gapfmt

import (
	"strconv"
	"strings"

	"github.com/permkit/permkit/pkg/errors"
	"github.com/permkit/permkit/pkg/group"
	"github.com/permkit/permkit/pkg/perm"
)

// ParsePerm parses 1-based disjoint cycle notation, e.g. "(1,2,3)(4,5)"
// or "()" for the identity, into a permutation of the given degree.
func ParsePerm(s string, degree int) (perm.Perm, error) {
	if err := errors.ValidateDegree(degree); err != nil {
		return nil, err
	}
	cycles, _, err := parseCycles(s)
	if err != nil {
		return nil, err
	}
	p, err := perm.FromCycles(degree, cycles)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidCycle, err, "parsing %q", s)
	}
	return p, nil
}

// FormatPerm renders a permutation in 1-based disjoint cycle notation.
// The identity formats as "()".
func FormatPerm(p perm.Perm) string {
	cycles := p.Cycles()
	if len(cycles) == 0 {
		return "()"
	}

	var b strings.Builder
	for _, cycle := range cycles {
		b.WriteByte('(')
		for i, pt := range cycle {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Itoa(pt + 1))
		}
		b.WriteByte(')')
	}
	return b.String()
}

// ParseGenerators parses a Group(...) expression into a generator set.
// The degree is the largest point mentioned by any generator, or 1 when
// only identities appear.
func ParseGenerators(s string) (int, *perm.Set, error) {
	if err := errors.ValidateGroupExpr(s); err != nil {
		return 0, nil, err
	}

	body, err := groupBody(s)
	if err != nil {
		return 0, nil, err
	}

	parts, err := splitGenerators(body)
	if err != nil {
		return 0, nil, err
	}

	degree := 1
	allCycles := make([][][]int, 0, len(parts))
	for _, part := range parts {
		cycles, max, err := parseCycles(part)
		if err != nil {
			return 0, nil, err
		}
		if max > degree {
			degree = max
		}
		allCycles = append(allCycles, cycles)
	}

	gens := perm.NewSet(degree)
	for i, cycles := range allCycles {
		p, err := perm.FromCycles(degree, cycles)
		if err != nil {
			return 0, nil, errors.Wrap(errors.ErrCodeInvalidCycle, err, "parsing generator %q", parts[i])
		}
		gens.Insert(p)
	}
	return degree, gens, nil
}

// ParseGroup parses a Group(...) expression and constructs the group it
// generates.
func ParseGroup(s string) (*group.Group, error) {
	degree, gens, err := ParseGenerators(s)
	if err != nil {
		return nil, err
	}
	g, err := group.New(degree, gens)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "constructing group from %q", s)
	}
	return g, nil
}

// ParseGroupWithDegree parses a Group(...) expression on a fixed number
// of points. The generators are extended to act on {1..degree}; an
// expression mentioning a larger point is an error.
func ParseGroupWithDegree(degree int, s string) (*group.Group, error) {
	if err := errors.ValidateDegree(degree); err != nil {
		return nil, err
	}

	parsed, gens, err := ParseGenerators(s)
	if err != nil {
		return nil, err
	}
	if parsed > degree {
		return nil, errors.New(errors.ErrCodeInvalidDegree,
			"expression %q moves point %d beyond degree %d", s, parsed, degree)
	}

	extended := perm.NewSet(degree)
	for _, p := range gens.Perms() {
		extended.Insert(p.Extended(degree))
	}

	g, err := group.New(degree, extended)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "constructing group from %q", s)
	}
	return g, nil
}

// FormatGenerators renders a generator set as a Group(...) expression.
// An empty or identity-only set renders as "Group(())".
func FormatGenerators(gens *perm.Set) string {
	var b strings.Builder
	b.WriteString("Group(")

	wrote := false
	for _, p := range gens.WithoutIdentity().Perms() {
		if wrote {
			b.WriteByte(',')
		}
		b.WriteString(FormatPerm(p))
		wrote = true
	}
	if !wrote {
		b.WriteString("()")
	}

	b.WriteByte(')')
	return b.String()
}

// FormatGroup renders a group's generators as a Group(...) expression.
func FormatGroup(g *group.Group) string {
	return FormatGenerators(g.Generators())
}

// groupBody strips the Group( ... ) wrapper and returns the inside.
func groupBody(s string) (string, error) {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "Group(") || !strings.HasSuffix(trimmed, ")") {
		return "", errors.New(errors.ErrCodeInvalidGroupExpr, "expression must have the form Group(...), got %q", s)
	}
	return trimmed[len("Group(") : len(trimmed)-1], nil
}

// splitGenerators splits the body of a Group expression at the commas
// separating generators, ignoring commas nested inside cycles.
func splitGenerators(body string) ([]string, error) {
	var parts []string
	depth, start := 0, 0

	for i, r := range body {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, body[start:i])
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, errors.New(errors.ErrCodeInvalidGroupExpr, "unbalanced parentheses in generator list")
	}
	parts = append(parts, body[start:])

	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
		if parts[i] == "" {
			return nil, errors.New(errors.ErrCodeInvalidGroupExpr, "empty generator in generator list")
		}
	}
	return parts, nil
}

// parseCycles parses 1-based cycle notation into 0-based cycles. It also
// returns the smallest degree covering every mentioned point.
func parseCycles(s string) ([][]int, int, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil, 0, errors.New(errors.ErrCodeInvalidCycle, "empty permutation")
	}

	var cycles [][]int
	maxDegree := 1

	rest := trimmed
	for rest != "" {
		if rest[0] != '(' {
			return nil, 0, errors.New(errors.ErrCodeInvalidCycle, "expected '(' at %q", rest)
		}
		end := strings.IndexByte(rest, ')')
		if end < 0 {
			return nil, 0, errors.New(errors.ErrCodeInvalidCycle, "unterminated cycle in %q", s)
		}

		inner := strings.TrimSpace(rest[1:end])
		rest = strings.TrimSpace(rest[end+1:])
		if inner == "" {
			continue // () is the identity
		}

		var cycle []int
		for _, field := range strings.Split(inner, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				return nil, 0, errors.Wrap(errors.ErrCodeInvalidCycle, err, "bad point %q", field)
			}
			if n < 1 {
				return nil, 0, errors.New(errors.ErrCodeInvalidCycle, "points are numbered from 1, got %d", n)
			}
			if n > maxDegree {
				maxDegree = n
			}
			cycle = append(cycle, n-1)
		}
		cycles = append(cycles, cycle)
	}
	return cycles, maxDegree, nil
}
