package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// MaxDegree caps the degree of the groups the toolkit will construct.
// Image tables are allocated eagerly, so an absurd degree would otherwise
// exhaust memory before any algorithm runs.
const MaxDegree = 1 << 20

// ValidateDegree validates a permutation degree supplied by a user.
func ValidateDegree(degree int) error {
	if degree < 1 {
		return New(ErrCodeInvalidDegree, "degree must be at least 1, got %d", degree)
	}
	if degree > MaxDegree {
		return New(ErrCodeInvalidDegree, "degree too large (max %d), got %d", MaxDegree, degree)
	}
	return nil
}

// ValidateMapping validates a partial mapping table: every defined image
// must lie in 0..degree-1 and no image may repeat. Entries of -1 mark
// undefined points.
func ValidateMapping(degree int, mapping []int) error {
	if len(mapping) > degree {
		return New(ErrCodeInvalidMapping, "mapping has %d entries for degree %d", len(mapping), degree)
	}

	seen := make(map[int]bool, len(mapping))
	for pt, image := range mapping {
		if image == -1 {
			continue
		}
		if image < 0 || image >= degree {
			return New(ErrCodeInvalidMapping, "image %d of point %d out of range for degree %d", image, pt, degree)
		}
		if seen[image] {
			return New(ErrCodeInvalidMapping, "image %d repeats, mapping is not injective", image)
		}
		seen[image] = true
	}
	return nil
}

// groupExprRegex matches the characters permitted in a generator
// expression before it reaches the parser proper.
var groupExprRegex = regexp.MustCompile(`^[A-Za-z0-9(),\s]+$`)

// ValidateGroupExpr performs a cheap syntactic screen of a group
// expression: character set, balanced parentheses and a sane length.
// Structural validation is the parser's job.
func ValidateGroupExpr(expr string) error {
	if expr == "" {
		return New(ErrCodeInvalidGroupExpr, "group expression cannot be empty")
	}

	const maxExprLength = 1 << 16
	if len(expr) > maxExprLength {
		return New(ErrCodeInvalidGroupExpr, "group expression too long (max %d characters)", maxExprLength)
	}

	if !groupExprRegex.MatchString(expr) {
		return New(ErrCodeInvalidGroupExpr, "group expression contains invalid characters")
	}

	depth := 0
	for _, r := range expr {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		}
		if depth < 0 {
			return New(ErrCodeInvalidGroupExpr, "unbalanced parentheses in group expression")
		}
	}
	if depth != 0 {
		return New(ErrCodeInvalidGroupExpr, "unbalanced parentheses in group expression")
	}
	return nil
}

// ValidatePath validates an output file path for safety.
// It prevents path traversal and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	// Check for path traversal
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	// No backslashes (potential Windows path injection)
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}
