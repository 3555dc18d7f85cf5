package errors

import (
	"strings"
	"unicode"
)

// MaxLabelLength bounds node labels read from user-supplied trees.
const MaxLabelLength = 256

// ValidateLabel validates a node label taken from an input file or request.
//
// Labels end up in DOT sources and JSON responses, so the rules are
// conservative:
//   - No empty labels
//   - No control characters
//   - No double quotes or backslashes (DOT string delimiters)
//   - Maximum length of 256 characters
func ValidateLabel(label string) error {
	if label == "" {
		return New(ErrCodeInvalidTree, "node label cannot be empty")
	}

	if len(label) > MaxLabelLength {
		return New(ErrCodeInvalidTree, "node label too long (max %d characters)", MaxLabelLength)
	}

	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidTree, "node label %q contains control characters", label)
		}
	}

	if strings.ContainsAny(label, "\"\\") {
		return New(ErrCodeInvalidTree, "node label %q contains quotes or backslashes", label)
	}

	return nil
}

// ValidateCounts checks that a (black, white) request is well formed for a
// tree of n nodes: both counts non-negative and their sum at most n.
// It says nothing about whether a legal coloring with these counts exists.
func ValidateCounts(n, black, white int) error {
	if n <= 0 {
		return New(ErrCodeDegenerateTree, "tree has no nodes")
	}
	if black < 0 {
		return New(ErrCodeInfeasibleRequest, "black count must be non-negative, got %d", black)
	}
	if white < 0 {
		return New(ErrCodeInfeasibleRequest, "white count must be non-negative, got %d", white)
	}
	if black+white > n {
		return New(ErrCodeInfeasibleRequest, "black + white = %d exceeds tree size %d", black+white, n)
	}
	return nil
}

// ValidateTreeSize rejects trees larger than limit. A non-positive limit
// disables the check.
func ValidateTreeSize(n, limit int) error {
	if n <= 0 {
		return New(ErrCodeDegenerateTree, "tree has no nodes")
	}
	if limit > 0 && n > limit {
		return New(ErrCodeInvalidInput, "tree has %d nodes, limit is %d", n, limit)
	}
	return nil
}
