package main

import (
	"strings"

	"github.com/pkg/errors"
)

// parseFormatString parses a column-major einsum format string into
// per-operand label sequences and the output label sequence.
//
// Example: "ba,dca,feb->ki" yields [['b','a'], ['d','c','a'], ['f','e','b']]
// and ['k','i']. An empty right-hand side denotes a full scalar
// reduction. Label uniqueness within an operand is not validated here;
// the contraction engine enforces einsum semantics.
func parseFormatString(s string) ([][]rune, []rune, error) {
	inputs, output, found := strings.Cut(s, "->")
	if !found {
		return nil, nil, errors.Errorf("format string %q must contain '->'", s)
	}

	parts := strings.Split(inputs, ",")
	inputIDs := make([][]rune, len(parts))
	for i, part := range parts {
		inputIDs[i] = []rune(part)
	}
	return inputIDs, []rune(output), nil
}
