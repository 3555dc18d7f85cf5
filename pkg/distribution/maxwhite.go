package distribution

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Invalid marks a black count that no legal coloring realizes.
const Invalid = -1

// MaxWhite is the table b -> maximum number of white nodes over all legal
// colorings of an n-node tree with exactly b black nodes, for b in [0, n].
//
// MaxWhite is an immutable value.
type MaxWhite struct {
	values []int
}

// NewMaxWhite wraps a table of n+1 entries. The slice is copied.
func NewMaxWhite(values []int) MaxWhite {
	return MaxWhite{values: slices.Clone(values)}
}

// Size returns the number of tree nodes n.
func (m MaxWhite) Size() int { return len(m.values) - 1 }

// At returns the maximum white count for b black nodes, or [Invalid] if b
// is outside [0, n].
func (m MaxWhite) At(b int) int {
	if b < 0 || b >= len(m.values) {
		return Invalid
	}
	return m.values[b]
}

// Slice returns a copy of the table.
func (m MaxWhite) Slice() []int { return slices.Clone(m.values) }

// Equal reports whether both tables hold the same values.
func (m MaxWhite) Equal(other MaxWhite) bool { return slices.Equal(m.values, other.values) }

// String formats the table as "[w0 w1 ...]".
func (m MaxWhite) String() string { return fmt.Sprint(m.values) }

type maxWhiteJSON struct {
	Size     int   `json:"size"`
	MaxWhite []int `json:"max_white"`
}

// MarshalJSON encodes the table as {"size": n, "max_white": [...]}.
func (m MaxWhite) MarshalJSON() ([]byte, error) {
	return json.Marshal(maxWhiteJSON{Size: m.Size(), MaxWhite: m.values})
}

// UnmarshalJSON decodes the form produced by MarshalJSON.
func (m *MaxWhite) UnmarshalJSON(data []byte) error {
	var raw maxWhiteJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw.MaxWhite) != raw.Size+1 {
		return fmt.Errorf("max_white has %d entries, want %d", len(raw.MaxWhite), raw.Size+1)
	}
	m.values = raw.MaxWhite
	return nil
}
