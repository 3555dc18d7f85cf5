// Package color defines the three node colors and colorings of a tree.
//
// A coloring is legal when no edge joins a [Black] node to a [White] node;
// [Gray] nodes are compatible with everything. [Coloring] stores one color
// per node together with running counts, and [Validate] checks legality
// against a tree.
package color

import (
	"fmt"
	"strings"
)

// Color is one of Black, White or Gray.
type Color uint8

const (
	Black Color = iota
	White
	Gray
)

// Count is the number of colors.
const Count = 3

// Colors lists every color in index order.
var Colors = [Count]Color{Black, White, Gray}

var names = [Count]string{"black", "white", "gray"}

// String returns the lowercase color name.
func (c Color) String() string {
	if int(c) < Count {
		return names[c]
	}
	return fmt.Sprintf("color(%d)", uint8(c))
}

// Valid reports whether c is one of the three colors.
func (c Color) Valid() bool { return int(c) < Count }

// Compatible reports whether two adjacent nodes may carry colors a and b.
func Compatible(a, b Color) bool {
	return !(a == Black && b == White) && !(a == White && b == Black)
}

// ParseColor converts a color name (case-insensitive, "grey" accepted) to a Color.
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "black", "b":
		return Black, nil
	case "white", "w":
		return White, nil
	case "gray", "grey", "g":
		return Gray, nil
	}
	return 0, fmt.Errorf("unknown color %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid color %d", uint8(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
