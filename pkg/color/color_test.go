package color

import (
	"encoding/json"
	"testing"

	bwerrors "github.com/matzehuels/bwcolor/pkg/errors"
	"github.com/matzehuels/bwcolor/pkg/tree"
)

func TestCompatible(t *testing.T) {
	tests := []struct {
		a, b Color
		want bool
	}{
		{Black, Black, true},
		{Black, White, false},
		{White, Black, false},
		{White, White, true},
		{Gray, Black, true},
		{White, Gray, true},
		{Gray, Gray, true},
	}

	for _, tt := range tests {
		if got := Compatible(tt.a, tt.b); got != tt.want {
			t.Errorf("Compatible(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"black", Black, false},
		{"WHITE", White, false},
		{" grey ", Gray, false},
		{"g", Gray, false},
		{"purple", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseColor(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestColorJSON(t *testing.T) {
	data, err := json.Marshal([]Color{Black, White, Gray})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if string(data) != `["black","white","gray"]` {
		t.Errorf("Marshal() = %s", data)
	}
	if _, err := json.Marshal(Color(7)); err == nil {
		t.Error("Marshal(invalid color) should fail")
	}
}

func TestColoringCounts(t *testing.T) {
	c := NewColoring(4)
	if c.Colored() != 0 {
		t.Fatalf("new coloring has %d colored nodes", c.Colored())
	}

	c.Set(0, Black)
	c.Set(1, White)
	c.Set(2, White)
	c.Set(2, Gray)

	if c.Black() != 1 || c.White() != 1 || c.Gray() != 1 {
		t.Errorf("counts = %d/%d/%d, want 1/1/1", c.Black(), c.White(), c.Gray())
	}
	if c.IsColored(3) {
		t.Error("node 3 should be uncolored")
	}
	if col, ok := c.Color(2); !ok || col != Gray {
		t.Errorf("Color(2) = %s, %v", col, ok)
	}
}

func TestColorsPanicsWhenIncomplete(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Colors() on incomplete coloring should panic")
		}
	}()
	NewColoring(2).Colors()
}

func TestValidate(t *testing.T) {
	// 0 -> 1 -> 2
	tr, _ := tree.Path(3)

	tests := []struct {
		name    string
		colors  []Color
		wantErr bool
	}{
		{"gray separates", []Color{Black, Gray, White}, false},
		{"all white", []Color{White, White, White}, false},
		{"black white edge", []Color{Black, White, Gray}, true},
		{"wrong size", []Color{Black, Gray}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tr, FromSlice(tt.colors))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !bwerrors.Is(err, bwerrors.ErrCodeInvalidInput) {
				t.Errorf("Validate() code = %s", bwerrors.GetCode(err))
			}
		})
	}

	partial := NewColoring(3)
	partial.Set(0, Gray)
	if err := Validate(tr, partial); err == nil {
		t.Error("Validate() should reject uncolored nodes")
	}
}

func TestByLabel(t *testing.T) {
	tr, _ := tree.FromParents([]int{-1, 0}, []string{"root", "leaf"})
	got := ByLabel(tr, FromSlice([]Color{Gray, White}))
	if got["root"] != Gray || got["leaf"] != White {
		t.Errorf("ByLabel() = %v", got)
	}
}
