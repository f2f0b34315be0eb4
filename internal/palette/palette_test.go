package palette

import (
	"image/color"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"Red", color.RGBA{255, 0, 0, 255}},
		{" gray ", color.RGBA{128, 128, 128, 255}},
		{"lightblue", color.RGBA{173, 216, 230, 255}},
		{"#10ff20", color.RGBA{16, 255, 32, 255}},
		{"#10FF2080", color.RGBA{16, 255, 32, 128}},
		{"none", None},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"", "#12", "#zzzzzz", "notacolor"} {
		if _, err := Parse(in); err == nil {
			t.Errorf("Parse(%q) succeeded", in)
		}
	}
}

func TestHexRoundTrip(t *testing.T) {
	for _, c := range []color.RGBA{{1, 2, 3, 255}, {200, 100, 50, 7}} {
		got, err := Parse(Hex(c))
		if err != nil {
			t.Fatal(err)
		}
		if got != c {
			t.Errorf("round trip %v -> %s -> %v", c, Hex(c), got)
		}
	}
	if Hex(color.RGBA{255, 0, 0, 255}) != "#FF0000" {
		t.Errorf("opaque colors use the short form")
	}
}

func TestEnsureAndName(t *testing.T) {
	before := Len()
	if idx := Ensure(color.RGBA{0, 0, 255, 255}, ""); idx != 4 {
		t.Fatalf("blue index %d", idx)
	}
	if Len() != before {
		t.Fatalf("existing color was appended")
	}
	c := color.RGBA{1, 2, 3, 255}
	idx := Ensure(c, "Custom")
	if At(idx) != c || Name(c) != "Custom" || Index(c) != idx {
		t.Fatalf("custom entry not registered")
	}
	if Name(None) != "none" {
		t.Errorf("Name(None) = %q", Name(None))
	}
}
