package clipboard

import (
	"errors"
	"strings"
	"testing"

	"github.com/example/vectoredit/internal/geom"
	"github.com/example/vectoredit/internal/shape"
)

func TestShapesTextRoundTrip(t *testing.T) {
	src := []*shape.Shape{
		shape.NewLine(geom.Pt(1, 2), geom.Pt(30, 40), shape.DefaultStyle()),
		shape.NewRegularPolygon(geom.Pt(50, 50), 4, 20, shape.DefaultStyle()),
	}
	text, err := EncodeShapes(src)
	if err != nil {
		t.Fatalf("EncodeShapes: %v", err)
	}
	if !strings.Contains(text, "type: polygon") {
		t.Fatalf("unexpected clipboard text:\n%s", text)
	}

	got, err := DecodeShapes(text)
	if err != nil {
		t.Fatalf("DecodeShapes: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d shapes", len(got))
	}
	for i, s := range got {
		if s.ID == src[i].ID {
			t.Errorf("shape %d kept its id", i)
		}
		if s.Kind != src[i].Kind {
			t.Errorf("shape %d kind %v, want %v", i, s.Kind, src[i].Kind)
		}
	}
	if got[0].End != geom.Pt(30, 40) {
		t.Errorf("line end %v", got[0].End)
	}
	if got[1].Sides != 4 {
		t.Errorf("sides %d", got[1].Sides)
	}
}

func TestDecodeShapesRejectsOtherText(t *testing.T) {
	if _, err := DecodeShapes("hello: world\n"); !errors.Is(err, ErrNoShapes) {
		t.Fatalf("expected ErrNoShapes, got %v", err)
	}
	if _, err := DecodeShapes("shapes: [{type: star}]"); !errors.Is(err, shape.ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}
