package category

import (
	"testing"
)

func TestCategorySets(t *testing.T) {
	if len(Colors()) != 5 {
		t.Fatalf("expected 5 colors, got %d", len(Colors()))
	}
	for _, c := range Colors() {
		if !IsPlaceable(c) {
			t.Errorf("expected color %s to be placeable", c)
		}
		if !IsCardKind(c) {
			t.Errorf("expected color %s to be a card kind", c)
		}
	}
	if IsPlaceable(Event) {
		t.Error("events are never placed")
	}
	if !IsPlaceable(Artifact) {
		t.Error("artifacts are placed")
	}
	if IsColor(Artifact) {
		t.Error("artifact is not a color")
	}
	if IsPlaceable(Discard) || IsPlaceable(Hand) {
		t.Error("discard and hand are not placed areas")
	}
}

func TestColorsReturnsCopy(t *testing.T) {
	list := Colors()
	list[0] = Event
	if Colors()[0] != Purple {
		t.Fatalf("mutating the returned slice changed the declaration order")
	}
}

func TestParse(t *testing.T) {
	c, err := Parse(" red ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c != Red {
		t.Fatalf("expected RED, got %s", c)
	}

	if _, err := Parse("octarine"); err == nil {
		t.Fatal("expected error for unknown category")
	}
}

func TestFilter(t *testing.T) {
	f := AnyColor().Without(Yellow)
	if f.Allows(Yellow) {
		t.Error("expected yellow to be excluded")
	}
	if !f.Allows(Red) {
		t.Error("expected red to be allowed")
	}
	if f.Allows(Artifact) {
		t.Error("color filter must not allow artifacts")
	}
	if got := len(f.Members()); got != 4 {
		t.Errorf("expected 4 members, got %d", got)
	}
	if !f.Equal(NewFilter(Purple, Green, Red, Blue)) {
		t.Errorf("expected %s to equal the explicit set", f)
	}
	if !NewFilter().IsEmpty() {
		t.Error("expected empty filter")
	}
}
