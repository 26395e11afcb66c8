package theme

import "testing"

func TestLookupFallsBackToDefault(t *testing.T) {
	got, ok := Lookup("no-such-theme")
	if ok {
		t.Fatalf("expected unknown theme to report not found")
	}
	if got.Label != DefaultWidget.Label {
		t.Fatalf("expected default theme, got %q", got.Label)
	}
	if got, ok := Lookup(""); !ok || got.Label != "Default" {
		t.Fatalf("expected empty name to resolve to the default theme, got %q/%v", got.Label, ok)
	}
}

func TestWidgetsIncludeMonokai(t *testing.T) {
	found := false
	for _, w := range Widgets() {
		if w.Name == "monokai" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected monokai among widget themes")
	}
}

func TestWidgetsReturnsCopy(t *testing.T) {
	list := Widgets()
	list[0].Label = "changed"
	if Widgets()[0].Label == "changed" {
		t.Fatalf("expected Widgets to return a copy")
	}
}
