package layout

import "testing"

func TestClampKeepsEveryRectInsideGrid(t *testing.T) {
	values := []int{-100, -33, -1, 0, 1, 15, 16, 31, 32, 33, 100}
	for _, x := range values {
		for _, y := range values {
			for _, w := range values {
				for _, h := range values {
					r := Clamp(Rect{X: x, Y: y, W: w, H: h})
					if r.X < 0 || r.X >= Grid || r.Y < 0 || r.Y >= Grid {
						t.Fatalf("expected origin inside grid, got %v", r)
					}
					if r.W <= 0 || r.H <= 0 {
						t.Fatalf("expected positive size, got %v", r)
					}
					if r.X+r.W > Grid || r.Y+r.H > Grid {
						t.Fatalf("expected rect within grid, got %v", r)
					}
				}
			}
		}
	}
}

func TestClampLeavesValidRectUntouched(t *testing.T) {
	r := Rect{X: 4, Y: 5, W: 10, H: 12}
	if got := Clamp(r); got != r {
		t.Fatalf("expected %v, got %v", r, got)
	}
	if !r.Valid() {
		t.Fatalf("expected %v to be valid", r)
	}
	if (Rect{X: 30, Y: 0, W: 5, H: 1}).Valid() {
		t.Fatalf("expected overflowing rect to be invalid")
	}
}

func TestClampTrimsOverflow(t *testing.T) {
	got := Clamp(Rect{X: 40, Y: -2, W: 10, H: 0})
	want := Rect{X: 31, Y: 0, W: 1, H: 1}
	if got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSplitAlongLongerAxis(t *testing.T) {
	a, b, ok := Split(Rect{X: 0, Y: 0, W: 7, H: 4})
	if !ok || a != (Rect{X: 0, Y: 0, W: 3, H: 4}) || b != (Rect{X: 3, Y: 0, W: 4, H: 4}) {
		t.Fatalf("unexpected horizontal split %v %v", a, b)
	}
	a, b, ok = Split(Rect{X: 2, Y: 2, W: 4, H: 4})
	if !ok || a != (Rect{X: 2, Y: 2, W: 4, H: 2}) || b != (Rect{X: 2, Y: 4, W: 4, H: 2}) {
		t.Fatalf("unexpected vertical split %v %v", a, b)
	}
}

func TestSplitRefusesSingleCell(t *testing.T) {
	if _, _, ok := Split(Rect{X: 5, Y: 5, W: 1, H: 1}); ok {
		t.Fatalf("expected a 1x1 rect to be unsplittable")
	}
	a, b, ok := Split(Rect{X: 5, Y: 5, W: 1, H: 2})
	if !ok || !a.Valid() || !b.Valid() {
		t.Fatalf("expected a valid split of a 1x2 rect, got %v %v", a, b)
	}
}

func TestItemRoundTrip(t *testing.T) {
	it := ItemFor(3, Rect{X: 1, Y: 2, W: 3, H: 4})
	if it.Key != "3" {
		t.Fatalf("expected key 3, got %q", it.Key)
	}
	idx, err := it.Index()
	if err != nil || idx != 3 {
		t.Fatalf("expected index 3, got %d (%v)", idx, err)
	}
	if _, err := (Item{Key: "x"}).Index(); err == nil {
		t.Fatalf("expected error for non-numeric key")
	}
	if _, err := (Item{Key: "-1"}).Index(); err == nil {
		t.Fatalf("expected error for negative key")
	}
	if got := (Item{X: -1, Y: 0, W: 50, H: 2}).Rect(); got != (Rect{X: 0, Y: 0, W: 32, H: 2}) {
		t.Fatalf("expected clamped rect, got %v", got)
	}
}
