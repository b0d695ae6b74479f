package selector

import (
	"image"
	"testing"
)

func TestSelectorDragLifecycle(t *testing.T) {
	s := New()
	if s.State() != StateIdle {
		t.Fatalf("initial state %v, want idle", s.State())
	}
	s.Begin(image.Pt(100, 100))
	if !s.Selecting() {
		t.Fatal("expected selecting after Begin")
	}
	s.Move(image.Pt(300, 50))
	r, ok := s.Release(image.Pt(300, 50))
	if !ok {
		t.Fatal("expected a completed selection")
	}
	want := image.Rect(100, 50, 300, 100)
	if r != want {
		t.Fatalf("selection %v, want %v", r, want)
	}
	if r.Min.X != 100 || r.Min.Y != 50 || r.Dx() != 200 || r.Dy() != 50 {
		t.Fatalf("unexpected geometry %v", r)
	}
	if s.State() != StateCompleted {
		t.Fatalf("state %v, want completed", s.State())
	}
}

func TestSelectorDirectionIndependence(t *testing.T) {
	a := New()
	a.Begin(image.Pt(10, 80))
	ra, ok := a.Release(image.Pt(70, 20))
	if !ok {
		t.Fatal("forward drag did not complete")
	}
	b := New()
	b.Begin(image.Pt(70, 20))
	rb, ok := b.Release(image.Pt(10, 80))
	if !ok {
		t.Fatal("reverse drag did not complete")
	}
	if ra != rb {
		t.Fatalf("drags differ: %v vs %v", ra, rb)
	}
}

func TestSelectorZeroDragRevertsToIdle(t *testing.T) {
	s := New()
	s.Begin(image.Pt(50, 50))
	if _, ok := s.Release(image.Pt(50, 50)); ok {
		t.Fatal("zero-area drag emitted a rectangle")
	}
	if s.State() != StateIdle {
		t.Fatalf("state %v, want idle after degenerate drag", s.State())
	}
	if _, ok := s.Rect(); ok {
		t.Fatal("stale anchor survived the revert")
	}
	// The session is reusable after an accidental click.
	s.Begin(image.Pt(1, 1))
	if r, ok := s.Release(image.Pt(9, 6)); !ok || r != image.Rect(1, 1, 9, 6) {
		t.Fatalf("retry drag failed: %v %v", r, ok)
	}
}

func TestSelectorFlatDragRevertsToIdle(t *testing.T) {
	s := New()
	s.Begin(image.Pt(10, 10))
	if _, ok := s.Release(image.Pt(40, 10)); ok {
		t.Fatal("zero-height drag emitted a rectangle")
	}
	if s.State() != StateIdle {
		t.Fatalf("state %v, want idle", s.State())
	}
}

func TestSelectorCancelMidDrag(t *testing.T) {
	s := New()
	s.Begin(image.Pt(5, 5))
	s.Move(image.Pt(30, 30))
	s.Cancel()
	if s.State() != StateCancelled {
		t.Fatalf("state %v, want cancelled", s.State())
	}
	if _, ok := s.Rect(); ok {
		t.Fatal("cancelled session still reports a rectangle")
	}
	// Cancelled is terminal.
	s.Begin(image.Pt(1, 1))
	if s.State() != StateCancelled {
		t.Fatal("Begin revived a cancelled session")
	}
}

func TestSelectorCancelFromIdle(t *testing.T) {
	s := New()
	s.Cancel()
	if s.State() != StateCancelled {
		t.Fatalf("state %v, want cancelled", s.State())
	}
}

func TestSelectorCompletedIsTerminal(t *testing.T) {
	s := New()
	s.Begin(image.Pt(0, 0))
	if _, ok := s.Release(image.Pt(10, 10)); !ok {
		t.Fatal("drag did not complete")
	}
	s.Cancel()
	if s.State() != StateCompleted {
		t.Fatal("Cancel overrode a completed session")
	}
	s.Begin(image.Pt(50, 50))
	if r, _ := s.Rect(); r != image.Rect(0, 0, 10, 10) {
		t.Fatalf("Begin mutated a completed session: %v", r)
	}
}

func TestSelectorMoveBeforeBeginIgnored(t *testing.T) {
	s := New()
	s.Move(image.Pt(20, 20))
	if s.State() != StateIdle {
		t.Fatal("Move before Begin changed state")
	}
	if _, ok := s.Release(image.Pt(20, 20)); ok {
		t.Fatal("Release before Begin emitted a rectangle")
	}
}
