package annotate

import (
	"image"
	"testing"
)

// orderTool records the order in which Render is called across a set of
// annotations sharing one log.
type orderTool struct {
	name    string
	drawing bool
	log     *[]string
}

func (o *orderTool) Kind() Kind         { return KindLine }
func (o *orderTool) Start(image.Point)  {}
func (o *orderTool) Update(image.Point) {}
func (o *orderTool) Finish(image.Point) {}
func (o *orderTool) Drawing() bool      { return o.drawing }
func (o *orderTool) Render(*image.RGBA) { *o.log = append(*o.log, o.name) }

func TestManagerRendersCommittedThenCurrent(t *testing.T) {
	var log []string
	m := NewManager()
	m.Add(&orderTool{name: "first", log: &log})
	m.Add(&orderTool{name: "second", log: &log})
	m.SetCurrent(&orderTool{name: "live", drawing: true, log: &log})

	m.RenderAll(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	want := []string{"first", "second", "live"}
	if len(log) != len(want) {
		t.Fatalf("rendered %d annotations, want %d", len(log), len(want))
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("render order %v, want %v", log, want)
		}
	}
}

func TestManagerSkipsFinishedCurrent(t *testing.T) {
	var log []string
	m := NewManager()
	m.Add(&orderTool{name: "done", log: &log})
	m.SetCurrent(&orderTool{name: "stale", log: &log})

	m.RenderAll(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	if len(log) != 1 || log[0] != "done" {
		t.Fatalf("rendered %v, want only the committed annotation", log)
	}
}

func TestManagerUndo(t *testing.T) {
	m := NewManager()
	if m.Undo() {
		t.Fatal("Undo on empty manager reported success")
	}
	m.Add(&orderTool{})
	m.Add(&orderTool{})
	if !m.Undo() {
		t.Fatal("expected Undo to remove an annotation")
	}
	if m.Count() != 1 {
		t.Fatalf("count after undo = %d, want 1", m.Count())
	}
	if !m.Undo() {
		t.Fatal("expected second Undo to succeed")
	}
	if m.Undo() {
		t.Fatal("Undo past empty reported success")
	}
}

func TestManagerUndoLeavesCurrent(t *testing.T) {
	var log []string
	m := NewManager()
	m.SetCurrent(&orderTool{name: "live", log: &log})
	if m.Undo() {
		t.Fatal("Undo removed the in-progress annotation")
	}
	if m.Current() == nil {
		t.Fatal("current annotation lost")
	}
}

func TestManagerClear(t *testing.T) {
	m := NewManager()
	m.Add(&orderTool{})
	m.SetCurrent(&orderTool{})
	if !m.HasAnnotations() {
		t.Fatal("expected annotations before Clear")
	}
	m.Clear()
	if m.HasAnnotations() {
		t.Fatal("expected empty manager after Clear")
	}
	if m.Count() != 0 || m.Current() != nil {
		t.Fatalf("Clear left state behind: count=%d current=%v", m.Count(), m.Current())
	}
}

func TestManagerCommitCurrent(t *testing.T) {
	var log []string
	m := NewManager()
	m.CommitCurrent() // no-op when nothing in progress
	if m.Count() != 0 {
		t.Fatal("CommitCurrent on empty manager committed something")
	}
	m.SetCurrent(&orderTool{name: "live", log: &log})
	m.CommitCurrent()
	if m.Count() != 1 {
		t.Fatalf("count after commit = %d, want 1", m.Count())
	}
	if m.Current() != nil {
		t.Fatal("current should be cleared after commit")
	}
}

func TestManagerAddNilIgnored(t *testing.T) {
	m := NewManager()
	m.Add(nil)
	if m.Count() != 0 {
		t.Fatal("nil annotation was committed")
	}
	m.RenderAll(image.NewRGBA(image.Rect(0, 0, 1, 1)))
}
