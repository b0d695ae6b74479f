package annotate

import "image"

// Manager keeps the committed annotations of one editing session plus the
// single annotation currently being drawn. Committed annotations render in
// insertion order; the in-progress one renders last while its gesture is
// live, so feedback sits on top of finished work.
type Manager struct {
	committed []Tool
	current   Tool
}

func NewManager() *Manager {
	return &Manager{}
}

// Add commits a finished annotation.
func (m *Manager) Add(t Tool) {
	if t == nil {
		return
	}
	m.committed = append(m.committed, t)
}

// Undo removes the most recently committed annotation. It reports whether
// anything was removed; the in-progress annotation is not touched.
func (m *Manager) Undo() bool {
	if len(m.committed) == 0 {
		return false
	}
	m.committed[len(m.committed)-1] = nil
	m.committed = m.committed[:len(m.committed)-1]
	return true
}

// Clear drops every committed annotation and the in-progress one.
func (m *Manager) Clear() {
	m.committed = nil
	m.current = nil
}

// SetCurrent replaces the in-progress annotation. Passing nil clears it,
// which is how a finished or cancelled gesture is retired.
func (m *Manager) SetCurrent(t Tool) {
	m.current = t
}

// Current returns the in-progress annotation, or nil.
func (m *Manager) Current() Tool {
	return m.current
}

// CommitCurrent moves the in-progress annotation to the committed list.
// It is a no-op when nothing is in progress.
func (m *Manager) CommitCurrent() {
	if m.current == nil {
		return
	}
	m.committed = append(m.committed, m.current)
	m.current = nil
}

// Count returns the number of committed annotations.
func (m *Manager) Count() int {
	return len(m.committed)
}

// HasAnnotations reports whether anything would render.
func (m *Manager) HasAnnotations() bool {
	return len(m.committed) > 0 || m.current != nil
}

// RenderAll paints every committed annotation in insertion order and then
// the in-progress one on top. The in-progress annotation is skipped once
// its gesture has finished; at that point it either was committed or must
// not appear.
func (m *Manager) RenderAll(dst *image.RGBA) {
	for _, t := range m.committed {
		t.Render(dst)
	}
	if m.current != nil && m.current.Drawing() {
		m.current.Render(dst)
	}
}
