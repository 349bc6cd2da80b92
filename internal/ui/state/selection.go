package state

import "slices"

// Marks is the set of row ids marked for copying. Ids survive sorting and
// column moves; Cleanup drops ids that no longer exist.
type Marks struct {
	ids map[int]struct{}
}

// IsMarked reports whether id is marked.
func (m *Marks) IsMarked(id int) bool {
	if m.ids == nil {
		return false
	}
	_, ok := m.ids[id]
	return ok
}

// Toggle flips the mark on id and reports the new state.
func (m *Marks) Toggle(id int) bool {
	if m.ids == nil {
		m.ids = make(map[int]struct{})
	}
	if _, ok := m.ids[id]; ok {
		delete(m.ids, id)
		return false
	}
	m.ids[id] = struct{}{}
	return true
}

// Len returns the number of marked ids.
func (m *Marks) Len() int { return len(m.ids) }

// Clear drops every mark.
func (m *Marks) Clear() {
	clear(m.ids)
}

// Cleanup drops marks for ids rejected by valid.
func (m *Marks) Cleanup(valid func(id int) bool) {
	for id := range m.ids {
		if !valid(id) {
			delete(m.ids, id)
		}
	}
}

// IDs returns the marked ids in ascending order.
func (m *Marks) IDs() []int {
	ids := make([]int, 0, len(m.ids))
	for id := range m.ids {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
