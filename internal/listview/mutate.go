package listview

import "github.com/jask/adminui/internal/member"

// overlay remembers local edits and deletions. It is replayed over a copy
// of the store each time the working set is derived.
type overlay struct {
	roles   map[member.ID]member.Role
	deleted map[member.ID]struct{}
}

func newOverlay() *overlay {
	return &overlay{
		roles:   make(map[member.ID]member.Role),
		deleted: make(map[member.ID]struct{}),
	}
}

func (o *overlay) apply(rows []member.Member) []member.Member {
	out := rows[:0]
	for _, m := range rows {
		if _, gone := o.deleted[m.ID]; gone {
			continue
		}
		if r, ok := o.roles[m.ID]; ok {
			m.Role = r
		}
		out = append(out, m)
	}
	return out
}

// EditRole toggles the role of the member with id between member and
// Admin. It returns false when id is not in the working set or its role is
// outside the pair.
func (s *Session) EditRole(id member.ID) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	next, ok := s.working[i].Role.Toggle()
	if !ok {
		return false
	}
	s.working[i].Role = next
	if s.overlay != nil {
		s.overlay.roles[id] = next
	}
	return true
}

// DeleteOne removes id from the working set and the selection.
func (s *Session) DeleteOne(id member.ID) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.working = append(s.working[:i], s.working[i+1:]...)
	s.selection.Prune(id)
	if s.overlay != nil {
		s.overlay.deleted[id] = struct{}{}
	}
	s.pager.Clamp(s.TotalPages())
	return true
}

// DeleteSelected removes every selected member and clears the selection.
// It returns how many rows were removed.
func (s *Session) DeleteSelected() int {
	kept := s.working[:0]
	removed := 0
	for _, m := range s.working {
		if s.selection.Has(m.ID) {
			removed++
			if s.overlay != nil {
				s.overlay.deleted[m.ID] = struct{}{}
			}
			continue
		}
		kept = append(kept, m)
	}
	s.working = kept
	s.selection.Clear()
	s.pager.Clamp(s.TotalPages())
	return removed
}

func (s *Session) indexOf(id member.ID) int {
	for i := range s.working {
		if s.working[i].ID == id {
			return i
		}
	}
	return -1
}
