package listview

import "github.com/jask/adminui/internal/member"

// Selection is the set of checked row ids.
type Selection struct {
	ids map[member.ID]struct{}
}

func NewSelection() *Selection {
	return &Selection{ids: make(map[member.ID]struct{})}
}

func (s *Selection) Has(id member.ID) bool {
	_, ok := s.ids[id]
	return ok
}

func (s *Selection) Len() int { return len(s.ids) }

// Toggle adds id if absent, removes it if present.
func (s *Selection) Toggle(id member.ID) {
	if s.Has(id) {
		delete(s.ids, id)
		return
	}
	s.ids[id] = struct{}{}
}

// SelectAllVisible replaces the selection with pageIDs when checked.
// Unchecking clears everything, not only the visible page.
func (s *Selection) SelectAllVisible(checked bool, pageIDs []member.ID) {
	s.Clear()
	if !checked {
		return
	}
	for _, id := range pageIDs {
		s.ids[id] = struct{}{}
	}
}

// Prune drops the given ids.
func (s *Selection) Prune(ids ...member.ID) {
	for _, id := range ids {
		delete(s.ids, id)
	}
}

// Retain drops every id for which keep returns false.
func (s *Selection) Retain(keep func(member.ID) bool) {
	for id := range s.ids {
		if !keep(id) {
			delete(s.ids, id)
		}
	}
}

func (s *Selection) Clear() { clear(s.ids) }
