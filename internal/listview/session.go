package listview

import (
	"errors"
	"fmt"
	"slices"

	"github.com/jask/adminui/internal/member"
)

// LoadState tracks the one-shot fetch of the record store.
type LoadState int

const (
	StateUnloaded LoadState = iota
	StateLoading
	StateLoaded
	StateFailed
)

func (s LoadState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	default:
		return "unloaded"
	}
}

// ErrInvalidTransition is returned when a load step does not fit the
// current state.
var ErrInvalidTransition = errors.New("listview: invalid load transition")

// Options configures a Session.
type Options struct {
	PageSize int
	// PreserveEdits replays local edits and deletions after every
	// re-filter. When false, changing the search discards them.
	PreserveEdits bool
	DarkMode      bool
}

// Session is the state behind one admin table: the loaded store, the
// filtered working set, the page cursor, the selection and the display mode.
// It is not safe for concurrent use.
type Session struct {
	state   LoadState
	loadErr error

	store   []member.Member
	working []member.Member
	term    string

	pager     *Pager
	selection *Selection
	overlay   *overlay
	dark      bool
}

func NewSession(opts Options) *Session {
	s := &Session{
		pager:     NewPager(opts.PageSize),
		selection: NewSelection(),
		dark:      opts.DarkMode,
		working:   []member.Member{},
	}
	if opts.PreserveEdits {
		s.overlay = newOverlay()
	}
	return s
}

func (s *Session) State() LoadState { return s.state }

// LoadErr is the error from the last failed load, if any.
func (s *Session) LoadErr() error { return s.loadErr }

// BeginLoad moves an unloaded or failed session to loading.
func (s *Session) BeginLoad() error {
	switch s.state {
	case StateUnloaded, StateFailed:
		s.state = StateLoading
		s.loadErr = nil
		return nil
	default:
		return fmt.Errorf("%w: begin load while %s", ErrInvalidTransition, s.state)
	}
}

// Loaded installs records as the store and derives the working set.
func (s *Session) Loaded(records []member.Member) error {
	if s.state != StateLoading {
		return fmt.Errorf("%w: loaded while %s", ErrInvalidTransition, s.state)
	}
	s.store = make([]member.Member, len(records))
	copy(s.store, records)
	s.state = StateLoaded
	s.rederive()
	return nil
}

// LoadFailed records err and leaves the table empty.
func (s *Session) LoadFailed(err error) error {
	if s.state != StateLoading {
		return fmt.Errorf("%w: failed while %s", ErrInvalidTransition, s.state)
	}
	s.state = StateFailed
	s.loadErr = err
	return nil
}

// StoreLen is the number of records fetched.
func (s *Session) StoreLen() int { return len(s.store) }

func (s *Session) Search() string { return s.term }

// SetSearch changes the search term, re-derives the working set from the
// store and moves to page 1.
func (s *Session) SetSearch(term string) {
	s.term = term
	s.rederive()
}

// base is the store with local edits and deletions replayed, when kept.
func (s *Session) base() []member.Member {
	if s.overlay == nil {
		return s.store
	}
	return s.overlay.apply(slices.Clone(s.store))
}

func (s *Session) rederive() {
	rows := Filter(s.base(), s.term)
	s.working = rows
	present := make(map[member.ID]struct{}, len(rows))
	for _, m := range rows {
		present[m.ID] = struct{}{}
	}
	s.selection.Retain(func(id member.ID) bool {
		_, ok := present[id]
		return ok
	})
	s.pager.Reset()
}

// Suggestion is a "did you mean" name for a search that matches nothing.
func (s *Session) Suggestion() (string, bool) {
	if s.term == "" || len(s.working) > 0 {
		return "", false
	}
	return Suggest(s.base(), s.term)
}

// Working returns a copy of the working set.
func (s *Session) Working() []member.Member {
	out := make([]member.Member, len(s.working))
	copy(out, s.working)
	return out
}

func (s *Session) Len() int { return len(s.working) }

func (s *Session) PageSize() int { return s.pager.Size() }

func (s *Session) Cursor() int { return s.pager.Current() }

func (s *Session) TotalPages() int { return TotalPages(len(s.working), s.pager.Size()) }

// CurrentPage returns a copy of the rows on the current page.
func (s *Session) CurrentPage() []member.Member {
	page := Page(s.working, s.pager.Current(), s.pager.Size())
	out := make([]member.Member, len(page))
	copy(out, page)
	return out
}

func (s *Session) Controls() []Control { return Controls(s.Cursor(), s.TotalPages()) }

func (s *Session) FirstPage() { s.pager.First() }

func (s *Session) PrevPage() { s.pager.Prev() }

func (s *Session) NextPage() { s.pager.Next(s.TotalPages()) }

func (s *Session) LastPage() { s.pager.Last(s.TotalPages()) }

// GotoPage jumps to page n, clamped into range.
func (s *Session) GotoPage(n int) { s.pager.Goto(n, s.TotalPages()) }

// ToggleSelected flips the checkbox of id. Ids outside the working set are
// ignored.
func (s *Session) ToggleSelected(id member.ID) {
	if s.indexOf(id) < 0 {
		return
	}
	s.selection.Toggle(id)
}

// SelectAllVisible is the header checkbox: checked selects exactly the ids
// of the current page, unchecked clears the whole selection.
func (s *Session) SelectAllVisible(checked bool) {
	s.selection.SelectAllVisible(checked, member.IDs(Page(s.working, s.Cursor(), s.PageSize())))
}

// HeaderChecked reports whether every row on a non-empty page is selected.
func (s *Session) HeaderChecked() bool {
	page := Page(s.working, s.Cursor(), s.PageSize())
	if len(page) == 0 {
		return false
	}
	for _, m := range page {
		if !s.selection.Has(m.ID) {
			return false
		}
	}
	return true
}

// ToggleSelectAll flips the header checkbox.
func (s *Session) ToggleSelectAll() { s.SelectAllVisible(!s.HeaderChecked()) }

func (s *Session) IsSelected(id member.ID) bool { return s.selection.Has(id) }

func (s *Session) SelectedCount() int { return s.selection.Len() }

// ShowDeleteSelected reports whether the bulk delete action is offered.
func (s *Session) ShowDeleteSelected() bool { return s.selection.Len() > 0 }

func (s *Session) DarkMode() bool { return s.dark }

func (s *Session) ToggleDarkMode() { s.dark = !s.dark }
