package listview

import (
	"strconv"

	"github.com/jask/adminui/internal/member"
)

// DefaultPageSize is the number of rows on one page.
const DefaultPageSize = 10

func normalizeSize(size int) int {
	if size < 1 {
		return DefaultPageSize
	}
	return size
}

// Page returns the 1-based page cursor of data. A cursor outside the data
// yields an empty slice.
func Page(data []member.Member, cursor, size int) []member.Member {
	size = normalizeSize(size)
	if cursor < 1 {
		return []member.Member{}
	}
	start := (cursor - 1) * size
	if start >= len(data) {
		return []member.Member{}
	}
	end := min(start+size, len(data))
	return data[start:end:end]
}

// TotalPages is ceil(n / size). Zero rows give zero pages.
func TotalPages(n, size int) int {
	size = normalizeSize(size)
	return (n + size - 1) / size
}

// lastPage is the highest cursor value; an empty set still has page 1.
func lastPage(total int) int { return max(total, 1) }

// Pager holds the page cursor. The zero value is not usable; use NewPager.
type Pager struct {
	size    int
	current int
}

func NewPager(size int) *Pager {
	return &Pager{size: normalizeSize(size), current: 1}
}

func (p *Pager) Size() int    { return p.size }
func (p *Pager) Current() int { return p.current }

// Reset moves the cursor back to page 1.
func (p *Pager) Reset() { p.current = 1 }

func (p *Pager) First() { p.current = 1 }

func (p *Pager) Prev() { p.current = max(p.current-1, 1) }

func (p *Pager) Next(total int) { p.current = min(p.current+1, lastPage(total)) }

func (p *Pager) Last(total int) { p.current = lastPage(total) }

// Goto jumps to page n, clamped into range.
func (p *Pager) Goto(n, total int) { p.current = clamp(n, 1, lastPage(total)) }

// Clamp pulls the cursor back into range after the data shrank.
func (p *Pager) Clamp(total int) { p.current = clamp(p.current, 1, lastPage(total)) }

func clamp(v, lo, hi int) int { return max(lo, min(v, hi)) }

// ControlKind identifies a pagination button.
type ControlKind int

const (
	ControlFirst ControlKind = iota
	ControlPrev
	ControlPage
	ControlNext
	ControlLast
)

// Control is one pagination button.
type Control struct {
	Kind     ControlKind
	Page     int // target page for ControlPage
	Label    string
	Disabled bool
	Active   bool
}

// Controls lays out first, prev, one button per page, next and last.
func Controls(cursor, total int) []Control {
	last := lastPage(total)
	atStart := cursor <= 1
	atEnd := cursor >= last
	out := make([]Control, 0, total+4)
	out = append(out,
		Control{Kind: ControlFirst, Label: "<<", Disabled: atStart},
		Control{Kind: ControlPrev, Label: "<", Disabled: atStart},
	)
	for i := 1; i <= total; i++ {
		out = append(out, Control{Kind: ControlPage, Page: i, Label: strconv.Itoa(i), Active: i == cursor})
	}
	out = append(out,
		Control{Kind: ControlNext, Label: ">", Disabled: atEnd},
		Control{Kind: ControlLast, Label: ">>", Disabled: atEnd},
	)
	return out
}
