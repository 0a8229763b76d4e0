package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/adminui/internal/listview"
	"github.com/jask/adminui/internal/member"
)

const (
	colCheck = 3
	colName  = 22
	colEmail = 30
	colRole  = 8
)

func (m Model) View() string {
	s := m.styles
	width := max(1, m.width)

	mode := "light"
	if m.session.DarkMode() {
		mode = "dark"
	}
	header := s.Title.Render("Admin UI") + s.Mode.Render("  members · "+mode)

	parts := []string{
		header,
		m.search.View(),
		"",
		m.renderTable(),
		"",
		m.renderActions(),
		m.renderStatus(width),
		m.renderFooter(width),
	}
	out := strings.Join(parts, "\n")
	if m.height > 0 {
		out = clipHeight(out, m.height)
	}
	return s.App.Render(out)
}

func (m Model) renderTable() string {
	s := m.styles
	var b strings.Builder

	box := "[ ]"
	if m.session.HeaderChecked() {
		box = "[x]"
	}
	b.WriteString("  " + s.Header.Render(row(box, "Name", "Email", "Role")))

	switch m.session.State() {
	case listview.StateUnloaded, listview.StateLoading:
		b.WriteString("\n  " + s.Muted.Render("Loading members..."))
		return b.String()
	case listview.StateFailed:
		b.WriteString("\n  " + s.Danger.Render("Could not load members."))
		return b.String()
	}

	page := m.session.CurrentPage()
	if len(page) == 0 {
		b.WriteString("\n  " + m.emptyMessage())
		return b.String()
	}
	for i, mem := range page {
		b.WriteString("\n")
		b.WriteString(m.renderRow(i, mem))
	}
	return b.String()
}

func (m Model) renderRow(i int, mem member.Member) string {
	s := m.styles
	box := "[ ]"
	selected := m.session.IsSelected(mem.ID)
	if selected {
		box = "[x]"
	}
	line := row(box, mem.Name, mem.Email, string(mem.Role))

	pointer := "  "
	style := s.Row
	switch {
	case i == m.row:
		pointer = s.Title.Render("> ")
		style = s.Cursor
	case selected:
		style = s.Selected
	case mem.Role.IsAdmin():
		style = s.Admin
	}
	return pointer + style.Render(line)
}

func (m Model) emptyMessage() string {
	s := m.styles
	term := m.session.Search()
	if term == "" {
		return s.Muted.Render("No members")
	}
	msg := s.Muted.Render(fmt.Sprintf("No members match %q", term))
	if name, ok := m.session.Suggestion(); ok {
		msg += "  " + s.Hint.Render("Did you mean "+name+"?")
	}
	return msg
}

func (m Model) renderActions() string {
	s := m.styles
	left := ""
	if m.session.ShowDeleteSelected() {
		left = s.Danger.Render(fmt.Sprintf("D Delete Selected (%d)", m.session.SelectedCount()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, "  ", left, "  ", m.renderPager())
}

func (m Model) renderPager() string {
	s := m.styles
	ctrls := m.session.Controls()
	out := make([]string, 0, len(ctrls))
	for _, c := range ctrls {
		switch {
		case c.Active:
			out = append(out, s.PageOn.Render(c.Label))
		case c.Disabled:
			out = append(out, s.PageOff.Render(c.Label))
		default:
			out = append(out, s.PageIdle.Render(c.Label))
		}
	}
	return strings.Join(out, " ")
}

func (m Model) renderStatus(width int) string {
	msg := strings.TrimSpace(m.status)
	if msg == "" {
		msg = "Ready"
	}
	if m.statusErr {
		return renderBar(m.styles.StatusErr, width, msg)
	}
	return renderBar(m.styles.Status, width, msg)
}

func (m Model) renderFooter(width int) string {
	s := m.styles
	space := s.Footer.Render(" ")
	sep := s.Footer.Render("  ")
	parts := make([]string, 0, 16)
	for _, b := range m.footer() {
		h := b.Help()
		if h.Key == "" && h.Desc == "" {
			continue
		}
		parts = append(parts, s.Key.Render(h.Key)+space+s.KeyDesc.Render(h.Desc))
	}
	return renderBar(s.Footer, width, strings.Join(parts, sep))
}

func row(box, name, email, role string) string {
	return cell(box, colCheck) + " " + cell(name, colName) + " " + cell(email, colEmail) + " " + cell(role, colRole)
}

func cell(s string, width int) string {
	s = ansi.Truncate(s, width, "…")
	if w := ansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

func renderBar(style lipgloss.Style, width int, text string) string {
	line := strings.ReplaceAll(text, "\n", " ")
	line = ansi.Truncate(line, width, "")
	if w := ansi.StringWidth(line); w < width {
		line += strings.Repeat(" ", width-w)
	}
	return style.Width(width).MaxWidth(width).Render(line)
}

func clipHeight(s string, height int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}
