package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/adminui/internal/listview"
	"github.com/jask/adminui/internal/member"
	"github.com/jask/adminui/internal/service"
	"github.com/jask/adminui/internal/source"
)

// Loader produces the member list for a session.
type Loader interface {
	Load(ctx context.Context) (service.LoadResult, error)
}

// Options configures the table program.
type Options struct {
	List listview.Options
	// SavePrefs persists the display mode after a toggle. Optional.
	SavePrefs func(dark bool) error
	Logger    *slog.Logger
}

// Model is the bubbletea model for the admin table.
type Model struct {
	ctx     context.Context
	loader  Loader
	session *listview.Session
	keys    keyMap
	styles  styles
	search  textinput.Model

	searching bool
	row       int    // cursor within the current page
	pageKeys  string // digits typed for a direct page jump
	width     int
	height    int
	status    string
	statusErr bool

	savePrefs func(bool) error
	// one theme save runs at a time; a toggle during a save is written after it
	saving     bool
	themeDirty bool
	logger     *slog.Logger
}

type membersLoadedMsg struct{ res service.LoadResult }

type loadFailedMsg struct{ err error }

type prefsSavedMsg struct{ err error }

func New(ctx context.Context, loader Loader, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "Search by name, email or role"
	ti.CharLimit = 128

	m := Model{
		ctx:       ctx,
		loader:    loader,
		session:   listview.NewSession(opts.List),
		keys:      defaultKeys(),
		search:    ti,
		width:     80,
		status:    "Loading members...",
		savePrefs: opts.SavePrefs,
		logger:    logger,
	}
	m.applyTheme()
	return m
}

// Session exposes the table state.
func (m Model) Session() *listview.Session { return m.session }

func (m Model) Init() tea.Cmd {
	return m.beginLoad()
}

func (m *Model) beginLoad() tea.Cmd {
	if err := m.session.BeginLoad(); err != nil {
		m.logger.Debug("load not started", "err", err)
		return nil
	}
	m.setStatus("Loading members...")
	loader, ctx := m.loader, m.ctx
	return func() tea.Msg {
		res, err := loader.Load(ctx)
		if err != nil {
			return loadFailedMsg{err: err}
		}
		return membersLoadedMsg{res: res}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case membersLoadedMsg:
		if err := m.session.Loaded(msg.res.Members); err != nil {
			m.logger.Warn("discard load result", "err", err)
			return m, nil
		}
		m.row = 0
		m.setStatus(msg.res.Summary())
		return m, nil
	case loadFailedMsg:
		if err := m.session.LoadFailed(msg.err); err != nil {
			m.logger.Warn("discard load failure", "err", err)
			return m, nil
		}
		m.logger.Error("load members", "err", msg.err)
		m.setError(describeLoadErr(msg.err) + " (r to retry)")
		return m, nil
	case prefsSavedMsg:
		m.saving = false
		if msg.err != nil {
			m.logger.Error("save preferences", "err", msg.err)
			m.setError("Could not save theme: " + msg.err.Error())
		}
		if m.themeDirty {
			m.themeDirty = false
			cmd := m.persistTheme()
			return m, cmd
		}
		return m, nil
	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateTable(msg)
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.Accept):
		m.searching = false
		m.search.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.applySearch()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.applySearch()
	return m, cmd
}

func (m *Model) applySearch() {
	if m.search.Value() == m.session.Search() {
		return
	}
	m.session.SetSearch(m.search.Value())
	m.row = 0
}

func (m Model) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	digit, isDigit := pageDigit(msg)
	if !isDigit {
		m.pageKeys = ""
	}
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit
	case key.Matches(msg, k.Search):
		m.searching = true
		cmd := m.search.Focus()
		return m, cmd
	case key.Matches(msg, k.Theme):
		m.session.ToggleDarkMode()
		m.applyTheme()
		cmd := m.persistTheme()
		return m, cmd
	case key.Matches(msg, k.Retry):
		if !m.retryable() {
			return m, nil
		}
		cmd := m.beginLoad()
		return m, cmd
	}
	if m.session.State() != listview.StateLoaded {
		return m, nil
	}

	switch {
	case key.Matches(msg, k.Up):
		m.row = max(0, m.row-1)
	case key.Matches(msg, k.Down):
		m.row = min(len(m.session.CurrentPage())-1, m.row+1)
		m.row = max(0, m.row)
	case key.Matches(msg, k.ToggleRow):
		if id, ok := m.currentID(); ok {
			m.session.ToggleSelected(id)
		}
	case key.Matches(msg, k.SelectPage):
		m.session.ToggleSelectAll()
	case key.Matches(msg, k.EditRole):
		m.editRole()
	case key.Matches(msg, k.DeleteRow):
		m.deleteRow()
	case key.Matches(msg, k.DeleteChosen):
		if m.session.ShowDeleteSelected() {
			n := m.session.DeleteSelected()
			m.setStatus(fmt.Sprintf("Deleted %d selected members", n))
		}
	case key.Matches(msg, k.First):
		m.session.FirstPage()
		m.row = 0
	case key.Matches(msg, k.Prev):
		m.session.PrevPage()
		m.row = 0
	case key.Matches(msg, k.Next):
		m.session.NextPage()
		m.row = 0
	case key.Matches(msg, k.Last):
		m.session.LastPage()
		m.row = 0
	case isDigit:
		m.gotoTypedPage(digit)
	}
	m.clampRow()
	return m, nil
}

// gotoTypedPage extends the typed page number with d and jumps to it. A
// number past the last page starts over from d, so "1" "2" reaches page 12
// when it exists and page 2 otherwise.
func (m *Model) gotoTypedPage(d rune) {
	typed := m.pageKeys + string(d)
	n, err := strconv.Atoi(typed)
	if err != nil || n < 1 || n > m.session.TotalPages() {
		typed = string(d)
		n, _ = strconv.Atoi(typed)
	}
	m.pageKeys = typed
	if n < 1 {
		m.pageKeys = ""
		return
	}
	m.session.GotoPage(n)
	m.row = 0
}

func (m *Model) editRole() {
	page := m.session.CurrentPage()
	if m.row >= len(page) {
		return
	}
	target := page[m.row]
	if !m.session.EditRole(target.ID) {
		m.setError(fmt.Sprintf("Role %q cannot be toggled", target.Role))
		return
	}
	next, _ := target.Role.Toggle()
	m.setStatus(fmt.Sprintf("%s is now %s", target.Name, next))
}

func (m *Model) deleteRow() {
	page := m.session.CurrentPage()
	if m.row >= len(page) {
		return
	}
	target := page[m.row]
	if m.session.DeleteOne(target.ID) {
		m.setStatus("Deleted " + target.Name)
	}
}

func (m Model) currentID() (member.ID, bool) {
	page := m.session.CurrentPage()
	if m.row < 0 || m.row >= len(page) {
		return "", false
	}
	return page[m.row].ID, true
}

func (m *Model) clampRow() {
	n := len(m.session.CurrentPage())
	if m.row >= n {
		m.row = n - 1
	}
	if m.row < 0 {
		m.row = 0
	}
}

func (m Model) retryable() bool { return m.session.State() == listview.StateFailed }

func (m *Model) applyTheme() {
	m.styles = newStyles(m.session.DarkMode())
	p := m.styles.p
	m.search.PromptStyle = m.styles.Title
	m.search.TextStyle = m.styles.Row
	m.search.PlaceholderStyle = m.styles.Muted
	m.search.Cursor.Style = m.search.Cursor.Style.Foreground(p.Focus)
}

func (m *Model) persistTheme() tea.Cmd {
	if m.savePrefs == nil {
		return nil
	}
	if m.saving {
		m.themeDirty = true
		return nil
	}
	m.saving = true
	save, dark := m.savePrefs, m.session.DarkMode()
	return func() tea.Msg {
		return prefsSavedMsg{err: save(dark)}
	}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusErr = true
}

func pageDigit(msg tea.KeyMsg) (rune, bool) {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return 0, false
	}
	r := msg.Runes[0]
	if r < '0' || r > '9' {
		return 0, false
	}
	return r, true
}

func describeLoadErr(err error) string {
	var se *source.StatusError
	switch {
	case errors.As(err, &se):
		return "Member source returned " + se.Status
	case errors.Is(err, member.ErrMalformedPayload):
		return "Member source did not return a member list"
	case errors.Is(err, context.DeadlineExceeded):
		return "Timed out loading members"
	case errors.Is(err, context.Canceled):
		return "Loading cancelled"
	default:
		return "Could not load members: " + err.Error()
	}
}
