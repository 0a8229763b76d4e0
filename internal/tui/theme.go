package tui

import "github.com/charmbracelet/lipgloss"

// palette is the subset of Catppuccin used by the table.
type palette struct {
	Text     lipgloss.Color
	Subtext  lipgloss.Color
	Overlay  lipgloss.Color
	Surface0 lipgloss.Color
	Surface1 lipgloss.Color
	Base     lipgloss.Color
	Mantle   lipgloss.Color
	Accent   lipgloss.Color
	Focus    lipgloss.Color
	Success  lipgloss.Color
	Error    lipgloss.Color
	Warning  lipgloss.Color
	Info     lipgloss.Color
}

// https://catppuccin.com/palette
var (
	mocha = palette{
		Text:     "#cdd6f4",
		Subtext:  "#a6adc8",
		Overlay:  "#6c7086",
		Surface0: "#313244",
		Surface1: "#45475a",
		Base:     "#1e1e2e",
		Mantle:   "#181825",
		Accent:   "#f5c2e7",
		Focus:    "#b4befe",
		Success:  "#a6e3a1",
		Error:    "#f38ba8",
		Warning:  "#f9e2af",
		Info:     "#94e2d5",
	}
	latte = palette{
		Text:     "#4c4f69",
		Subtext:  "#6c6f85",
		Overlay:  "#9ca0b0",
		Surface0: "#ccd0da",
		Surface1: "#bcc0cc",
		Base:     "#eff1f5",
		Mantle:   "#e6e9ef",
		Accent:   "#ea76cb",
		Focus:    "#7287fd",
		Success:  "#40a02b",
		Error:    "#d20f39",
		Warning:  "#df8e1d",
		Info:     "#179299",
	}
)

type styles struct {
	p palette

	App       lipgloss.Style
	Title     lipgloss.Style
	Mode      lipgloss.Style
	Header    lipgloss.Style
	Row       lipgloss.Style
	Cursor    lipgloss.Style
	Selected  lipgloss.Style
	Muted     lipgloss.Style
	Admin     lipgloss.Style
	Hint      lipgloss.Style
	Danger    lipgloss.Style
	PageOn    lipgloss.Style
	PageOff   lipgloss.Style
	PageIdle  lipgloss.Style
	Status    lipgloss.Style
	StatusErr lipgloss.Style
	Footer    lipgloss.Style
	Key       lipgloss.Style
	KeyDesc   lipgloss.Style
}

func newStyles(dark bool) styles {
	p := latte
	if dark {
		p = mocha
	}
	return styles{
		p:         p,
		App:       lipgloss.NewStyle().Foreground(p.Text).Background(p.Base),
		Title:     lipgloss.NewStyle().Foreground(p.Accent).Bold(true),
		Mode:      lipgloss.NewStyle().Foreground(p.Subtext),
		Header:    lipgloss.NewStyle().Foreground(p.Focus).Bold(true),
		Row:       lipgloss.NewStyle().Foreground(p.Text),
		Cursor:    lipgloss.NewStyle().Foreground(p.Text).Background(p.Surface1).Bold(true),
		Selected:  lipgloss.NewStyle().Foreground(p.Text).Background(p.Surface0),
		Muted:     lipgloss.NewStyle().Foreground(p.Overlay),
		Admin:     lipgloss.NewStyle().Foreground(p.Warning).Bold(true),
		Hint:      lipgloss.NewStyle().Foreground(p.Info).Italic(true),
		Danger:    lipgloss.NewStyle().Foreground(p.Error).Bold(true),
		PageOn:    lipgloss.NewStyle().Foreground(p.Base).Background(p.Accent).Bold(true).Padding(0, 1),
		PageOff:   lipgloss.NewStyle().Foreground(p.Overlay).Padding(0, 1),
		PageIdle:  lipgloss.NewStyle().Foreground(p.Text).Background(p.Surface0).Padding(0, 1),
		Status:    lipgloss.NewStyle().Foreground(p.Success).Background(p.Surface0),
		StatusErr: lipgloss.NewStyle().Foreground(p.Error).Background(p.Surface0),
		Footer:    lipgloss.NewStyle().Background(p.Mantle),
		Key:       lipgloss.NewStyle().Foreground(p.Accent).Background(p.Mantle).Bold(true),
		KeyDesc:   lipgloss.NewStyle().Foreground(p.Subtext).Background(p.Mantle),
	}
}
