package theme

import "github.com/charmbracelet/lipgloss/v2"

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Header HeaderTheme
	Footer FooterTheme
	Card   CardTheme
	Modal  ModalTheme
	Slide  SlideTheme
	Toast  lipgloss.Style
}

// HeaderTheme styles the title bar, tabs and live clock.
type HeaderTheme struct {
	Title     lipgloss.Style
	Clock     lipgloss.Style
	Role      lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Leaving   lipgloss.Style
	Ticker    lipgloss.Style
}

// FooterTheme groups styles used by the bottom status/help bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
}

// CardTheme styles notice cards and event rows.
type CardTheme struct {
	Frame    lipgloss.Style
	Selected lipgloss.Style
	Title    lipgloss.Style
	Urgent   lipgloss.Style
	Meta     lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
}

// ModalTheme styles centered modal overlays (detail, confirm, login, help).
type ModalTheme struct {
	Frame  lipgloss.Style
	Title  lipgloss.Style
	Body   lipgloss.Style
	Field  lipgloss.Style
	Active lipgloss.Style
	Error  lipgloss.Style
}

// SlideTheme styles the slideshow overlay.
type SlideTheme struct {
	Frame     lipgloss.Style
	Tag       lipgloss.Style
	UrgentTag lipgloss.Style
	EventTag  lipgloss.Style
	Title     lipgloss.Style
	Meta      lipgloss.Style
	Body      lipgloss.Style
	Bar       lipgloss.Style
	BarEmpty  lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	accent := lipgloss.Color("212")
	urgent := lipgloss.Color("196")
	faint := lipgloss.Color("244")

	tab := lipgloss.NewStyle().Padding(0, 2).Foreground(lipgloss.Color("245"))

	return Theme{
		Header: HeaderTheme{
			Title:     lipgloss.NewStyle().Bold(true).Foreground(accent),
			Clock:     lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
			Role:      lipgloss.NewStyle().Foreground(faint).Italic(true),
			Tab:       tab,
			ActiveTab: tab.Foreground(lipgloss.Color("231")).Background(lipgloss.Color("63")).Bold(true),
			Leaving:   tab.Foreground(lipgloss.Color("240")).Italic(true),
			Ticker:    lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(urgent).Bold(true),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(faint),
			Error:  lipgloss.NewStyle().Foreground(urgent),
		},
		Card: CardTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("238")).
				Padding(0, 1),
			Selected: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(accent).
				Padding(0, 1),
			Title:  lipgloss.NewStyle().Bold(true),
			Urgent: lipgloss.NewStyle().Foreground(urgent).Bold(true),
			Meta:   lipgloss.NewStyle().Foreground(faint),
			Body:   lipgloss.NewStyle(),
			Muted:  lipgloss.NewStyle().Foreground(faint).Italic(true),
		},
		Modal: ModalTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(accent).
				Padding(1, 2),
			Title:  lipgloss.NewStyle().Bold(true),
			Body:   lipgloss.NewStyle(),
			Field:  lipgloss.NewStyle().Foreground(faint),
			Active: lipgloss.NewStyle().Foreground(accent).Bold(true),
			Error:  lipgloss.NewStyle().Foreground(urgent),
		},
		Slide: SlideTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.DoubleBorder()).
				BorderForeground(lipgloss.Color("63")).
				Padding(1, 4),
			Tag:       lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("39")).Padding(0, 1).Bold(true),
			UrgentTag: lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(urgent).Padding(0, 1).Bold(true),
			EventTag:  lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("214")).Padding(0, 1).Bold(true),
			Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("231")),
			Meta:      lipgloss.NewStyle().Foreground(faint),
			Body:      lipgloss.NewStyle(),
			Bar:       lipgloss.NewStyle().Foreground(accent),
			BarEmpty:  lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		},
		Toast: lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("42")).
			Padding(0, 1),
	}
}
