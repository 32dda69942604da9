package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Amund211/rollcall/internal/domain"
)

type palette struct {
	present lipgloss.Color
	late    lipgloss.Color
	absent  lipgloss.Color
	leave   lipgloss.Color
	unknown lipgloss.Color
	office  lipgloss.Color
	remote  lipgloss.Color

	text  lipgloss.Color
	muted lipgloss.Color
}

var lightPalette = palette{
	present: lipgloss.Color("#16a34a"),
	late:    lipgloss.Color("#d97706"),
	absent:  lipgloss.Color("#dc2626"),
	leave:   lipgloss.Color("#9333ea"),
	unknown: lipgloss.Color("#6b7280"),
	office:  lipgloss.Color("#16a34a"),
	remote:  lipgloss.Color("#2563eb"),
	text:    lipgloss.Color("#111827"),
	muted:   lipgloss.Color("#6b7280"),
}

var darkPalette = palette{
	present: lipgloss.Color("#22c55e"),
	late:    lipgloss.Color("#f59e0b"),
	absent:  lipgloss.Color("#ef4444"),
	leave:   lipgloss.Color("#a855f7"),
	unknown: lipgloss.Color("#9ca3af"),
	office:  lipgloss.Color("#4ade80"),
	remote:  lipgloss.Color("#60a5fa"),
	text:    lipgloss.Color("#f9fafb"),
	muted:   lipgloss.Color("#9ca3af"),
}

// Styles renders badges and headings for one theme
type Styles struct {
	present lipgloss.Style
	late    lipgloss.Style
	absent  lipgloss.Style
	leave   lipgloss.Style
	unknown lipgloss.Style
	office  lipgloss.Style
	remote  lipgloss.Style

	title   lipgloss.Style
	muted   lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
}

func NewStyles(theme domain.Theme) Styles {
	colors := lightPalette
	if theme == domain.ThemeDark {
		colors = darkPalette
	}

	// Light badges are filled, dark badges are coloured text
	badge := func(color lipgloss.Color) lipgloss.Style {
		if theme == domain.ThemeDark {
			return lipgloss.NewStyle().Foreground(color).Bold(true)
		}
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Background(color).Padding(0, 1)
	}

	return Styles{
		present: badge(colors.present),
		late:    badge(colors.late),
		absent:  badge(colors.absent),
		leave:   badge(colors.leave),
		unknown: badge(colors.unknown),
		office:  badge(colors.office),
		remote:  badge(colors.remote),

		title:   lipgloss.NewStyle().Bold(true).Foreground(colors.text),
		muted:   lipgloss.NewStyle().Foreground(colors.muted),
		success: lipgloss.NewStyle().Foreground(colors.present).Bold(true),
		failure: lipgloss.NewStyle().Foreground(colors.absent).Bold(true),
	}
}

func (s Styles) StatusBadge(record domain.AttendanceRecord) string {
	var style lipgloss.Style
	switch record.Status {
	case domain.StatusPresent:
		style = s.present
	case domain.StatusLate:
		style = s.late
	case domain.StatusAbsent:
		style = s.absent
	case domain.StatusLeave:
		style = s.leave
	case domain.StatusUnknown:
		style = s.unknown
	}
	return style.Render(record.StatusLabel())
}

func (s Styles) LocationBadge(locationType domain.LocationType) string {
	switch locationType {
	case domain.LocationOffice:
		return s.office.Render(locationType.String())
	case domain.LocationRemote:
		return s.remote.Render(locationType.String())
	}
	return locationType.String()
}
