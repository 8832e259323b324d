package ui

import "github.com/charmbracelet/lipgloss"

type Styles struct {
	Base        lipgloss.Style
	Title       lipgloss.Style
	Status      lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	Help        lipgloss.Style
	Error       lipgloss.Style
	Panel       lipgloss.Style
	PanelFocus  lipgloss.Style
	Cursor      lipgloss.Style
	Checked     lipgloss.Style
	Count       lipgloss.Style
	Chip        lipgloss.Style
	ChipAlt     lipgloss.Style
	Label       lipgloss.Style
	Link        lipgloss.Style
	PopupBox    lipgloss.Style
	PopupTitle  lipgloss.Style
	TableStyles TableStyles

	JSONKey    lipgloss.Style
	JSONString lipgloss.Style
	JSONNumber lipgloss.Style
	JSONBool   lipgloss.Style
	JSONNull   lipgloss.Style
	JSONPunct  lipgloss.Style
}

type TableStyles struct {
	Header   lipgloss.Style
	Cell     lipgloss.Style
	Selected lipgloss.Style
}

func NewStyles(dark bool) Styles {
	s := Styles{}
	accent, muted, border := lipgloss.Color("27"), lipgloss.Color("8"), lipgloss.Color("12")
	if dark {
		accent, muted, border = lipgloss.Color("81"), lipgloss.Color("243"), lipgloss.Color("60")
		s.Base = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
		s.Chip = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("81")).Padding(0, 1)
		s.ChipAlt = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("180")).Padding(0, 1)
		s.JSONKey = lipgloss.NewStyle().Foreground(lipgloss.Color("81"))
		s.JSONString = lipgloss.NewStyle().Foreground(lipgloss.Color("150"))
		s.JSONNumber = lipgloss.NewStyle().Foreground(lipgloss.Color("215"))
	} else {
		s.Base = lipgloss.NewStyle()
		s.Chip = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("27")).Padding(0, 1)
		s.ChipAlt = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("94")).Padding(0, 1)
		s.JSONKey = lipgloss.NewStyle().Foreground(lipgloss.Color("26"))
		s.JSONString = lipgloss.NewStyle().Foreground(lipgloss.Color("28"))
		s.JSONNumber = lipgloss.NewStyle().Foreground(lipgloss.Color("130"))
	}
	s.Title = lipgloss.NewStyle().Bold(true).Foreground(accent)
	s.Status = lipgloss.NewStyle().Foreground(muted)
	s.TabActive = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(accent)
	s.TabInactive = lipgloss.NewStyle().Foreground(muted)
	s.Help = lipgloss.NewStyle().Foreground(muted)
	s.Error = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	s.Panel = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(muted).Padding(0, 1)
	s.PanelFocus = s.Panel.Copy().BorderForeground(accent)
	s.Cursor = lipgloss.NewStyle().Bold(true).Foreground(accent)
	s.Checked = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	s.Count = lipgloss.NewStyle().Foreground(muted)
	s.Label = lipgloss.NewStyle().Bold(true)
	s.Link = lipgloss.NewStyle().Underline(true).Foreground(accent)
	s.PopupBox = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(border).Padding(1, 2)
	s.PopupTitle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	s.JSONBool = lipgloss.NewStyle().Foreground(lipgloss.Color("177"))
	s.JSONNull = lipgloss.NewStyle().Foreground(muted)
	s.JSONPunct = lipgloss.NewStyle().Foreground(muted)
	s.TableStyles = TableStyles{
		Header:   lipgloss.NewStyle().Bold(true).PaddingRight(1),
		Cell:     lipgloss.NewStyle().PaddingRight(1),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("220")),
	}
	return s
}
