package ui

import tea "github.com/charmbracelet/bubbletea"

type KeyMap struct {
	Search     tea.Key
	Facets     tea.Key
	Expr       tea.Key
	ClearAll   tea.Key
	Toggle     tea.Key
	NextPage   tea.Key
	PrevPage   tea.Key
	Top        tea.Key
	Bottom     tea.Key
	Detail     tea.Key
	ViewRaw    tea.Key
	AppLogs    tea.Key
	Explain    tea.Key
	Export     tea.Key
	Theme      tea.Key
	Reload     tea.Key
	CopyRecord tea.Key
	Help       tea.Key
	Quit       tea.Key
	Focus      tea.Key
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Search:     tea.Key{Type: tea.KeyRunes, Runes: []rune{'/'}},
		Facets:     tea.Key{Type: tea.KeyRunes, Runes: []rune{'f'}},
		Expr:       tea.Key{Type: tea.KeyRunes, Runes: []rune{'x'}},
		ClearAll:   tea.Key{Type: tea.KeyRunes, Runes: []rune{'C'}},
		Toggle:     tea.Key{Type: tea.KeyRunes, Runes: []rune{' '}},
		NextPage:   tea.Key{Type: tea.KeyRunes, Runes: []rune{']'}},
		PrevPage:   tea.Key{Type: tea.KeyRunes, Runes: []rune{'['}},
		Top:        tea.Key{Type: tea.KeyRunes, Runes: []rune{'g'}},
		Bottom:     tea.Key{Type: tea.KeyRunes, Runes: []rune{'G'}},
		Detail:     tea.Key{Type: tea.KeyEnter},
		ViewRaw:    tea.Key{Type: tea.KeyRunes, Runes: []rune{'v'}},
		AppLogs:    tea.Key{Type: tea.KeyRunes, Runes: []rune{'L'}},
		Explain:    tea.Key{Type: tea.KeyRunes, Runes: []rune{'i'}},
		Export:     tea.Key{Type: tea.KeyRunes, Runes: []rune{'e'}},
		Theme:      tea.Key{Type: tea.KeyRunes, Runes: []rune{'T'}},
		Reload:     tea.Key{Type: tea.KeyRunes, Runes: []rune{'r'}},
		CopyRecord: tea.Key{Type: tea.KeyRunes, Runes: []rune{'c'}},
		Help:       tea.Key{Type: tea.KeyRunes, Runes: []rune{'?'}},
		Quit:       tea.Key{Type: tea.KeyRunes, Runes: []rune{'q'}},
		Focus:      tea.Key{Type: tea.KeyTab},
	}
}

func keyMatches(msg tea.KeyMsg, k tea.Key) bool {
	if k.Type != tea.KeyRunes {
		return msg.Type == k.Type
	}
	if len(k.Runes) > 0 {
		return msg.String() == string(k.Runes)
	}
	return false
}
