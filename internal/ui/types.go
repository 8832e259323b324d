package ui

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"benchscope/internal/ai"
	"benchscope/internal/config"
	"benchscope/internal/facet"
	"benchscope/internal/filter"
	"benchscope/internal/ingest"
	"benchscope/internal/model"
	"benchscope/internal/prefs"
	"benchscope/internal/selection"
)

// Options carries the collaborators the TUI needs besides the config.
type Options struct {
	// Prefs persists the theme; nil disables persistence.
	Prefs *prefs.Store
	AI    *ai.OpenAIClient
	// Stdin feeds the "-" source.
	Stdin io.Reader
}

type focus int

const (
	focusTable focus = iota
	focusQuery
	focusFacets
	focusFacetSearch
	focusExpr
)

type modalKind int

const (
	modalNone modalKind = iota
	modalHelp
	modalDetail
	modalRaw
	modalLogs
	modalExplain
)

type Model struct {
	ctx  context.Context
	cfg  *config.Config
	opts Options

	// Loading. Every load gets a new sequence number; results carrying an
	// older one are dropped.
	loadSeq    int
	loadCancel context.CancelFunc
	loading    bool
	loadErr    error
	attempts   []ingest.Attempt
	watch      <-chan string

	// Data
	store    *model.Store
	engine   *filter.Engine
	options  facet.Options
	sel      *selection.State
	filtered []model.Record
	page     int

	// Debounced query: each keystroke bumps queryTag and schedules a tick
	// carrying it; only the tick matching the latest tag applies.
	queryTag int

	// Facet panel
	facetCat    int
	facetCursor int
	facetSearch map[facet.Category]string

	// UI
	focus      focus
	theme      config.Theme
	styles     Styles
	keymap     KeyMap
	tbl        table.Model
	cols       []table.Column
	query      textinput.Model
	expr       textinput.Model
	facetInput textinput.Model
	spin       spinner.Model
	termWidth  int
	termHeight int
	lastMsg    string
	netBusy    bool

	// Modal popup
	modalActive bool
	modalKind   modalKind
	modalVP     viewport.Model
	modalTitle  string
	modalBody   string
	// record shown by the detail/raw/explain modals
	modalRecord *model.Record

	helpItems []helpItem
	helpSel   int
}

type helpItem struct {
	group string
	text  string
	key   tea.Key
}

type loadedMsg struct {
	seq int
	res *ingest.Result
	err error
}

type queryTickMsg struct{ tag int }

type sourceChangedMsg struct{ path string }

type watchClosedMsg struct{}

type explainMsg struct {
	id   string
	text string
	err  error
}

type exportDoneMsg struct {
	n    int
	path string
	err  error
}

type toastMsg struct{ text string }

func keyCmd(k tea.Key) tea.Cmd {
	return func() tea.Msg {
		if k.Type == tea.KeyRunes {
			return tea.KeyMsg{Type: k.Type, Runes: k.Runes}
		}
		return tea.KeyMsg{Type: k.Type}
	}
}

func keyLabel(k tea.Key) string {
	switch k.Type {
	case tea.KeyRunes:
		if len(k.Runes) == 1 {
			r := k.Runes[0]
			if r == ' ' {
				return "space"
			}
			return string(r)
		}
		return strings.ToLower(string(k.Runes))
	case tea.KeyEnter:
		return "enter"
	case tea.KeyEsc:
		return "esc"
	case tea.KeyTab:
		return "tab"
	case tea.KeyShiftTab:
		return "shift-tab"
	case tea.KeyLeft:
		return "left"
	case tea.KeyRight:
		return "right"
	case tea.KeyUp:
		return "up"
	case tea.KeyDown:
		return "down"
	case tea.KeyPgUp:
		return "pgup"
	case tea.KeyPgDown:
		return "pgdown"
	default:
		return strings.ToLower(k.String())
	}
}
