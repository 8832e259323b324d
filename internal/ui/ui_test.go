package ui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"benchscope/internal/config"
	"benchscope/internal/facet"
	"benchscope/internal/ingest"
	"benchscope/internal/model"
	"benchscope/internal/prefs"
)

const fixture = "../../testdata/datasets.csv"

func newTestModel(t *testing.T, sources ...string) *Model {
	t.Helper()
	cfg := config.Default()
	cfg.Sources = sources
	cfg.Debounce = 300 * time.Millisecond
	cfg.Timeout = 5 * time.Second
	cfg.NoCache = true
	cfg.NoPrefs = true
	m := initialModel(context.Background(), cfg, Options{})
	m.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	return m
}

func loaded(t *testing.T) *Model {
	t.Helper()
	m := newTestModel(t, fixture)
	m.Update(m.startLoad()())
	require.NotNil(t, m.store)
	return m
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func press(m *Model, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

func filteredIDs(m *Model) []string {
	out := make([]string, len(m.filtered))
	for i, r := range m.filtered {
		out[i] = r.ID
	}
	return out
}

func TestLoadPopulatesView(t *testing.T) {
	m := loaded(t)
	assert.Len(t, m.filtered, 4)
	assert.Equal(t, 4, m.store.Len())
	assert.Contains(t, m.lastMsg, "loaded 4 datasets")
	assert.Contains(t, m.View(), "4 of 4 datasets")
}

func TestRowsFitColumnWidths(t *testing.T) {
	m := loaded(t)
	m.Update(tea.WindowSizeMsg{Width: 90, Height: 30})
	require.Len(t, m.cols, 6)
	rows := m.tbl.Rows()
	require.Len(t, rows, 4)
	for _, row := range rows {
		for j, cell := range row {
			assert.LessOrEqual(t, utf8.RuneCountInString(cell), m.cols[j].Width, "column %s", m.cols[j].Title)
		}
	}
	assert.Equal(t, "MNIST", rows[0][0])

	m.Update(tea.WindowSizeMsg{Width: 260, Height: 30})
	assert.Equal(t, "3D Reconstruction, Semantic Segmentation", m.tbl.Rows()[2][1])
}

func TestStaleLoadIsDiscarded(t *testing.T) {
	m := newTestModel(t, fixture)
	first := m.startLoad()
	second := m.startLoad()
	require.Equal(t, 2, m.loadSeq)

	stale := model.NewStore([]model.Record{{ID: "stale"}}, "old")
	m.Update(loadedMsg{seq: 1, res: &ingest.Result{Store: stale}})
	assert.Nil(t, m.store, "a superseded result must not be applied")
	assert.True(t, m.loading)

	// the first load was cancelled when the second started
	msg := first().(loadedMsg)
	assert.ErrorIs(t, msg.err, context.Canceled)
	m.Update(msg)
	assert.Nil(t, m.store)
	assert.Nil(t, m.loadErr)

	m.Update(second())
	require.NotNil(t, m.store)
	assert.Equal(t, 4, m.store.Len())
	assert.False(t, m.loading)
}

func TestFailureScreenAndRetry(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.csv")
	m := newTestModel(t, missing)
	m.Update(m.startLoad()())
	require.Error(t, m.loadErr)
	assert.True(t, errors.Is(m.loadErr, ingest.ErrSourceUnavailable))
	assert.Len(t, m.attempts, 1)
	v := m.View()
	assert.Contains(t, v, "Could not load the dataset")
	assert.Contains(t, v, "retry")

	// filter keys are inert without data
	assert.Nil(t, press(m, runes("/")))
	assert.Equal(t, focusTable, m.focus)

	cmd := press(m, runes("r"))
	require.NotNil(t, cmd)
	assert.True(t, m.loading)
	assert.Equal(t, 2, m.loadSeq)
}

func TestDebounceDropsStaleTicks(t *testing.T) {
	m := loaded(t)
	press(m, runes("/"))
	require.Equal(t, focusQuery, m.focus)

	for _, r := range "mni" {
		require.NotNil(t, press(m, runes(string(r))))
	}
	assert.Equal(t, 3, m.queryTag)
	assert.Equal(t, "", m.sel.Query(), "nothing applies before the quiet period")

	m.Update(queryTickMsg{tag: 1})
	m.Update(queryTickMsg{tag: 2})
	assert.Equal(t, "", m.sel.Query())
	assert.Len(t, m.filtered, 4)

	m.Update(queryTickMsg{tag: 3})
	assert.Equal(t, "mni", m.sel.Query())
	assert.Equal(t, []string{"MNIST"}, filteredIDs(m))
}

func TestEnterAppliesQueryImmediately(t *testing.T) {
	m := loaded(t)
	press(m, runes("/"), runes("speech"))
	pending := m.queryTag
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, focusTable, m.focus)
	assert.Equal(t, []string{"LibriSpeech"}, filteredIDs(m))

	// the tick armed before enter is now stale
	press(m, runes("/"), tea.KeyMsg{Type: tea.KeyBackspace})
	m.Update(queryTickMsg{tag: pending})
	assert.Equal(t, "speech", m.sel.Query())
}

func TestZeroDebounceAppliesOnKeystroke(t *testing.T) {
	m := loaded(t)
	m.cfg.Debounce = 0
	press(m, runes("/"), runes("squad"))
	assert.Equal(t, []string{"SQuAD"}, filteredIDs(m))
}

func TestFacetPanelToggles(t *testing.T) {
	m := loaded(t)
	press(m, runes("f"))
	require.Equal(t, focusFacets, m.focus)
	require.Equal(t, facet.Task, m.category())

	shown, total := m.visibleOptions()
	assert.Equal(t, 5, total)
	assert.Equal(t, "3D Reconstruction", shown[0])

	press(m, tea.KeyMsg{Type: tea.KeySpace})
	assert.Equal(t, []string{"ShapeNet"}, filteredIDs(m))
	assert.True(t, m.sel.Has(facet.Task, "3D Reconstruction"))

	press(m, tea.KeyMsg{Type: tea.KeyRight})
	require.Equal(t, facet.Modality, m.category())
	// 3D, Audio, Images, Texts
	press(m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeySpace})
	assert.True(t, m.sel.Has(facet.Modality, "Images"))
	assert.Equal(t, []string{"ShapeNet"}, filteredIDs(m))
	assert.Equal(t, 2, m.sel.ActiveCount())
	assert.Contains(t, m.View(), "2 active")

	// toggling again removes the value
	press(m, tea.KeyMsg{Type: tea.KeySpace})
	assert.False(t, m.sel.Has(facet.Modality, "Images"))

	press(m, runes("C"))
	assert.True(t, m.sel.IsEmpty())
	assert.Len(t, m.filtered, 4)
}

func TestFacetOptionSearch(t *testing.T) {
	m := loaded(t)
	press(m, runes("f"), runes("/"))
	require.Equal(t, focusFacetSearch, m.focus)
	press(m, runes("speech"))
	shown, total := m.visibleOptions()
	assert.Equal(t, []string{"Speech Recognition"}, shown)
	assert.Equal(t, 1, total)

	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, focusFacets, m.focus)
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, []string{"LibriSpeech"}, filteredIDs(m))
}

func TestExpressionInput(t *testing.T) {
	m := loaded(t)
	press(m, runes("x"), runes("year_num > 2015"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, focusTable, m.focus)
	assert.Equal(t, []string{"SQuAD"}, filteredIDs(m))

	press(m, runes("x"), tea.KeyMsg{Type: tea.KeyCtrlU}, runes("(("), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, focusExpr, m.focus)
	assert.Contains(t, m.lastMsg, "invalid expression")
	assert.Equal(t, "year_num > 2015", m.sel.Expr())

	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, "year_num > 2015", m.expr.Value())
}

func TestPagination(t *testing.T) {
	m := newTestModel(t)
	m.cfg.PageSize = 5
	m.layout()
	recs := make([]model.Record, 12)
	for i := range recs {
		recs[i] = model.Record{ID: fmt.Sprintf("ds-%02d", i), Task: "T"}
	}
	m.setStore(model.NewStore(recs, "mem"))
	assert.Equal(t, 3, m.pageCount())
	assert.Len(t, m.tbl.Rows(), 5)

	press(m, runes("]"), runes("]"))
	assert.Equal(t, 2, m.page)
	assert.Len(t, m.tbl.Rows(), 2)
	r, ok := m.current()
	require.True(t, ok)
	assert.Equal(t, "ds-10", r.ID)

	press(m, runes("]"))
	assert.Equal(t, 2, m.page, "stays on the last page")
	press(m, runes("["))
	assert.Equal(t, 1, m.page)

	m.cfg.Debounce = 0
	press(m, runes("/"), runes("ds-0"))
	assert.Equal(t, 0, m.page)
	assert.Len(t, m.filtered, 10)
}

func TestDetailModal(t *testing.T) {
	m := loaded(t)
	press(m, runes("G"))
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.modalActive)
	assert.Equal(t, modalDetail, m.modalKind)
	assert.Contains(t, m.modalBody, "LibriSpeech")
	assert.Contains(t, m.modalBody, "Speech Recognition")

	press(m, runes("v"))
	assert.Equal(t, modalRaw, m.modalKind)
	assert.Contains(t, stripANSI(m.modalBody), `"dataset_id": "LibriSpeech"`)

	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.modalActive)
}

func TestRenderDetailPlaceholders(t *testing.T) {
	m := newTestModel(t)
	r := &model.Record{ID: "X", Task: "Parsing", Subtask: "Parsing", BenchmarkURLs: "parsing-on-x"}
	out := stripANSI(m.renderDetail(r, 80))
	assert.Contains(t, out, "No description available")
	assert.Contains(t, out, "Area: N/A")
	assert.Contains(t, out, "https://paperswithcode.com/sota/parsing-on-x")
	assert.Equal(t, 1, countOf(out, "Parsing "), "subtask equal to task is not repeated")
}

func countOf(s, sub string) int {
	n := 0
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			n++
		}
	}
	return n
}

func TestThemeTogglePersists(t *testing.T) {
	m := loaded(t)
	path := filepath.Join(t.TempDir(), "prefs.toml")
	m.opts.Prefs = prefs.NewStore(path)
	m.cfg.NoPrefs = false

	cmd := press(m, runes("T"))
	assert.Equal(t, config.ThemeLight, m.theme)
	require.NotNil(t, cmd)
	assert.Nil(t, cmd())

	p, err := prefs.NewStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "light", p.Theme)
}

func TestExplainRequiresKey(t *testing.T) {
	m := loaded(t)
	assert.Nil(t, press(m, runes("i")))
	assert.Contains(t, m.lastMsg, "OPENAI_API_KEY")

	m.cfg.Offline = true
	press(m, runes("i"))
	assert.Contains(t, m.lastMsg, "offline")
}

func TestExportWritesFilteredView(t *testing.T) {
	m := loaded(t)
	assert.Nil(t, press(m, runes("e")))
	assert.Contains(t, m.lastMsg, "--export")

	m.cfg.ExportFormat = "csv"
	m.cfg.ExportOut = filepath.Join(t.TempDir(), "out.csv")
	m.cfg.Debounce = 0
	press(m, runes("/"), runes("squad"), tea.KeyMsg{Type: tea.KeyEsc})
	cmd := press(m, runes("e"))
	require.NotNil(t, cmd)
	m.Update(cmd())
	assert.Contains(t, m.lastMsg, "exported 1 datasets")
}

func TestWatchReloadSupersedes(t *testing.T) {
	m := loaded(t)
	ch := make(chan string, 1)
	m.watch = ch
	cmd := press(m, sourceChangedMsg{path: fixture})
	require.NotNil(t, cmd)
	assert.True(t, m.loading)
	assert.Equal(t, 2, m.loadSeq)
	close(ch)
}
