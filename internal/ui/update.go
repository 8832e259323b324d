package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"benchscope/internal/config"
	"benchscope/internal/export"
	"benchscope/internal/ingest"
	"benchscope/internal/model"
	"benchscope/internal/util"
	"benchscope/internal/util/logx"
)

func (m *Model) buildHelpItems() []helpItem {
	km := m.keymap
	return []helpItem{
		{group: "Navigation", text: "Previous row", key: tea.Key{Type: tea.KeyUp}},
		{group: "Navigation", text: "Next row", key: tea.Key{Type: tea.KeyDown}},
		{group: "Navigation", text: "First row", key: km.Top},
		{group: "Navigation", text: "Last row", key: km.Bottom},
		{group: "Navigation", text: "Next page", key: km.NextPage},
		{group: "Navigation", text: "Previous page", key: km.PrevPage},

		{group: "Filter", text: "Search text", key: km.Search},
		{group: "Filter", text: "Facet panel", key: km.Facets},
		{group: "Filter", text: "Switch focus table/facets", key: km.Focus},
		{group: "Filter", text: "Expression filter", key: km.Expr},
		{group: "Filter", text: "Clear all filters", key: km.ClearAll},

		{group: "Views", text: "Dataset details", key: km.Detail},
		{group: "Views", text: "Raw record", key: km.ViewRaw},
		{group: "Views", text: "Application logs", key: km.AppLogs},

		{group: "Control", text: "Export filtered view", key: km.Export},
		{group: "Control", text: "Copy record", key: km.CopyRecord},
		{group: "Control", text: "Toggle theme", key: km.Theme},
		{group: "Control", text: "Reload data", key: km.Reload},
		{group: "Control", text: "Help", key: km.Help},
		{group: "Control", text: "Quit", key: km.Quit},

		{group: "AI", text: "Explain dataset (OpenAI)", key: km.Explain},
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth, m.termHeight = msg.Width, msg.Height
		m.layout()
		if m.modalActive {
			m.resizeModal()
		}
		return m, nil
	case loadedMsg:
		m.onLoaded(msg)
		return m, nil
	case queryTickMsg:
		if msg.tag != m.queryTag {
			return m, nil
		}
		m.applyQuery()
		return m, nil
	case sourceChangedMsg:
		logx.Infof("watch: %s changed, reloading", msg.path)
		m.lastMsg = "source changed, reloading"
		return m, tea.Batch(m.startLoad(), waitForChange(m.watch))
	case watchClosedMsg:
		m.watch = nil
		return m, nil
	case explainMsg:
		m.netBusy = false
		if msg.err != nil {
			m.lastMsg = fmt.Sprintf("explain failed: %v", msg.err)
			logx.Warnf("openai: explain %s: %v", msg.id, msg.err)
			return m, nil
		}
		logx.Infof("openai: explained %s", msg.id)
		m.openModal(modalExplain, "Explain: "+msg.id, wrap(msg.text, m.modalWidth()))
		return m, nil
	case exportDoneMsg:
		if msg.err != nil {
			m.lastMsg = fmt.Sprintf("export failed: %v", msg.err)
			logx.Errorf("export: %v", msg.err)
		} else {
			m.lastMsg = fmt.Sprintf("exported %d datasets to %s", msg.n, msg.path)
			logx.Infof("export: wrote %d records to %s", msg.n, msg.path)
		}
		return m, nil
	case toastMsg:
		m.lastMsg = msg.text
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.onKey(msg)
	}
	return m, nil
}

// onLoaded applies a finished load unless a newer one superseded it.
func (m *Model) onLoaded(msg loadedMsg) {
	if msg.seq != m.loadSeq {
		logx.Debugf("load #%d: discarded, superseded by #%d", msg.seq, m.loadSeq)
		return
	}
	m.loading = false
	if msg.err != nil {
		if !errors.Is(msg.err, ingest.ErrSourceUnavailable) && errors.Is(msg.err, context.Canceled) {
			return
		}
		var ue *ingest.UnavailableError
		if errors.As(msg.err, &ue) {
			m.attempts = ue.Attempts
		}
		m.loadErr = msg.err
		logx.Errorf("load #%d: %v", msg.seq, msg.err)
		if m.store != nil {
			m.lastMsg = "reload failed; keeping previous data"
		}
		return
	}
	m.loadErr = nil
	m.attempts = msg.res.Attempts
	m.setStore(msg.res.Store)
	m.lastMsg = fmt.Sprintf("loaded %d datasets from %s", msg.res.Store.Len(), util.RedactURL(msg.res.Store.Source()))
	if msg.res.FromCache {
		m.lastMsg += " (cached)"
	}
}

// scheduleQuery arms a debounce tick for the current query text. Any tick
// armed earlier becomes stale.
func (m *Model) scheduleQuery() tea.Cmd {
	m.queryTag++
	if m.cfg.Debounce <= 0 {
		m.applyQuery()
		return nil
	}
	tag := m.queryTag
	return tea.Tick(m.cfg.Debounce, func(time.Time) tea.Msg { return queryTickMsg{tag: tag} })
}

func (m *Model) applyQuery() {
	q := m.query.Value()
	if q == m.sel.Query() {
		return
	}
	m.sel.SetQuery(q)
	m.page = 0
	m.refresh()
}

func (m *Model) clearAll() {
	m.sel.ClearAll()
	m.queryTag++
	m.query.SetValue("")
	m.expr.SetValue("")
	for k := range m.facetSearch {
		delete(m.facetSearch, k)
	}
	m.facetInput.SetValue("")
	m.facetCursor = 0
	m.page = 0
	m.refresh()
	m.lastMsg = "filters cleared"
}

func isTextKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyRunes, tea.KeySpace, tea.KeyBackspace, tea.KeyDelete, tea.KeyLeft, tea.KeyRight,
		tea.KeyHome, tea.KeyEnd, tea.KeyCtrlA, tea.KeyCtrlE, tea.KeyCtrlU, tea.KeyCtrlW, tea.KeyCtrlK:
		return true
	}
	return false
}

func (m *Model) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.modalActive {
		return m.onModalKey(msg)
	}

	switch m.focus {
	case focusQuery:
		switch msg.Type {
		case tea.KeyEnter:
			m.queryTag++
			m.applyQuery()
			m.blurInputs()
			return m, nil
		case tea.KeyEsc:
			m.blurInputs()
			return m, nil
		}
		if isTextKey(msg) {
			before := m.query.Value()
			var cmd tea.Cmd
			m.query, cmd = m.query.Update(msg)
			if m.query.Value() != before {
				return m, tea.Batch(cmd, m.scheduleQuery())
			}
			return m, cmd
		}
	case focusExpr:
		switch msg.Type {
		case tea.KeyEnter:
			if err := m.sel.SetExpr(m.expr.Value()); err != nil {
				m.lastMsg = err.Error()
				return m, nil
			}
			m.page = 0
			m.refresh()
			m.blurInputs()
			return m, nil
		case tea.KeyEsc:
			m.expr.SetValue(m.sel.Expr())
			m.blurInputs()
			return m, nil
		}
		if isTextKey(msg) {
			var cmd tea.Cmd
			m.expr, cmd = m.expr.Update(msg)
			return m, cmd
		}
	case focusFacetSearch:
		switch msg.Type {
		case tea.KeyEnter, tea.KeyEsc, tea.KeyUp, tea.KeyDown:
			m.facetInput.Blur()
			m.focus = focusFacets
			if msg.Type == tea.KeyUp || msg.Type == tea.KeyDown {
				break
			}
			return m, nil
		default:
			if isTextKey(msg) {
				var cmd tea.Cmd
				m.facetInput, cmd = m.facetInput.Update(msg)
				m.setFacetSearch(m.facetInput.Value())
				return m, cmd
			}
		}
		fallthrough
	case focusFacets:
		switch {
		case msg.Type == tea.KeyUp:
			m.moveFacetCursor(-1)
			return m, nil
		case msg.Type == tea.KeyDown:
			m.moveFacetCursor(1)
			return m, nil
		case msg.Type == tea.KeyLeft:
			m.switchCategory(-1)
			return m, nil
		case msg.Type == tea.KeyRight:
			m.switchCategory(1)
			return m, nil
		case msg.Type == tea.KeyEnter || msg.Type == tea.KeySpace || keyMatches(msg, m.keymap.Toggle):
			m.toggleOption()
			return m, nil
		case keyMatches(msg, m.keymap.Search):
			m.focus = focusFacetSearch
			m.facetInput.SetValue(m.facetSearch[m.category()])
			return m, m.facetInput.Focus()
		case msg.Type == tea.KeyEsc || keyMatches(msg, m.keymap.Focus):
			m.focus = focusTable
			return m, nil
		}
	}

	if m.store == nil {
		switch {
		case keyMatches(msg, m.keymap.Reload):
			if m.loading {
				return m, nil
			}
			m.lastMsg = ""
			return m, m.startLoad()
		case keyMatches(msg, m.keymap.AppLogs):
			m.openModal(modalLogs, "Application Logs", logx.Dump())
			return m, nil
		case keyMatches(msg, m.keymap.Quit):
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case keyMatches(msg, m.keymap.Search):
		m.focus = focusQuery
		return m, m.query.Focus()
	case keyMatches(msg, m.keymap.Facets), keyMatches(msg, m.keymap.Focus):
		m.blurInputs()
		m.focus = focusFacets
		return m, nil
	case keyMatches(msg, m.keymap.Expr):
		m.focus = focusExpr
		m.expr.SetValue(m.sel.Expr())
		return m, m.expr.Focus()
	case keyMatches(msg, m.keymap.ClearAll):
		m.clearAll()
		return m, nil
	case keyMatches(msg, m.keymap.NextPage), msg.Type == tea.KeyRight:
		m.setPage(m.page + 1)
		return m, nil
	case keyMatches(msg, m.keymap.PrevPage), msg.Type == tea.KeyLeft:
		m.setPage(m.page - 1)
		return m, nil
	case keyMatches(msg, m.keymap.Top):
		m.tbl.SetCursor(0)
		return m, nil
	case keyMatches(msg, m.keymap.Bottom):
		if n := len(m.tbl.Rows()); n > 0 {
			m.tbl.SetCursor(n - 1)
		}
		return m, nil
	case keyMatches(msg, m.keymap.Detail):
		m.openDetail()
		return m, nil
	case keyMatches(msg, m.keymap.ViewRaw):
		m.openRaw()
		return m, nil
	case keyMatches(msg, m.keymap.AppLogs):
		m.openModal(modalLogs, "Application Logs", logx.Dump())
		return m, nil
	case keyMatches(msg, m.keymap.Explain):
		if r, ok := m.current(); ok {
			return m, m.explain(r)
		}
		return m, nil
	case keyMatches(msg, m.keymap.Export):
		return m, m.export()
	case keyMatches(msg, m.keymap.Theme):
		return m, m.toggleTheme()
	case keyMatches(msg, m.keymap.Reload):
		m.lastMsg = "reloading..."
		return m, m.startLoad()
	case keyMatches(msg, m.keymap.CopyRecord):
		if r, ok := m.current(); ok {
			copyToClipboard(r.PrettyJSON())
			m.lastMsg = "copied to clipboard"
		}
		return m, nil
	case keyMatches(msg, m.keymap.Help):
		m.openHelpModal()
		return m, nil
	case keyMatches(msg, m.keymap.Quit):
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.tbl, cmd = m.tbl.Update(msg)
	if n := len(m.tbl.Rows()); n > 0 && m.tbl.Cursor() >= n {
		m.tbl.SetCursor(n - 1)
	}
	return m, cmd
}

func (m *Model) blurInputs() {
	m.query.Blur()
	m.expr.Blur()
	m.facetInput.Blur()
	m.focus = focusTable
}

func (m *Model) onModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.modalKind == modalHelp {
		switch {
		case msg.Type == tea.KeyUp:
			if m.helpSel > 0 {
				m.helpSel--
				m.modalVP.SetContent(m.renderHelp())
			}
		case msg.Type == tea.KeyDown:
			if m.helpSel+1 < len(m.helpItems) {
				m.helpSel++
				m.modalVP.SetContent(m.renderHelp())
			}
		case msg.Type == tea.KeyEnter:
			m.modalActive = false
			if len(m.helpItems) > 0 {
				return m, keyCmd(m.helpItems[m.helpSel].key)
			}
		case msg.Type == tea.KeyEsc, keyMatches(msg, m.keymap.Quit), keyMatches(msg, m.keymap.Help):
			m.modalActive = false
		}
		return m, nil
	}
	switch {
	case msg.Type == tea.KeyEsc || msg.Type == tea.KeyEnter || keyMatches(msg, m.keymap.Quit):
		m.modalActive = false
		return m, nil
	case keyMatches(msg, m.keymap.CopyRecord):
		copyToClipboard(m.modalBody)
		m.lastMsg = "copied to clipboard"
		return m, nil
	case m.modalKind == modalDetail && keyMatches(msg, m.keymap.ViewRaw):
		m.openRaw()
		return m, nil
	case m.modalKind == modalDetail && keyMatches(msg, m.keymap.Explain):
		if m.modalRecord != nil {
			return m, m.explain(m.modalRecord)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.modalVP, cmd = m.modalVP.Update(msg)
	return m, cmd
}

func (m *Model) explain(r *model.Record) tea.Cmd {
	if m.cfg.Offline {
		m.lastMsg = "Explain (OpenAI) unavailable in offline mode"
		return nil
	}
	client := m.opts.AI
	if !client.Enabled() {
		m.lastMsg = "set OPENAI_API_KEY to enable explain"
		return nil
	}
	if m.netBusy {
		return nil
	}
	m.netBusy = true
	m.lastMsg = "OpenAI: explaining " + r.ID + "..."
	ctx, rec := m.ctx, *r
	return func() tea.Msg {
		text, err := client.Explain(ctx, rec)
		return explainMsg{id: rec.ID, text: text, err: err}
	}
}

func (m *Model) export() tea.Cmd {
	if m.cfg.ExportFormat == "" || m.cfg.ExportOut == "" {
		m.lastMsg = "use --export and --out to export"
		logx.Warnf("export: missing --export/--out flags")
		return nil
	}
	recs, out, format := m.filtered, m.cfg.ExportOut, export.Format(m.cfg.ExportFormat)
	return func() tea.Msg {
		err := export.ToFile(out, format, recs)
		return exportDoneMsg{n: len(recs), path: out, err: err}
	}
}

// toggleTheme flips the theme and persists it when preferences are on.
func (m *Model) toggleTheme() tea.Cmd {
	m.theme = m.theme.Toggle()
	m.styles = NewStyles(m.theme == config.ThemeDark)
	m.tbl.SetStyles(m.tableStyles())
	m.lastMsg = "theme: " + string(m.theme)
	store := m.opts.Prefs
	if store == nil || m.cfg.NoPrefs {
		return nil
	}
	theme := string(m.theme)
	return func() tea.Msg {
		p, err := store.Load()
		if err != nil {
			logx.Warnf("prefs: %v", err)
		}
		p.Theme = theme
		if err := store.Save(p); err != nil {
			logx.Warnf("prefs: save %s: %v", store.Path(), err)
			return toastMsg{text: "could not save theme preference"}
		}
		return nil
	}
}
