package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"benchscope/internal/util"
)

func (m *Model) View() string {
	var v string
	switch {
	case m.store == nil && m.loadErr != nil:
		v = m.renderFailure()
	case m.store == nil:
		v = m.renderLoading()
	default:
		v = m.renderMain()
	}
	if m.modalActive {
		v = overlay(lipgloss.NewStyle().Faint(true).Render(v), m.renderModal())
	}
	return v
}

func (m *Model) renderLoading() string {
	srcs := m.cfg.Sources
	if len(srcs) == 0 {
		srcs = []string{"default locations"}
	}
	red := make([]string, len(srcs))
	for i, s := range srcs {
		red[i] = util.RedactURL(s)
	}
	body := fmt.Sprintf("%s Loading datasets from %s", m.spin.View(), strings.Join(red, ", "))
	return lipgloss.Place(m.termWidth, m.termHeight, lipgloss.Center, lipgloss.Center, body)
}

func (m *Model) renderFailure() string {
	lines := []string{
		m.styles.Error.Render("Could not load the dataset"),
		"",
		wrap(m.loadErr.Error(), max(40, m.termWidth-10)),
	}
	if len(m.attempts) > 0 {
		lines = append(lines, "", "Tried:")
		for _, a := range m.attempts {
			status := fmt.Sprintf("%d records", a.Records)
			if a.Err != nil {
				status = a.Err.Error()
			}
			lines = append(lines, fmt.Sprintf("  %s (%s): %s", util.RedactURL(a.Source), a.Elapsed.Round(time.Millisecond), status))
		}
	}
	hint := "[r]=retry  [L]=logs  [q]=quit"
	if m.loading {
		hint = m.spin.View() + " retrying..."
	}
	lines = append(lines, "", m.styles.Help.Render(hint))
	box := m.styles.PopupBox.Render(strings.Join(lines, "\n"))
	return lipgloss.Place(m.termWidth, m.termHeight, lipgloss.Center, lipgloss.Center, box)
}

func (m *Model) renderMain() string {
	title := m.styles.Title.Render("benchscope")
	count := fmt.Sprintf("%d of %d datasets", len(m.filtered), m.store.Len())
	header := title + "  " + count
	if n := m.sel.ActiveCount(); n > 0 {
		header += "  " + m.styles.Chip.Render(fmt.Sprintf("%d active", n)) + m.styles.Help.Render(" [C]=clear all")
	}

	var input string
	switch m.focus {
	case focusQuery:
		input = m.query.View() + m.styles.Help.Render("    [enter]=apply [esc]=done")
	case focusExpr:
		input = m.expr.View() + m.styles.Help.Render("    [enter]=apply [esc]=cancel")
	default:
		parts := []string{}
		if q := m.query.Value(); q != "" {
			parts = append(parts, "search: "+q)
		}
		if e := m.sel.Expr(); e != "" {
			parts = append(parts, "expr: "+e)
		}
		if len(parts) == 0 {
			input = m.styles.Help.Render("[/]=search [f]=facets [x]=expression")
		} else {
			input = strings.Join(parts, "   ")
		}
	}

	panelStyle := m.styles.Panel
	if m.focus == focusFacets || m.focus == focusFacetSearch {
		panelStyle = m.styles.PanelFocus
	}
	bodyHeight := m.tbl.Height() + 1
	panel := panelStyle.Width(facetPanelWidth).Height(bodyHeight).Render(m.renderFacets(bodyHeight))

	var right string
	if len(m.filtered) == 0 {
		right = lipgloss.Place(m.tbl.Width(), bodyHeight, lipgloss.Center, lipgloss.Center,
			m.styles.Help.Render("No datasets match the current filters"))
	} else {
		right = m.tbl.View()
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, panel, " ", right)

	busy := ""
	if m.loading || m.netBusy {
		busy = m.spin.View() + " "
	}
	status := fmt.Sprintf("%spage %d/%d | theme:%s | [?]=help | %s", busy, m.page+1, m.pageCount(), m.theme, m.lastMsg)
	return lipgloss.JoinVertical(lipgloss.Left, header, input, body, m.styles.Status.Render(status))
}

func (m *Model) renderHelp() string {
	if len(m.helpItems) == 0 {
		m.helpItems = m.buildHelpItems()
	}
	if m.helpSel < 0 {
		m.helpSel = 0
	}
	if m.helpSel >= len(m.helpItems) {
		m.helpSel = len(m.helpItems) - 1
	}
	lines := []string{"Shortcuts:"}
	group := ""
	selLine := 0
	for i, it := range m.helpItems {
		if it.group != group {
			group = it.group
			lines = append(lines, "", group+":")
		}
		prefix := "  "
		if i == m.helpSel {
			prefix = "> "
			selLine = len(lines)
		}
		lines = append(lines, fmt.Sprintf("%s[%s] %s", prefix, keyLabel(it.key), it.text))
	}
	// keep the selection inside the viewport
	if m.modalVP.Height > 0 {
		top := m.modalVP.YOffset
		if selLine <= top {
			m.modalVP.YOffset = max(0, selLine-1)
		} else if selLine >= top+m.modalVP.Height-1 {
			m.modalVP.YOffset = max(0, selLine-m.modalVP.Height+2)
		}
	}
	return m.styles.Help.Render(strings.Join(lines, "\n"))
}

func (m *Model) openModal(kind modalKind, title, body string) {
	m.modalActive = true
	m.modalKind = kind
	m.modalTitle = title
	m.modalBody = body
	m.resizeModal()
}

func (m *Model) openHelpModal() {
	m.helpItems = m.buildHelpItems()
	m.helpSel = 0
	m.openModal(modalHelp, "Help", m.renderHelp())
}

func (m *Model) openDetail() {
	r, ok := m.current()
	if !ok {
		return
	}
	m.modalRecord = r
	m.openModal(modalDetail, "Dataset", m.renderDetail(r, m.modalWidth()))
}

func (m *Model) openRaw() {
	r, ok := m.current()
	if m.modalActive && m.modalRecord != nil {
		r, ok = m.modalRecord, true
	}
	if !ok {
		return
	}
	m.modalRecord = r
	m.openModal(modalRaw, "Raw Record", recordJSON(r, m.styles))
}

func (m *Model) modalWidth() int {
	return max(20, m.termWidth-14)
}

func (m *Model) resizeModal() {
	w := max(20, m.termWidth-6)
	h := max(5, m.termHeight-6)
	m.modalVP = viewport.New(w-4, h-4)
	if m.modalKind == modalDetail && m.modalRecord != nil {
		m.modalBody = m.renderDetail(m.modalRecord, m.modalWidth())
	}
	m.modalVP.SetContent(m.modalBody)
}

func (m *Model) renderModal() string {
	var content string
	switch m.modalKind {
	case modalHelp:
		m.modalVP.SetContent(m.renderHelp())
		content = m.modalVP.View() + "\n[esc]=close  [enter]=run"
	case modalDetail:
		content = m.modalVP.View() + "\n[esc/enter]=close  [v]=raw  [i]=explain  [c]=copy"
	case modalRaw, modalExplain:
		content = m.modalVP.View() + "\n[esc/enter]=close  [c]=copy"
	case modalLogs:
		src := ""
		if m.store != nil {
			src = util.RedactURL(m.store.Source())
		}
		header := []string{
			"Status:",
			fmt.Sprintf("source: %s  rows: %d/%d  page: %d/%d", src, len(m.filtered), m.storeLen(), m.page+1, m.pageCount()),
			fmt.Sprintf("selection: %s", m.sel.String()),
		}
		if m.engine != nil {
			hits, misses := m.engine.Stats()
			header = append(header, fmt.Sprintf("filter memo: %d hits, %d misses", hits, misses))
		}
		content = m.styles.Help.Render(strings.Join(header, "\n")) + "\n" + m.modalVP.View() + "\n[esc/enter]=close  [c]=copy"
	default:
		content = m.modalVP.View() + "\n[esc/enter]=close"
	}
	boxW := max(20, m.termWidth-6)
	title := m.styles.PopupTitle.Render(m.modalTitle)
	body := m.styles.PopupBox.Width(boxW).Render(title + "\n" + content)
	return lipgloss.Place(m.termWidth, m.termHeight, lipgloss.Center, lipgloss.Center, body)
}

func (m *Model) storeLen() int {
	if m.store == nil {
		return 0
	}
	return m.store.Len()
}
