package ui

import (
	"fmt"
	"strings"

	"benchscope/internal/facet"
)

func (m *Model) category() facet.Category { return facet.Categories[m.facetCat] }

func (m *Model) visibleOptions() (shown []string, total int) {
	c := m.category()
	return facet.Narrow(m.options.Get(c), m.facetSearch[c], facet.DefaultLimit)
}

func (m *Model) switchCategory(delta int) {
	n := len(facet.Categories)
	m.facetCat = ((m.facetCat+delta)%n + n) % n
	m.facetCursor = 0
	m.facetInput.SetValue(m.facetSearch[m.category()])
}

func (m *Model) moveFacetCursor(delta int) {
	shown, _ := m.visibleOptions()
	m.facetCursor += delta
	if m.facetCursor >= len(shown) {
		m.facetCursor = len(shown) - 1
	}
	if m.facetCursor < 0 {
		m.facetCursor = 0
	}
}

// toggleOption flips the option under the facet cursor and re-filters.
func (m *Model) toggleOption() {
	shown, _ := m.visibleOptions()
	if m.facetCursor < 0 || m.facetCursor >= len(shown) {
		return
	}
	c, v := m.category(), shown[m.facetCursor]
	m.sel.Toggle(c, v, !m.sel.Has(c, v))
	m.page = 0
	m.refresh()
}

func (m *Model) setFacetSearch(s string) {
	m.facetSearch[m.category()] = s
	m.facetCursor = 0
}

func categoryTitle(c facet.Category) string {
	switch c {
	case facet.Modality:
		return "Modality"
	case facet.Area:
		return "Area"
	case facet.Year:
		return "Year"
	}
	return "Task"
}

func (m *Model) renderFacets(height int) string {
	var b strings.Builder
	tabs := make([]string, 0, len(facet.Categories))
	for i, c := range facet.Categories {
		label := categoryTitle(c)
		if n := len(m.sel.Set(c)); n > 0 {
			label += fmt.Sprintf("(%d)", n)
		}
		if i == m.facetCat {
			tabs = append(tabs, m.styles.TabActive.Render(label))
		} else {
			tabs = append(tabs, m.styles.TabInactive.Render(label))
		}
	}
	b.WriteString(strings.Join(tabs, " "))
	b.WriteString("\n")
	if m.focus == focusFacetSearch {
		b.WriteString(m.facetInput.View())
	} else if s := m.facetSearch[m.category()]; s != "" {
		b.WriteString(m.styles.Help.Render("> " + s))
	} else {
		b.WriteString(m.styles.Help.Render("[/]=search options"))
	}
	b.WriteString("\n")

	shown, total := m.visibleOptions()
	c := m.category()
	if len(shown) == 0 {
		b.WriteString(m.styles.Help.Render("no options"))
	}
	rows := height - 3
	start := 0
	if rows > 0 && m.facetCursor >= rows {
		start = m.facetCursor - rows + 1
	}
	for i := start; i < len(shown) && (rows <= 0 || i < start+rows); i++ {
		v := shown[i]
		box := "[ ]"
		if m.sel.Has(c, v) {
			box = m.styles.Checked.Render("[x]")
		}
		label := truncate(v, facetPanelWidth-12)
		if m.focus == focusFacets && i == m.facetCursor {
			label = m.styles.Cursor.Render(label)
		}
		count := 0
		if m.engine != nil {
			count = m.engine.Index().Count(c, v)
		}
		fmt.Fprintf(&b, "%s %s %s\n", box, label, m.styles.Count.Render(fmt.Sprint(count)))
	}
	if total > len(shown) {
		b.WriteString(m.styles.Help.Render(fmt.Sprintf("Showing %d of %d", len(shown), total)))
	}
	return strings.TrimRight(b.String(), "\n")
}
