package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/table"

	"benchscope/internal/facet"
	"benchscope/internal/filter"
	"benchscope/internal/model"
	"benchscope/internal/util/logx"
)

const facetPanelWidth = 36

// setStore swaps in a freshly loaded store. The selection is kept so a
// reload does not discard what the user picked.
func (m *Model) setStore(s *model.Store) {
	defer logx.Since("set store", time.Now())
	m.store = s
	m.engine = filter.NewEngine(s)
	m.options = facet.ExtractAll(s.Records())
	m.facetCursor = 0
	m.refresh()
}

// refresh recomputes the filtered view and the visible page.
func (m *Model) refresh() {
	if m.engine == nil {
		m.filtered = nil
		m.tbl.SetRows(nil)
		return
	}
	m.filtered = m.engine.Filter(m.sel)
	if m.page >= m.pageCount() {
		m.page = m.pageCount() - 1
	}
	if m.page < 0 {
		m.page = 0
	}
	m.fillTable()
}

func (m *Model) pageSize() int {
	if m.cfg.PageSize <= 0 {
		return 25
	}
	return m.cfg.PageSize
}

func (m *Model) pageCount() int {
	n := len(m.filtered)
	if n == 0 {
		return 1
	}
	return (n + m.pageSize() - 1) / m.pageSize()
}

func (m *Model) pageBounds() (lo, hi int) {
	lo = m.page * m.pageSize()
	hi = lo + m.pageSize()
	if lo > len(m.filtered) {
		lo = len(m.filtered)
	}
	if hi > len(m.filtered) {
		hi = len(m.filtered)
	}
	return lo, hi
}

func (m *Model) setPage(p int) {
	if p < 0 {
		p = 0
	}
	if last := m.pageCount() - 1; p > last {
		p = last
	}
	if p == m.page {
		return
	}
	m.page = p
	m.fillTable()
	m.tbl.SetCursor(0)
}

func (m *Model) fillTable() {
	lo, hi := m.pageBounds()
	cols := m.cols
	rows := make([]table.Row, 0, hi-lo)
	for i := lo; i < hi; i++ {
		r := &m.filtered[i]
		row := table.Row{
			r.ID,
			r.Task,
			r.Area,
			r.YearPublished,
			r.Modalities,
			r.DatasetSize,
		}
		for j := range row {
			if j < len(cols) {
				row[j] = truncate(row[j], cols[j].Width)
			}
		}
		rows = append(rows, row)
	}
	m.tbl.SetRows(rows)
	if n := len(rows); n > 0 && m.tbl.Cursor() >= n {
		m.tbl.SetCursor(n - 1)
	}
}

// current returns the record under the table cursor.
func (m *Model) current() (*model.Record, bool) {
	lo, hi := m.pageBounds()
	i := lo + m.tbl.Cursor()
	if m.tbl.Cursor() < 0 || i >= hi {
		return nil, false
	}
	return &m.filtered[i], true
}

// layout sizes the table to the terminal.
func (m *Model) layout() {
	w := m.termWidth - facetPanelWidth - 4
	if w < 40 {
		w = 40
	}
	// id, task, area, year, modalities, size
	weights := []int{22, 22, 20, 6, 16, 14}
	sum := 0
	for _, x := range weights {
		sum += x
	}
	titles := []string{"ID", "Task", "Area", "Year", "Modalities", "Size"}
	cols := make([]table.Column, len(titles))
	for i, t := range titles {
		cw := w * weights[i] / sum
		if cw < 4 {
			cw = 4
		}
		cols[i] = table.Column{Title: t, Width: cw}
	}
	m.cols = cols
	m.tbl.SetColumns(cols)
	h := m.termHeight - 7
	if h > m.pageSize() {
		h = m.pageSize()
	}
	if h < 3 {
		h = 3
	}
	m.tbl.SetHeight(h)
	m.tbl.SetWidth(w)
	m.fillTable()
}

func truncate(s string, w int) string {
	r := []rune(s)
	if w <= 1 || len(r) <= w {
		return s
	}
	return string(r[:w-1]) + "…"
}
