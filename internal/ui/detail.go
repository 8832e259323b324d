package ui

import (
	"fmt"
	"strings"

	"benchscope/internal/model"
)

const notAvailable = "N/A"

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return notAvailable
	}
	return s
}

// renderDetail lays out one record the way the dataset card does: chips
// for the task, then description, attributes and links.
func (m *Model) renderDetail(r *model.Record, width int) string {
	st := m.styles
	var b strings.Builder

	b.WriteString(st.Title.Render(orNA(r.ID)))
	b.WriteString("\n")
	chips := []string{}
	if r.Task != "" {
		chips = append(chips, st.Chip.Render(r.Task))
	}
	if r.Subtask != "" && r.Subtask != r.Task {
		chips = append(chips, st.ChipAlt.Render(r.Subtask))
	}
	if len(chips) > 0 {
		b.WriteString(strings.Join(chips, " "))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	desc := strings.TrimSpace(r.Description)
	if desc == "" {
		desc = "No description available"
	}
	b.WriteString(wrap(desc, width))
	b.WriteString("\n\n")

	attr := func(label, v string) {
		fmt.Fprintf(&b, "%s %s\n", st.Label.Render(label+":"), v)
	}
	attr("Area", orNA(r.Area))
	attr("Year", orNA(r.YearPublished))
	attr("Size", orNA(r.DatasetSize))
	attr("License", orNA(r.License))
	list := func(label, v string) {
		atoms := model.Atoms(v)
		if len(atoms) == 0 {
			attr(label, notAvailable)
			return
		}
		attr(label, strings.Join(atoms, " · "))
	}
	list("Modalities", r.Modalities)
	list("Associated tasks", r.AssociatedTasks)
	list("Languages", r.Languages)

	if links := r.BenchmarkLinks(); len(links) > 0 {
		b.WriteString("\n")
		b.WriteString(st.Label.Render("Benchmarks:"))
		b.WriteString("\n")
		for _, l := range links {
			fmt.Fprintf(&b, "  %s %s\n", l.Name, st.Link.Render(l.URL))
		}
	}

	b.WriteString("\n")
	link := func(label, u string) {
		if strings.TrimSpace(u) == "" {
			return
		}
		fmt.Fprintf(&b, "%s %s\n", st.Label.Render(label+":"), st.Link.Render(u))
	}
	link("Homepage", r.HomepageURL)
	link("Source page", r.SourcePageURL)
	link("Paper", r.PaperURL)
	return strings.TrimRight(b.String(), "\n")
}

// wrap breaks s at word boundaries so no line exceeds width runes.
func wrap(s string, width int) string {
	if width < 20 {
		width = 20
	}
	var out strings.Builder
	for pi, para := range strings.Split(s, "\n") {
		if pi > 0 {
			out.WriteString("\n")
		}
		n := 0
		for i, w := range strings.Fields(para) {
			l := len([]rune(w))
			if i > 0 && n+1+l > width {
				out.WriteString("\n")
				n = 0
			} else if i > 0 {
				out.WriteString(" ")
				n++
			}
			out.WriteString(w)
			n += l
		}
	}
	return out.String()
}
