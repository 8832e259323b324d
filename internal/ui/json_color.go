package ui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"benchscope/internal/model"
)

// recordJSON renders r as indented, colorized JSON. Multi-valued columns
// are shown as arrays of their atoms.
func recordJSON(r *model.Record, st Styles) string {
	v := r.Map()
	for _, f := range []model.Field{model.FieldModalities, model.FieldAssociatedTasks, model.FieldLanguages, model.FieldBenchmarkURLs} {
		v[f.Column()] = model.Atoms(r.Get(f))
	}
	var b strings.Builder
	renderJSON(&b, v, st, 0)
	return b.String()
}

func renderJSON(b *strings.Builder, v any, st Styles, indent int) {
	ind := strings.Repeat("  ", indent)
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString(st.JSONPunct.Render("{"))
		if len(keys) > 0 {
			b.WriteString("\n")
		}
		for i, k := range keys {
			b.WriteString(ind + "  ")
			b.WriteString(st.JSONKey.Render(strconv.Quote(k)))
			b.WriteString(st.JSONPunct.Render(": "))
			renderJSON(b, t[k], st, indent+1)
			if i < len(keys)-1 {
				b.WriteString(st.JSONPunct.Render(","))
			}
			b.WriteString("\n")
		}
		b.WriteString(ind)
		b.WriteString(st.JSONPunct.Render("}"))
	case []string:
		items := make([]any, len(t))
		for i, s := range t {
			items[i] = s
		}
		renderJSON(b, items, st, indent)
	case []any:
		b.WriteString(st.JSONPunct.Render("["))
		if len(t) > 0 {
			b.WriteString("\n")
		}
		for i, it := range t {
			b.WriteString(ind + "  ")
			renderJSON(b, it, st, indent+1)
			if i < len(t)-1 {
				b.WriteString(st.JSONPunct.Render(","))
			}
			b.WriteString("\n")
		}
		b.WriteString(ind)
		b.WriteString(st.JSONPunct.Render("]"))
	case string:
		if t == "" {
			b.WriteString(st.JSONNull.Render(`""`))
			return
		}
		b.WriteString(st.JSONString.Render(strconv.Quote(t)))
	case float64, int, int64:
		b.WriteString(st.JSONNumber.Render(fmt.Sprint(t)))
	case bool:
		b.WriteString(st.JSONBool.Render(strconv.FormatBool(t)))
	case nil:
		b.WriteString(st.JSONNull.Render("null"))
	default:
		b.WriteString(st.JSONString.Render(strconv.Quote(fmt.Sprint(t))))
	}
}
