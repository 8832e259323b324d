package parse

import (
	"strings"

	"benchscope/internal/model"
)

// columnAliases maps normalized header names to record fields. Keys are
// lower-cased with '_', '-' and spaces removed, so "dataset_id", "datasetId"
// and "Dataset ID" all resolve to the same field.
var columnAliases = map[string]model.Field{
	"sno":             model.FieldSNo,
	"datasetid":       model.FieldID,
	"id":              model.FieldID,
	"name":            model.FieldID,
	"task":            model.FieldTask,
	"subtask":         model.FieldSubtask,
	"description":     model.FieldDescription,
	"area":            model.FieldArea,
	"modalities":      model.FieldModalities,
	"associatedtasks": model.FieldAssociatedTasks,
	"yearpublished":   model.FieldYearPublished,
	"year":            model.FieldYearPublished,
	"datasetsize":     model.FieldDatasetSize,
	"license":         model.FieldLicense,
	"languages":       model.FieldLanguages,
	"homepageurl":     model.FieldHomepageURL,
	"pwcurl":          model.FieldSourcePageURL,
	"sourcepageurl":   model.FieldSourcePageURL,
	"paperurl":        model.FieldPaperURL,
	"benchmarkurls":   model.FieldBenchmarkURLs,
}

// ColumnField resolves a header or JSON key to a record field.
func ColumnField(name string) (model.Field, bool) {
	f, ok := columnAliases[normalizeColumn(name)]
	return f, ok
}

func normalizeColumn(s string) string {
	s = strings.TrimSpace(strings.TrimPrefix(s, "\ufeff"))
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if r == '_' || r == '-' || r == ' ' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isCanonical(name string, f model.Field) bool {
	return normalizeColumn(name) == normalizeColumn(f.Column())
}
