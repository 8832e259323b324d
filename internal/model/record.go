package model

import (
	"encoding/json"
	"strings"
)

// Record is one benchmark dataset entry. Every field is a plain string;
// a column missing from the source is the empty string.
type Record struct {
	SNo             string `json:"sno,omitempty"`
	ID              string `json:"dataset_id"`
	Task            string `json:"task"`
	Subtask         string `json:"subtask,omitempty"`
	Description     string `json:"description,omitempty"`
	Area            string `json:"area,omitempty"`
	Modalities      string `json:"modalities,omitempty"`
	AssociatedTasks string `json:"associated_tasks,omitempty"`
	YearPublished   string `json:"year_published,omitempty"`
	DatasetSize     string `json:"dataset_size,omitempty"`
	License         string `json:"license,omitempty"`
	Languages       string `json:"languages,omitempty"`
	HomepageURL     string `json:"homepage_url,omitempty"`
	SourcePageURL   string `json:"pwc_url,omitempty"`
	PaperURL        string `json:"paper_url,omitempty"`
	BenchmarkURLs   string `json:"benchmark_urls,omitempty"`
}

// Field names a string column of Record.
type Field int

const (
	FieldSNo Field = iota
	FieldID
	FieldTask
	FieldSubtask
	FieldDescription
	FieldArea
	FieldModalities
	FieldAssociatedTasks
	FieldYearPublished
	FieldDatasetSize
	FieldLicense
	FieldLanguages
	FieldHomepageURL
	FieldSourcePageURL
	FieldPaperURL
	FieldBenchmarkURLs
)

// Fields lists every Field in column order.
var Fields = []Field{
	FieldSNo, FieldID, FieldTask, FieldSubtask, FieldDescription, FieldArea,
	FieldModalities, FieldAssociatedTasks, FieldYearPublished, FieldDatasetSize,
	FieldLicense, FieldLanguages, FieldHomepageURL, FieldSourcePageURL,
	FieldPaperURL, FieldBenchmarkURLs,
}

var fieldColumns = map[Field]string{
	FieldSNo:             "sno",
	FieldID:              "dataset_id",
	FieldTask:            "task",
	FieldSubtask:         "subtask",
	FieldDescription:     "description",
	FieldArea:            "area",
	FieldModalities:      "modalities",
	FieldAssociatedTasks: "associated_tasks",
	FieldYearPublished:   "year_published",
	FieldDatasetSize:     "dataset_size",
	FieldLicense:         "license",
	FieldLanguages:       "languages",
	FieldHomepageURL:     "homepage_url",
	FieldSourcePageURL:   "pwc_url",
	FieldPaperURL:        "paper_url",
	FieldBenchmarkURLs:   "benchmark_urls",
}

// Column returns the canonical source column name of f.
func (f Field) Column() string { return fieldColumns[f] }

func (f Field) String() string { return f.Column() }

// Get returns the raw value of f.
func (r *Record) Get(f Field) string {
	switch f {
	case FieldSNo:
		return r.SNo
	case FieldID:
		return r.ID
	case FieldTask:
		return r.Task
	case FieldSubtask:
		return r.Subtask
	case FieldDescription:
		return r.Description
	case FieldArea:
		return r.Area
	case FieldModalities:
		return r.Modalities
	case FieldAssociatedTasks:
		return r.AssociatedTasks
	case FieldYearPublished:
		return r.YearPublished
	case FieldDatasetSize:
		return r.DatasetSize
	case FieldLicense:
		return r.License
	case FieldLanguages:
		return r.Languages
	case FieldHomepageURL:
		return r.HomepageURL
	case FieldSourcePageURL:
		return r.SourcePageURL
	case FieldPaperURL:
		return r.PaperURL
	case FieldBenchmarkURLs:
		return r.BenchmarkURLs
	}
	return ""
}

// Set assigns v to f. Unknown fields are ignored.
func (r *Record) Set(f Field, v string) {
	switch f {
	case FieldSNo:
		r.SNo = v
	case FieldID:
		r.ID = v
	case FieldTask:
		r.Task = v
	case FieldSubtask:
		r.Subtask = v
	case FieldDescription:
		r.Description = v
	case FieldArea:
		r.Area = v
	case FieldModalities:
		r.Modalities = v
	case FieldAssociatedTasks:
		r.AssociatedTasks = v
	case FieldYearPublished:
		r.YearPublished = v
	case FieldDatasetSize:
		r.DatasetSize = v
	case FieldLicense:
		r.License = v
	case FieldLanguages:
		r.Languages = v
	case FieldHomepageURL:
		r.HomepageURL = v
	case FieldSourcePageURL:
		r.SourcePageURL = v
	case FieldPaperURL:
		r.PaperURL = v
	case FieldBenchmarkURLs:
		r.BenchmarkURLs = v
	}
}

// Atoms splits a comma-joined multi-value string into trimmed, non-empty
// pieces. An empty input yields nil.
func Atoms(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// HasAtom reports whether any atom of s equals one of the keys in set.
// It walks s without allocating the atom slice.
func HasAtom(s string, set map[string]struct{}) bool {
	for s != "" {
		var part string
		if i := strings.IndexByte(s, ','); i >= 0 {
			part, s = s[:i], s[i+1:]
		} else {
			part, s = s, ""
		}
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, ok := set[part]; ok {
			return true
		}
	}
	return false
}

// BenchmarkLink is a leaderboard reference derived from benchmark_urls.
type BenchmarkLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

const sotaBaseURL = "https://paperswithcode.com/sota/"

// BenchmarkLinks turns each benchmark slug into a leaderboard link named
// after its last path segment.
func (r *Record) BenchmarkLinks() []BenchmarkLink {
	atoms := Atoms(r.BenchmarkURLs)
	if len(atoms) == 0 {
		return nil
	}
	out := make([]BenchmarkLink, 0, len(atoms))
	for _, a := range atoms {
		name := a
		if i := strings.LastIndexByte(strings.TrimRight(a, "/"), '/'); i >= 0 {
			name = strings.TrimRight(a, "/")[i+1:]
		}
		if name == "" {
			name = a
		}
		out = append(out, BenchmarkLink{Name: name, URL: sotaBaseURL + a})
	}
	return out
}

// Map returns the record keyed by canonical column name. Empty fields are
// included so the shape is stable.
func (r *Record) Map() map[string]any {
	m := make(map[string]any, len(Fields))
	for _, f := range Fields {
		m[f.Column()] = r.Get(f)
	}
	return m
}

func (r *Record) PrettyJSON() string {
	b, _ := json.MarshalIndent(r, "", "  ")
	return string(b)
}
