package detect

import (
	"bytes"
	"net/url"
	"path"
	"strings"

	"benchscope/internal/parse"
)

type Guess struct {
	Format     parse.Format
	Confidence float64
	Reason     string
}

// Sniff picks a decoder for a source from its name and the first bytes of
// its content. The extension wins when it is known; otherwise the first
// non-space byte decides, and anything else is treated as CSV.
func Sniff(name string, head []byte) Guess {
	switch ext(name) {
	case ".csv":
		return Guess{Format: parse.FormatCSV, Confidence: 0.95, Reason: "extension"}
	case ".json":
		return Guess{Format: parse.FormatJSON, Confidence: 0.95, Reason: "extension"}
	case ".ndjson", ".jsonl":
		return Guess{Format: parse.FormatNDJSON, Confidence: 0.95, Reason: "extension"}
	}
	h := bytes.TrimLeft(bytes.TrimPrefix(head, []byte("\xef\xbb\xbf")), " \t\r\n")
	if len(h) == 0 {
		return Guess{Format: parse.FormatCSV, Confidence: 0.1, Reason: "empty"}
	}
	switch h[0] {
	case '[':
		return Guess{Format: parse.FormatJSON, Confidence: 0.8, Reason: "leading ["}
	case '{':
		return Guess{Format: parse.FormatNDJSON, Confidence: 0.8, Reason: "leading {"}
	}
	lines := strings.Split(string(h), "\n")
	if len(lines) > 10 {
		lines = lines[:10]
	}
	withComma := 0
	for _, l := range lines {
		if strings.Contains(l, ",") {
			withComma++
		}
	}
	return Guess{Format: parse.FormatCSV, Confidence: conf(len(lines), withComma), Reason: "comma-separated"}
}

// ext returns the lower-cased extension of a path or URL, ignoring any
// query string.
func ext(name string) string {
	if u, err := url.Parse(name); err == nil && u.Scheme != "" && u.Path != "" {
		name = u.Path
	}
	return strings.ToLower(path.Ext(name))
}

func conf(total, hits int) float64 {
	if total == 0 {
		return 0
	}
	c := float64(hits) / float64(total)
	if c > 0.9 {
		c = 0.9
	}
	return c
}
