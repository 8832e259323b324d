package parse

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"benchscope/internal/model"
)

// DecodeJSON reads a top-level array of objects.
func DecodeJSON(r io.Reader) ([]model.Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var rows []map[string]any
	if err := dec.Decode(&rows); err != nil {
		if err == io.EOF {
			return nil, ErrEmptyInput
		}
		return nil, fmt.Errorf("decode json: %w", err)
	}
	out := make([]model.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromMap(row))
	}
	return out, nil
}

// DecodeNDJSON reads one object per line. Blank lines are skipped; a line
// that is not an object aborts the decode.
func DecodeNDJSON(r io.Reader) ([]model.Record, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	out := make([]model.Record, 0, 1024)
	n := 0
	for sc.Scan() {
		n++
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		dec := json.NewDecoder(bytes.NewReader(line))
		dec.UseNumber()
		var row map[string]any
		if err := dec.Decode(&row); err != nil {
			return out, fmt.Errorf("line %d: %w", n, err)
		}
		out = append(out, FromMap(row))
	}
	if err := sc.Err(); err != nil {
		return out, err
	}
	if n == 0 {
		return nil, ErrEmptyInput
	}
	return out, nil
}

// FromMap builds a record from decoded JSON. Keys are matched like CSV
// headers; values go through Coerce. When several keys name the same field
// the canonical column wins, then the alias that sorts first.
func FromMap(m map[string]any) model.Record {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var rec model.Record
	seen := make(map[model.Field]bool, len(model.Fields))
	for _, k := range keys {
		f, ok := ColumnField(k)
		if !ok || seen[f] || !isCanonical(k, f) {
			continue
		}
		rec.Set(f, Coerce(m[k]))
		seen[f] = true
	}
	for _, k := range keys {
		f, ok := ColumnField(k)
		if !ok || seen[f] {
			continue
		}
		rec.Set(f, Coerce(m[k]))
		seen[f] = true
	}
	return rec
}

// Coerce renders a decoded JSON value as a field string. Scalars keep their
// literal form, arrays of scalars are comma-joined, and anything else is
// malformed and becomes empty.
func Coerce(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case []any:
		parts := make([]string, 0, len(t))
		for _, it := range t {
			switch it.(type) {
			case []any, map[string]any:
				return ""
			}
			if s := Coerce(it); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ",")
	default:
		return ""
	}
}
