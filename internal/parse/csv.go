package parse

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"benchscope/internal/model"
)

var (
	ErrEmptyInput    = errors.New("empty input")
	ErrUnknownHeader = errors.New("header has no recognised columns")
)

// DecodeCSV reads a header row followed by one row per record. Rows shorter
// than the header leave trailing fields empty; extra cells are ignored, as
// are columns the header does not map to a field.
func DecodeCSV(r io.Reader) ([]model.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	// one column per field: the canonical header, else the leftmost alias
	cols := make([]model.Field, len(header))
	known := make([]bool, len(header))
	owner := make(map[model.Field]int, len(model.Fields))
	for i, h := range header {
		f, ok := ColumnField(h)
		if !ok {
			continue
		}
		if j, taken := owner[f]; taken {
			if isCanonical(header[j], f) || !isCanonical(h, f) {
				continue
			}
			known[j] = false
		}
		owner[f] = i
		cols[i], known[i] = f, true
	}
	if len(owner) == 0 {
		return nil, ErrUnknownHeader
	}

	out := make([]model.Record, 0, 1024)
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return out, fmt.Errorf("read row %d: %w", len(out)+1, err)
		}
		var rec model.Record
		for i, cell := range row {
			if i >= len(cols) {
				break
			}
			if known[i] {
				rec.Set(cols[i], cell)
			}
		}
		out = append(out, rec)
	}
	return out, nil
}
