package parse

import (
	"fmt"
	"io"

	"benchscope/internal/model"
)

type Format string

const (
	FormatCSV    Format = "csv"
	FormatJSON   Format = "json"
	FormatNDJSON Format = "ndjson"
)

// Decode dispatches on format. An empty format means CSV.
func Decode(r io.Reader, format Format) ([]model.Record, error) {
	switch format {
	case FormatCSV, "":
		return DecodeCSV(r)
	case FormatJSON:
		return DecodeJSON(r)
	case FormatNDJSON:
		return DecodeNDJSON(r)
	}
	return nil, fmt.Errorf("unsupported format %q", format)
}
