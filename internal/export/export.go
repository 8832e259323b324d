package export

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"benchscope/internal/model"
)

var ErrNoRecords = errors.New("no records")

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ToFile writes records to path in the given format.
func ToFile(path string, format Format, records []model.Record) error {
	switch format {
	case FormatCSV:
		return ToCSV(path, records)
	case FormatJSON:
		return ToNDJSON(path, records)
	}
	return fmt.Errorf("unknown export format %q", format)
}

func ToCSV(path string, records []model.Record) error {
	if len(records) == 0 {
		return ErrNoRecords
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteCSV writes a header of canonical column names followed by one row
// per record, so the output loads back as a source.
func WriteCSV(w io.Writer, records []model.Record) error {
	cw := csv.NewWriter(w)
	header := make([]string, len(model.Fields))
	for i, f := range model.Fields {
		header[i] = f.Column()
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	row := make([]string, len(model.Fields))
	for i := range records {
		for j, f := range model.Fields {
			row[j] = records[i].Get(f)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func ToNDJSON(path string, records []model.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteNDJSON(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func WriteNDJSON(w io.Writer, records []model.Record) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	for i := range records {
		if err := enc.Encode(&records[i]); err != nil {
			return err
		}
	}
	return bw.Flush()
}
