package cards

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// Delimiter selects the field separator for source and target files.
type Delimiter rune

const (
	Comma Delimiter = ','
	Tab   Delimiter = '\t'
)

// ParseDelimiter maps the configuration spelling to a Delimiter.
func ParseDelimiter(name string) (Delimiter, error) {
	switch name {
	case "comma", "":
		return Comma, nil
	case "tab":
		return Tab, nil
	default:
		return 0, fmt.Errorf("unknown delimiter %q", name)
	}
}

// ReadRows parses every row from the delimited source. Rows may have varying
// field counts, but every row must carry at least one field.
func ReadRows(r io.Reader, delim Delimiter) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = rune(delim)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(rows)+1, err)
		}
		if len(record) == 0 {
			return nil, fmt.Errorf("row %d: all rows in the source must have at least one field", len(rows)+1)
		}
		rows = append(rows, record)
	}
}

// WriteRows serializes rows with the same delimiter convention as the input.
func WriteRows(w io.Writer, delim Delimiter, rows [][]string) error {
	writer := csv.NewWriter(w)
	writer.Comma = rune(delim)
	for i, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	writer.Flush()
	return writer.Error()
}
