package sheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/propfolio/streetfarm/internal/importer"
)

// FormatError marks an upload that could not be read as a spreadsheet at
// all, as opposed to failures in later pipeline stages.
type FormatError struct {
	err error
}

func (e *FormatError) Error() string { return e.err.Error() }
func (e *FormatError) Unwrap() error { return e.err }

// Read parses an uploaded spreadsheet into its header row and raw rows,
// dispatching on the file extension. Anything that is not an Excel workbook
// is treated as CSV.
func Read(fileName string, r io.Reader) ([]string, []importer.RawRow, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".xlsx", ".xlsm":
		return ReadXLSX(r)
	default:
		return ReadCSV(r)
	}
}

// ReadCSV parses CSV data. The input is BOM-stripped and UTF-8 sanitized;
// ragged rows and lazy quoting are tolerated since agency exports are messy.
func ReadCSV(r io.Reader) ([]string, []importer.RawRow, error) {
	cr := csv.NewReader(newUTF8SanitizingReader(newBOMSkippingReader(r)))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, &FormatError{fmt.Errorf("parse csv: %w", err)}
	}
	return recordsToRows(records)
}

// ReadXLSX parses the first sheet of an Excel workbook that contains any
// rows.
func ReadXLSX(r io.Reader) ([]string, []importer.RawRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, &FormatError{fmt.Errorf("open workbook: %w", err)}
	}
	defer f.Close()

	for _, name := range f.GetSheetList() {
		records, err := f.GetRows(name)
		if err != nil {
			continue
		}
		if hasData(records) {
			return recordsToRows(records)
		}
	}
	return nil, nil, nil
}

// recordsToRows treats the first non-empty record as the header and maps
// every following non-empty record into a RawRow keyed by the original
// header strings. When a file repeats a header, the first column wins.
func recordsToRows(records [][]string) ([]string, []importer.RawRow, error) {
	headerIdx := -1
	for i, rec := range records {
		if !isEmptyRecord(rec) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil, nil, nil
	}

	header := make([]string, len(records[headerIdx]))
	copy(header, records[headerIdx])

	var rows []importer.RawRow
	for _, rec := range records[headerIdx+1:] {
		if isEmptyRecord(rec) {
			continue
		}
		row := make(importer.RawRow, len(header))
		for i, h := range header {
			if _, taken := row[h]; taken {
				continue
			}
			if i < len(rec) {
				row[h] = rec[i]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return header, rows, nil
}

func hasData(records [][]string) bool {
	for _, rec := range records {
		if !isEmptyRecord(rec) {
			return true
		}
	}
	return false
}

func isEmptyRecord(rec []string) bool {
	for _, cell := range rec {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
