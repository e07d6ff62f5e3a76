// Package spreadsheet turns an uploaded Excel or CSV buffer into
// string-keyed rows. Excel files go through excelize; anything that is
// not a valid workbook falls back to CSV.
package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	ErrEmptyFile          = errors.New("file is empty")
	ErrNoSheets           = errors.New("no sheets found in file")
	ErrNoData             = errors.New("no data found in file")
	ErrUnrecognizedFormat = errors.New("unable to parse file as Excel or CSV")
)

// Row maps a header name to the cell value under it.
type Row map[string]string

// Sheet is the decoded first worksheet (or the whole CSV document).
type Sheet struct {
	Headers []string
	Rows    []Row
}

// Options controls how raw cells become row values.
type Options struct {
	// DefaultValue fills cells missing from short rows.
	DefaultValue string
	// SkipBlankRows drops rows whose cells are all blank.
	SkipBlankRows bool
}

// DefaultOptions matches what attendance exports need: empty string for
// missing cells, fully blank rows dropped.
func DefaultOptions() Options {
	return Options{DefaultValue: "", SkipBlankRows: true}
}

// Decode parses data into a Sheet. The filename is only a format hint;
// a .csv suffix skips the workbook attempt.
func Decode(data []byte, filename string, opts Options) (*Sheet, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}

	if !strings.HasSuffix(strings.ToLower(filename), ".csv") {
		if sheet, err := decodeWorkbook(data, opts); err == nil {
			return sheet, nil
		} else if !errors.Is(err, errNotAWorkbook) {
			return nil, err
		}
	}

	return decodeCSV(data, opts)
}

var errNotAWorkbook = errors.New("not a workbook")

func decodeWorkbook(data []byte, opts Options) (*Sheet, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errNotAWorkbook
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, ErrNoSheets
	}

	return buildSheet(rows, opts)
}

func decodeCSV(data []byte, opts Options) (*Sheet, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1 // ragged exports are expected

	records, err := reader.ReadAll()
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, ErrUnrecognizedFormat
	}

	return buildSheet(records, opts)
}

func buildSheet(records [][]string, opts Options) (*Sheet, error) {
	if len(records) == 0 {
		return nil, ErrNoData
	}

	headers := make([]string, 0, len(records[0]))
	for _, h := range records[0] {
		headers = append(headers, strings.TrimSpace(h))
	}

	sheet := &Sheet{Headers: headers}
	for _, record := range records[1:] {
		row := make(Row, len(headers))
		blank := true
		for i, header := range headers {
			if header == "" {
				continue
			}
			value := opts.DefaultValue
			if i < len(record) {
				value = record[i]
			}
			if strings.TrimSpace(value) != "" {
				blank = false
			}
			row[header] = value
		}
		if opts.SkipBlankRows && blank {
			continue
		}
		sheet.Rows = append(sheet.Rows, row)
	}

	if len(sheet.Rows) == 0 {
		return nil, ErrNoData
	}
	return sheet, nil
}
