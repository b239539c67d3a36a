// Package importer drives the CSV-to-graph pipeline: delimiter sniffing,
// structural validation, row cleaning, descriptor-driven row mapping and
// per-row upserts aggregated into a report.
package importer

import (
	"bytes"
	"encoding/csv"
	"io"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/pkg/errors"
)

// Row is one cleaned CSV record. Absent, blank and literal "nan" cells are
// missing keys, never empty strings.
type Row map[string]string

// Table is a parsed upload.
type Table struct {
	Columns []string
	Rows    []Row
}

// DetectDelimiter inspects the header line. Pipe wins if present at all
// (the pipeline's own exports are pipe-delimited to survive embedded
// commas), then semicolon wins over comma if more frequent, else comma.
func DetectDelimiter(firstLine string) rune {
	if strings.Count(firstLine, "|") > 0 {
		return '|'
	}
	if strings.Count(firstLine, ";") > strings.Count(firstLine, ",") {
		return ';'
	}
	return ','
}

// ReadTable sniffs the delimiter, parses the file and cleans the rows. If
// parsing with the sniffed delimiter fails it falls back to comma.
func ReadTable(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read upload")
	}
	firstLine, _, _ := strings.Cut(string(data), "\n")

	table, err := parseTable(data, DetectDelimiter(firstLine))
	if err != nil {
		table, err = parseTable(data, ',')
	}
	return table, err
}

func parseTable(data []byte, delimiter rune) (*Table, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "parse csv")
	}
	if len(records) == 0 {
		return nil, errors.New("empty file")
	}

	header := make([]string, len(records[0]))
	for i, col := range records[0] {
		header[i] = strings.TrimSpace(strings.TrimPrefix(col, "\ufeff"))
	}

	table := &Table{Columns: header}
	for _, record := range records[1:] {
		row := cleanRecord(header, record)
		if len(row) == 0 {
			continue // fully empty row
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// cleanRecord trims whitespace and normalizes blanks and the literal "nan"
// to absence.
func cleanRecord(header, record []string) Row {
	row := make(Row, len(header))
	for i, col := range header {
		if i >= len(record) {
			break
		}
		value := strings.TrimSpace(record[i])
		if value == "" || value == "nan" {
			continue
		}
		row[col] = value
	}
	return row
}

// MissingColumns returns one error message per required column absent from
// the header.
func MissingColumns(columns []string, required []string) []string {
	present := mapset.NewSet(columns...)
	var errs []string
	for _, col := range required {
		if !present.Contains(col) {
			errs = append(errs, "Missing required column: "+col)
		}
	}
	return errs
}
