package catalog

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"addonlist/internal/addon"
	"addonlist/internal/logging"
)

// Header names of the addon CSV columns.
const (
	FieldName      = "name"
	FieldWebsite   = "website"
	FieldHidden    = "hidden"
	FieldSupported = "supported"
	FieldSpotlight = "spotlight"
	FieldCurse     = "curse"
	FieldWowi      = "wowi"
	FieldRepo      = "repo"
	FieldPreferred = "preferred"
)

// Parse reads CSV text whose first line names the fields. Empty lines are
// skipped, cells are type-inferred, and rows shorter than the header leave
// the trailing fields absent. Stray quotes inside a field are kept as text.
// A missing header or a quoted field that never closes is a *ParseError;
// read failures from r are returned wrapped as they are.
func Parse(name string, r io.Reader) ([]Row, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if line, open := unterminatedQuote(data); open {
		return nil, &ParseError{Name: name, Line: line, Err: errUnterminatedQuote}
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ParseError{Name: name, Line: 1, Err: errMissingHeader}
		}
		return nil, toParseError(name, err)
	}

	fields := make([]string, len(header))
	named := 0
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF"))
		fields[i] = h
		if h != "" {
			named++
		}
	}
	if named == 0 {
		return nil, &ParseError{Name: name, Line: 1, Err: errMissingHeader}
	}

	var rows []Row
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, toParseError(name, err)
		}

		row := make(Row, len(fields))
		for i, cell := range rec {
			if i >= len(fields) || fields[i] == "" {
				continue
			}
			if v, ok := Infer(cell); ok {
				row[fields[i]] = v
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// unterminatedQuote walks the quoting the way a lazy csv.Reader does and
// reports the line of a quoted field still open at end of input.
func unterminatedQuote(data []byte) (int, bool) {
	line, start := 1, 0
	quoted, fieldStart := false, true
	for i := 0; i < len(data); i++ {
		c := data[i]
		if c == '\n' {
			line++
		}
		if !quoted {
			switch {
			case c == '"' && fieldStart:
				quoted, start = true, line
			case c == ',' || c == '\n':
				fieldStart = true
				continue
			}
			fieldStart = false
			continue
		}
		if c != '"' {
			continue
		}
		if i+1 < len(data) && data[i+1] == '"' {
			i++
			continue
		}
		if i+1 == len(data) || data[i+1] == ',' || data[i+1] == '\n' || data[i+1] == '\r' {
			quoted = false
		}
	}
	return start, quoted
}

func toParseError(name string, err error) error {
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		return &ParseError{Name: name, Line: csvErr.Line, Err: csvErr.Err}
	}
	return fmt.Errorf("read %s: %w", name, err)
}

// RecordFromRow maps a parsed row onto an addon record.
func RecordFromRow(row Row) addon.Record {
	return addon.Record{
		Name:      row.String(FieldName),
		Website:   row.String(FieldWebsite),
		Hidden:    row.Flag(FieldHidden),
		Supported: row.Flag(FieldSupported),
		Spotlight: row.String(FieldSpotlight),
		Curse:     row.String(FieldCurse),
		Wowi:      row.String(FieldWowi),
		Repo:      row.String(FieldRepo),
		Preferred: row.String(FieldPreferred),
	}
}

// Records converts rows to addon records, dropping rows without a name.
func Records(name string, rows []Row) []addon.Record {
	out := make([]addon.Record, 0, len(rows))
	for i, row := range rows {
		if _, ok := row[FieldName]; !ok {
			logging.Get(logging.CategoryCatalog).Warn("%s: row %d has no name, skipped", name, i+2)
			continue
		}
		out = append(out, RecordFromRow(row))
	}
	return out
}

// ParseRecords parses CSV text straight to addon records.
func ParseRecords(name string, r io.Reader) ([]addon.Record, error) {
	rows, err := Parse(name, r)
	if err != nil {
		return nil, err
	}
	return Records(name, rows), nil
}

var (
	errMissingHeader     = fmt.Errorf("missing header row")
	errUnterminatedQuote = fmt.Errorf("quoted field never closes")
)
