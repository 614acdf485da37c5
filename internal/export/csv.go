// Package export renders a job's canonical rows as a PEAK import sheet,
// as CSV for the bulk importer and as styled XLSX for review. Column
// order and the Thai header labels come from peak.Columns and must never
// drift from it: the importer matches columns by position.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"peakbridge/internal/peak"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// EscapeCell defuses spreadsheet formula injection. A leading = + - @
// gets a quote prefix so Excel treats the cell as text; everything else
// passes through untouched.
func EscapeCell(s string) string {
	if s == "" {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@':
		return "'" + s
	}
	return s
}

// CSVWriter writes PEAK import rows as CSV.
type CSVWriter struct {
	csv *csv.Writer
}

// NewCSVWriter creates a CSVWriter that writes to w. The caller is
// responsible for writing BOM first when the output targets Excel.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{csv: csv.NewWriter(w)}
}

// WriteHeader writes the Thai header labels in sheet order.
func (w *CSVWriter) WriteHeader() error {
	labels := make([]string, len(peak.Columns))
	for i, c := range peak.Columns {
		labels[i] = c.Label
	}
	return w.csv.Write(labels)
}

// WriteRows writes a batch of rows in sheet order, renumbering the
// sequence column 1..N as it goes.
func (w *CSVWriter) WriteRows(rows []peak.Row) error {
	for i, row := range rows {
		row.Seq = fmt.Sprintf("%d", i+1)
		m := row.Map()
		record := make([]string, len(peak.Columns))
		for j, c := range peak.Columns {
			record[j] = EscapeCell(m[c.Key])
		}
		if err := w.csv.Write(record); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *CSVWriter) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *CSVWriter) Error() error {
	return w.csv.Error()
}

// WriteCSV writes the whole sheet (BOM, header, rows) in one call.
func WriteCSV(w io.Writer, rows []peak.Row) error {
	if _, err := w.Write(BOM); err != nil {
		return fmt.Errorf("export.WriteCSV: %w", err)
	}
	cw := NewCSVWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return fmt.Errorf("export.WriteCSV: %w", err)
	}
	if err := cw.WriteRows(rows); err != nil {
		return fmt.Errorf("export.WriteCSV: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export.WriteCSV: %w", err)
	}
	return nil
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans an identifier for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses
// consecutive underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized download filename for one job's
// sheet. Format: peak_import_{job}_{YYYY-MM-DD}.{ext}
func BuildFilename(jobID, ext string) string {
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("peak_import_%s_%s.%s", SanitizeFilename(jobID), date, ext)
}
