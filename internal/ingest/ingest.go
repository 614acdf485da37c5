// Package ingest turns uploaded documents into plain text for the
// extraction engine. Only the embedded PDF text layer and plain-text
// uploads are supported; scanned images without a text layer come back
// empty and are flagged at the extraction stage, not here.
package ingest

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// maxPages bounds how deep a PDF is read. Marketplace invoices are one
// or two pages; anything past this is appendix noise.
const maxPages = 15

// IsPDF sniffs the PDF magic bytes.
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(data, []byte("%PDF-"))
}

// SupportedContentType reports whether an upload's declared type can be
// ingested at all.
func SupportedContentType(ct string) bool {
	ct = strings.ToLower(strings.TrimSpace(ct))
	switch {
	case ct == "application/pdf", ct == "application/x-pdf":
		return true
	case strings.HasPrefix(ct, "text/"):
		return true
	case ct == "", ct == "application/octet-stream":
		// Sniffed by content later.
		return true
	}
	return false
}

// Text extracts a document's text. PDFs yield their embedded text layer
// in row order, one line per visual row; anything else is treated as
// UTF-8 text as-is. An empty result is not an error: the extract layer
// turns it into an ERROR row for that one document.
func Text(data []byte) (string, error) {
	if !IsPDF(data) {
		return string(data), nil
	}

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("ingest.Text: opening pdf: %w", err)
	}

	var sb strings.Builder
	pages := r.NumPage()
	if pages > maxPages {
		pages = maxPages
	}
	for n := 1; n <= pages; n++ {
		p := r.Page(n)
		if p.V.IsNull() {
			continue
		}
		rows, err := p.GetTextByRow()
		if err != nil {
			// A single broken page should not discard the rest.
			continue
		}
		for _, row := range rows {
			for i, word := range row.Content {
				if i > 0 {
					sb.WriteString(" ")
				}
				sb.WriteString(word.S)
			}
			sb.WriteString("\n")
		}
	}
	return sb.String(), nil
}
