// Command extract runs the extraction engine over a directory of invoice
// PDFs (or plain-text dumps) and writes one PEAK import file, without a
// database or server. Useful for one-off batches and debugging patterns.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"peakbridge/internal/domain"
	"peakbridge/internal/export"
	"peakbridge/internal/extract"
	"peakbridge/internal/ingest"
	"peakbridge/internal/peak"
	"peakbridge/internal/service"
)

func main() {
	dir := flag.String("dir", ".", "directory of PDF/text documents to extract")
	out := flag.String("out", "peak_import.csv", "output file (.csv or .xlsx)")
	flag.Parse()

	if err := run(*dir, *out); err != nil {
		log.Fatal(err)
	}
}

func run(dir, out string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".pdf", ".txt":
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	if len(files) == 0 {
		return fmt.Errorf("no .pdf or .txt files in %s", dir)
	}

	svc := service.NewExtractService(extract.NewEngine())
	ctx := context.Background()

	var rows []peak.Row
	var reviews, failures int
	for _, name := range files {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", name, err)
		}

		text := string(data)
		if ingest.IsPDF(data) {
			text, err = ingest.Text(data)
			if err != nil {
				log.Printf("%s: %v", name, err)
				failures++
				continue
			}
		}

		outcome := svc.ExtractDocument(ctx, text, name, domain.JobFilter{})
		switch outcome.Status {
		case domain.RowError:
			log.Printf("%s: %s", name, strings.Join(outcome.Errors, "; "))
			failures++
			continue
		case domain.RowNeedsReview:
			log.Printf("%s: needs review (%s)", name, strings.Join(outcome.Errors, "; "))
			reviews++
		}
		rows = append(rows, outcome.Row)
	}

	if len(rows) == 0 {
		return fmt.Errorf("no rows extracted from %d files", len(files))
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(out)) {
	case ".xlsx":
		err = export.WriteXLSX(f, rows)
	default:
		err = export.WriteCSV(f, rows)
	}
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	log.Printf("wrote %d rows to %s (%d need review, %d failed)", len(rows), out, reviews, failures)
	return nil
}
