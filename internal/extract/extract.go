// Package extract turns marketplace invoice text into PEAK ledger rows.
//
// Extraction is strategy based. Every platform strategy walks the same
// fixed pipeline (vendor identity, dates, reference, totals, withholding,
// fee lines, note assembly) and differs only in the patterns plugged into
// it. The Engine classifies a document and routes it to the matching
// strategy; documents no strategy claims fall through to the generic Thai
// tax invoice path. Extraction never fails: a document that yields
// nothing produces an empty row flagged for review, not an error.
package extract

import (
	"regexp"

	"peakbridge/internal/detect"
	"peakbridge/internal/domain"
	"peakbridge/internal/peak"
	"peakbridge/internal/textnorm"
)

// Input is one document's worth of extraction context. Text must already
// be normalized; Engine.Extract does that for callers.
type Input struct {
	Text      string
	Filename  string
	ClientTax string
	Hints     Hints
}

// Result carries the extracted row plus the seller identity the worker
// needs for wallet resolution.
type Result struct {
	Platform domain.Platform
	Row      peak.Row
	SellerID string
	ShopName string
	Errors   []string
}

// Hints supplies out-of-band document numbers when the text yields none.
type Hints interface {
	DocNumber(platform domain.Platform) string
}

// NoHints is the no-op implementation.
type NoHints struct{}

func (NoHints) DocNumber(domain.Platform) string { return "" }

// FilenameHints recovers a document number from the upload filename.
// Only the platform's strict shapes match; a generic token in a filename
// is far more likely to be a date or a copy counter than a reference.
type FilenameHints struct {
	Name string
}

func (h FilenameHints) DocNumber(p domain.Platform) string {
	if h.Name == "" {
		return ""
	}
	var re *regexp.Regexp
	switch p {
	case domain.PlatformShopee:
		re = reShopeeDocStrict
	case domain.PlatformLazada:
		re = reLazadaDocAny
	case domain.PlatformTikTok:
		re = reTikTokDocNo
	case domain.PlatformSPX:
		re = reSPXDocBare
	default:
		return ""
	}
	if m := re.FindStringSubmatch(h.Name); m != nil {
		return peak.CompactRef(m[1])
	}
	return ""
}

// Strategy extracts one platform's documents.
type Strategy interface {
	Platform() domain.Platform
	Extract(in Input) Result
}

// Engine classifies documents and routes them to platform strategies.
// It is immutable after construction and safe for concurrent use.
type Engine struct {
	strategies map[domain.Platform]Strategy
	fallback   Strategy
}

// NewEngine wires the full strategy set with the generic Thai tax
// invoice extractor as the fallback for ads, other and unknown.
func NewEngine() *Engine {
	e := &Engine{
		strategies: make(map[domain.Platform]Strategy),
		fallback:   NewThaiTax(),
	}
	for _, s := range []Strategy{NewShopee(), NewLazada(), NewTikTok(), NewSPX()} {
		e.strategies[s.Platform()] = s
	}
	return e
}

// Extract runs classification, the platform strategy and row validation
// over one document. The returned errors are review findings on the row,
// not failures.
func (e *Engine) Extract(raw, filename, clientTax string) Result {
	text := textnorm.Normalize(raw)
	platform := detect.Platform(text, filename)

	st, ok := e.strategies[platform]
	if !ok {
		st = e.fallback
	}

	res := st.Extract(Input{
		Text:      text,
		Filename:  filename,
		ClientTax: clientTax,
		Hints:     FilenameHints{Name: filename},
	})
	res.Platform = platform
	res.Row = res.Row.Normalized()
	res.Errors = append(res.Errors, res.Row.Problems()...)
	return res
}
