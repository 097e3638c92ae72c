// Package intel extracts structured identifiers from scammer text.
package intel

import (
	"regexp"

	"github.com/decoylab/honeypot/internal/detect"
	"github.com/decoylab/honeypot/internal/domain"
)

// Patterns are kept byte-for-byte compatible with the collector's upstream
// tooling; do not normalize or "fix" them.
var (
	upiPattern   = regexp.MustCompile(`[a-zA-Z0-9.\-_]{2,}@[a-zA-Z]{2,}`)
	phonePattern = regexp.MustCompile(`\+91\d{10}`)
	linkPattern  = regexp.MustCompile(`https?://\S+`)
)

// Extract scans text and appends every non-overlapping match to rec in
// order of appearance; duplicates are allowed. A message that trips the
// keyword detector is additionally recorded whole under
// SuspiciousKeywords. Absence of matches appends nothing.
func Extract(text string, rec *domain.IntelligenceRecord) {
	rec.UPIIDs = append(rec.UPIIDs, upiPattern.FindAllString(text, -1)...)
	rec.PhoneNumbers = append(rec.PhoneNumbers, phonePattern.FindAllString(text, -1)...)
	rec.PhishingLinks = append(rec.PhishingLinks, linkPattern.FindAllString(text, -1)...)

	if detect.IsScamSignal(text) {
		rec.SuspiciousKeywords = append(rec.SuspiciousKeywords, text)
	}
}
