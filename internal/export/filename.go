// Package export persists finished artifacts: filename derivation, PDF
// assembly from page bitmaps, and atomic saves that never leave a partial
// document behind.
package export

import (
	"strings"
	"time"
)

// Sanitize lower-cases its input and collapses every run of characters
// outside [a-z0-9] into a single hyphen, trimming leading and trailing
// hyphens.
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	hyphen := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if hyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			hyphen = false
			b.WriteRune(r)
			continue
		}
		hyphen = true
	}
	return b.String()
}

// Filename derives the artifact filename: sanitized invoice number,
// sanitized label, ISO calendar date, joined by hyphens, plus extension.
func Filename(invoiceNumber, label string, date time.Time, ext string) string {
	segments := make([]string, 0, 3)
	for _, s := range []string{Sanitize(invoiceNumber), Sanitize(label)} {
		if s != "" {
			segments = append(segments, s)
		}
	}
	segments = append(segments, date.Format("2006-01-02"))
	return strings.Join(segments, "-") + "." + ext
}
