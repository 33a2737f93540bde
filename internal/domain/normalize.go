package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// combiningDiacritics is the Combining Diacritical Marks block (U+0300..U+036F).
var combiningDiacritics = &unicode.RangeTable{
	R16: []unicode.Range16{{Lo: 0x0300, Hi: 0x036f, Stride: 1}},
}

// NormalizeText prepares text for storage and comparison:
//   - decomposes to NFD and drops combining diacritics (sláinte -> slainte)
//   - converts to lowercase
//   - trims leading/trailing whitespace
//   - compresses multiple spaces into one
func NormalizeText(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(combiningDiacritics)), norm.NFC)
	stripped, _, err := transform.String(t, text)
	if err != nil {
		stripped = text
	}

	stripped = strings.TrimSpace(strings.ToLower(stripped))
	if stripped == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(stripped))
	prevSpace := false
	for _, r := range stripped {
		if r == ' ' {
			if prevSpace {
				continue
			}
			prevSpace = true
		} else {
			prevSpace = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Slugify builds a URL-friendly form of text: the normalized form with every
// run of characters outside [a-z0-9] collapsed to a single hyphen.
func Slugify(text string) string {
	normalized := NormalizeText(text)

	var b strings.Builder
	b.Grow(len(normalized))
	pendingDash := false
	for _, r := range normalized {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return b.String()
}
