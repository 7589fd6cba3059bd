// Package clean provides the text normalization layer: unicode
// canonicalization, whitespace/punctuation/quote standardization, and
// footnote and bracketed-annotation stripping, with a configurable
// protected-term list that survives normalization unchanged.
//
// Protection uses masking: protected terms are replaced with opaque
// placeholders before any lossy step runs and restored with their canonical
// casing afterwards, so protection is guaranteed rather than repaired after
// the fact.
package clean

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultProtectedTerms is the protected-term list used when the
// configuration supplies none.
var DefaultProtectedTerms = []string{"YHWH", "JHVH", "LORD", "Son of Man"}

// Placeholder delimiters use private-use-area runes so no normalization step
// can touch a masked region. NFKC leaves the private use area alone.
const (
	maskOpen  = "\uE000"
	maskClose = "\uE001"
)

var (
	whitespaceRe   = regexp.MustCompile(`\s+`)
	doubleQuoteRe  = regexp.MustCompile("[“”„]")
	singleQuoteRe  = regexp.MustCompile("[‘’‚]")
	footnoteRe     = regexp.MustCompile("[†‡*#¶]")
	bracketSpanRe  = regexp.MustCompile(`\[.*?\]`)
	verseMarkerRe  = regexp.MustCompile(`(\d+)[:.](\d+)`)
	bracketTokenRe = regexp.MustCompile(`\[(\d+:\d+)\]`)
	punctSpaceRe   = regexp.MustCompile(`\s+([,.;:?!])`)
	maskRe         = regexp.MustCompile(maskOpen + `[tv](\d+)` + maskClose)
)

// Normalizer applies unicode canonicalization and orthographic cleanup.
// The zero value is not usable; construct with NewNormalizer.
type Normalizer struct {
	terms   []string
	termRes []*regexp.Regexp
}

// NewNormalizer creates a Normalizer with the given protected terms. Terms
// are matched case-insensitively on word boundaries and restored with the
// exact casing given here. A nil list means no protected terms.
func NewNormalizer(protectedTerms []string) *Normalizer {
	n := &Normalizer{terms: protectedTerms}
	for _, term := range protectedTerms {
		n.termRes = append(n.termRes, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(term)+`\b`))
	}
	return n
}

// Normalize canonicalizes text. It is a total function: unmatched patterns
// are no-ops and it never fails. The fixed order is NFKC fold, protected-term
// masking, whitespace collapse, quote standardization, footnote-marker
// removal, bracketed-span removal, trim, unmask.
func (n *Normalizer) Normalize(text string) string {
	return n.normalize(stripMaskRunes(text))
}

// normalize is Normalize without the delimiter scrub, so callers that have
// already masked regions of the input keep their placeholders intact.
// Placeholders in the verse namespace survive untouched; the caller restores
// them.
func (n *Normalizer) normalize(text string) string {
	text = norm.NFKC.String(text)

	for i, re := range n.termRes {
		text = re.ReplaceAllString(text, maskOpen+"t"+strconv.Itoa(i)+maskClose)
	}

	text = whitespaceRe.ReplaceAllString(text, " ")
	text = doubleQuoteRe.ReplaceAllString(text, `"`)
	text = singleQuoteRe.ReplaceAllString(text, "'")
	text = footnoteRe.ReplaceAllString(text, "")
	text = bracketSpanRe.ReplaceAllString(text, "")
	// Stripping spans and markers can leave doubled spaces behind.
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)

	return n.unmaskTerms(text)
}

// unmaskTerms restores protected-term placeholders. Verse placeholders are
// left in place for the scripture cleaner to restore.
func (n *Normalizer) unmaskTerms(text string) string {
	return maskRe.ReplaceAllStringFunc(text, func(m string) string {
		kind, idx, ok := splitMask(m)
		if !ok || kind != 't' {
			return m
		}
		if idx >= len(n.terms) {
			return ""
		}
		return n.terms[idx]
	})
}

// splitMask decodes a placeholder into its namespace byte and index.
func splitMask(m string) (byte, int, bool) {
	body := m[len(maskOpen) : len(m)-len(maskClose)]
	if body == "" {
		return 0, 0, false
	}
	idx, err := strconv.Atoi(body[1:])
	if err != nil {
		return 0, 0, false
	}
	return body[0], idx, true
}

// stripMaskRunes removes stray placeholder delimiters from raw input so
// untrusted text cannot forge a masked region.
func stripMaskRunes(s string) string {
	if !strings.ContainsAny(s, maskOpen+maskClose) {
		return s
	}
	s = strings.ReplaceAll(s, maskOpen, "")
	return strings.ReplaceAll(s, maskClose, "")
}

// ScriptureCleaner cleans scripture verse bodies: it re-encodes embedded
// chapter:verse markers into a canonical bracketed token and fixes
// punctuation spacing.
type ScriptureCleaner struct {
	norm *Normalizer
}

// NewScriptureCleaner creates a ScriptureCleaner on top of the normalizer.
func NewScriptureCleaner(n *Normalizer) *ScriptureCleaner {
	return &ScriptureCleaner{norm: n}
}

// Clean normalizes a scripture verse body. Every bare "N:M" or "N.M"
// occurrence becomes a canonical "[N:M]" token and whitespace before
// sentence punctuation is removed.
//
// Clean is idempotent: already-canonical "[N:M]" tokens are masked before
// normalization runs, so the bracketed-span removal cannot strip them and
// the marker rewrite cannot double-wrap them. The punctuation fix runs on
// both sides of the rewrite: a spaced "N :M" fuses into a token in the same
// pass, and the rewrite's inserted space never survives in front of
// punctuation.
func (c *ScriptureCleaner) Clean(text string) string {
	text = stripMaskRunes(text)

	var verses []string
	text = bracketTokenRe.ReplaceAllStringFunc(text, func(m string) string {
		verses = append(verses, m)
		return maskOpen + "v" + strconv.Itoa(len(verses)-1) + maskClose
	})

	text = c.norm.normalize(text)
	text = punctSpaceRe.ReplaceAllString(text, "$1")
	text = verseMarkerRe.ReplaceAllString(text, "[$1:$2] ")
	text = punctSpaceRe.ReplaceAllString(text, "$1")

	text = maskRe.ReplaceAllStringFunc(text, func(m string) string {
		kind, idx, ok := splitMask(m)
		if !ok || kind != 'v' || idx >= len(verses) {
			return ""
		}
		return verses[idx]
	})

	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// CommentaryCleaner cleans commentary prose. Protection of theological terms
// comes from the normalizer's masking, so any casing of a protected term
// comes out in its canonical casing.
type CommentaryCleaner struct {
	norm *Normalizer
}

// NewCommentaryCleaner creates a CommentaryCleaner on top of the normalizer.
func NewCommentaryCleaner(n *Normalizer) *CommentaryCleaner {
	return &CommentaryCleaner{norm: n}
}

// Clean normalizes commentary text.
func (c *CommentaryCleaner) Clean(text string) string {
	return c.norm.Normalize(text)
}
