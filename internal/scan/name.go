package scan

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	leadingJunk  = regexp.MustCompile(`^[kr\s\d.,€$\x{00a0}]+`)
	trailingJunk = regexp.MustCompile(`[kr\s\d.,€$\x{00a0}]+$`)
	spaceRun     = regexp.MustCompile(`\s+`)

	swedishTitle = cases.Title(language.Swedish)
)

// CleanGuestName strips currency and numeric fragments a name pattern may
// have swallowed, collapses internal whitespace, and title-cases each token
// with Swedish casing rules (å/ä/ö aware). Hyphenated names keep the hyphen
// with each part cased ("anna-karin" -> "Anna-Karin"). Results shorter than
// two characters or not starting with a letter are rejected.
func CleanGuestName(raw string) (string, bool) {
	cleaned := leadingJunk.ReplaceAllString(raw, "")
	cleaned = trailingJunk.ReplaceAllString(cleaned, "")
	cleaned = spaceRun.ReplaceAllString(strings.TrimSpace(cleaned), " ")
	if cleaned == "" {
		return "", false
	}

	cleaned = swedishTitle.String(cleaned)

	runes := []rune(cleaned)
	if len(runes) < 2 || !unicode.IsLetter(runes[0]) {
		return "", false
	}
	return cleaned, true
}
