package textnorm

import (
	"html"
	"net/url"
	"regexp"
	"strings"
)

var (
	htmlTagPattern       = regexp.MustCompile(`<[^>]+>`)
	styleBlockPattern    = regexp.MustCompile(`(?is)<(style|script)[^>]*>.*?</(style|script)>`)
	trackingPattern      = regexp.MustCompile(`(?i)%[a-zA-Z0-9]+%|opentrack|unsubscribe`)
	spaceRunPattern      = regexp.MustCompile(`[ \t\x{00a0}]+`)
	blankLineRunPattern  = regexp.MustCompile(`\n{3,}`)
	percentEncodedTriple = regexp.MustCompile(`%[0-9a-fA-F]{2}`)
)

// CleanForExtraction turns raw Gmail payload text (HTML remnants, URL
// encoding, tracking noise) into plain text the scanner can work on.
// Idempotent; never invents content. Plain text passes through unchanged
// apart from whitespace normalization.
func CleanForExtraction(raw string) string {
	if raw == "" {
		return ""
	}

	content := raw

	// Percent-decoding until fixpoint for nested encoding; every decoding
	// pass strictly shortens the string, so this terminates. PathUnescape
	// keeps literal '+' intact; payout breakdowns ("€368,60 + €45,60")
	// depend on it.
	for percentEncodedTriple.MatchString(content) {
		decoded, err := url.PathUnescape(content)
		if err != nil || decoded == content {
			break
		}
		content = decoded
	}

	content = html.UnescapeString(content)
	content = styleBlockPattern.ReplaceAllString(content, " ")
	content = htmlTagPattern.ReplaceAllString(content, " ")
	content = trackingPattern.ReplaceAllString(content, " ")

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = spaceRunPattern.ReplaceAllString(content, " ")
	content = blankLineRunPattern.ReplaceAllString(content, "\n\n")

	lines := strings.Split(content, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
