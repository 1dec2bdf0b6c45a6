// Package textnorm normalizes noisy email text: locale-ambiguous numeric
// literals and HTML/transport remnants.
package textnorm

import (
	"strconv"
	"strings"
)

// Amount converts a heterogeneous numeric literal ("1 234,56", "1,234.56",
// "1234.56") into its intended value. Returns 0.0 on unparseable input —
// callers treat that as "no usable value", not a true zero.
func Amount(raw string) float64 {
	cleaned := stripSpaces(raw)
	if cleaned == "" {
		return 0
	}

	lastComma := strings.LastIndex(cleaned, ",")
	lastDot := strings.LastIndex(cleaned, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0:
		// The separator appearing last is the decimal mark.
		if lastDot > lastComma {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		} else {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		}
	case lastComma >= 0:
		if strings.Count(cleaned, ",") > 1 {
			// Repeated commas can only be thousands separators.
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		} else {
			// Single comma defaults to a fractional decimal: "1234,56",
			// and also "123,4".
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		}
	case lastDot >= 0 && strings.Count(cleaned, ".") > 1:
		cleaned = strings.ReplaceAll(cleaned, ".", "")
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}

// stripSpaces removes regular, non-breaking and narrow no-break spaces, the
// group separators seen in Swedish amounts.
func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', ' ', ' ':
			return -1
		}
		return r
	}, strings.TrimSpace(s))
}
