package scan

import (
	"regexp"
)

// Shared domain patterns used by both the classifier features and the field
// engine. Immutable after init; versioned with the code, never patched at
// runtime.
var (
	BookingCodePattern    = regexp.MustCompile(`HM[A-Z0-9]{8,}`)
	BookingCodeURLPattern = regexp.MustCompile(`/details/([A-Z0-9]{10})`)

	AmountEurPattern = regexp.MustCompile(`€\s*[\d\s\x{00a0},.]*\d`)
	AmountSekPattern = regexp.MustCompile(`\d(?:[\d\s\x{00a0},.]*\d)?[ \x{00a0}]*kr\b`)

	OriginalDatesPattern  = regexp.MustCompile(`(?i)URSPRUNGLIGA DATUM\s*(\d{1,2}\s+\p{L}+\.?\s+\d{4})\s*[-–]\s*(\d{1,2}\s+\p{L}+\.?\s+\d{4})`)
	RequestedDatesPattern = regexp.MustCompile(`(?i)EFTERFRÅGADE DATUM\s*(\d{1,2}\s+\p{L}+\.?\s+\d{4})\s*[-–]\s*(\d{1,2}\s+\p{L}+\.?\s+\d{4})`)
)
