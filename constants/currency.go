package constants

// Currency marks which symbol, if any, sat next to a matched amount.
// Inferred per candidate from the matched text, never assumed.
type Currency string

const (
	CurrencyEUR  Currency = "EUR"
	CurrencySEK  Currency = "SEK"
	CurrencyNone Currency = "none"
)
