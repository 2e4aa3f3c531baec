// Package ticker extracts candidate stock ticker symbols from free text.
//
// Extraction is purely pattern based: any run of one to five uppercase
// letters qualifies, including ordinary words typed in capitals. The
// deliberate bias is toward recall; callers handle the empty-result case
// with a guidance message rather than validating symbols against a real
// instrument registry.
package ticker

import (
	"regexp"
	"strings"
)

// Matches runs of 1-5 uppercase letters on word boundaries (e.g. AAPL, TSLA)
var tickerPattern = regexp.MustCompile(`\b[A-Z]{1,5}\b`)

// Extract returns the distinct ticker candidates found in text, in order of
// first occurrence. Input is uppercased before matching, so "aapl" and
// "AAPL" extract identically. Same input always yields the same result.
func Extract(text string) []string {
	matches := tickerPattern.FindAllString(strings.ToUpper(text), -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(matches))
	tickers := make([]string, 0, len(matches))
	for _, m := range matches {
		if seen[m] {
			continue
		}
		seen[m] = true
		tickers = append(tickers, m)
	}

	return tickers
}
