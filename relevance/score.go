// Package relevance scores scraped article text against a search phrase and
// labels each article as inside or outside the recency window.
package relevance

import (
	"regexp"
)

// wordChars is a run of letters, digits or underscores in any script.
const wordChars = `[\p{L}\p{N}_]*`

// moneyPattern matches "$20", "$20.50", "$1,250,000" and "$5 dollars". A
// bare euro or pound amount does not match.
var moneyPattern = regexp.MustCompile(`(?i)\$[0-9]+(?:,[0-9]{3})*(?:\.[0-9]+)?(?:\s+(?:dollars|usd))?`)

// CountPhrase counts the words in text that contain phrase, ignoring case.
// "venezuela" counts "Venezuelan", "Venezuelans" and "Venezuela" once each;
// a word that contains the phrase more than once still counts once.
func CountPhrase(text, phrase string) int {
	if text == "" || phrase == "" {
		return 0
	}

	pattern, err := regexp.Compile(`(?i)` + wordChars + regexp.QuoteMeta(phrase) + wordChars)
	if err != nil {
		return 0
	}

	return len(pattern.FindAllStringIndex(text, -1))
}

// ContainsMoney reports whether text mentions a dollar amount.
func ContainsMoney(text string) bool {
	return moneyPattern.MatchString(text)
}
