package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var digitRunRe = regexp.MustCompile(`\d+`)

const currencySigns = "$€£₹"

// ZIP returns the last standalone 5-6 digit number in text, or "" when there
// is none. Runs that belong to a price ("$12000", "12,000.50", "under 12000")
// are skipped.
func ZIP(text string) string {
	budgets := priceCeilingRe.FindAllStringSubmatchIndex(text, -1)
	zip := ""
	for _, loc := range digitRunRe.FindAllStringIndex(text, -1) {
		start, end := loc[0], loc[1]
		if n := end - start; n < 5 || n > 6 {
			continue
		}
		if inBudget(budgets, start, end) {
			continue
		}
		if start > 0 {
			prev, _ := utf8.DecodeLastRuneInString(text[:start])
			if strings.ContainsRune(currencySigns, prev) || prev == '.' || prev == ',' {
				continue
			}
		}
		if end+1 < len(text) && (text[end] == '.' || text[end] == ',') && isDigit(text[end+1]) {
			continue
		}
		zip = text[start:end]
	}
	return zip
}

// inBudget reports whether [start, end) lies inside the amount of a price
// ceiling phrase.
func inBudget(budgets [][]int, start, end int) bool {
	for _, m := range budgets {
		if start >= m[2] && end <= m[3] {
			return true
		}
	}
	return false
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
