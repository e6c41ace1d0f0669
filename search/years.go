package search

import (
	"regexp"
	"strconv"
)

// yearPattern matches 4-digit years from 1700 through 2099 on word
// boundaries, so figures like "18720" or "991" never read as years.
var yearPattern = regexp.MustCompile(`\b(1[7-9]\d{2}|20\d{2})\b`)

// ExtractYears returns every year mentioned in text, in order of
// appearance. Duplicates are preserved.
func ExtractYears(text string) []int {
	matches := yearPattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}

	years := make([]int, 0, len(matches))
	for _, match := range matches {
		year, err := strconv.Atoi(match)
		if err != nil {
			continue
		}
		years = append(years, year)
	}
	return years
}
