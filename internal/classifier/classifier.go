// Package classifier resolves train car numbers to rolling-stock models by
// scanning the dataset's range table.
package classifier

import (
	"strconv"
	"strings"

	"subwaylog/pkg/domain"
)

// Match is a successful classification outcome.
type Match struct {
	Model    string
	Division domain.Division
}

// Classify parses carNumberText as a base-10 integer and scans rollingStock
// in stored order, returning the first entry whose range list contains the
// number, inclusive on both ends. The boolean is false for empty or
// non-numeric input and when no range matches.
//
// Overlapping ranges across entries resolve to the earliest entry in the
// list. That order dependence is intentional: the dataset is user-edited and
// overlap is never validated at entry time.
func Classify(carNumberText string, rollingStock []domain.RollingStockEntry) (Match, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(carNumberText))
	if err != nil {
		return Match{}, false
	}
	for _, entry := range rollingStock {
		for _, r := range entry.Ranges {
			if r.Contains(n) {
				return Match{Model: entry.Model, Division: entry.Division}, true
			}
		}
	}
	return Match{}, false
}
