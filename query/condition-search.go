package query

import (
	"strings"

	"github.com/tabwork/gridbase/record"
)

// searchCondition matches when name, email or address contains the term,
// case-insensitively. Substring match, no tokenization.
type searchCondition struct {
	term string // trimmed and lowercased
}

func newSearchCondition(text string) searchCondition {
	return searchCondition{
		term: strings.ToLower(strings.TrimSpace(text)),
	}
}

func (c searchCondition) matches(r *record.Record) bool {
	if c.term == "" {
		return true
	}
	for _, field := range []string{r.Name, r.Email, r.Address} {
		if strings.Contains(strings.ToLower(field), c.term) {
			return true
		}
	}
	return false
}
