package application

import "strings"

// DefaultSort lists newest applications first.
const DefaultSort = "-applicationDate"

var sortColumns = map[string]string{
	"applicationDate": "application_date",
	"company":         "company",
	"createdAt":       "created_at",
}

// SortKey resolves a client-supplied sortBy value against the whitelist.
// A leading "-" means descending. Unknown keys fall back to the default.
func SortKey(sortBy string) (column string, desc bool) {
	s := strings.TrimSpace(sortBy)

	if s == "" {
		s = DefaultSort
	}

	if strings.HasPrefix(s, "-") {
		desc = true
		s = s[1:]
	}

	column, ok := sortColumns[s]

	if !ok {
		return "application_date", true
	}

	return column, desc
}
