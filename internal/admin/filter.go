package admin

import "strings"

// Filter returns the rows of a tab whose designated fields contain term,
// compared case-insensitively. An empty term keeps every row. category only
// applies to the menu tab, where it must match exactly unless it is empty or
// AllCategory.
func (d Dataset) Filter(tab Tab, term, category string) ([]Entity, error) {
	rows, err := d.Rows(tab)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(term))
	out := make([]Entity, 0, len(rows))
	for _, row := range rows {
		if !matchesTerm(row, needle) {
			continue
		}
		if item, ok := row.(MenuItem); ok && category != "" && category != AllCategory && item.Category != category {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

func matchesTerm(row Entity, needle string) bool {
	if needle == "" {
		return true
	}
	for _, field := range row.searchFields() {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
