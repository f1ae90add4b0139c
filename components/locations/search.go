package locations

import (
	"sort"
	"strings"
)

// Option is one suggestion entry as the handler serialises it.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Search filters the place list case-insensitively. Prefix matches rank
// before substring matches, ties break alphabetically.
func Search(places []string, query string, limit int, opts Options) []string {
	limit = clampLimit(limit, opts)
	if limit == 0 {
		return nil
	}

	query = strings.TrimSpace(query)
	if query == "" {
		if opts.EmptySearchMode == EmptySearchTop {
			if len(places) <= limit {
				return append([]string{}, places...)
			}
			return append([]string{}, places[:limit]...)
		}
		return nil
	}

	q := strings.ToLower(query)
	matches := make([]matchedPlace, 0, 16)
	for _, place := range places {
		lowerPlace := strings.ToLower(place)
		if !strings.Contains(lowerPlace, q) {
			continue
		}
		matches = append(matches, matchedPlace{
			name:     place,
			isPrefix: strings.HasPrefix(lowerPlace, q),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].isPrefix != matches[j].isPrefix {
			return matches[i].isPrefix
		}
		return matches[i].name < matches[j].name
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]string, 0, len(matches))
	for _, match := range matches {
		out = append(out, match.name)
	}
	return out
}

// SearchOptions wraps Search results in the value/label shape form controls
// consume.
func SearchOptions(places []string, query string, limit int, opts Options) []Option {
	results := Search(places, query, limit, opts)
	if len(results) == 0 {
		return nil
	}

	out := make([]Option, 0, len(results))
	for _, place := range results {
		out = append(out, Option{Value: place, Label: place})
	}
	return out
}

type matchedPlace struct {
	name     string
	isPrefix bool
}
