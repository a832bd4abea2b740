package companies

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"ndasearch/internal/domain"
)

// DefaultPageSize is the number of merged records returned per search.
const DefaultPageSize = 12

// Merge flattens per-source results in priority order, drops duplicates
// and orders address-bearing records first. It never mutates the records.
//
// A record is dropped when either its number/jurisdiction key or its
// normalized name key was already seen. The name key can collapse distinct
// companies that share a name across registries; that loss of recall is
// accepted in exchange for not listing the same entity twice.
func Merge(perSource [][]domain.CompanyRecord, pageSize int) []domain.CompanyRecord {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	seen := make(map[string]struct{})
	out := make([]domain.CompanyRecord, 0)
	for _, records := range perSource {
		for _, r := range records {
			key := r.CompanyNumber + "-" + strings.ToLower(r.Jurisdiction)
			nk := nameKey(r.Name)
			if _, dup := seen[key]; dup {
				continue
			}
			if nk != "" {
				if _, dup := seen[nk]; dup {
					continue
				}
			}
			seen[key] = struct{}{}
			if nk != "" {
				seen[nk] = struct{}{}
			}
			out = append(out, r)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].HasAddress() && !out[j].HasAddress()
	})

	if len(out) > pageSize {
		out = out[:pageSize]
	}
	return out
}

// nameKey lowercases, folds diacritics and keeps only [a-z0-9].
func nameKey(name string) string {
	folded := norm.NFKD.String(strings.ToLower(name))
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
