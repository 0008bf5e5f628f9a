// Package search turns the flat query string of the listings endpoint into a
// domain.Filter understood by every listing store.
package search

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/listing/domain"
)

const (
	ParamLocation = "location"
	ParamCategory = "category"
	ParamPurpose  = "purpose"
	ParamMinPrice = "minPrice"
	ParamMaxPrice = "maxPrice"
	ParamBudget   = "budget"
	ParamKeywords = "keywords"
	ParamPage     = "page"
	ParamLimit    = "limit"
	ParamSort     = "sort"

	MaxLimit = 100

	// budgetFloorDivisor derives the lower bound of a budget window.
	budgetFloorDivisor = 10
)

// purposeAliases maps user-facing purpose words onto stored values.
var purposeAliases = map[string]domain.Purpose{
	"buy": domain.PurposeSale,
}

// keywordFields are searched by every keyword token.
var keywordFields = []domain.Field{domain.FieldTitle, domain.FieldDescription}

// Translate builds a filter from query parameters. It never fails: malformed
// numbers and unknown sort orders are treated as absent.
func Translate(q url.Values) domain.Filter {
	var f domain.Filter

	if v := strings.TrimSpace(q.Get(ParamLocation)); v != "" {
		f.Equals = append(f.Equals, domain.Equality{Field: domain.FieldLocation, Value: v})
	}
	if v := strings.TrimSpace(q.Get(ParamCategory)); v != "" {
		f.Equals = append(f.Equals, domain.Equality{Field: domain.FieldCategory, Value: v})
	}
	if v := strings.TrimSpace(q.Get(ParamPurpose)); v != "" {
		f.Equals = append(f.Equals, domain.Equality{Field: domain.FieldPurpose, Value: string(NormalizePurpose(v))})
	}

	f.Price = priceRange(q)
	f.Keywords = keywordMatches(q.Get(ParamKeywords))

	f.Sort = domain.SortNewest
	if s := domain.SortOrder(q.Get(ParamSort)); s.IsValid() {
		f.Sort = s
	}

	if limit, ok := parsePositiveInt(q.Get(ParamLimit)); ok {
		if limit > MaxLimit {
			limit = MaxLimit
		}
		f.Limit = limit
		f.Page = 1
		if page, ok := parsePositiveInt(q.Get(ParamPage)); ok {
			f.Page = page
		}
	}

	return f
}

// NormalizePurpose applies purpose aliases; unknown values pass through.
func NormalizePurpose(v string) domain.Purpose {
	if p, ok := purposeAliases[strings.ToLower(v)]; ok {
		return p
	}
	return domain.Purpose(v)
}

// priceRange seeds the window from budget and lets explicit bounds override it.
func priceRange(q url.Values) *domain.PriceRange {
	r := &domain.PriceRange{}
	if budget, ok := parseAmount(q.Get(ParamBudget)); ok {
		lo := budget / budgetFloorDivisor
		hi := budget
		r.Min, r.Max = &lo, &hi
	}
	if lo, ok := parseAmount(q.Get(ParamMinPrice)); ok {
		r.Min = &lo
	}
	if hi, ok := parseAmount(q.Get(ParamMaxPrice)); ok {
		r.Max = &hi
	}
	if r.IsEmpty() {
		return nil
	}
	return r
}

// keywordMatches splits on whitespace runs; each token searches every keyword field.
func keywordMatches(raw string) []domain.KeywordMatch {
	tokens := strings.Fields(raw)
	if len(tokens) == 0 {
		return nil
	}
	matches := make([]domain.KeywordMatch, 0, len(tokens))
	for _, t := range tokens {
		matches = append(matches, domain.KeywordMatch{
			Term:   t,
			Fields: append([]domain.Field(nil), keywordFields...),
		})
	}
	return matches
}

func parseAmount(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}

func parsePositiveInt(s string) (int64, bool) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || v < 1 {
		return 0, false
	}
	return v, true
}
