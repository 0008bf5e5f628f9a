package domain

// Field names understood by every ListingRepository implementation.
type Field string

const (
	FieldLocation    Field = "location"
	FieldCategory    Field = "category"
	FieldPurpose     Field = "purpose"
	FieldAuthor      Field = "author_id"
	FieldTitle       Field = "title"
	FieldDescription Field = "description"
	FieldActive      Field = "is_active"
)

// Equality is an exact-match condition.
type Equality struct {
	Field Field
	Value any
}

// PriceRange is inclusive on both ends; a nil bound is open.
type PriceRange struct {
	Min *float64
	Max *float64
}

func (r *PriceRange) IsEmpty() bool {
	return r == nil || (r.Min == nil && r.Max == nil)
}

// KeywordMatch matches when Term is a case-insensitive substring of any of Fields.
type KeywordMatch struct {
	Term   string
	Fields []Field
}

type SortOrder string

const (
	SortNewest    SortOrder = "newest"
	SortPriceAsc  SortOrder = "price_asc"
	SortPriceDesc SortOrder = "price_desc"
	SortViews     SortOrder = "views"
)

func (s SortOrder) IsValid() bool {
	switch s {
	case SortNewest, SortPriceAsc, SortPriceDesc, SortViews:
		return true
	}
	return false
}

// Filter is the predicate handed to ListingRepository.FindAll and Count.
// Equalities and Price are AND-combined; Keywords are OR-combined among
// themselves and the group is AND-ed with the rest.
type Filter struct {
	Equals   []Equality
	Price    *PriceRange
	Keywords []KeywordMatch
	Sort     SortOrder
	Page     int64
	Limit    int64
}

// Eq returns the value of the first equality on field, if any.
func (f Filter) Eq(field Field) (any, bool) {
	for _, e := range f.Equals {
		if e.Field == field {
			return e.Value, true
		}
	}
	return nil, false
}

// WithEquality returns a copy of f with an extra equality condition.
func (f Filter) WithEquality(field Field, value any) Filter {
	out := f
	out.Equals = append(append([]Equality(nil), f.Equals...), Equality{Field: field, Value: value})
	return out
}

// Skip is the number of records to skip for the requested page.
func (f Filter) Skip() int64 {
	if f.Limit <= 0 || f.Page <= 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit
}
