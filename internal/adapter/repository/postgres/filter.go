package postgres

import (
	"strings"

	"gorm.io/gorm"

	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/listing/domain"
)

var columns = map[domain.Field]string{
	domain.FieldLocation:    "location",
	domain.FieldCategory:    "category",
	domain.FieldPurpose:     "purpose",
	domain.FieldAuthor:      "author_id",
	domain.FieldTitle:       "title",
	domain.FieldDescription: "description",
	domain.FieldActive:      "is_active",
}

// condition is one AND-ed WHERE fragment.
type condition struct {
	query string
	args  []any
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func conditions(f domain.Filter) []condition {
	var out []condition
	for _, e := range f.Equals {
		if col, ok := columns[e.Field]; ok {
			out = append(out, condition{query: col + " = ?", args: []any{e.Value}})
		}
	}

	if !f.Price.IsEmpty() {
		if f.Price.Min != nil {
			out = append(out, condition{query: "price >= ?", args: []any{*f.Price.Min}})
		}
		if f.Price.Max != nil {
			out = append(out, condition{query: "price <= ?", args: []any{*f.Price.Max}})
		}
	}

	if len(f.Keywords) > 0 {
		var (
			groups []string
			args   []any
		)
		for _, kw := range f.Keywords {
			pattern := "%" + likeEscaper.Replace(kw.Term) + "%"
			var alts []string
			for _, field := range kw.Fields {
				if col, ok := columns[field]; ok {
					alts = append(alts, col+" ILIKE ?")
					args = append(args, pattern)
				}
			}
			if len(alts) > 0 {
				groups = append(groups, "("+strings.Join(alts, " OR ")+")")
			}
		}
		if len(groups) > 0 {
			out = append(out, condition{query: "(" + strings.Join(groups, " OR ") + ")", args: args})
		}
	}
	return out
}

func orderBy(s domain.SortOrder) string {
	switch s {
	case domain.SortPriceAsc:
		return "price ASC, created_at DESC"
	case domain.SortPriceDesc:
		return "price DESC, created_at DESC"
	case domain.SortViews:
		return "views DESC, created_at DESC"
	default:
		return "created_at DESC"
	}
}

// filterScope applies the WHERE part of a filter.
func filterScope(f domain.Filter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for _, c := range conditions(f) {
			db = db.Where(c.query, c.args...)
		}
		return db
	}
}
