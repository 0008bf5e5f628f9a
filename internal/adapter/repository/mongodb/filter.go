package mongodb

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/listing/domain"
)

var fieldNames = map[domain.Field]string{
	domain.FieldLocation:    "location",
	domain.FieldCategory:    "category",
	domain.FieldPurpose:     "purpose",
	domain.FieldAuthor:      "author_id",
	domain.FieldTitle:       "title",
	domain.FieldDescription: "description",
	domain.FieldActive:      "is_active",
}

// listingQuery renders a filter as a find query. Unknown fields are skipped.
func listingQuery(f domain.Filter) bson.M {
	q := bson.M{}
	for _, e := range f.Equals {
		if name, ok := fieldNames[e.Field]; ok {
			q[name] = e.Value
		}
	}

	if !f.Price.IsEmpty() {
		price := bson.M{}
		if f.Price.Min != nil {
			price["$gte"] = *f.Price.Min
		}
		if f.Price.Max != nil {
			price["$lte"] = *f.Price.Max
		}
		q["price"] = price
	}

	if len(f.Keywords) > 0 {
		groups := make(bson.A, 0, len(f.Keywords))
		for _, kw := range f.Keywords {
			pattern := primitive.Regex{Pattern: regexp.QuoteMeta(kw.Term), Options: "i"}
			alts := make(bson.A, 0, len(kw.Fields))
			for _, field := range kw.Fields {
				if name, ok := fieldNames[field]; ok {
					alts = append(alts, bson.M{name: pattern})
				}
			}
			groups = append(groups, bson.M{"$or": alts})
		}
		q["$or"] = groups
	}
	return q
}

func listingSort(s domain.SortOrder) bson.D {
	newest := bson.E{Key: "created_at", Value: -1}
	switch s {
	case domain.SortPriceAsc:
		return bson.D{{Key: "price", Value: 1}, newest}
	case domain.SortPriceDesc:
		return bson.D{{Key: "price", Value: -1}, newest}
	case domain.SortViews:
		return bson.D{{Key: "views", Value: -1}, newest}
	default:
		return bson.D{newest}
	}
}
