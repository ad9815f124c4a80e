package repository

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"go-catalog-admin/internal/model"
)

// statusCondition is the lifecycle predicate on the status field: exact match
// for a requested status, everything except deleted when none was requested.
func statusCondition(s model.Status) interface{} {
	if s == "" {
		return bson.M{"$ne": model.StatusDeleted}
	}
	return s
}

// buildProductMatch turns typed criteria into the initial $match predicate.
// The category name stays out of this document: the category is not joined
// yet, so that condition is applied after the $lookup.
func buildProductMatch(filter model.ProductFilter) bson.M {
	match := bson.M{
		"status": statusCondition(filter.Status),
	}
	if filter.Name != "" {
		// Case-insensitive substring match; the pattern is quoted so regex
		// metacharacters in user input match literally.
		match["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(filter.Name), Options: "i"}
	}
	if filter.ProductID != nil {
		match["productId"] = *filter.ProductID
	}
	return match
}

// categoryJoinStages joins each product to its category and flattens the
// joined array. preserveNullAndEmptyArrays keeps products whose category is
// absent or unresolved instead of dropping them.
func categoryJoinStages() mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "categories"},
			{Key: "localField", Value: "category"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "category"},
		}}},
		bson.D{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$category"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}
}

// productProjection keeps only the fields the response shape needs.
var productProjection = bson.M{
	"name":          1,
	"description":   1,
	"price":         1,
	"category.name": 1,
	"productId":     1,
	"image":         1,
	"status":        1,
}

// buildListPipeline assembles the listing aggregation: match → join →
// deferred category-name match → project → sort → facet. The facet computes
// the requested page and the total count over the same filtered, sorted set,
// so both come back in one round trip and can never disagree.
func buildListPipeline(filter model.ProductFilter, page model.Pagination) mongo.Pipeline {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: buildProductMatch(filter)}},
	}
	pipeline = append(pipeline, categoryJoinStages()...)
	if filter.CategoryName != "" {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.M{
			"category.name": filter.CategoryName,
		}}})
	}
	pipeline = append(pipeline,
		bson.D{{Key: "$project", Value: productProjection}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "productId", Value: 1}}}},
		bson.D{{Key: "$facet", Value: bson.M{
			"data":  bson.A{bson.M{"$skip": page.Skip()}, bson.M{"$limit": page.Limit}},
			"total": bson.A{bson.M{"$count": "count"}},
		}}},
	)
	return pipeline
}

// buildGetPipeline fetches one product by id with its category resolved,
// applying the status policy as a direct filter.
func buildGetPipeline(id primitive.ObjectID, status model.Status) mongo.Pipeline {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"_id":    id,
			"status": statusCondition(status),
		}}},
	}
	pipeline = append(pipeline, categoryJoinStages()...)
	pipeline = append(pipeline, bson.D{{Key: "$project", Value: productProjection}})
	return pipeline
}
