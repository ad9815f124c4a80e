package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"go-catalog-admin/internal/model"
)

type ProductRepository interface {
	Search(ctx context.Context, filter model.ProductFilter, page model.Pagination) ([]model.ProductView, int64, error)
	FindByID(ctx context.Context, id primitive.ObjectID, status model.Status) (*model.ProductView, error)
	Create(ctx context.Context, product *model.Product) error
}

type productRepo struct {
	products *mongo.Collection
	counters *mongo.Collection
}

func NewProductRepo(db *mongo.Database) ProductRepository {
	return &productRepo{
		products: db.Collection("products"),
		counters: db.Collection("counters"),
	}
}

// facetResult is the single container the listing aggregation yields: one
// page of rows plus a count list that is empty when nothing matched.
type facetResult struct {
	Data  []model.ProductView `bson:"data"`
	Total []struct {
		Count int64 `bson:"count"`
	} `bson:"total"`
}

func (r *productRepo) Search(ctx context.Context, filter model.ProductFilter, page model.Pagination) ([]model.ProductView, int64, error) {
	cursor, err := r.products.Aggregate(ctx, buildListPipeline(filter, page))
	if err != nil {
		return nil, 0, err
	}
	var results []facetResult
	if err := cursor.All(ctx, &results); err != nil {
		return nil, 0, err
	}
	if len(results) == 0 {
		return nil, 0, nil
	}
	var total int64
	if len(results[0].Total) > 0 {
		total = results[0].Total[0].Count
	}
	return results[0].Data, total, nil
}

func (r *productRepo) FindByID(ctx context.Context, id primitive.ObjectID, status model.Status) (*model.ProductView, error) {
	cursor, err := r.products.Aggregate(ctx, buildGetPipeline(id, status))
	if err != nil {
		return nil, err
	}
	var views []model.ProductView
	if err := cursor.All(ctx, &views); err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, mongo.ErrNoDocuments
	}
	return &views[0], nil
}

func (r *productRepo) Create(ctx context.Context, product *model.Product) error {
	seq, err := r.nextProductID(ctx)
	if err != nil {
		return err
	}
	now := time.Now()
	product.ProductID = seq
	product.CreatedAt = now
	product.UpdatedAt = now

	res, err := r.products.InsertOne(ctx, product)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		product.ID = oid
	}
	return nil
}

// nextProductID increments the product sequence, creating it on first use.
func (r *productRepo) nextProductID(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": "productId"},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, err
	}
	return counter.Seq, nil
}
