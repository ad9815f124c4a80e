package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category groups products. Name is the natural lookup key the creation
// workflow resolves against; a deleted category must not accept new products.
type Category struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Status    Status             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// DefaultCategories defines the categories seeded on a fresh install.
var DefaultCategories = []Category{
	{Name: "Electronics", Status: StatusActive},
	{Name: "Groceries", Status: StatusActive},
	{Name: "Apparel", Status: StatusActive},
	{Name: "Home & Kitchen", Status: StatusActive},
}
