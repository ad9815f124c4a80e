package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is the stored catalog document. ProductID is the human-facing
// numeric identity assigned from the counters collection; the ObjectID is the
// store identity. Image holds the stored filename under the upload directory,
// ImageURL the absolute URL derived from BASE_URL at creation time.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductID   int64              `bson:"productId" json:"productId"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	ImageURL    string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Status      Status             `bson:"status" json:"status"`

	// Relasi
	CategoryID primitive.ObjectID `bson:"category" json:"category"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// CategoryRef is the slice of a joined category carried on listing rows; only
// the name survives the projection.
type CategoryRef struct {
	Name string `bson:"name" json:"name"`
}

// ProductView is a product row after the category join and projection, the
// shape listing and single-item responses are built from. Category is nil
// when the reference did not resolve. ImageURL is filled in by the response
// formatter from the request origin, never read from the store.
type ProductView struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	ProductID   int64              `bson:"productId" json:"productId"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	Status      Status             `bson:"status" json:"status"`
	Category    *CategoryRef       `bson:"category,omitempty" json:"category,omitempty"`
	ImageURL    *string            `bson:"-" json:"imageUrl"`
}
