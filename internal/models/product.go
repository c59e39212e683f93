package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product represents a product record in the catalog.
// The storage identifier is rendered as the hex string `id` in JSON; the
// raw `_id` is never exposed.
type Product struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name" validate:"omitempty,min=2,max=100"`
	Price       float64            `json:"price" bson:"price" validate:"gte=0,lte=1000000"`
	Category    string             `json:"category" bson:"category" validate:"omitempty,oneof=books electronics clothing other"`
	Description string             `json:"description" bson:"description" validate:"omitempty,max=1000"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}
