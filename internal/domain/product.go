package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CustomizationOptions lists what a product can be customized with.
type CustomizationOptions struct {
	Patties []string `bson:"patties,omitempty" json:"patties,omitempty"`
	Extras  []string `bson:"extras,omitempty" json:"extras,omitempty"`
	Sauces  []string `bson:"sauces,omitempty" json:"sauces,omitempty"`
}

type Product struct {
	ID                   primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name                 string               `bson:"name" json:"name"`
	Description          string               `bson:"description,omitempty" json:"description,omitempty"`
	Price                float64              `bson:"price" json:"price"`
	ImageURL             string               `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	CategoryID           primitive.ObjectID   `bson:"category,omitempty" json:"category,omitempty"`
	IsAvailable          bool                 `bson:"isAvailable" json:"isAvailable"`
	CustomizationOptions CustomizationOptions `bson:"customizationOptions,omitempty" json:"customizationOptions,omitempty"`
	CreatedAt            time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time            `bson:"updatedAt" json:"updatedAt"`
}
