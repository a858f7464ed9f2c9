package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Recipe moderation states.
const (
	RecipeStatusPending  = "pending"
	RecipeStatusApproved = "approved"
)

// Recipe represents a recipe document stored in MongoDB
type Recipe struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID      string             `json:"user_id" bson:"user_id"` // account ID of the owning chef
	RecipeName  string             `json:"recipeName" bson:"recipe_name"`
	CuisineType string             `json:"cuisineType" bson:"cuisine_type"`
	Ingredients []string           `json:"ingredients" bson:"ingredients"`
	Steps       string             `json:"steps" bson:"steps"`
	ImageURL    string             `json:"imageUrl,omitempty" bson:"image_url,omitempty"`
	Status      string             `json:"status" bson:"status"` // pending until approved by an admin
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}
