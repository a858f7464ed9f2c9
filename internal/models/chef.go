package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Chef is the chef profile document stored in MongoDB. The account record in
// PostgreSQL is the source of truth for name and email; the chef document only
// carries chef-specific attributes and the social graph edges.
//
// Followers and Following hold account user IDs. The symmetry invariant is
// that B appears in A's following list exactly when A appears in B's
// followers list.
type Chef struct {
	ID               primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID           string             `json:"user_id" bson:"user_id"` // account record ID, unique per chef
	Phone            string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Address          string             `json:"address,omitempty" bson:"address,omitempty"`
	PostalCode       string             `json:"postalCode,omitempty" bson:"postal_code,omitempty"`
	Age              int                `json:"age,omitempty" bson:"age,omitempty"`
	Gender           string             `json:"gender,omitempty" bson:"gender,omitempty"`
	ProfessionalChef bool               `json:"professionalChef" bson:"professional_chef"`
	Experience       int                `json:"experience,omitempty" bson:"experience,omitempty"`
	Followers        []string           `json:"followers" bson:"followers"`
	Following        []string           `json:"following" bson:"following"`
}

// CreateChefRequest defines the request body for submitting chef details.
// UserID defaults to the authenticated account when omitted.
type CreateChefRequest struct {
	UserID           string `json:"userId,omitempty"`
	Phone            string `json:"phone,omitempty"`
	Address          string `json:"address,omitempty"`
	PostalCode       string `json:"postalCode,omitempty"`
	Age              int    `json:"age,omitempty" validate:"omitempty,min=0,max=150"`
	Gender           string `json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
	ProfessionalChef bool   `json:"professionalChef"`
	Experience       int    `json:"experience,omitempty" validate:"omitempty,min=0"`
}

// UpdateChefRequest defines the request body for updating chef details
type UpdateChefRequest struct {
	Phone            string `json:"phone,omitempty"`
	Address          string `json:"address,omitempty"`
	PostalCode       string `json:"postalCode,omitempty"`
	Age              int    `json:"age,omitempty" validate:"omitempty,min=0,max=150"`
	Gender           string `json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
	ProfessionalChef *bool  `json:"professionalChef,omitempty"`
	Experience       int    `json:"experience,omitempty" validate:"omitempty,min=0"`
}

// Profile is the aggregated view returned by the profile endpoint: account
// fields joined with chef details, edge counts and the chef's recipes.
type Profile struct {
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone,omitempty"`
	Address        string   `json:"address,omitempty"`
	FollowersCount int      `json:"followersCount"`
	FollowingCount int      `json:"followingCount"`
	Recipes        []Recipe `json:"recipes"`
}
