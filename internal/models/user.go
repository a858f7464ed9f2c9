package models

import (
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

// User is the canonical account record stored in PostgreSQL. Chef details and
// the social graph live in MongoDB keyed by this record's ID.
type User struct {
	gorm.Model       `json:"-"`
	ID               uint   `json:"id" gorm:"primaryKey"`
	Name             string `json:"name"`
	Email            string `json:"email" gorm:"uniqueIndex"` // Ensure email is unique across all users
	Password         string `json:"-"`                        // Store hashed password, ignore for JSON serialization
	Phone            string `json:"phone,omitempty"`
	Address          string `json:"address,omitempty"`
	PostalCode       string `json:"postalCode,omitempty"`
	Age              int    `json:"age,omitempty"`
	Gender           string `json:"gender,omitempty"` // 'male', 'female' or 'other'
	ProfessionalChef bool   `json:"professionalChef"`
	Experience       int    `json:"experience,omitempty"` // Years of cooking experience
	IsAdmin          bool   `json:"isAdmin"`
	FirebaseUID      string `json:"firebase_uid,omitempty" gorm:"index"` // Link to Firebase User UID, empty for local accounts
}

// Favorite links a user to a recipe they bookmarked.
type Favorite struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	UserID   uint   `json:"user_id" gorm:"index;uniqueIndex:idx_user_recipe"`
	RecipeID string `json:"recipe_id" gorm:"uniqueIndex:idx_user_recipe"` // Mongo recipe ObjectID hex
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=4"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateUserDetailsRequest struct {
	Name             string `json:"name,omitempty" validate:"omitempty,min=2,max=50"`
	Email            string `json:"email,omitempty" validate:"omitempty,email"`
	Phone            string `json:"phone,omitempty"`
	Address          string `json:"address,omitempty"`
	PostalCode       string `json:"postalCode,omitempty"`
	Age              int    `json:"age,omitempty" validate:"omitempty,min=0,max=150"`
	Gender           string `json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
	ProfessionalChef *bool  `json:"professionalChef,omitempty"`
	Experience       int    `json:"experience,omitempty" validate:"omitempty,min=0"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
