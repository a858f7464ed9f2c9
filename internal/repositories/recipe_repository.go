package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sajidk24/recipeshare/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RecipeRepository defines the interface for recipe data operations
type RecipeRepository interface {
	CreateRecipe(ctx context.Context, recipe *models.Recipe) error
	GetRecipeByID(ctx context.Context, id string) (*models.Recipe, error)
	GetRecipesByUserID(ctx context.Context, userID string) ([]models.Recipe, error)
	GetAllRecipes(ctx context.Context) ([]models.Recipe, error)
	GetRecipesByStatus(ctx context.Context, status string) ([]models.Recipe, error)
	UpdateRecipe(ctx context.Context, id string, recipe *models.Recipe) error
	SetRecipeStatus(ctx context.Context, id string, status string) error
	DeleteRecipe(ctx context.Context, id string) error
	CountRecipes(ctx context.Context) (int64, error)
	DailyNewRecipes(ctx context.Context) ([]DailyCount, error)
}

// MongoRecipeRepository implements RecipeRepository for MongoDB
type MongoRecipeRepository struct {
	collection *mongo.Collection
}

// NewMongoRecipeRepository creates a new MongoRecipeRepository
func NewMongoRecipeRepository(db *mongo.Database) *MongoRecipeRepository {
	return &MongoRecipeRepository{collection: db.Collection("recipes")}
}

// CreateRecipe creates a new recipe in MongoDB
func (r *MongoRecipeRepository) CreateRecipe(ctx context.Context, recipe *models.Recipe) error {
	recipe.ID = primitive.NewObjectID()
	recipe.CreatedAt = time.Now()
	if recipe.Status == "" {
		recipe.Status = models.RecipeStatusPending
	}
	_, err := r.collection.InsertOne(ctx, recipe)
	return err
}

// GetRecipeByID retrieves a recipe by ID from MongoDB
func (r *MongoRecipeRepository) GetRecipeByID(ctx context.Context, id string) (*models.Recipe, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid recipe ID format: %w", err)
	}

	var recipe models.Recipe
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&recipe)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// GetRecipesByUserID retrieves the recipes owned by a specific user
func (r *MongoRecipeRepository) GetRecipesByUserID(ctx context.Context, userID string) ([]models.Recipe, error) {
	return r.findRecipes(ctx, bson.M{"user_id": userID})
}

// GetAllRecipes retrieves every recipe
func (r *MongoRecipeRepository) GetAllRecipes(ctx context.Context) ([]models.Recipe, error) {
	return r.findRecipes(ctx, bson.M{})
}

// GetRecipesByStatus retrieves recipes by moderation status
func (r *MongoRecipeRepository) GetRecipesByStatus(ctx context.Context, status string) ([]models.Recipe, error) {
	return r.findRecipes(ctx, bson.M{"status": status})
}

func (r *MongoRecipeRepository) findRecipes(ctx context.Context, filter bson.M) ([]models.Recipe, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	recipes := []models.Recipe{}
	if err = cursor.All(ctx, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// UpdateRecipe updates an existing recipe in MongoDB
func (r *MongoRecipeRepository) UpdateRecipe(ctx context.Context, id string, recipe *models.Recipe) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid recipe ID format: %w", err)
	}

	update := bson.M{
		"$set": bson.M{
			"recipe_name":  recipe.RecipeName,
			"cuisine_type": recipe.CuisineType,
			"ingredients":  recipe.Ingredients,
			"steps":        recipe.Steps,
			"image_url":    recipe.ImageURL,
		},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetRecipeStatus updates the moderation status of a recipe
func (r *MongoRecipeRepository) SetRecipeStatus(ctx context.Context, id string, status string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid recipe ID format: %w", err)
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteRecipe deletes a recipe by ID from MongoDB
func (r *MongoRecipeRepository) DeleteRecipe(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid recipe ID format: %w", err)
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CountRecipes returns the total number of recipes
func (r *MongoRecipeRepository) CountRecipes(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.D{})
}

// DailyNewRecipes groups recipe creation by calendar day
func (r *MongoRecipeRepository) DailyNewRecipes(ctx context.Context) ([]DailyCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"$dateToString": bson.M{"format": "%Y-%m-%d", "date": "$created_at"}},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	rows := []DailyCount{}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
