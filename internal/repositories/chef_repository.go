package repositories

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/sajidk24/recipeshare/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ChefRepository defines the interface for chef profile data operations
type ChefRepository interface {
	CreateChef(ctx context.Context, chef *models.Chef) error
	GetChefByUserID(ctx context.Context, userID string) (*models.Chef, error)
	GetChefs(ctx context.Context) ([]models.Chef, error)
	UpdateChef(ctx context.Context, chef *models.Chef) error
	ToggleFollow(ctx context.Context, targetUserID, actorUserID string) (followed bool, err error)
}

// chefDocuments is the slice of collection behavior the single-document
// reads and writes go through. *mongo.Collection satisfies it.
type chefDocuments interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
}

// MongoChefRepository implements ChefRepository for MongoDB
type MongoChefRepository struct {
	collection *mongo.Collection
	docs       chefDocuments
	pairLocks  sync.Map // sorted "a|b" pair key -> *sync.Mutex
}

// NewMongoChefRepository creates a new MongoChefRepository
func NewMongoChefRepository(db *mongo.Database) *MongoChefRepository {
	collection := db.Collection("chefs")
	return &MongoChefRepository{collection: collection, docs: collection}
}

// EnsureIndexes creates the unique index on user_id
func (r *MongoChefRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// CreateChef creates a new chef profile in MongoDB
func (r *MongoChefRepository) CreateChef(ctx context.Context, chef *models.Chef) error {
	if chef.Followers == nil {
		chef.Followers = []string{}
	}
	if chef.Following == nil {
		chef.Following = []string{}
	}
	_, err := r.collection.InsertOne(ctx, chef)
	return err
}

// GetChefByUserID retrieves a chef profile by account user ID
func (r *MongoChefRepository) GetChefByUserID(ctx context.Context, userID string) (*models.Chef, error) {
	var chef models.Chef
	err := r.docs.FindOne(ctx, bson.M{"user_id": userID}).Decode(&chef)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &chef, nil
}

// GetChefs retrieves all chef profiles
func (r *MongoChefRepository) GetChefs(ctx context.Context) ([]models.Chef, error) {
	cursor, err := r.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var chefs []models.Chef
	if err = cursor.All(ctx, &chefs); err != nil {
		return nil, err
	}
	return chefs, nil
}

// UpdateChef updates the chef-specific attributes of an existing profile.
// Follow edges are only ever mutated through ToggleFollow.
func (r *MongoChefRepository) UpdateChef(ctx context.Context, chef *models.Chef) error {
	update := bson.M{
		"$set": bson.M{
			"phone":             chef.Phone,
			"address":           chef.Address,
			"postal_code":       chef.PostalCode,
			"age":               chef.Age,
			"gender":            chef.Gender,
			"professional_chef": chef.ProfessionalChef,
			"experience":        chef.Experience,
		},
	}
	res, err := r.docs.UpdateOne(ctx, bson.M{"user_id": chef.UserID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleFollow flips the follow edge from actor to target. It returns true
// when the call resulted in a follow, false when it resulted in an unfollow.
//
// Both documents must end up agreeing: target in actor.following exactly when
// actor in target.followers. Toggles on the same pair are serialized through a
// per-pair mutex so concurrent calls cannot interleave into an inconsistent
// state. If the second write fails, the first is rolled back; a rollback
// failure surfaces as ErrPartialUpdate instead of silently diverging.
func (r *MongoChefRepository) ToggleFollow(ctx context.Context, targetUserID, actorUserID string) (bool, error) {
	if targetUserID == actorUserID {
		return false, ErrSelfFollow
	}

	lock := r.pairLock(targetUserID, actorUserID)
	lock.Lock()
	defer lock.Unlock()

	actor, err := r.GetChefByUserID(ctx, actorUserID)
	if err != nil {
		return false, err
	}
	if _, err = r.GetChefByUserID(ctx, targetUserID); err != nil {
		return false, err
	}

	isFollowing := slices.Contains(actor.Following, targetUserID)

	var actorUpdate, targetUpdate, actorRollback bson.M
	if isFollowing {
		actorUpdate = bson.M{"$pull": bson.M{"following": targetUserID}}
		targetUpdate = bson.M{"$pull": bson.M{"followers": actorUserID}}
		actorRollback = bson.M{"$addToSet": bson.M{"following": targetUserID}}
	} else {
		actorUpdate = bson.M{"$addToSet": bson.M{"following": targetUserID}}
		targetUpdate = bson.M{"$addToSet": bson.M{"followers": actorUserID}}
		actorRollback = bson.M{"$pull": bson.M{"following": targetUserID}}
	}

	if _, err = r.docs.UpdateOne(ctx, bson.M{"user_id": actorUserID}, actorUpdate); err != nil {
		return false, err
	}

	if _, err = r.docs.UpdateOne(ctx, bson.M{"user_id": targetUserID}, targetUpdate); err != nil {
		// Compensate the actor-side write so the graph stays symmetric.
		if _, rbErr := r.docs.UpdateOne(ctx, bson.M{"user_id": actorUserID}, actorRollback); rbErr != nil {
			return false, fmt.Errorf("%w: %v (rollback: %v)", ErrPartialUpdate, err, rbErr)
		}
		return false, err
	}

	return !isFollowing, nil
}

// pairLock returns the mutex serializing toggles for an unordered user pair.
func (r *MongoChefRepository) pairLock(a, b string) *sync.Mutex {
	if b < a {
		a, b = b, a
	}
	key := a + "|" + b
	actual, _ := r.pairLocks.LoadOrStore(key, &sync.Mutex{})
	return actual.(*sync.Mutex)
}
