package repositories

import (
	"errors"

	"github.com/sajidk24/recipeshare/backend/internal/models"
	"gorm.io/gorm"
)

// DailyCount is one bucket of the per-day analytics aggregation.
type DailyCount struct {
	Date  string `json:"date" bson:"_id"`
	Count int64  `json:"count" bson:"count"`
}

// UserRepository defines the interface for account data operations
type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByID(id uint) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByFirebaseUID(firebaseUID string) (*models.User, error)
	GetUsers() ([]models.User, error)
	UpdateUser(user *models.User) error
	DeleteUser(id uint) error
	CountUsers() (int64, error)
	DailyNewUsers() ([]DailyCount, error)

	GetFavorites(userID uint) ([]models.Favorite, error)
	AddFavorite(userID uint, recipeID string) error
	RemoveFavorite(userID uint, recipeID string) error
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// CreateUser creates a new account record
func (r *PostgresUserRepository) CreateUser(user *models.User) error {
	return r.db.Create(user).Error
}

// GetUserByID retrieves an account record by ID
func (r *PostgresUserRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail retrieves an account record by email
func (r *PostgresUserRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByFirebaseUID retrieves an account record by Firebase UID
func (r *PostgresUserRepository) GetUserByFirebaseUID(firebaseUID string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("firebase_uid = ?", firebaseUID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUsers retrieves all account records
func (r *PostgresUserRepository) GetUsers() ([]models.User, error) {
	var users []models.User
	if err := r.db.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUser updates an existing account record
func (r *PostgresUserRepository) UpdateUser(user *models.User) error {
	return r.db.Save(user).Error
}

// DeleteUser deletes an account record by ID
func (r *PostgresUserRepository) DeleteUser(id uint) error {
	return r.db.Delete(&models.User{}, id).Error
}

// CountUsers returns the total number of account records
func (r *PostgresUserRepository) CountUsers() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}

// DailyNewUsers groups registrations by calendar day
func (r *PostgresUserRepository) DailyNewUsers() ([]DailyCount, error) {
	var rows []DailyCount
	err := r.db.Model(&models.User{}).
		Select("to_char(created_at, 'YYYY-MM-DD') AS date, count(*) AS count").
		Group("to_char(created_at, 'YYYY-MM-DD')").
		Order("date").
		Scan(&rows).Error
	return rows, err
}

// GetFavorites returns the user's bookmarked recipes
func (r *PostgresUserRepository) GetFavorites(userID uint) ([]models.Favorite, error) {
	var favorites []models.Favorite
	if err := r.db.Where("user_id = ?", userID).Find(&favorites).Error; err != nil {
		return nil, err
	}
	return favorites, nil
}

// AddFavorite bookmarks a recipe for the user
func (r *PostgresUserRepository) AddFavorite(userID uint, recipeID string) error {
	return r.db.Create(&models.Favorite{UserID: userID, RecipeID: recipeID}).Error
}

// RemoveFavorite removes a bookmarked recipe
func (r *PostgresUserRepository) RemoveFavorite(userID uint, recipeID string) error {
	res := r.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&models.Favorite{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
