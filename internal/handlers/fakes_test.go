package handlers

import (
	"context"
	"net/http/httptest"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sajidk24/recipeshare/backend/internal/models"
	"github.com/sajidk24/recipeshare/backend/internal/repositories"
	"github.com/sajidk24/recipeshare/backend/validators"
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validators.NewValidator()
	return e
}

func jsonRequest(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return c, rec
}

// --- chef repository fake ---

type fakeChefRepo struct {
	chefs map[string]*models.Chef
}

func newFakeChefRepo(chefs ...*models.Chef) *fakeChefRepo {
	repo := &fakeChefRepo{chefs: make(map[string]*models.Chef)}
	for _, chef := range chefs {
		if chef.Followers == nil {
			chef.Followers = []string{}
		}
		if chef.Following == nil {
			chef.Following = []string{}
		}
		repo.chefs[chef.UserID] = chef
	}
	return repo
}

func (r *fakeChefRepo) CreateChef(_ context.Context, chef *models.Chef) error {
	r.chefs[chef.UserID] = chef
	return nil
}

func (r *fakeChefRepo) GetChefByUserID(_ context.Context, userID string) (*models.Chef, error) {
	chef, ok := r.chefs[userID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *chef
	return &copied, nil
}

func (r *fakeChefRepo) GetChefs(_ context.Context) ([]models.Chef, error) {
	out := []models.Chef{}
	for _, chef := range r.chefs {
		out = append(out, *chef)
	}
	return out, nil
}

func (r *fakeChefRepo) UpdateChef(_ context.Context, chef *models.Chef) error {
	stored, ok := r.chefs[chef.UserID]
	if !ok {
		return repositories.ErrNotFound
	}
	edgesF, edgesG := stored.Followers, stored.Following
	*stored = *chef
	stored.Followers, stored.Following = edgesF, edgesG
	return nil
}

func (r *fakeChefRepo) ToggleFollow(_ context.Context, targetUserID, actorUserID string) (bool, error) {
	if targetUserID == actorUserID {
		return false, repositories.ErrSelfFollow
	}
	actor, ok := r.chefs[actorUserID]
	if !ok {
		return false, repositories.ErrNotFound
	}
	target, ok := r.chefs[targetUserID]
	if !ok {
		return false, repositories.ErrNotFound
	}

	if slices.Contains(actor.Following, targetUserID) {
		actor.Following = slices.DeleteFunc(actor.Following, func(id string) bool { return id == targetUserID })
		target.Followers = slices.DeleteFunc(target.Followers, func(id string) bool { return id == actorUserID })
		return false, nil
	}
	actor.Following = append(actor.Following, targetUserID)
	target.Followers = append(target.Followers, actorUserID)
	return true, nil
}

// --- user repository fake ---

type fakeUserRepo struct {
	users     map[uint]*models.User
	favorites []models.Favorite
	nextID    uint
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[uint]*models.User), nextID: 1}
	for _, user := range users {
		if user.ID == 0 {
			user.ID = repo.nextID
		}
		if user.ID >= repo.nextID {
			repo.nextID = user.ID + 1
		}
		repo.users[user.ID] = user
	}
	return repo
}

func (r *fakeUserRepo) CreateUser(user *models.User) error {
	if user.ID == 0 {
		user.ID = r.nextID
	}
	r.nextID = user.ID + 1
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetUserByID(id uint) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetUserByEmail(email string) (*models.User, error) {
	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) GetUserByFirebaseUID(firebaseUID string) (*models.User, error) {
	for _, user := range r.users {
		if user.FirebaseUID == firebaseUID {
			return user, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) GetUsers() ([]models.User, error) {
	out := []models.User{}
	for _, user := range r.users {
		out = append(out, *user)
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateUser(user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) DeleteUser(id uint) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) CountUsers() (int64, error) {
	return int64(len(r.users)), nil
}

func (r *fakeUserRepo) DailyNewUsers() ([]repositories.DailyCount, error) {
	return []repositories.DailyCount{}, nil
}

func (r *fakeUserRepo) GetFavorites(userID uint) ([]models.Favorite, error) {
	out := []models.Favorite{}
	for _, fav := range r.favorites {
		if fav.UserID == userID {
			out = append(out, fav)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) AddFavorite(userID uint, recipeID string) error {
	r.favorites = append(r.favorites, models.Favorite{UserID: userID, RecipeID: recipeID})
	return nil
}

func (r *fakeUserRepo) RemoveFavorite(userID uint, recipeID string) error {
	before := len(r.favorites)
	r.favorites = slices.DeleteFunc(r.favorites, func(fav models.Favorite) bool {
		return fav.UserID == userID && fav.RecipeID == recipeID
	})
	if len(r.favorites) == before {
		return repositories.ErrNotFound
	}
	return nil
}

// --- recipe repository fake ---

type fakeRecipeRepo struct {
	recipes []models.Recipe
}

func (r *fakeRecipeRepo) CreateRecipe(_ context.Context, recipe *models.Recipe) error {
	r.recipes = append(r.recipes, *recipe)
	return nil
}

func (r *fakeRecipeRepo) GetRecipeByID(_ context.Context, id string) (*models.Recipe, error) {
	for i := range r.recipes {
		if r.recipes[i].ID.Hex() == id {
			return &r.recipes[i], nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeRecipeRepo) GetRecipesByUserID(_ context.Context, userID string) ([]models.Recipe, error) {
	out := []models.Recipe{}
	for _, recipe := range r.recipes {
		if recipe.UserID == userID {
			out = append(out, recipe)
		}
	}
	return out, nil
}

func (r *fakeRecipeRepo) GetAllRecipes(_ context.Context) ([]models.Recipe, error) {
	return r.recipes, nil
}

func (r *fakeRecipeRepo) GetRecipesByStatus(_ context.Context, status string) ([]models.Recipe, error) {
	out := []models.Recipe{}
	for _, recipe := range r.recipes {
		if recipe.Status == status {
			out = append(out, recipe)
		}
	}
	return out, nil
}

func (r *fakeRecipeRepo) UpdateRecipe(_ context.Context, _ string, _ *models.Recipe) error {
	return nil
}

func (r *fakeRecipeRepo) SetRecipeStatus(_ context.Context, _ string, _ string) error {
	return nil
}

func (r *fakeRecipeRepo) DeleteRecipe(_ context.Context, _ string) error {
	return nil
}

func (r *fakeRecipeRepo) CountRecipes(_ context.Context) (int64, error) {
	return int64(len(r.recipes)), nil
}

func (r *fakeRecipeRepo) DailyNewRecipes(_ context.Context) ([]repositories.DailyCount, error) {
	return []repositories.DailyCount{}, nil
}

// --- message repository fake ---

type fakeMessageRepo struct {
	messages []models.Message
	failWith error
}

func (r *fakeMessageRepo) CreateMessage(_ context.Context, message *models.Message) error {
	if r.failWith != nil {
		return r.failWith
	}
	if message.Timestamp.IsZero() {
		message.Timestamp = time.Now()
	}
	r.messages = append(r.messages, *message)
	return nil
}

func (r *fakeMessageRepo) GetConversation(_ context.Context, userID, otherUserID string) ([]models.Message, error) {
	out := []models.Message{}
	for _, m := range r.messages {
		if (m.Sender == userID && m.Receiver == otherUserID) || (m.Sender == otherUserID && m.Receiver == userID) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}
