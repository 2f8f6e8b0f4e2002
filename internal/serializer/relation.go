package serializer

import (
	"github.com/loren166/foodgram-project-react/internal/models"
	"gorm.io/gorm"
)

// SubscriptionResponse projects a subscription as the followed author's
// profile enriched with their recipes and recipe count.
type SubscriptionResponse struct {
	Email        string                `json:"email"`
	ID           uint                  `json:"id"`
	Username     string                `json:"username"`
	FirstName    string                `json:"first_name"`
	LastName     string                `json:"last_name"`
	IsSubscribed bool                  `json:"is_subscribed"`
	Recipes      []ShortRecipeResponse `json:"recipes"`
	RecipesCount int64                 `json:"recipes_count"`
}

// SubscriptionSerializer validates and renders user-to-author follows.
type SubscriptionSerializer struct {
	db *gorm.DB
}

func NewSubscriptionSerializer(db *gorm.DB) *SubscriptionSerializer {
	return &SubscriptionSerializer{db: db}
}

// Validate rejects self-subscription and an already existing pair.
func (s *SubscriptionSerializer) Validate(user, author *models.User) error {
	if user.ID == author.ID {
		return newValidationError("author", "cannot subscribe to yourself")
	}
	var count int64
	if err := s.db.Model(&models.Subscribe{}).
		Where("user_id = ? AND author_id = ?", user.ID, author.ID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return newValidationError("author", "already subscribed to this user")
	}
	return nil
}

// Serialize renders a subscription. recipesLimit > 0 truncates the author's
// recipe list; recipes_count always reflects the full total.
func (s *SubscriptionSerializer) Serialize(sub *models.Subscribe, recipesLimit int) (SubscriptionResponse, error) {
	var author models.User
	if err := s.db.First(&author, sub.AuthorID).Error; err != nil {
		return SubscriptionResponse{}, err
	}

	var total int64
	if err := s.db.Model(&models.Recipe{}).
		Where("author_id = ?", author.ID).
		Count(&total).Error; err != nil {
		return SubscriptionResponse{}, err
	}

	query := s.db.Where("author_id = ?", author.ID).Order("id")
	if recipesLimit > 0 {
		query = query.Limit(recipesLimit)
	}
	var recipes []models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return SubscriptionResponse{}, err
	}

	short := make([]ShortRecipeResponse, 0, len(recipes))
	for i := range recipes {
		short = append(short, SerializeShortRecipe(&recipes[i]))
	}

	var subscribed int64
	s.db.Model(&models.Subscribe{}).
		Where("user_id = ? AND author_id = ?", sub.UserID, sub.AuthorID).
		Count(&subscribed)

	return SubscriptionResponse{
		Email:        author.Email,
		ID:           author.ID,
		Username:     author.Username,
		FirstName:    author.FirstName,
		LastName:     author.LastName,
		IsSubscribed: subscribed > 0,
		Recipes:      short,
		RecipesCount: total,
	}, nil
}

// FavoriteSerializer validates favorite writes; output is the short recipe
// projection.
type FavoriteSerializer struct {
	db *gorm.DB
}

func NewFavoriteSerializer(db *gorm.DB) *FavoriteSerializer {
	return &FavoriteSerializer{db: db}
}

func (s *FavoriteSerializer) Validate(user *models.User, recipe *models.Recipe) error {
	var count int64
	if err := s.db.Model(&models.FavoriteRecipe{}).
		Where("user_id = ? AND recipe_id = ?", user.ID, recipe.ID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return newValidationError("recipe", "recipe is already in favorites")
	}
	return nil
}

// ShoppingCartSerializer validates shopping-cart writes; output is the
// short recipe projection.
type ShoppingCartSerializer struct {
	db *gorm.DB
}

func NewShoppingCartSerializer(db *gorm.DB) *ShoppingCartSerializer {
	return &ShoppingCartSerializer{db: db}
}

func (s *ShoppingCartSerializer) Validate(user *models.User, recipe *models.Recipe) error {
	var count int64
	if err := s.db.Model(&models.ShoppingList{}).
		Where("user_id = ? AND recipe_id = ?", user.ID, recipe.ID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return newValidationError("recipe", "recipe is already in the shopping cart")
	}
	return nil
}
