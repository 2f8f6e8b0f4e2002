package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/loren166/foodgram-project-react/internal/filters"
	"github.com/loren166/foodgram-project-react/internal/models"
	"github.com/loren166/foodgram-project-react/internal/serializer"
)

// RecipeService handles recipe persistence: create and update run inside a
// single transaction so a failed line-item insert never leaves an orphaned
// recipe.
type RecipeService struct {
	db      *gorm.DB
	storage ImageStorage
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB, storage ImageStorage) *RecipeService {
	return &RecipeService{
		db:      db,
		storage: storage,
	}
}

// GetRecipe retrieves a recipe by ID with all associations loaded
func (s *RecipeService) GetRecipe(ctx context.Context, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		First(&recipe, id).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// ListRecipes returns recipes matching the filter, newest first
func (s *RecipeService) ListRecipes(ctx context.Context, filter filters.RecipeFilter, requester *models.User) ([]models.Recipe, error) {
	var recipes []models.Recipe
	query := s.db.WithContext(ctx).Model(&models.Recipe{}).
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Order("recipes.id DESC")
	query = filter.Apply(query, requester)
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// CreateRecipe persists a validated payload as a new recipe owned by author
func (s *RecipeService) CreateRecipe(ctx context.Context, validated *serializer.ValidatedRecipe, author *models.User) (*models.Recipe, error) {
	imageURL, err := s.storage.Save(ctx, validated.Image.Data, validated.Image.Ext)
	if err != nil {
		return nil, fmt.Errorf("failed to store recipe image: %w", err)
	}

	recipe := models.Recipe{
		Name:        validated.Name,
		Text:        validated.Text,
		CookingTime: validated.CookingTime,
		Image:       imageURL,
		AuthorID:    author.ID,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags, err := s.resolveTags(tx, validated.TagIDs)
		if err != nil {
			return err
		}
		if err := s.checkIngredientsExist(tx, validated.Ingredients); err != nil {
			return err
		}

		if err := tx.Create(&recipe).Error; err != nil {
			return err
		}
		if err := tx.Model(&recipe).Association("Tags").Replace(tags); err != nil {
			return err
		}
		return s.createLines(tx, recipe.ID, validated.Ingredients)
	})
	if err != nil {
		return nil, err
	}

	return s.GetRecipe(ctx, recipe.ID)
}

// UpdateRecipe applies a validated payload to an existing recipe. Tags are
// replaced only when supplied; line items are always cleared and rebuilt.
func (s *RecipeService) UpdateRecipe(ctx context.Context, recipe *models.Recipe, validated *serializer.ValidatedRecipe) (*models.Recipe, error) {
	imageURL := recipe.Image
	if validated.Image != nil {
		stored, err := s.storage.Save(ctx, validated.Image.Data, validated.Image.Ext)
		if err != nil {
			return nil, fmt.Errorf("failed to store recipe image: %w", err)
		}
		imageURL = stored
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(validated.TagIDs) > 0 {
			tags, err := s.resolveTags(tx, validated.TagIDs)
			if err != nil {
				return err
			}
			if err := tx.Model(recipe).Association("Tags").Replace(tags); err != nil {
				return err
			}
		}

		if err := s.checkIngredientsExist(tx, validated.Ingredients); err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.IngredientRecipe{}).Error; err != nil {
			return err
		}
		if err := s.createLines(tx, recipe.ID, validated.Ingredients); err != nil {
			return err
		}

		return tx.Model(&models.Recipe{}).Where("id = ?", recipe.ID).Updates(map[string]interface{}{
			"name":         validated.Name,
			"text":         validated.Text,
			"cooking_time": validated.CookingTime,
			"image":        imageURL,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	return s.GetRecipe(ctx, recipe.ID)
}

// DeleteRecipe removes a recipe
func (s *RecipeService) DeleteRecipe(ctx context.Context, recipe *models.Recipe) error {
	return s.db.WithContext(ctx).Delete(&models.Recipe{}, recipe.ID).Error
}

// resolveTags loads the referenced tags; a missing id surfaces as
// gorm.ErrRecordNotFound.
func (s *RecipeService) resolveTags(tx *gorm.DB, ids []uint) ([]models.Tag, error) {
	var tags []models.Tag
	if err := tx.Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, err
	}
	if len(tags) != len(ids) {
		return nil, fmt.Errorf("tag does not exist: %w", gorm.ErrRecordNotFound)
	}
	return tags, nil
}

func (s *RecipeService) checkIngredientsExist(tx *gorm.DB, lines []serializer.IngredientLine) error {
	ids := make([]uint, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.IngredientID)
	}
	var count int64
	if err := tx.Model(&models.Ingredient{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return err
	}
	if count != int64(len(ids)) {
		return fmt.Errorf("ingredient does not exist: %w", gorm.ErrRecordNotFound)
	}
	return nil
}

func (s *RecipeService) createLines(tx *gorm.DB, recipeID uint, lines []serializer.IngredientLine) error {
	rows := make([]models.IngredientRecipe, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, models.IngredientRecipe{
			RecipeID:     recipeID,
			IngredientID: line.IngredientID,
			Amount:       line.Amount,
		})
	}
	return tx.Create(&rows).Error
}

// Favorite adds a recipe to the user's favorites
func (s *RecipeService) Favorite(ctx context.Context, user *models.User, recipe *models.Recipe) error {
	fav := models.FavoriteRecipe{UserID: user.ID, RecipeID: recipe.ID}
	return s.db.WithContext(ctx).Create(&fav).Error
}

// Unfavorite removes a recipe from the user's favorites
func (s *RecipeService) Unfavorite(ctx context.Context, user *models.User, recipe *models.Recipe) error {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", user.ID, recipe.ID).
		Delete(&models.FavoriteRecipe{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AddToCart adds a recipe to the user's shopping cart
func (s *RecipeService) AddToCart(ctx context.Context, user *models.User, recipe *models.Recipe) error {
	entry := models.ShoppingList{UserID: user.ID, RecipeID: recipe.ID}
	return s.db.WithContext(ctx).Create(&entry).Error
}

// RemoveFromCart removes a recipe from the user's shopping cart
func (s *RecipeService) RemoveFromCart(ctx context.Context, user *models.User, recipe *models.Recipe) error {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", user.ID, recipe.ID).
		Delete(&models.ShoppingList{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ShoppingCartReport renders the user's cart as a plain-text shopping list
// with amounts summed per ingredient across recipes.
func (s *RecipeService) ShoppingCartReport(ctx context.Context, user *models.User) (string, error) {
	type row struct {
		Name            string
		MeasurementUnit string
		Total           int
	}
	var rows []row
	err := s.db.WithContext(ctx).
		Table("ingredient_recipes").
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(ingredient_recipes.amount) AS total").
		Joins("JOIN ingredients ON ingredients.id = ingredient_recipes.ingredient_id").
		Joins("JOIN shopping_lists ON shopping_lists.recipe_id = ingredient_recipes.recipe_id").
		Where("shopping_lists.user_id = ?", user.ID).
		Group("ingredients.name, ingredients.measurement_unit").
		Scan(&rows).Error
	if err != nil {
		return "", err
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })

	var b strings.Builder
	b.WriteString("Shopping list:\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "%s (%s): %d\n", r.Name, r.MeasurementUnit, r.Total)
	}
	return b.String(), nil
}
