package testhelpers

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/loren166/foodgram-project-react/internal/models"
)

// PixelPNG is a 1x1 transparent PNG as a base64 data URI, used as the image
// field of write payloads in tests.
const PixelPNG = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mP8z8BQDwAEhQGAhKmMIQAAAABJRU5ErkJggg=="

func CreateUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func CreateTag(t *testing.T, db *gorm.DB, name, slug string) *models.Tag {
	t.Helper()
	tag := models.Tag{Name: name, Color: "#49B64E", Slug: slug}
	require.NoError(t, db.Create(&tag).Error)
	return &tag
}

func CreateIngredient(t *testing.T, db *gorm.DB, name, unit string) *models.Ingredient {
	t.Helper()
	ingredient := models.Ingredient{Name: name, MeasurementUnit: unit}
	require.NoError(t, db.Create(&ingredient).Error)
	return &ingredient
}

// CreateRecipe builds a recipe with the given tags and one line item per
// ingredient, amounts starting at 1.
func CreateRecipe(t *testing.T, db *gorm.DB, author *models.User, name string, tags []models.Tag, ingredients ...*models.Ingredient) *models.Recipe {
	t.Helper()
	recipe := models.Recipe{
		Name:        name,
		Text:        fmt.Sprintf("How to cook %s", name),
		CookingTime: 10,
		Image:       "/media/recipes/" + name + ".png",
		AuthorID:    author.ID,
	}
	require.NoError(t, db.Create(&recipe).Error)
	if len(tags) > 0 {
		require.NoError(t, db.Model(&recipe).Association("Tags").Replace(tags))
	}
	for i, ingredient := range ingredients {
		line := models.IngredientRecipe{
			RecipeID:     recipe.ID,
			IngredientID: ingredient.ID,
			Amount:       i + 1,
		}
		require.NoError(t, db.Create(&line).Error)
	}
	return &recipe
}
