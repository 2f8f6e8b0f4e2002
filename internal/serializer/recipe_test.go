package serializer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loren166/foodgram-project-react/internal/models"
	"github.com/loren166/foodgram-project-react/internal/serializer"
	"github.com/loren166/foodgram-project-react/internal/testhelpers"
)

func TestSerializeRecipeAnonymous(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	author := testhelpers.CreateUser(t, db, "chef")
	tag := testhelpers.CreateTag(t, db, "Breakfast", "breakfast")
	flour := testhelpers.CreateIngredient(t, db, "flour", "g")
	milk := testhelpers.CreateIngredient(t, db, "milk", "ml")
	recipe := testhelpers.CreateRecipe(t, db, author, "Pancakes", []models.Tag{*tag}, flour, milk)

	// membership flags are computed against the join tables even when rows
	// exist for other users
	other := testhelpers.CreateUser(t, db, "other")
	require.NoError(t, db.Create(&models.FavoriteRecipe{UserID: other.ID, RecipeID: recipe.ID}).Error)

	var loaded models.Recipe
	require.NoError(t, db.Preload("Author").Preload("Tags").Preload("Ingredients.Ingredient").First(&loaded, recipe.ID).Error)

	resp := serializer.NewRecipeSerializer(db).Serialize(&loaded, nil)

	assert.Equal(t, recipe.ID, resp.ID)
	assert.Equal(t, "Pancakes", resp.Name)
	assert.False(t, resp.IsFavorited)
	assert.False(t, resp.IsInShoppingCart)
	assert.False(t, resp.Author.IsSubscribed)
	require.Len(t, resp.Tags, 1)
	assert.Equal(t, "breakfast", resp.Tags[0].Slug)
	require.Len(t, resp.Ingredients, 2)
	assert.Equal(t, "flour", resp.Ingredients[0].Name)
	assert.Equal(t, "g", resp.Ingredients[0].MeasurementUnit)
	assert.Equal(t, 1, resp.Ingredients[0].Amount)
	assert.Equal(t, 2, resp.Ingredients[1].Amount)
}

func TestSerializeRecipeMembershipFlags(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	author := testhelpers.CreateUser(t, db, "chef")
	viewer := testhelpers.CreateUser(t, db, "viewer")
	tag := testhelpers.CreateTag(t, db, "Lunch", "lunch")
	salt := testhelpers.CreateIngredient(t, db, "salt", "g")
	recipe := testhelpers.CreateRecipe(t, db, author, "Soup", []models.Tag{*tag}, salt)

	require.NoError(t, db.Create(&models.FavoriteRecipe{UserID: viewer.ID, RecipeID: recipe.ID}).Error)
	require.NoError(t, db.Create(&models.ShoppingList{UserID: viewer.ID, RecipeID: recipe.ID}).Error)

	var loaded models.Recipe
	require.NoError(t, db.Preload("Author").Preload("Tags").Preload("Ingredients.Ingredient").First(&loaded, recipe.ID).Error)

	resp := serializer.NewRecipeSerializer(db).Serialize(&loaded, viewer)
	assert.True(t, resp.IsFavorited)
	assert.True(t, resp.IsInShoppingCart)

	resp = serializer.NewRecipeSerializer(db).Serialize(&loaded, author)
	assert.False(t, resp.IsFavorited)
	assert.False(t, resp.IsInShoppingCart)
}

func TestSerializeUserIsSubscribed(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	author := testhelpers.CreateUser(t, db, "author")
	follower := testhelpers.CreateUser(t, db, "follower")
	require.NoError(t, db.Create(&models.Subscribe{UserID: follower.ID, AuthorID: author.ID}).Error)

	users := serializer.NewUserSerializer(db)

	resp := users.Serialize(author, follower)
	assert.True(t, resp.IsSubscribed)
	assert.Equal(t, author.Email, resp.Email)
	assert.Equal(t, "author", resp.Username)

	assert.False(t, users.Serialize(author, nil).IsSubscribed)
	assert.False(t, users.Serialize(follower, author).IsSubscribed)
}

func TestSerializeShortRecipe(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	author := testhelpers.CreateUser(t, db, "chef")
	recipe := testhelpers.CreateRecipe(t, db, author, "Omelette", nil)

	short := serializer.SerializeShortRecipe(recipe)
	assert.Equal(t, recipe.ID, short.ID)
	assert.Equal(t, "Omelette", short.Name)
	assert.Equal(t, recipe.Image, short.Image)
	assert.Equal(t, 10, short.CookingTime)
}
