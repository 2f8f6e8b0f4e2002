package serializer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loren166/foodgram-project-react/internal/models"
	"github.com/loren166/foodgram-project-react/internal/serializer"
	"github.com/loren166/foodgram-project-react/internal/testhelpers"
)

func TestSubscriptionValidateSelf(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	user := testhelpers.CreateUser(t, db, "alice")

	err := serializer.NewSubscriptionSerializer(db).Validate(user, user)
	var vErr *serializer.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Message, "yourself")
}

func TestSubscriptionValidateDuplicate(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	user := testhelpers.CreateUser(t, db, "alice")
	author := testhelpers.CreateUser(t, db, "bob")
	subs := serializer.NewSubscriptionSerializer(db)

	require.NoError(t, subs.Validate(user, author))
	require.NoError(t, db.Create(&models.Subscribe{UserID: user.ID, AuthorID: author.ID}).Error)

	err := subs.Validate(user, author)
	var vErr *serializer.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Message, "already subscribed")
}

func TestSubscriptionSerialize(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	user := testhelpers.CreateUser(t, db, "alice")
	author := testhelpers.CreateUser(t, db, "bob")
	for _, name := range []string{"Borscht", "Pelmeni", "Syrniki"} {
		testhelpers.CreateRecipe(t, db, author, name, nil)
	}

	sub := models.Subscribe{UserID: user.ID, AuthorID: author.ID}
	require.NoError(t, db.Create(&sub).Error)

	resp, err := serializer.NewSubscriptionSerializer(db).Serialize(&sub, 0)
	require.NoError(t, err)
	assert.Equal(t, author.ID, resp.ID)
	assert.Equal(t, "bob", resp.Username)
	assert.True(t, resp.IsSubscribed)
	assert.Equal(t, int64(3), resp.RecipesCount)
	assert.Len(t, resp.Recipes, 3)
}

func TestSubscriptionSerializeRecipesLimit(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	user := testhelpers.CreateUser(t, db, "alice")
	author := testhelpers.CreateUser(t, db, "bob")
	for _, name := range []string{"Borscht", "Pelmeni", "Syrniki"} {
		testhelpers.CreateRecipe(t, db, author, name, nil)
	}

	sub := models.Subscribe{UserID: user.ID, AuthorID: author.ID}
	require.NoError(t, db.Create(&sub).Error)

	resp, err := serializer.NewSubscriptionSerializer(db).Serialize(&sub, 2)
	require.NoError(t, err)
	// the list is truncated but the count reflects the full total
	assert.Len(t, resp.Recipes, 2)
	assert.Equal(t, int64(3), resp.RecipesCount)
}

func TestFavoriteValidateDuplicate(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	user := testhelpers.CreateUser(t, db, "alice")
	author := testhelpers.CreateUser(t, db, "bob")
	recipe := testhelpers.CreateRecipe(t, db, author, "Borscht", nil)
	favorites := serializer.NewFavoriteSerializer(db)

	require.NoError(t, favorites.Validate(user, recipe))
	require.NoError(t, db.Create(&models.FavoriteRecipe{UserID: user.ID, RecipeID: recipe.ID}).Error)

	err := favorites.Validate(user, recipe)
	var vErr *serializer.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Message, "favorites")
}

func TestShoppingCartValidateDuplicate(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	user := testhelpers.CreateUser(t, db, "alice")
	author := testhelpers.CreateUser(t, db, "bob")
	recipe := testhelpers.CreateRecipe(t, db, author, "Borscht", nil)
	cart := serializer.NewShoppingCartSerializer(db)

	require.NoError(t, cart.Validate(user, recipe))
	require.NoError(t, db.Create(&models.ShoppingList{UserID: user.ID, RecipeID: recipe.ID}).Error)

	err := cart.Validate(user, recipe)
	var vErr *serializer.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Message, "shopping cart")
}
