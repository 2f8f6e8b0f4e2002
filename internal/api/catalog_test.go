package api_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loren166/foodgram-project-react/internal/models"
	"github.com/loren166/foodgram-project-react/internal/serializer"
	"github.com/loren166/foodgram-project-react/internal/testhelpers"
)

func TestListTags(t *testing.T) {
	app := setupTestAPI(t)
	testhelpers.CreateTag(t, app.db, "Breakfast", "breakfast")
	testhelpers.CreateTag(t, app.db, "Dinner", "dinner")

	w := app.request(t, http.MethodGet, "/api/tags", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp []serializer.TagResponse
	decodeJSON(t, w, &resp)
	require.Len(t, resp, 2)
	assert.Equal(t, "breakfast", resp[0].Slug)
}

func TestGetTagNotFound(t *testing.T) {
	app := setupTestAPI(t)

	w := app.request(t, http.MethodGet, "/api/tags/42", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListIngredientsWithNameFilter(t *testing.T) {
	app := setupTestAPI(t)
	flour := testhelpers.CreateIngredient(t, app.db, "flour", "g")
	testhelpers.CreateIngredient(t, app.db, "sunflower oil", "ml")
	testhelpers.CreateIngredient(t, app.db, "milk", "ml")

	w := app.request(t, http.MethodGet, "/api/ingredients?name=flo", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// prefix match only, "sunflower oil" is excluded
	var resp []models.Ingredient
	decodeJSON(t, w, &resp)
	require.Len(t, resp, 1)
	assert.Equal(t, flour.ID, resp[0].ID)
}

func TestGetIngredient(t *testing.T) {
	app := setupTestAPI(t)
	flour := testhelpers.CreateIngredient(t, app.db, "flour", "g")

	w := app.request(t, http.MethodGet, fmt.Sprintf("/api/ingredients/%d", flour.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.Ingredient
	decodeJSON(t, w, &resp)
	assert.Equal(t, "flour", resp.Name)
	assert.Equal(t, "g", resp.MeasurementUnit)
}
