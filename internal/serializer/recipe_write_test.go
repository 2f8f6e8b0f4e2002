package serializer

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pixelPNG = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mP8z8BQDwAEhQGAhKmMIQAAAABJRU5ErkJggg=="

func decodePayload(t *testing.T, body string) RecipePayload {
	t.Helper()
	var payload RecipePayload
	require.NoError(t, json.Unmarshal([]byte(body), &payload))
	return payload
}

func validPayloadBody(amount string) string {
	return fmt.Sprintf(`{
		"name": "Pancakes",
		"text": "Mix and fry.",
		"cooking_time": 15,
		"image": %q,
		"tags": [1, 2],
		"ingredients": [{"id": 1, "amount": %s}]
	}`, pixelPNG, amount)
}

func TestValidateValidPayload(t *testing.T) {
	payload := decodePayload(t, validPayloadBody("2"))

	validated, err := payload.Validate()
	require.NoError(t, err)
	assert.Equal(t, "Pancakes", validated.Name)
	assert.Equal(t, 15, validated.CookingTime)
	assert.Equal(t, []uint{1, 2}, validated.TagIDs)
	require.Len(t, validated.Ingredients, 1)
	assert.Equal(t, uint(1), validated.Ingredients[0].IngredientID)
	assert.Equal(t, 2, validated.Ingredients[0].Amount)
	require.NotNil(t, validated.Image)
	assert.Equal(t, "png", validated.Image.Ext)
	assert.NotEmpty(t, validated.Image.Data)
}

func TestValidateAmountCoercion(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		wantErr bool
		want    int
	}{
		{name: "numeric string is coerced", amount: `"5"`, want: 5},
		{name: "plain number", amount: `7`, want: 7},
		{name: "zero string rejected", amount: `"0"`, wantErr: true},
		{name: "negative rejected", amount: `-1`, wantErr: true},
		{name: "non-numeric string rejected", amount: `"abc"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := decodePayload(t, validPayloadBody(tt.amount))
			validated, err := payload.Validate()
			if tt.wantErr {
				var vErr *ValidationError
				require.ErrorAs(t, err, &vErr)
				assert.Equal(t, "ingredients", vErr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, validated.Ingredients[0].Amount)
		})
	}
}

func TestValidateEmptyIngredients(t *testing.T) {
	payload := decodePayload(t, fmt.Sprintf(`{
		"name": "Toast", "text": "t", "cooking_time": 5,
		"image": %q, "tags": [1], "ingredients": []
	}`, pixelPNG))

	_, err := payload.Validate()
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "ingredients", vErr.Field)
}

func TestValidateDuplicateIngredients(t *testing.T) {
	payload := decodePayload(t, fmt.Sprintf(`{
		"name": "Toast", "text": "t", "cooking_time": 5,
		"image": %q, "tags": [1],
		"ingredients": [{"id": 1, "amount": 2}, {"id": 1, "amount": 3}]
	}`, pixelPNG))

	_, err := payload.Validate()
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Message, "duplicate")
}

func TestValidateCookingTime(t *testing.T) {
	payload := decodePayload(t, validPayloadBody("2"))

	payload.CookingTime = 0
	_, err := payload.Validate()
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "cooking_time", vErr.Field)

	payload.CookingTime = 1
	_, err = payload.Validate()
	assert.NoError(t, err)
}

func TestValidateTags(t *testing.T) {
	payload := decodePayload(t, validPayloadBody("2"))

	payload.Tags = nil
	_, err := payload.Validate()
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "tags", vErr.Field)

	payload.Tags = []uint{3, 3}
	_, err = payload.Validate()
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Message, "duplicate")
}

func TestValidateReportsFirstFailure(t *testing.T) {
	// both ingredients and tags are invalid; ingredients is checked first
	payload := decodePayload(t, fmt.Sprintf(`{
		"name": "Toast", "text": "t", "cooking_time": 0,
		"image": %q, "tags": [], "ingredients": []
	}`, pixelPNG))

	_, err := payload.Validate()
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "ingredients", vErr.Field)
}

func TestValidateUpdateTagsAndImageOptional(t *testing.T) {
	payload := decodePayload(t, validPayloadBody("2"))
	payload.Tags = nil
	payload.Image = ""

	validated, err := payload.ValidateUpdate()
	require.NoError(t, err)
	assert.Empty(t, validated.TagIDs)
	assert.Nil(t, validated.Image)
}

func TestValidateUpdateStillRequiresIngredients(t *testing.T) {
	payload := decodePayload(t, validPayloadBody("2"))
	payload.Ingredients = nil

	_, err := payload.ValidateUpdate()
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "ingredients", vErr.Field)
}

func TestValidateMissingImage(t *testing.T) {
	payload := decodePayload(t, validPayloadBody("2"))
	payload.Image = ""

	_, err := payload.Validate()
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "image", vErr.Field)
}
