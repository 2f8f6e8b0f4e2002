package serializer

import (
	"github.com/loren166/foodgram-project-react/internal/models"
	"gorm.io/gorm"
)

// TagResponse is the wire representation of a tag.
type TagResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

// RecipeIngredientResponse is a recipe line item expanded with the
// referenced ingredient's name and unit.
type RecipeIngredientResponse struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// RecipeResponse is the full wire representation of a recipe.
type RecipeResponse struct {
	ID               uint                       `json:"id"`
	Tags             []TagResponse              `json:"tags"`
	Author           UserResponse               `json:"author"`
	Ingredients      []RecipeIngredientResponse `json:"ingredients"`
	IsFavorited      bool                       `json:"is_favorited"`
	IsInShoppingCart bool                       `json:"is_in_shopping_cart"`
	Name             string                     `json:"name"`
	Image            string                     `json:"image"`
	Text             string                     `json:"text"`
	CookingTime      int                        `json:"cooking_time"`
}

// ShortRecipeResponse is the reduced recipe view used inside favorite,
// shopping-cart and subscription responses.
type ShortRecipeResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// RecipeSerializer renders recipes for reading. The recipe must be loaded
// with Author, Tags and Ingredients.Ingredient associations.
type RecipeSerializer struct {
	db    *gorm.DB
	users *UserSerializer
}

func NewRecipeSerializer(db *gorm.DB) *RecipeSerializer {
	return &RecipeSerializer{db: db, users: NewUserSerializer(db)}
}

func SerializeTag(tag models.Tag) TagResponse {
	return TagResponse{
		ID:    tag.ID,
		Name:  tag.Name,
		Color: tag.Color,
		Slug:  tag.Slug,
	}
}

func SerializeShortRecipe(recipe *models.Recipe) ShortRecipeResponse {
	return ShortRecipeResponse{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       recipe.Image,
		CookingTime: recipe.CookingTime,
	}
}

func (s *RecipeSerializer) Serialize(recipe *models.Recipe, requester *models.User) RecipeResponse {
	tags := make([]TagResponse, 0, len(recipe.Tags))
	for _, tag := range recipe.Tags {
		tags = append(tags, SerializeTag(tag))
	}

	ingredients := make([]RecipeIngredientResponse, 0, len(recipe.Ingredients))
	for _, line := range recipe.Ingredients {
		ingredients = append(ingredients, RecipeIngredientResponse{
			ID:              line.Ingredient.ID,
			Name:            line.Ingredient.Name,
			MeasurementUnit: line.Ingredient.MeasurementUnit,
			Amount:          line.Amount,
		})
	}

	return RecipeResponse{
		ID:               recipe.ID,
		Tags:             tags,
		Author:           s.users.Serialize(&recipe.Author, requester),
		Ingredients:      ingredients,
		IsFavorited:      s.exists(&models.FavoriteRecipe{}, recipe, requester),
		IsInShoppingCart: s.exists(&models.ShoppingList{}, recipe, requester),
		Name:             recipe.Name,
		Image:            recipe.Image,
		Text:             recipe.Text,
		CookingTime:      recipe.CookingTime,
	}
}

func (s *RecipeSerializer) SerializeMany(recipes []models.Recipe, requester *models.User) []RecipeResponse {
	out := make([]RecipeResponse, 0, len(recipes))
	for i := range recipes {
		out = append(out, s.Serialize(&recipes[i], requester))
	}
	return out
}

// exists reports whether a (requester, recipe) row is present in the given
// join table. Always false for an anonymous requester.
func (s *RecipeSerializer) exists(joinModel interface{}, recipe *models.Recipe, requester *models.User) bool {
	if requester == nil {
		return false
	}
	var count int64
	s.db.Model(joinModel).
		Where("user_id = ? AND recipe_id = ?", requester.ID, recipe.ID).
		Count(&count)
	return count > 0
}
