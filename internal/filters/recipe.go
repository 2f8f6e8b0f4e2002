package filters

import (
	"github.com/loren166/foodgram-project-react/internal/models"
	"gorm.io/gorm"
)

// RecipeFilter narrows a recipe query by author, tag slugs and the
// requester's favorite / shopping-cart membership. Zero values are no-ops.
type RecipeFilter struct {
	Author           uint     `form:"author"`
	Tags             []string `form:"tags"`
	IsFavorited      bool     `form:"is_favorited"`
	IsInShoppingCart bool     `form:"is_in_shopping_cart"`
}

// Apply adds the filter's predicates to the query. The membership filters
// need a requester; for an anonymous one they leave the query unchanged.
func (f RecipeFilter) Apply(query *gorm.DB, requester *models.User) *gorm.DB {
	if f.Author != 0 {
		query = query.Where("recipes.author_id = ?", f.Author)
	}

	if len(f.Tags) > 0 {
		// any-of semantics over the slug set
		tagged := query.Session(&gorm.Session{NewDB: true}).
			Table("recipe_tags").
			Select("recipe_tags.recipe_id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", f.Tags)
		query = query.Where("recipes.id IN (?)", tagged)
	}

	if f.IsFavorited && requester != nil {
		favorited := query.Session(&gorm.Session{NewDB: true}).
			Model(&models.FavoriteRecipe{}).
			Select("recipe_id").
			Where("user_id = ?", requester.ID)
		query = query.Where("recipes.id IN (?)", favorited)
	}

	if f.IsInShoppingCart && requester != nil {
		inCart := query.Session(&gorm.Session{NewDB: true}).
			Model(&models.ShoppingList{}).
			Select("recipe_id").
			Where("user_id = ?", requester.ID)
		query = query.Where("recipes.id IN (?)", inCart)
	}

	return query
}
