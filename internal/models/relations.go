package models

import "time"

// FavoriteRecipe marks a recipe as favorited by a user; unique per pair.
type FavoriteRecipe struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_favorite_user_recipe" json:"user_id"`
	RecipeID  uint      `gorm:"not null;uniqueIndex:idx_favorite_user_recipe" json:"recipe_id"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	Recipe    Recipe    `gorm:"foreignKey:RecipeID" json:"-"`
}

func (FavoriteRecipe) TableName() string {
	return "favorite_recipes"
}

// ShoppingList marks a recipe as added to a user's shopping cart; unique per pair.
type ShoppingList struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_cart_user_recipe" json:"user_id"`
	RecipeID  uint      `gorm:"not null;uniqueIndex:idx_cart_user_recipe" json:"recipe_id"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	Recipe    Recipe    `gorm:"foreignKey:RecipeID" json:"-"`
}

func (ShoppingList) TableName() string {
	return "shopping_lists"
}
