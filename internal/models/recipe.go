package models

import (
	"time"

	"gorm.io/gorm"
)

// Tag is a curated label recipes are filtered by. Slug is the identifier
// used in query strings.
type Tag struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"-"`
	UpdatedAt time.Time      `json:"-"`
	Name      string         `gorm:"size:200;uniqueIndex;not null" json:"name"`
	Color     string         `gorm:"size:7" json:"color"`
	Slug      string         `gorm:"size:200;uniqueIndex;not null" json:"slug"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Tag) TableName() string {
	return "tags"
}

type Ingredient struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	CreatedAt       time.Time      `json:"-"`
	UpdatedAt       time.Time      `json:"-"`
	Name            string         `gorm:"size:200;index;not null" json:"name"`
	MeasurementUnit string         `gorm:"size:200;not null" json:"measurement_unit"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Ingredient) TableName() string {
	return "ingredients"
}

type Recipe struct {
	ID          uint               `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	DeletedAt   gorm.DeletedAt     `gorm:"index" json:"-"`
	Name        string             `gorm:"size:200;not null" json:"name"`
	Image       string             `gorm:"size:255" json:"image"`
	Text        string             `gorm:"type:text;not null" json:"text"`
	CookingTime int                `gorm:"not null;check:cooking_time >= 1" json:"cooking_time"`
	AuthorID    uint               `gorm:"not null;index" json:"author_id"`
	Author      User               `gorm:"foreignKey:AuthorID" json:"-"`
	Tags        []Tag              `gorm:"many2many:recipe_tags;" json:"-"`
	Ingredients []IngredientRecipe `gorm:"foreignKey:RecipeID" json:"-"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// IngredientRecipe is a recipe line item: one ingredient with its amount.
// An ingredient appears at most once per recipe.
type IngredientRecipe struct {
	ID           uint       `gorm:"primarykey" json:"id"`
	RecipeID     uint       `gorm:"not null;uniqueIndex:idx_recipe_ingredient" json:"recipe_id"`
	IngredientID uint       `gorm:"not null;uniqueIndex:idx_recipe_ingredient" json:"ingredient_id"`
	Amount       int        `gorm:"not null;check:amount >= 1" json:"amount"`
	Ingredient   Ingredient `gorm:"foreignKey:IngredientID" json:"-"`
}

func (IngredientRecipe) TableName() string {
	return "ingredient_recipes"
}
