package database

import (
	"log"

	"gorm.io/gorm"

	"github.com/loren166/foodgram-project-react/internal/models"
)

// RunMigrations brings the schema up to date with the model definitions.
// Join tables are migrated explicitly so their composite unique indexes
// exist before any data is written.
func RunMigrations(db *gorm.DB) error {
	log.Printf("Running schema migrations")
	return db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.IngredientRecipe{},
		&models.FavoriteRecipe{},
		&models.ShoppingList{},
		&models.Subscribe{},
	)
}
