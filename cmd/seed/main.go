package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"gorm.io/gorm/clause"

	"github.com/loren166/foodgram-project-react/config"
	"github.com/loren166/foodgram-project-react/internal/database"
	"github.com/loren166/foodgram-project-react/internal/models"
)

type ingredientFixture struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

type tagFixture struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

func main() {
	ingredientsPath := flag.String("ingredients", "data/ingredients.json", "path to the ingredients fixture")
	tagsPath := flag.String("tags", "data/tags.json", "path to the tags fixture")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.WaitForDB(ctx, cfg); err != nil {
		log.Fatalf("Database not available: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	var ingredients []ingredientFixture
	if err := loadFixture(*ingredientsPath, &ingredients); err != nil {
		log.Fatalf("Failed to load ingredients fixture: %v", err)
	}
	for _, f := range ingredients {
		row := models.Ingredient{Name: f.Name, MeasurementUnit: f.MeasurementUnit}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
			log.Fatalf("Failed to seed ingredient %q: %v", f.Name, err)
		}
	}
	log.Printf("Seeded %d ingredients", len(ingredients))

	var tags []tagFixture
	if err := loadFixture(*tagsPath, &tags); err != nil {
		log.Fatalf("Failed to load tags fixture: %v", err)
	}
	for _, f := range tags {
		row := models.Tag{Name: f.Name, Color: f.Color, Slug: f.Slug}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
			log.Fatalf("Failed to seed tag %q: %v", f.Name, err)
		}
	}
	log.Printf("Seeded %d tags", len(tags))
}

func loadFixture(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
