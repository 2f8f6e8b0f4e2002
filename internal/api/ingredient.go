package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/loren166/foodgram-project-react/internal/filters"
	"github.com/loren166/foodgram-project-react/internal/models"
)

type IngredientHandler struct {
	db *gorm.DB
}

func NewIngredientHandler(db *gorm.DB) *IngredientHandler {
	return &IngredientHandler{db: db}
}

func (h *IngredientHandler) RegisterRoutes(router *gin.RouterGroup) {
	ingredients := router.Group("/ingredients")
	{
		ingredients.GET("", h.ListIngredients)
		ingredients.GET("/:id", h.GetIngredient)
	}
}

func (h *IngredientHandler) ListIngredients(c *gin.Context) {
	filter := filters.IngredientFilter{Name: c.Query("name")}

	var ingredients []models.Ingredient
	query := filter.Apply(h.db.Model(&models.Ingredient{})).Order("name")
	if err := query.Find(&ingredients).Error; err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ingredients)
}

func (h *IngredientHandler) GetIngredient(c *gin.Context) {
	var ingredient models.Ingredient
	if err := h.db.First(&ingredient, "id = ?", c.Param("id")).Error; err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ingredient)
}
