package router

import (
	"github.com/gin-gonic/gin"

	"github.com/loren166/foodgram-project-react/internal/api"
	"github.com/loren166/foodgram-project-react/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(
	userHandler *api.UserHandler,
	recipeHandler *api.RecipeHandler,
	tagHandler *api.TagHandler,
	ingredientHandler *api.IngredientHandler,
) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS())

	apiGroup := router.Group("/api")

	userHandler.RegisterRoutes(apiGroup)
	recipeHandler.RegisterRoutes(apiGroup)
	tagHandler.RegisterRoutes(apiGroup)
	ingredientHandler.RegisterRoutes(apiGroup)

	return router
}
