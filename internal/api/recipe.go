package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/loren166/foodgram-project-react/internal/filters"
	"github.com/loren166/foodgram-project-react/internal/middleware"
	"github.com/loren166/foodgram-project-react/internal/models"
	"github.com/loren166/foodgram-project-react/internal/serializer"
	"github.com/loren166/foodgram-project-react/internal/service"
)

type RecipeHandler struct {
	db            *gorm.DB
	recipeService *service.RecipeService
	authService   *service.AuthService
	rateLimiter   *middleware.RateLimiter

	recipes   *serializer.RecipeSerializer
	favorites *serializer.FavoriteSerializer
	cart      *serializer.ShoppingCartSerializer
}

func NewRecipeHandler(db *gorm.DB, recipeService *service.RecipeService, authService *service.AuthService, rateLimiter *middleware.RateLimiter) *RecipeHandler {
	return &RecipeHandler{
		db:            db,
		recipeService: recipeService,
		authService:   authService,
		rateLimiter:   rateLimiter,
		recipes:       serializer.NewRecipeSerializer(db),
		favorites:     serializer.NewFavoriteSerializer(db),
		cart:          serializer.NewShoppingCartSerializer(db),
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	optional := middleware.OptionalAuthMiddleware(h.authService)
	required := middleware.AuthMiddleware(h.authService)

	recipes := router.Group("/recipes")
	{
		recipes.GET("", optional, h.ListRecipes)
		recipes.GET("/download_shopping_cart", required, h.DownloadShoppingCart)
		recipes.GET("/:id", optional, h.GetRecipe)
		if h.rateLimiter != nil {
			limited := h.rateLimiter.RateLimitMiddleware()
			recipes.POST("", required, limited, h.CreateRecipe)
			recipes.PATCH("/:id", required, limited, h.UpdateRecipe)
		} else {
			recipes.POST("", required, h.CreateRecipe)
			recipes.PATCH("/:id", required, h.UpdateRecipe)
		}
		recipes.DELETE("/:id", required, h.DeleteRecipe)
		recipes.POST("/:id/favorite", required, h.FavoriteRecipe)
		recipes.DELETE("/:id/favorite", required, h.UnfavoriteRecipe)
		recipes.POST("/:id/shopping_cart", required, h.AddToShoppingCart)
		recipes.DELETE("/:id/shopping_cart", required, h.RemoveFromShoppingCart)
	}
}

// parseRecipeFilter reads the listing filters from the query string. The
// boolean filters accept "1" and "true"; anything else is treated as false.
func parseRecipeFilter(c *gin.Context) filters.RecipeFilter {
	var filter filters.RecipeFilter
	if author := c.Query("author"); author != "" {
		if id, err := strconv.ParseUint(author, 10, 64); err == nil {
			filter.Author = uint(id)
		}
	}
	filter.Tags = c.QueryArray("tags")
	filter.IsFavorited = isTruthy(c.Query("is_favorited"))
	filter.IsInShoppingCart = isTruthy(c.Query("is_in_shopping_cart"))
	return filter
}

func isTruthy(value string) bool {
	return value == "1" || value == "true" || value == "True"
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	requester := currentUser(c, h.db)
	filter := parseRecipeFilter(c)

	recipes, err := h.recipeService.ListRecipes(c.Request.Context(), filter, requester)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.recipes.SerializeMany(recipes, requester))
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipe, ok := h.loadRecipe(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.recipes.Serialize(recipe, currentUser(c, h.db)))
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	requester := currentUser(c, h.db)
	if requester == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var payload serializer.RecipePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	validated, err := payload.Validate()
	if err != nil {
		abortWithError(c, err)
		return
	}

	recipe, err := h.recipeService.CreateRecipe(c.Request.Context(), validated, requester)
	if err != nil {
		abortWithError(c, err)
		return
	}

	// the response is always the read shape, not the write shape
	c.JSON(http.StatusCreated, h.recipes.Serialize(recipe, requester))
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	requester := currentUser(c, h.db)
	if requester == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	recipe, ok := h.loadRecipe(c)
	if !ok {
		return
	}
	if recipe.AuthorID != requester.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the author can edit a recipe"})
		return
	}

	var payload serializer.RecipePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	validated, err := payload.ValidateUpdate()
	if err != nil {
		abortWithError(c, err)
		return
	}

	updated, err := h.recipeService.UpdateRecipe(c.Request.Context(), recipe, validated)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.recipes.Serialize(updated, requester))
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	requester := currentUser(c, h.db)
	if requester == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	recipe, ok := h.loadRecipe(c)
	if !ok {
		return
	}
	if recipe.AuthorID != requester.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the author can delete a recipe"})
		return
	}

	if err := h.recipeService.DeleteRecipe(c.Request.Context(), recipe); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) FavoriteRecipe(c *gin.Context) {
	requester, recipe, ok := h.loadPair(c)
	if !ok {
		return
	}

	if err := h.favorites.Validate(requester, recipe); err != nil {
		abortWithError(c, err)
		return
	}
	if err := h.recipeService.Favorite(c.Request.Context(), requester, recipe); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, serializer.SerializeShortRecipe(recipe))
}

func (h *RecipeHandler) UnfavoriteRecipe(c *gin.Context) {
	requester, recipe, ok := h.loadPair(c)
	if !ok {
		return
	}
	if err := h.recipeService.Unfavorite(c.Request.Context(), requester, recipe); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) AddToShoppingCart(c *gin.Context) {
	requester, recipe, ok := h.loadPair(c)
	if !ok {
		return
	}

	if err := h.cart.Validate(requester, recipe); err != nil {
		abortWithError(c, err)
		return
	}
	if err := h.recipeService.AddToCart(c.Request.Context(), requester, recipe); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, serializer.SerializeShortRecipe(recipe))
}

func (h *RecipeHandler) RemoveFromShoppingCart(c *gin.Context) {
	requester, recipe, ok := h.loadPair(c)
	if !ok {
		return
	}
	if err := h.recipeService.RemoveFromCart(c.Request.Context(), requester, recipe); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) DownloadShoppingCart(c *gin.Context) {
	requester := currentUser(c, h.db)
	if requester == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	report, err := h.recipeService.ShoppingCartReport(c.Request.Context(), requester)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="shopping_list.txt"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(report))
}

func (h *RecipeHandler) loadRecipe(c *gin.Context) (*models.Recipe, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return nil, false
	}
	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), uint(id))
	if err != nil {
		abortWithError(c, err)
		return nil, false
	}
	return recipe, true
}

func (h *RecipeHandler) loadPair(c *gin.Context) (*models.User, *models.Recipe, bool) {
	requester := currentUser(c, h.db)
	if requester == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return nil, nil, false
	}
	recipe, ok := h.loadRecipe(c)
	if !ok {
		return nil, nil, false
	}
	return requester, recipe, true
}
