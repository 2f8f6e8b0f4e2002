package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/loren166/foodgram-project-react/internal/middleware"
	"github.com/loren166/foodgram-project-react/internal/models"
	"github.com/loren166/foodgram-project-react/internal/serializer"
	"github.com/loren166/foodgram-project-react/internal/service"
)

type UserHandler struct {
	db            *gorm.DB
	authService   *service.AuthService
	subscriptions *service.SubscriptionService

	users   *serializer.UserSerializer
	follows *serializer.SubscriptionSerializer
}

func NewUserHandler(db *gorm.DB, authService *service.AuthService, subscriptions *service.SubscriptionService) *UserHandler {
	return &UserHandler{
		db:            db,
		authService:   authService,
		subscriptions: subscriptions,
		users:         serializer.NewUserSerializer(db),
		follows:       serializer.NewSubscriptionSerializer(db),
	}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	optional := middleware.OptionalAuthMiddleware(h.authService)
	required := middleware.AuthMiddleware(h.authService)

	auth := router.Group("/auth")
	{
		auth.POST("/token/login", h.Login)
	}

	users := router.Group("/users")
	{
		users.POST("", h.Register)
		users.GET("/me", required, h.Me)
		users.GET("/subscriptions", required, h.ListSubscriptions)
		users.GET("/:id", optional, h.GetUser)
		users.POST("/:id/subscribe", required, h.Subscribe)
		users.DELETE("/:id/subscribe", required, h.Unsubscribe)
	}
}

// RegisterRequest represents the request body for user registration
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Username  string `json:"username" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Password  string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents the request body for token login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authService.Register(req.Email, req.Username, req.FirstName, req.LastName, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.users.Serialize(user, nil))
}

func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"auth_token": token})
}

func (h *UserHandler) Me(c *gin.Context) {
	requester := currentUser(c, h.db)
	if requester == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	c.JSON(http.StatusOK, h.users.Serialize(requester, requester))
}

func (h *UserHandler) GetUser(c *gin.Context) {
	user, ok := h.loadUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.users.Serialize(user, currentUser(c, h.db)))
}

func (h *UserHandler) Subscribe(c *gin.Context) {
	requester := currentUser(c, h.db)
	if requester == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	author, ok := h.loadUser(c)
	if !ok {
		return
	}

	if err := h.follows.Validate(requester, author); err != nil {
		abortWithError(c, err)
		return
	}

	sub, err := h.subscriptions.Subscribe(c.Request.Context(), requester, author)
	if err != nil {
		abortWithError(c, err)
		return
	}

	resp, err := h.follows.Serialize(sub, recipesLimit(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *UserHandler) Unsubscribe(c *gin.Context) {
	requester := currentUser(c, h.db)
	if requester == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	author, ok := h.loadUser(c)
	if !ok {
		return
	}

	if err := h.subscriptions.Unsubscribe(c.Request.Context(), requester, author); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) ListSubscriptions(c *gin.Context) {
	requester := currentUser(c, h.db)
	if requester == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	subs, err := h.subscriptions.List(c.Request.Context(), requester)
	if err != nil {
		abortWithError(c, err)
		return
	}

	limit := recipesLimit(c)
	out := make([]serializer.SubscriptionResponse, 0, len(subs))
	for i := range subs {
		resp, err := h.follows.Serialize(&subs[i], limit)
		if err != nil {
			abortWithError(c, err)
			return
		}
		out = append(out, resp)
	}
	c.JSON(http.StatusOK, out)
}

func (h *UserHandler) loadUser(c *gin.Context) (*models.User, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return nil, false
	}
	user, err := h.authService.GetUser(uint(id))
	if err != nil {
		abortWithError(c, err)
		return nil, false
	}
	return user, true
}

// recipesLimit reads the optional recipes_limit query parameter used by
// subscription responses.
func recipesLimit(c *gin.Context) int {
	if v := c.Query("recipes_limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return 0
}
