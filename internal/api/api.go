package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/loren166/foodgram-project-react/internal/models"
	"github.com/loren166/foodgram-project-react/internal/serializer"
)

// currentUser resolves the requester set by the auth middleware. A nil
// result means the request is anonymous.
func currentUser(c *gin.Context, db *gorm.DB) *models.User {
	val, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	id, ok := val.(uint)
	if !ok {
		return nil
	}
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return nil
	}
	return &user
}

// abortWithError maps domain errors onto HTTP responses: validation
// failures become 400, missing records 404, anything else 500.
func abortWithError(c *gin.Context, err error) {
	var vErr *serializer.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message, "field": vErr.Field})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
