package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/loren166/foodgram-project-react/internal/models"
	"github.com/loren166/foodgram-project-react/internal/serializer"
)

type TagHandler struct {
	db *gorm.DB
}

func NewTagHandler(db *gorm.DB) *TagHandler {
	return &TagHandler{db: db}
}

func (h *TagHandler) RegisterRoutes(router *gin.RouterGroup) {
	tags := router.Group("/tags")
	{
		tags.GET("", h.ListTags)
		tags.GET("/:id", h.GetTag)
	}
}

func (h *TagHandler) ListTags(c *gin.Context) {
	var tags []models.Tag
	if err := h.db.Order("id").Find(&tags).Error; err != nil {
		abortWithError(c, err)
		return
	}

	out := make([]serializer.TagResponse, 0, len(tags))
	for _, tag := range tags {
		out = append(out, serializer.SerializeTag(tag))
	}
	c.JSON(http.StatusOK, out)
}

func (h *TagHandler) GetTag(c *gin.Context) {
	var tag models.Tag
	if err := h.db.First(&tag, "id = ?", c.Param("id")).Error; err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.SerializeTag(tag))
}
