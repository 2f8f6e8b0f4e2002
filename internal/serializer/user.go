package serializer

import (
	"github.com/loren166/foodgram-project-react/internal/models"
	"gorm.io/gorm"
)

// UserResponse is the wire representation of a user profile.
type UserResponse struct {
	ID           uint   `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

// UserSerializer renders users. Requester is passed explicitly; a nil
// requester means the request is anonymous.
type UserSerializer struct {
	db *gorm.DB
}

func NewUserSerializer(db *gorm.DB) *UserSerializer {
	return &UserSerializer{db: db}
}

func (s *UserSerializer) Serialize(user *models.User, requester *models.User) UserResponse {
	return UserResponse{
		ID:           user.ID,
		Email:        user.Email,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		IsSubscribed: s.isSubscribed(user, requester),
	}
}

func (s *UserSerializer) isSubscribed(user *models.User, requester *models.User) bool {
	if requester == nil {
		return false
	}
	var count int64
	s.db.Model(&models.Subscribe{}).
		Where("user_id = ? AND author_id = ?", requester.ID, user.ID).
		Count(&count)
	return count > 0
}
