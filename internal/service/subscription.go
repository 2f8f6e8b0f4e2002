package service

import (
	"context"

	"gorm.io/gorm"

	"github.com/loren166/foodgram-project-react/internal/models"
)

// SubscriptionService persists user-to-author follows. Policy checks
// (self-subscription, duplicates) live in the serializer layer.
type SubscriptionService struct {
	db *gorm.DB
}

func NewSubscriptionService(db *gorm.DB) *SubscriptionService {
	return &SubscriptionService{db: db}
}

func (s *SubscriptionService) Subscribe(ctx context.Context, user, author *models.User) (*models.Subscribe, error) {
	sub := models.Subscribe{UserID: user.ID, AuthorID: author.ID}
	if err := s.db.WithContext(ctx).Create(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *SubscriptionService) Unsubscribe(ctx context.Context, user, author *models.User) error {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", user.ID, author.ID).
		Delete(&models.Subscribe{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List returns the requester's subscriptions ordered by author id.
func (s *SubscriptionService) List(ctx context.Context, user *models.User) ([]models.Subscribe, error) {
	var subs []models.Subscribe
	err := s.db.WithContext(ctx).
		Where("user_id = ?", user.ID).
		Order("author_id").
		Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}
