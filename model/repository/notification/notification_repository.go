package notification

import (
	"context"

	"gorm.io/gorm"

	entity "storefront.GO/model/entity"
)

// NotificationRepository is plain CRUD over notification records.
type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *entity.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

// FindAll returns notifications newest first.
func (r *NotificationRepository) FindAll(ctx context.Context) ([]entity.Notification, error) {
	var out []entity.Notification
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *NotificationRepository) FindByID(ctx context.Context, id uint) (*entity.Notification, error) {
	var n entity.Notification
	if err := r.db.WithContext(ctx).First(&n, id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&entity.Notification{}).
		Where("id = ?", id).
		Update("is_read", true).Error
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Model(&entity.Notification{}).
		Where("is_read = ?", false).
		Update("is_read", true).Error
}

func (r *NotificationRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.Notification{}, id).Error
}
