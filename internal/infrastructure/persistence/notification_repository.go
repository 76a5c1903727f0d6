package persistence

import (
	"context"
	"time"

	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/notification"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/shared"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormNotificationRepository implements notification.Repository using GORM.
// Soft-deleted rows stay in the table with deleted_at set.
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GormNotificationRepository
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

func (r *GormNotificationRepository) live(ctx context.Context, officeID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.NotificationModel{}).
		Scopes(forOffice(officeID)).
		Where("deleted_at IS NULL")
}

// Create inserts a notification
func (r *GormNotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	model, err := models.NotificationModelFromDomain(n)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(model).Error
}

// FindLatest returns up to limit live notifications, newest first
func (r *GormNotificationRepository) FindLatest(ctx context.Context, officeID uuid.UUID, limit int) ([]notification.Notification, error) {
	var rows []models.NotificationModel
	if err := r.live(ctx, officeID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]notification.Notification, 0, len(rows))
	for i := range rows {
		n, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		items = append(items, *n)
	}
	return items, nil
}

// CountUnread counts the live unread notifications of an office
func (r *GormNotificationRepository) CountUnread(ctx context.Context, officeID uuid.UUID) (int64, error) {
	var count int64
	err := r.live(ctx, officeID).Where("is_read = ?", false).Count(&count).Error
	return count, err
}

// MarkRead marks one notification read
func (r *GormNotificationRepository) MarkRead(ctx context.Context, officeID, id uuid.UUID) error {
	result := r.live(ctx, officeID).Where("id = ?", id).Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// MarkAllRead marks every unread notification of an office read
func (r *GormNotificationRepository) MarkAllRead(ctx context.Context, officeID uuid.UUID) (int64, error) {
	result := r.live(ctx, officeID).Where("is_read = ?", false).Update("is_read", true)
	return result.RowsAffected, result.Error
}

// SoftDelete hides a notification from the feed
func (r *GormNotificationRepository) SoftDelete(ctx context.Context, officeID, id uuid.UUID) error {
	result := r.live(ctx, officeID).Where("id = ?", id).Update("deleted_at", time.Now().UTC())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Exists reports whether a live notification of type t already points at subjectID
func (r *GormNotificationRepository) Exists(ctx context.Context, officeID uuid.UUID, t notification.Type, subjectID uuid.UUID) (bool, error) {
	var count int64
	err := r.live(ctx, officeID).
		Where("type = ? AND subject_id = ?", t, subjectID).
		Count(&count).Error
	return count > 0, err
}
