package models

import (
	"time"

	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/notification"
	"github.com/google/uuid"
)

// NotificationModel is the persistence model of a feed entry. SubjectID
// duplicates the id the metadata points at so reminders can be deduplicated
// without reading jsonb.
type NotificationModel struct {
	ID        uuid.UUID         `gorm:"type:uuid;primary_key"`
	OfficeID  uuid.UUID         `gorm:"type:uuid;not null;index:idx_notifications_office_created,priority:1"`
	Type      notification.Type `gorm:"type:varchar(30);not null"`
	Title     string            `gorm:"type:varchar(200);not null"`
	Message   string            `gorm:"type:text"`
	IsRead    bool              `gorm:"not null"`
	Metadata  string            `gorm:"type:jsonb;not null"`
	SubjectID *uuid.UUID        `gorm:"type:uuid;index"`
	CreatedAt time.Time         `gorm:"not null;index:idx_notifications_office_created,priority:2"`
	DeletedAt *time.Time
}

// TableName returns the table name for GORM
func (NotificationModel) TableName() string {
	return "notifications"
}

// ToDomain converts the model to a domain Notification
func (m *NotificationModel) ToDomain() (*notification.Notification, error) {
	meta, err := notification.DecodeMetadata(m.Type, []byte(m.Metadata))
	if err != nil {
		return nil, err
	}
	return &notification.Notification{
		ID:        m.ID,
		OfficeID:  m.OfficeID,
		Type:      m.Type,
		Title:     m.Title,
		Message:   m.Message,
		IsRead:    m.IsRead,
		Metadata:  meta,
		CreatedAt: m.CreatedAt,
		DeletedAt: m.DeletedAt,
	}, nil
}

// NotificationModelFromDomain builds the model of a domain Notification
func NotificationModelFromDomain(n *notification.Notification) (*NotificationModel, error) {
	raw, err := notification.EncodeMetadata(n.Metadata)
	if err != nil {
		return nil, err
	}
	m := &NotificationModel{
		ID:        n.ID,
		OfficeID:  n.OfficeID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		IsRead:    n.IsRead,
		Metadata:  string(raw),
		CreatedAt: n.CreatedAt,
		DeletedAt: n.DeletedAt,
	}
	if n.Metadata != nil {
		if id := notification.SubjectID(n.Metadata); id != uuid.Nil {
			m.SubjectID = &id
		}
	}
	return m, nil
}
