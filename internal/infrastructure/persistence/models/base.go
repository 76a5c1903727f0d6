package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/finance"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/shared"
	"github.com/google/uuid"
)

// BaseModel provides common persistence fields for all models.
// It maps to the domain's BaseEntity.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// OfficeAggregateModel provides the persistence fields of office-scoped
// aggregate roots
type OfficeAggregateModel struct {
	BaseModel
	Version   int        `gorm:"not null"`
	OfficeID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	CreatedBy *uuid.UUID `gorm:"type:uuid"`
}

// FromDomainOfficeAggregateRoot populates the model from the domain root
func (m *OfficeAggregateModel) FromDomainOfficeAggregateRoot(a shared.OfficeAggregateRoot) {
	m.ID = a.ID
	m.CreatedAt = a.CreatedAt
	m.UpdatedAt = a.UpdatedAt
	m.Version = a.Version
	m.OfficeID = a.OfficeID
	m.CreatedBy = a.CreatedBy
}

// ToDomainOfficeAggregateRoot restores the domain root
func (m *OfficeAggregateModel) ToDomainOfficeAggregateRoot() shared.OfficeAggregateRoot {
	return shared.OfficeAggregateRoot{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		OfficeID:  m.OfficeID,
		CreatedBy: m.CreatedBy,
	}
}

// Attachments is the jsonb list of files attached to a record
type Attachments []finance.Attachment

// Value implements driver.Valuer
func (a Attachments) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (a *Attachments) Scan(value any) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*a = Attachments{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Attachments", value)
	}
	if len(raw) == 0 {
		*a = Attachments{}
		return nil
	}
	return json.Unmarshal(raw, (*[]finance.Attachment)(a))
}
