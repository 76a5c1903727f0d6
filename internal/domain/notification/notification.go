package notification

import (
	"context"
	"strings"
	"time"

	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/shared"
	"github.com/google/uuid"
)

// Type identifies what happened
type Type string

const (
	TypeContractCreated Type = "contract_created"
	TypeTenantAdded     Type = "tenant_added"
	TypeUnitAdded       Type = "unit_added"
	TypeInvoiceIssued   Type = "invoice_issued"
	TypeRentDue         Type = "rent_due"
	TypePayoutCreated   Type = "payout_created"
	TypeExpenseAdded    Type = "expense_added"
)

// IsValid checks if the type is known
func (t Type) IsValid() bool {
	switch t {
	case TypeContractCreated, TypeTenantAdded, TypeUnitAdded, TypeInvoiceIssued,
		TypeRentDue, TypePayoutCreated, TypeExpenseAdded:
		return true
	}
	return false
}

// FeedLimit is how many notifications the feed shows
const FeedLimit = 50

// Notification is an entry in the office feed
type Notification struct {
	ID        uuid.UUID
	OfficeID  uuid.UUID
	Type      Type
	Title     string
	Message   string
	IsRead    bool
	Metadata  Metadata
	CreatedAt time.Time
	DeletedAt *time.Time
}

// New creates an unread notification. The metadata variant must match the type.
func New(officeID uuid.UUID, t Type, title, message string, meta Metadata) (*Notification, error) {
	if officeID == uuid.Nil {
		return nil, shared.ErrSessionRequired
	}
	if !t.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Unknown notification type")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Notification title is required")
	}
	if meta != nil && !expectedVariant(t, meta) {
		return nil, shared.NewDomainError("INVALID_METADATA", "Notification details do not match its type")
	}
	return &Notification{
		ID:        uuid.New(),
		OfficeID:  officeID,
		Type:      t,
		Title:     title,
		Message:   strings.TrimSpace(message),
		Metadata:  meta,
		CreatedAt: time.Now(),
	}, nil
}

// Link returns where the notification leads, or "" without metadata
func (n *Notification) Link() string {
	if n.Metadata == nil {
		return ""
	}
	return n.Metadata.Link()
}

// Feed is one snapshot of the office feed
type Feed struct {
	Items       []Notification
	UnreadCount int
}

// NewFeed builds a snapshot, counting unread items among the listed ones
func NewFeed(items []Notification) Feed {
	unread := 0
	for _, n := range items {
		if !n.IsRead {
			unread++
		}
	}
	if items == nil {
		items = []Notification{}
	}
	return Feed{Items: items, UnreadCount: unread}
}

// Repository persists notifications. Deleted rows are invisible to every
// read method.
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	// FindLatest returns up to limit live notifications, newest first
	FindLatest(ctx context.Context, officeID uuid.UUID, limit int) ([]Notification, error)
	CountUnread(ctx context.Context, officeID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, officeID, id uuid.UUID) error
	MarkAllRead(ctx context.Context, officeID uuid.UUID) (int64, error)
	SoftDelete(ctx context.Context, officeID, id uuid.UUID) error
	// Exists reports whether a live notification of type t already points at subjectID
	Exists(ctx context.Context, officeID uuid.UUID, t Type, subjectID uuid.UUID) (bool, error)
}
