package notification

import (
	"context"
	"errors"
	"time"

	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/notification"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ChangeFeed carries "something changed" signals for an office's
// notifications. Implemented in-process, over Redis Pub/Sub and over AMQP.
type ChangeFeed interface {
	Publish(ctx context.Context, officeID uuid.UUID) error
	// Subscribe returns a channel that receives a value per change. The
	// channel is closed once ctx is done.
	Subscribe(ctx context.Context, officeID uuid.UUID) (<-chan struct{}, error)
}

// NotificationResponse represents a notification in API responses
type NotificationResponse struct {
	ID        uuid.UUID             `json:"id"`
	Type      string                `json:"type"`
	Title     string                `json:"title"`
	Message   string                `json:"message"`
	IsRead    bool                  `json:"is_read"`
	Link      string                `json:"link,omitempty"`
	Metadata  notification.Metadata `json:"metadata,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
}

// FeedResponse is one snapshot of the feed: latest items plus unread count
type FeedResponse struct {
	Items       []NotificationResponse `json:"items"`
	UnreadCount int64                  `json:"unread_count"`
}

// Service manages the office notification feed
type Service struct {
	repo   notification.Repository
	feed   ChangeFeed
	logger *zap.Logger
}

// NewService creates a new notification Service. feed may be nil.
func NewService(repo notification.Repository, feed ChangeFeed, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, feed: feed, logger: logger}
}

// Feed loads the latest notifications and the unread count
func (s *Service) Feed(ctx context.Context, session shared.Session) (*FeedResponse, error) {
	if err := session.Validate(); err != nil {
		return nil, err
	}
	items, err := s.repo.FindLatest(ctx, session.OfficeID, notification.FeedLimit)
	if err != nil {
		return nil, s.humanize(err, shared.NewFetchError("notifications"))
	}
	unread, err := s.repo.CountUnread(ctx, session.OfficeID)
	if err != nil {
		return nil, s.humanize(err, shared.NewFetchError("notifications"))
	}

	out := make([]NotificationResponse, len(items))
	for i := range items {
		out[i] = toResponse(&items[i])
	}
	return &FeedResponse{Items: out, UnreadCount: unread}, nil
}

// UnreadCount returns the number of unread, undeleted notifications
func (s *Service) UnreadCount(ctx context.Context, session shared.Session) (int64, error) {
	if err := session.Validate(); err != nil {
		return 0, err
	}
	n, err := s.repo.CountUnread(ctx, session.OfficeID)
	if err != nil {
		return 0, s.humanize(err, shared.NewFetchError("notifications"))
	}
	return n, nil
}

// MarkRead marks one notification of the office as read
func (s *Service) MarkRead(ctx context.Context, session shared.Session, id uuid.UUID) error {
	if err := session.Validate(); err != nil {
		return err
	}
	if err := s.repo.MarkRead(ctx, session.OfficeID, id); err != nil {
		return s.humanize(err, shared.NewSaveError("notification"))
	}
	s.signal(ctx, session.OfficeID)
	return nil
}

// MarkAllRead marks every notification of the office as read
func (s *Service) MarkAllRead(ctx context.Context, session shared.Session) (int64, error) {
	if err := session.Validate(); err != nil {
		return 0, err
	}
	n, err := s.repo.MarkAllRead(ctx, session.OfficeID)
	if err != nil {
		return 0, s.humanize(err, shared.NewSaveError("notifications"))
	}
	if n > 0 {
		s.signal(ctx, session.OfficeID)
	}
	return n, nil
}

// Delete soft-deletes a notification
func (s *Service) Delete(ctx context.Context, session shared.Session, id uuid.UUID) error {
	if err := session.Validate(); err != nil {
		return err
	}
	if err := s.repo.SoftDelete(ctx, session.OfficeID, id); err != nil {
		return s.humanize(err, shared.NewSaveError("notification"))
	}
	s.signal(ctx, session.OfficeID)
	return nil
}

// Create stores a notification and signals subscribers of the office
func (s *Service) Create(ctx context.Context, officeID uuid.UUID, t notification.Type, title, message string, meta notification.Metadata) (*notification.Notification, error) {
	n, err := notification.New(officeID, t, title, message, meta)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, s.humanize(err, shared.NewSaveError("notification"))
	}
	s.signal(ctx, officeID)
	return n, nil
}

// Subscribe exposes the change feed for the session office
func (s *Service) Subscribe(ctx context.Context, session shared.Session) (<-chan struct{}, error) {
	if err := session.Validate(); err != nil {
		return nil, err
	}
	if s.feed == nil {
		return nil, shared.NewDomainError("FEED_UNAVAILABLE", "Live notifications are not available right now")
	}
	return s.feed.Subscribe(ctx, session.OfficeID)
}

func (s *Service) signal(ctx context.Context, officeID uuid.UUID) {
	if s.feed == nil {
		return
	}
	if err := s.feed.Publish(ctx, officeID); err != nil {
		s.logger.Warn("failed to signal notification change",
			zap.String("office_id", officeID.String()),
			zap.Error(err),
		)
	}
}

func (s *Service) humanize(err error, replacement *shared.DomainError) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var de *shared.DomainError
	if errors.As(err, &de) {
		return de
	}
	s.logger.Error("notification storage failure", zap.Error(err))
	return replacement
}

func toResponse(n *notification.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Type:      string(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		IsRead:    n.IsRead,
		Link:      n.Link(),
		Metadata:  n.Metadata,
		CreatedAt: n.CreatedAt,
	}
}
