package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	notificationapp "github.com/abdelhalimemara/debrah-exp-v5.8/internal/application/notification"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/shared"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Stream event names
const (
	EventConnected = "connected"
	EventFeed      = "feed"
	EventError     = "error"
	EventHeartbeat = "heartbeat"
)

// StreamObserver tracks open notification streams
type StreamObserver interface {
	StreamOpened()
	StreamClosed()
}

// SSEMessage is one server-sent event
type SSEMessage struct {
	Event string
	ID    string
	Data  string
}

// NotificationHandler handles the notification feed and its live stream
type NotificationHandler struct {
	BaseHandler
	notifications *notificationapp.Service
	logger        *zap.Logger
	heartbeat     time.Duration
	maxClients    int64
	clients       atomic.Int64
	observer      StreamObserver
}

// NotificationOption configures a NotificationHandler
type NotificationOption func(*NotificationHandler)

// WithStreamLogger sets the logger
func WithStreamLogger(logger *zap.Logger) NotificationOption {
	return func(h *NotificationHandler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithStreamHeartbeat sets the heartbeat interval
func WithStreamHeartbeat(interval time.Duration) NotificationOption {
	return func(h *NotificationHandler) {
		if interval > 0 {
			h.heartbeat = interval
		}
	}
}

// WithStreamMaxClients caps concurrent streams; zero means unlimited
func WithStreamMaxClients(limit int) NotificationOption {
	return func(h *NotificationHandler) {
		h.maxClients = int64(limit)
	}
}

// WithStreamObserver reports stream opens and closes
func WithStreamObserver(observer StreamObserver) NotificationOption {
	return func(h *NotificationHandler) {
		h.observer = observer
	}
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifications *notificationapp.Service, opts ...NotificationOption) *NotificationHandler {
	h := &NotificationHandler{
		notifications: notifications,
		logger:        zap.NewNop(),
		heartbeat:     30 * time.Second,
		maxClients:    500,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// List handles GET /notifications: the latest 50 plus the unread count
func (h *NotificationHandler) List(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	feed, err := h.notifications.Feed(c.Request.Context(), session)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, feed)
}

// UnreadCount handles GET /notifications/unread-count
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	n, err := h.notifications.UnreadCount(c.Request.Context(), session)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, CountData{Count: n})
}

// MarkRead handles POST /notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.notifications.MarkRead(c.Request.Context(), session, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// MarkAllRead handles POST /notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	n, err := h.notifications.MarkAllRead(c.Request.Context(), session)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, CountData{Count: n})
}

// Delete handles DELETE /notifications/:id
func (h *NotificationHandler) Delete(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.notifications.Delete(c.Request.Context(), session, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Stream handles GET /notifications/stream. Each change signal for the
// session office triggers a fresh load of the feed, which is pushed as a
// "feed" event. A failed load is pushed as an "error" event and the stream
// stays open.
func (h *NotificationHandler) Stream(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	if n := h.clients.Add(1); h.maxClients > 0 && n > h.maxClients {
		h.clients.Add(-1)
		h.Error(c, http.StatusServiceUnavailable, dto.ErrCodeTooManyStreams, "Too many live connections. Please try again later")
		return
	}
	defer h.clients.Add(-1)

	ctx := c.Request.Context()
	signals, err := h.notifications.Subscribe(ctx, session)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if h.observer != nil {
		h.observer.StreamOpened()
		defer h.observer.StreamClosed()
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	clientID := uuid.NewString()
	log := h.logger.With(
		zap.String("client_id", clientID),
		zap.String("office_id", session.OfficeID.String()),
	)
	log.Debug("notification stream opened")
	defer log.Debug("notification stream closed")

	h.send(c, SSEMessage{
		Event: EventConnected,
		Data:  fmt.Sprintf(`{"client_id":%q,"timestamp":%d}`, clientID, time.Now().Unix()),
	})
	h.pushFeed(ctx, c, session, log)

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case _, open := <-signals:
			if !open {
				return
			}
			h.pushFeed(ctx, c, session, log)
		case <-ticker.C:
			h.send(c, SSEMessage{
				Event: EventHeartbeat,
				Data:  fmt.Sprintf(`{"timestamp":%d}`, time.Now().Unix()),
			})
		}
	}
}

// ClientCount returns the number of open streams
func (h *NotificationHandler) ClientCount() int {
	return int(h.clients.Load())
}

func (h *NotificationHandler) pushFeed(ctx context.Context, c *gin.Context, session shared.Session, log *zap.Logger) {
	feed, err := h.notifications.Feed(ctx, session)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		message := "We couldn't load notifications. Please try again"
		var de *shared.DomainError
		if errors.As(err, &de) {
			message = de.Message
		}
		log.Warn("notification feed reload failed", zap.Error(err))
		data, _ := json.Marshal(gin.H{"message": message})
		h.send(c, SSEMessage{Event: EventError, Data: string(data)})
		return
	}

	data, err := json.Marshal(feed)
	if err != nil {
		log.Error("failed to encode notification feed", zap.Error(err))
		return
	}
	h.send(c, SSEMessage{Event: EventFeed, ID: fmt.Sprintf("%d", time.Now().UnixMilli()), Data: string(data)})
}

func (h *NotificationHandler) send(c *gin.Context, msg SSEMessage) {
	writeEvent(c.Writer, msg)
	c.Writer.Flush()
}

// writeEvent writes msg in text/event-stream framing
func writeEvent(w io.Writer, msg SSEMessage) {
	if msg.Event != "" {
		fmt.Fprintf(w, "event: %s\n", msg.Event)
	}
	if msg.ID != "" {
		fmt.Fprintf(w, "id: %s\n", msg.ID)
	}
	fmt.Fprintf(w, "data: %s\n\n", msg.Data)
}
