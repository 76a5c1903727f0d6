package shared

import (
	"github.com/google/uuid"
)

// Session identifies who is acting and on behalf of which office. It is
// resolved once per request and passed explicitly to every service call.
type Session struct {
	OfficeID uuid.UUID
	UserID   uuid.UUID
	Username string
}

// NewSession builds a session. A missing office is rejected up front.
func NewSession(officeID, userID uuid.UUID, username string) (Session, error) {
	s := Session{OfficeID: officeID, UserID: userID, Username: username}
	if err := s.Validate(); err != nil {
		return Session{}, err
	}
	return s, nil
}

// Validate fails with ErrSessionRequired when no office is attached
func (s Session) Validate() error {
	if s.OfficeID == uuid.Nil {
		return ErrSessionRequired
	}
	return nil
}
