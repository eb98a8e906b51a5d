package models

import (
	"time"

	"github.com/google/uuid"
)

// Типы событий, публикуемых в брокер.
const (
	EventCheckInGranted     = "checkin.granted"
	EventCheckInDenied      = "checkin.denied"
	EventMembershipExpired  = "membership.expired"
	EventMembershipExpiring = "membership.expiring"
)

// Event сообщение о событии в клубе.
type Event struct {
	ID         uuid.UUID      `json:"id"`
	Type       string         `json:"type"`
	MemberID   uuid.UUID      `json:"memberId"`
	MemberName string         `json:"memberName"`
	Status     MemberStatus   `json:"status,omitempty"`
	OccurredAt time.Time      `json:"occurredAt"`
	Payload    map[string]any `json:"payload,omitempty"`
}

// NewEvent создаёт событие с новым идентификатором.
func NewEvent(eventType string, memberID uuid.UUID, memberName string, at time.Time) Event {
	return Event{
		ID:         uuid.New(),
		Type:       eventType,
		MemberID:   memberID,
		MemberName: memberName,
		OccurredAt: at,
	}
}
