package events

import (
	"time"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated         EventType = "ticket_created"
	EventTicketDeleted         EventType = "ticket_deleted"
	EventTicketStatusChanged   EventType = "ticket_status_changed"
	EventTicketPriorityChanged EventType = "ticket_priority_changed"
	EventTicketMessageAdded    EventType = "ticket_message_added"
	EventUserCreated           EventType = "user_created"
	EventUserUpdated           EventType = "user_updated"
	EventUserDeleted           EventType = "user_deleted"
)

// Event represents a domain event emitted by services. Actor is nil for
// system-initiated changes such as the first-run admin.
type Event struct {
	ID        string               `json:"id"`
	Type      EventType            `json:"type"`
	TicketID  int64                `json:"ticket_id,omitempty"`
	Actor     *domain.UserSnapshot `json:"actor,omitempty"`
	Timestamp time.Time            `json:"timestamp"`
	Payload   interface{}          `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Title    string `json:"title"`
	Priority int    `json:"priority"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// TicketPriorityChangedPayload payload.
type TicketPriorityChangedPayload struct {
	OldPriority int `json:"old_priority"`
	NewPriority int `json:"new_priority"`
}

// TicketMessageAddedPayload payload.
type TicketMessageAddedPayload struct {
	BodyPreview string `json:"body_preview"`
}

// UserChangedPayload is shared by the user lifecycle events. It never carries a password.
type UserChangedPayload struct {
	Username        string            `json:"username"`
	AuthLevel       *domain.AuthLevel `json:"auth_level,omitempty"`
	PasswordChanged bool              `json:"password_changed,omitempty"`
}
