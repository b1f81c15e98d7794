package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus int

const (
	TicketStatusOpen    TicketStatus = 0
	TicketStatusPending TicketStatus = 1
	TicketStatusClosed  TicketStatus = 2
)

// Valid reports whether s is Open, Pending or Closed.
func (s TicketStatus) Valid() bool {
	return s >= TicketStatusOpen && s <= TicketStatusClosed
}

func (s TicketStatus) String() string {
	switch s {
	case TicketStatusOpen:
		return "Open"
	case TicketStatusPending:
		return "Pending"
	case TicketStatusClosed:
		return "Closed"
	default:
		return "Unknown"
	}
}

const (
	MinPriority = 1
	MaxPriority = 5
)

// ValidPriority reports whether p is within [MinPriority, MaxPriority].
func ValidPriority(p int) bool {
	return p >= MinPriority && p <= MaxPriority
}

// Message is one entry of a ticket thread.
type Message struct {
	Timestamp time.Time    `json:"timestamp"`
	User      UserSnapshot `json:"user"`
	Message   string       `json:"message"`
}

// Ticket is the aggregate for support requests. Messages is append-only and
// never empty; its first entry repeats Description.
type Ticket struct {
	ID               int64
	Title            string
	Description      string
	Status           TicketStatus
	Owner            UserSnapshot
	Priority         int
	CreatedTimestamp time.Time
	UpdatedTimestamp *time.Time
	Messages         []Message
}

// NewTicket builds an Open ticket whose thread starts with the description.
func NewTicket(title, description string, priority int, owner UserSnapshot, now time.Time) *Ticket {
	return &Ticket{
		Title:            title,
		Description:      description,
		Status:           TicketStatusOpen,
		Owner:            owner,
		Priority:         priority,
		CreatedTimestamp: now,
		Messages: []Message{{
			Timestamp: now,
			User:      owner,
			Message:   description,
		}},
	}
}

// OwnedBy reports whether the ticket was created by the user with id.
func (t *Ticket) OwnedBy(id int64) bool {
	return t.Owner.ID == id
}
