package dto

import (
	"time"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// CreateTicketRequest is the new-ticket form.
type CreateTicketRequest struct {
	Title       string `form:"title"`
	Description string `form:"description"`
	Priority    string `form:"priority"`
}

// TicketActionRequest carries the fields of every /ticket/:id/:action form.
// Only the field matching the action is read.
type TicketActionRequest struct {
	Message  string `form:"message"`
	Status   string `form:"status"`
	Priority string `form:"priority"`
}

// TicketSummary is one dashboard row.
type TicketSummary struct {
	ID        int64
	Title     string
	Status    string
	Priority  int
	Owner     string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// NewTicketSummaries converts tickets to dashboard rows keeping their order.
func NewTicketSummaries(tickets []domain.Ticket) []TicketSummary {
	items := make([]TicketSummary, 0, len(tickets))
	for _, t := range tickets {
		items = append(items, TicketSummary{
			ID:        t.ID,
			Title:     t.Title,
			Status:    t.Status.String(),
			Priority:  t.Priority,
			Owner:     t.Owner.Username,
			CreatedAt: t.CreatedTimestamp,
			UpdatedAt: t.UpdatedTimestamp,
		})
	}
	return items
}
