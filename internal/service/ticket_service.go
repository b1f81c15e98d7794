package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/events"
	"github.com/spec-kit/helpdesk/internal/policy"
	"github.com/spec-kit/helpdesk/internal/repository"
	apperrors "github.com/spec-kit/helpdesk/pkg/util/errorutil"
)

// TicketService coordinates ticket workflows. Every operation on an existing
// ticket resolves it first (404), then checks access (403), then validates
// the submitted value (400).
type TicketService struct {
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
	now        func() time.Time
}

// TicketDependencies bundles collaborators for ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	Dispatcher events.Dispatcher
	Clock      func() time.Time
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title       string
	Description string
	Priority    string
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	return &TicketService{
		tickets:    deps.TicketRepo,
		dispatcher: deps.Dispatcher,
		now:        clock,
	}
}

// CreateTicket opens a ticket owned by actor. The owner snapshot is frozen here.
func (s *TicketService) CreateTicket(ctx context.Context, actor domain.UserSnapshot, input TicketCreateInput) (*domain.Ticket, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("Title is required", nil)
	}
	priority, err := policy.ParsePriority(input.Priority)
	if err != nil {
		return nil, err
	}

	ticket := domain.NewTicket(title, input.Description, priority, actor, s.now())
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Actor:    &actor,
		Payload:  events.TicketCreatedPayload{Title: ticket.Title, Priority: ticket.Priority},
	})
	return ticket, nil
}

// ListDashboard returns the tickets actor may see, in display order. ownerID
// narrows an admin's listing to one owner and is ignored for standard users.
func (s *TicketService) ListDashboard(ctx context.Context, actor domain.UserSnapshot, ownerID *int64) ([]domain.Ticket, error) {
	filter := repository.TicketFilter{OwnerID: policy.ListingScope(actor, ownerID)}
	tickets, err := s.tickets.List(ctx, filter)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return domain.SortTickets(tickets), nil
}

// GetTicket fetches a ticket ensuring actor may see it.
func (s *TicketService) GetTicket(ctx context.Context, actor domain.UserSnapshot, id int64) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, mapTicketError(err, id)
	}
	if err := policy.AuthorizeTicket(actor, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// DeleteTicket removes the ticket and its thread for good.
func (s *TicketService) DeleteTicket(ctx context.Context, actor domain.UserSnapshot, id int64) error {
	if _, err := s.GetTicket(ctx, actor, id); err != nil {
		return err
	}
	if err := s.tickets.Delete(ctx, id); err != nil {
		return mapTicketError(err, id)
	}
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:     events.EventTicketDeleted,
		TicketID: id,
		Actor:    &actor,
	})
	return nil
}

// AddMessage appends text to the thread authored by the actor as they are now.
func (s *TicketService) AddMessage(ctx context.Context, actor domain.UserSnapshot, id int64, text string) (*domain.Message, error) {
	if _, err := s.GetTicket(ctx, actor, id); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.NewValidationError("Message is required", nil)
	}

	msg := domain.Message{Timestamp: s.now(), User: actor, Message: text}
	if err := s.tickets.AppendMessage(ctx, id, msg); err != nil {
		return nil, mapTicketError(err, id)
	}
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:     events.EventTicketMessageAdded,
		TicketID: id,
		Actor:    &actor,
		Payload:  events.TicketMessageAddedPayload{BodyPreview: stringPreview(text, 80)},
	})
	return &msg, nil
}

// SetStatus moves the ticket to any of the three states.
func (s *TicketService) SetStatus(ctx context.Context, actor domain.UserSnapshot, id int64, raw string) error {
	ticket, err := s.GetTicket(ctx, actor, id)
	if err != nil {
		return err
	}
	status, err := policy.ParseStatus(raw)
	if err != nil {
		return err
	}
	if err := s.tickets.UpdateStatus(ctx, id, status, s.now()); err != nil {
		return mapTicketError(err, id)
	}
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: id,
		Actor:    &actor,
		Payload:  events.TicketStatusChangedPayload{OldStatus: ticket.Status, NewStatus: status},
	})
	return nil
}

// SetPriority changes the ticket priority.
func (s *TicketService) SetPriority(ctx context.Context, actor domain.UserSnapshot, id int64, raw string) error {
	ticket, err := s.GetTicket(ctx, actor, id)
	if err != nil {
		return err
	}
	priority, err := policy.ParsePriority(raw)
	if err != nil {
		return err
	}
	if err := s.tickets.UpdatePriority(ctx, id, priority, s.now()); err != nil {
		return mapTicketError(err, id)
	}
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:     events.EventTicketPriorityChanged,
		TicketID: id,
		Actor:    &actor,
		Payload:  events.TicketPriorityChangedPayload{OldPriority: ticket.Priority, NewPriority: priority},
	})
	return nil
}

func mapTicketError(err error, id int64) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound("Ticket", map[string]any{"id": id})
	}
	return apperrors.NewInternalError(err)
}

func publishEvent(ctx context.Context, dispatcher events.Dispatcher, event events.Event) {
	if dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = dispatcher.Publish(ctx, event)
}

// stringPreview shortens body to at most max runes, never splitting a
// multibyte character.
func stringPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	if utf8.RuneCountInString(body) <= max {
		return body
	}
	keep := max
	suffix := ""
	if max > 3 {
		keep = max - 3
		suffix = "..."
	}
	cut := 0
	for i := 0; i < keep; i++ {
		_, size := utf8.DecodeRuneInString(body[cut:])
		cut += size
	}
	return body[:cut] + suffix
}
