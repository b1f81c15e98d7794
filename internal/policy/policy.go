// Package policy holds the access decisions for tickets and user management.
// Every function is pure: it looks only at its arguments.
package policy

import (
	"strconv"
	"strings"

	"github.com/spec-kit/helpdesk/internal/domain"
	apperrors "github.com/spec-kit/helpdesk/pkg/util/errorutil"
)

// CanAccessTicket reports whether actor may view or mutate ticket: admins may
// touch any ticket, standard users only their own.
func CanAccessTicket(actor domain.UserSnapshot, ticket *domain.Ticket) bool {
	return actor.IsAdmin() || ticket.OwnedBy(actor.ID)
}

// AuthorizeTicket returns a 403 error when actor may not access ticket.
// View, delete, message append, status and priority changes share this gate.
func AuthorizeTicket(actor domain.UserSnapshot, ticket *domain.Ticket) error {
	if !CanAccessTicket(actor, ticket) {
		return apperrors.NewForbidden()
	}
	return nil
}

// AuthorizeUserManagement allows only admins to create, update, delete or list users.
func AuthorizeUserManagement(actor domain.UserSnapshot) error {
	if !actor.IsAdmin() {
		return apperrors.NewForbidden()
	}
	return nil
}

// ListingScope returns the owner id a dashboard listing must be restricted to,
// or nil for all tickets. Standard users are always pinned to themselves;
// admins get the requested owner filter, if any.
func ListingScope(actor domain.UserSnapshot, requestedOwner *int64) *int64 {
	if !actor.IsAdmin() {
		id := actor.ID
		return &id
	}
	return requestedOwner
}

// ParseStatus parses a submitted status code. Any of the three states may be
// set from any other.
func ParseStatus(raw string) (domain.TicketStatus, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	status := domain.TicketStatus(n)
	if err != nil || !status.Valid() {
		return 0, apperrors.NewValidationError("Invalid status", nil)
	}
	return status, nil
}

// ParsePriority parses a submitted priority in [1,5].
func ParsePriority(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || !domain.ValidPriority(n) {
		return 0, apperrors.NewValidationError("Invalid priority", nil)
	}
	return n, nil
}

// ParseAuthLevel parses a submitted privilege level (0 or 1).
func ParseAuthLevel(raw string) (domain.AuthLevel, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	level := domain.AuthLevel(n)
	if err != nil || !level.Valid() {
		return 0, apperrors.NewValidationError("Invalid auth level", nil)
	}
	return level, nil
}
