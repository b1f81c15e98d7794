package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk/internal/api/dto"
	"github.com/spec-kit/helpdesk/internal/service"
	apperrors "github.com/spec-kit/helpdesk/pkg/util/errorutil"
)

// Ticket actions accepted on POST /ticket/:id/:action.
const (
	actionDelete     = "delete"
	actionAddMessage = "add-message"
	actionStatus     = "status"
	actionPriority   = "priority"
)

// TicketsHandler serves the dashboard and ticket pages.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// Dashboard GET /dashboard. Admins may pass ?user=<id> to see one owner's tickets.
func (h *TicketsHandler) Dashboard(c *fiber.Ctx) error {
	principal, err := currentUser(c)
	if err != nil {
		return err
	}

	var ownerID *int64
	if raw := strings.TrimSpace(c.Query("user")); raw != "" && principal.IsAdmin() {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return apperrors.NewValidationError("Invalid user filter", nil)
		}
		ownerID = &id
	}

	tickets, err := h.service.ListDashboard(c.UserContext(), principal, ownerID)
	if err != nil {
		return err
	}
	return render(c, "dashboard", "Dashboard", fiber.Map{
		"Username": principal.Username,
		"Tickets":  dto.NewTicketSummaries(tickets),
	})
}

// CreatePage GET /ticket/create.
func (h *TicketsHandler) CreatePage(c *fiber.Ctx) error {
	return render(c, "createTicket", "New ticket", nil)
}

// Create POST /ticket/create.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	principal, err := currentUser(c)
	if err != nil {
		return err
	}
	var req dto.CreateTicketRequest
	if err := parseForm(c, &req); err != nil {
		return err
	}

	ticket, err := h.service.CreateTicket(c.UserContext(), principal, service.TicketCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
	})
	if err != nil {
		return err
	}
	return c.Redirect(ticketPath(ticket.ID))
}

// View GET /ticket/:id.
func (h *TicketsHandler) View(c *fiber.Ctx) error {
	principal, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := ticketID(c)
	if err != nil {
		return err
	}
	ticket, err := h.service.GetTicket(c.UserContext(), principal, id)
	if err != nil {
		return err
	}
	return render(c, "viewTicket", ticket.Title, fiber.Map{"Ticket": ticket})
}

// Action POST /ticket/:id/:action.
func (h *TicketsHandler) Action(c *fiber.Ctx) error {
	principal, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := ticketID(c)
	if err != nil {
		return err
	}
	var req dto.TicketActionRequest
	if err := parseForm(c, &req); err != nil {
		return err
	}

	ctx := c.UserContext()
	switch c.Params("action") {
	case actionDelete:
		if err := h.service.DeleteTicket(ctx, principal, id); err != nil {
			return err
		}
		return c.Redirect("/dashboard")
	case actionAddMessage:
		_, err = h.service.AddMessage(ctx, principal, id, req.Message)
	case actionStatus:
		err = h.service.SetStatus(ctx, principal, id, req.Status)
	case actionPriority:
		err = h.service.SetPriority(ctx, principal, id, req.Priority)
	default:
		// Unknown actions still answer 404/403 before 400.
		if _, err := h.service.GetTicket(ctx, principal, id); err != nil {
			return err
		}
		return apperrors.NewValidationError("Invalid action", nil)
	}
	if err != nil {
		return err
	}
	return c.Redirect(ticketPath(id))
}

func ticketPath(id int64) string {
	return fmt.Sprintf("/ticket/%d", id)
}
