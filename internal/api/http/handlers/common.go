package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk/internal/auth"
	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/web"
	apperrors "github.com/spec-kit/helpdesk/pkg/util/errorutil"
)

// currentUser returns the identity bound by the session middleware.
func currentUser(c *fiber.Ctx) (domain.UserSnapshot, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return domain.UserSnapshot{}, apperrors.NewUnauthorized("Unauthorized")
	}
	return principal, nil
}

// render executes a page inside the main layout.
func render(c *fiber.Ctx, view, title string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	data["Title"] = title
	if principal, ok := auth.PrincipalFromContext(c); ok {
		data["Principal"] = principal
	}
	return c.Render(view, data, web.Layout)
}

// parseForm decodes a form body. An empty body leaves out untouched.
func parseForm(c *fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(out); err != nil {
		return apperrors.NewValidationError("Invalid form payload", nil)
	}
	return nil
}

// ticketID reads the :id path segment. Anything but a positive integer
// cannot name a ticket.
func ticketID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewNotFound("Ticket", nil)
	}
	return id, nil
}
