package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk/internal/api/dto"
	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/policy"
	"github.com/spec-kit/helpdesk/internal/service"
	apperrors "github.com/spec-kit/helpdesk/pkg/util/errorutil"
)

// UsersHandler serves settings and user management.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{users: userService}
}

// Settings GET /settings.
func (h *UsersHandler) Settings(c *fiber.Ctx) error {
	return render(c, "settings", "Settings", nil)
}

// CreatePage GET /admin/createUser.
func (h *UsersHandler) CreatePage(c *fiber.Ctx) error {
	return render(c, "admin/createUser", "Create user", nil)
}

// DeletePage GET /admin/deleteUser.
func (h *UsersHandler) DeletePage(c *fiber.Ctx) error {
	return render(c, "admin/deleteUser", "Delete user", nil)
}

// UpdatePage GET /admin/updateUser.
func (h *UsersHandler) UpdatePage(c *fiber.Ctx) error {
	return render(c, "admin/updateUser", "Update user", nil)
}

// Create POST /user/create and /admin/createUser. A blank level creates a
// standard user.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	principal, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := policy.AuthorizeUserManagement(principal); err != nil {
		return err
	}
	var req dto.UserRequest
	if err := parseForm(c, &req); err != nil {
		return err
	}

	level := domain.AuthLevelStandard
	if strings.TrimSpace(req.AuthLevel) != "" {
		if level, err = policy.ParseAuthLevel(req.AuthLevel); err != nil {
			return err
		}
	}
	if _, err := h.users.CreateUser(c.UserContext(), principal, service.CreateUserInput{
		Username:  req.Username,
		Password:  req.Password,
		AuthLevel: level,
	}); err != nil {
		return err
	}
	return c.Redirect("/dashboard")
}

// Delete POST /user/delete and /admin/deleteUser.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	principal, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := policy.AuthorizeUserManagement(principal); err != nil {
		return err
	}
	var req dto.UserRequest
	if err := parseForm(c, &req); err != nil {
		return err
	}
	if err := h.users.DeleteUser(c.UserContext(), principal, strings.TrimSpace(req.Username)); err != nil {
		return err
	}
	return c.Redirect("/dashboard")
}

// Update POST /admin/updateUser. Only the username is required; blank
// fields keep their stored values.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	principal, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := policy.AuthorizeUserManagement(principal); err != nil {
		return err
	}
	var req dto.UserRequest
	if err := parseForm(c, &req); err != nil {
		return err
	}

	input := service.UpdateUserInput{Username: strings.TrimSpace(req.Username)}
	if input.Username == "" {
		return apperrors.NewValidationError("Username is required", nil)
	}
	if req.Password != "" {
		input.Password = &req.Password
	}
	if strings.TrimSpace(req.AuthLevel) != "" {
		level, err := policy.ParseAuthLevel(req.AuthLevel)
		if err != nil {
			return err
		}
		input.AuthLevel = &level
	}
	if _, err := h.users.UpdateUser(c.UserContext(), principal, input); err != nil {
		return err
	}
	return c.Redirect("/dashboard")
}

// SelfUpdate POST /user/update. Admin-only like the other user routes, and
// has no effect yet.
func (h *UsersHandler) SelfUpdate(c *fiber.Ctx) error {
	principal, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := policy.AuthorizeUserManagement(principal); err != nil {
		return err
	}
	return apperrors.NewNotImplemented("Not Implemented")
}

// List GET /admin/listUsers.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	principal, err := currentUser(c)
	if err != nil {
		return err
	}
	users, err := h.users.ListUsers(c.UserContext(), principal)
	if err != nil {
		return err
	}
	return render(c, "admin/listUsers", "Users", fiber.Map{"Users": dto.NewUserSummaries(users)})
}
