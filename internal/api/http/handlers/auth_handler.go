package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk/internal/api/dto"
	"github.com/spec-kit/helpdesk/internal/auth"
	"github.com/spec-kit/helpdesk/internal/service"
)

// AuthHandler serves login and logout.
type AuthHandler struct {
	auth     *service.AuthService
	sessions *auth.SessionBinder
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, sessions *auth.SessionBinder) *AuthHandler {
	return &AuthHandler{auth: authService, sessions: sessions}
}

// LoginPage GET /login.
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	return render(c, "login", "Log in", nil)
}

// Login POST /login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseForm(c, &req); err != nil {
		return err
	}
	user, err := h.auth.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}
	if err := h.sessions.Establish(c, user); err != nil {
		return err
	}
	return c.Redirect("/dashboard")
}

// Logout GET /logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.sessions.Destroy(c); err != nil {
		return err
	}
	return c.Redirect(auth.LoginPath)
}
