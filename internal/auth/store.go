package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/spec-kit/helpdesk/internal/config"
)

// NewSessionStore builds the cookie-keyed session store. A nil storage keeps
// sessions in process memory.
func NewSessionStore(cfg config.AuthConfig, storage fiber.Storage) *session.Store {
	return session.New(session.Config{
		Expiration:     cfg.SessionTTL(),
		Storage:        storage,
		KeyLookup:      "cookie:" + cfg.SessionCookieName,
		CookieSecure:   cfg.SessionCookieSecure,
		CookieHTTPOnly: true,
		CookieSameSite: fiber.CookieSameSiteLaxMode,
	})
}
