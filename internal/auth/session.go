package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk/internal/domain"
	apperrors "github.com/spec-kit/helpdesk/pkg/util/errorutil"
)

// LoginPath is where unauthenticated browsers are sent.
const LoginPath = "/login"

const (
	principalKey = "auth_principal"

	keyAuthenticated = "authenticated"
	keyUsername      = "username"
	keyUID           = "uid"
	keyAuthLevel     = "authLevel"
)

// UserLookup fetches the live directory record for a username and returns a
// NOT_FOUND DomainError when it does not exist.
type UserLookup interface {
	GetUser(ctx context.Context, username string) (*domain.User, error)
}

// SessionBinder ties browser sessions to directory users.
type SessionBinder struct {
	store  *session.Store
	users  UserLookup
	logger *zap.Logger
}

// NewSessionBinder constructs the binder.
func NewSessionBinder(store *session.Store, users UserLookup, logger *zap.Logger) *SessionBinder {
	return &SessionBinder{store: store, users: users, logger: logger}
}

// Bind runs on every request. An authenticated session is re-validated against
// the directory: a deleted user has the session destroyed and is redirected to
// login, otherwise the cached identity is refreshed from the current record.
func (b *SessionBinder) Bind(c *fiber.Ctx) error {
	sess, err := b.store.Get(c)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if authenticated, _ := sess.Get(keyAuthenticated).(bool); !authenticated {
		return c.Next()
	}

	username, _ := sess.Get(keyUsername).(string)
	user, err := b.users.GetUser(c.UserContext(), username)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			return err
		}
		if err := sess.Destroy(); err != nil {
			return apperrors.NewInternalError(err)
		}
		b.logger.Info("session user no longer exists", zap.String("username", username))
		return c.Redirect(LoginPath)
	}

	snapshot := user.Snapshot()
	writeIdentity(sess, snapshot)
	if err := sess.Save(); err != nil {
		return apperrors.NewInternalError(err)
	}
	c.Locals(principalKey, snapshot)
	return c.Next()
}

// Establish marks the session authenticated as user under a fresh session id.
func (b *SessionBinder) Establish(c *fiber.Ctx, user *domain.User) error {
	sess, err := b.store.Get(c)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if err := sess.Regenerate(); err != nil {
		return apperrors.NewInternalError(err)
	}
	sess.Set(keyAuthenticated, true)
	writeIdentity(sess, user.Snapshot())
	if err := sess.Save(); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}

// Destroy removes the session from storage and clears the cookie.
func (b *SessionBinder) Destroy(c *fiber.Ctx) error {
	sess, err := b.store.Get(c)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if err := sess.Destroy(); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}

func writeIdentity(sess *session.Session, snapshot domain.UserSnapshot) {
	sess.Set(keyUsername, snapshot.Username)
	sess.Set(keyUID, snapshot.ID)
	sess.Set(keyAuthLevel, int(snapshot.AuthLevel))
}

// PrincipalFromContext returns the identity bound to the request, if any.
func PrincipalFromContext(c *fiber.Ctx) (domain.UserSnapshot, bool) {
	principal, ok := c.Locals(principalKey).(domain.UserSnapshot)
	return principal, ok
}
