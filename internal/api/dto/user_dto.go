package dto

import "github.com/spec-kit/helpdesk/internal/domain"

// LoginRequest is the login form.
type LoginRequest struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// UserRequest is shared by the create, update and delete user forms.
// Blank password and authLevel mean "unchanged" on update.
type UserRequest struct {
	Username  string `form:"username"`
	Password  string `form:"password"`
	AuthLevel string `form:"authLevel"`
}

// UserSummary is one row of the user list. It never exposes the hash.
type UserSummary struct {
	ID        int64
	Username  string
	AuthLevel string
}

// NewUserSummaries converts directory records to list rows.
func NewUserSummaries(users []domain.User) []UserSummary {
	items := make([]UserSummary, 0, len(users))
	for _, u := range users {
		items = append(items, UserSummary{ID: u.ID, Username: u.Username, AuthLevel: u.AuthLevel.String()})
	}
	return items
}
