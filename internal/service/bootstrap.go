package service

import (
	"context"
	"fmt"
	"io"

	"github.com/spec-kit/helpdesk/internal/auth"
	"github.com/spec-kit/helpdesk/internal/domain"
)

const bootstrapPasswordLength = 24

// EnsureAdmin creates an admin with a random password when the directory is
// empty. The password is written to out once and kept nowhere else.
func EnsureAdmin(ctx context.Context, users *UserService, username string, out io.Writer) (bool, error) {
	count, err := users.CountUsers(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	password, err := auth.GeneratePassword(bootstrapPasswordLength)
	if err != nil {
		return false, fmt.Errorf("generate admin password: %w", err)
	}
	if _, err := users.create(ctx, nil, CreateUserInput{
		Username:  username,
		Password:  password,
		AuthLevel: domain.AuthLevelAdmin,
	}); err != nil {
		return false, err
	}

	fmt.Fprintf(out, "Admin user created. Username: %s, Password: %s\n", username, password)
	return true, nil
}
