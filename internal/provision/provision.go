package provision

import (
	"context"
	"errors"
	"fmt"

	"github.com/somtoval/foretrust-api/internal/apperrors"
	"github.com/somtoval/foretrust-api/internal/repository"
	"github.com/somtoval/foretrust-api/internal/service/auth"
)

// EnsureAdmin creates the admin account unless it already exists.
// Meant to be run by deployment tooling, not by the service itself, so no
// default credential ever ships with the server binary.
// Returns true if the account was created on this call.
func EnsureAdmin(ctx context.Context, userRepo repository.UserRepo, hasher auth.PasswordHasher, username string, email string, password string) (bool, error) {
	if username == "" || email == "" {
		return false, errors.New("admin username and email must not be empty")
	}
	if password == "" {
		return false, errors.New("admin password must not be empty")
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		return false, fmt.Errorf("can't use this as password, error=%w", err)
	}

	_, err = userRepo.CreateUser(ctx, repository.CreateUserParams{
		Username:       username,
		Email:          email,
		HashedPassword: hash,
		IsActive:       true,
		IsAdmin:        true,
	})

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, apperrors.ErrUserAlreadyExists):
		return false, nil
	default:
		return false, fmt.Errorf("can't create admin user. Err: %w", err)
	}
}
