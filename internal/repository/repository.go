package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/somtoval/foretrust-api/internal/models"
)

// User repository interface
type UserRepo interface {
	// Create user
	// If user with the same username or email exists already has to return apperrors.ErrUserAlreadyExists
	CreateUser(ctx context.Context, arg CreateUserParams) (models.User, error)

	// Get user by it's id or username
	// If user not found must return apperrors.ErrUserNotFound
	GetUserByID(ctx context.Context, userID uuid.UUID) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)

	// Overwrite the stored password hash for the user
	UpdatePassword(ctx context.Context, userID uuid.UUID, hashedPassword string) error
}

type CreateUserParams struct {
	Username       string
	Email          string
	HashedPassword string
	IsActive       bool
	IsAdmin        bool
}

// News repository interface
type NewsRepo interface {
	Create(ctx context.Context, arg CreateNewsParams) (models.News, error)

	// If article not found must return apperrors.ErrNewsNotFound
	Get(ctx context.Context, newsID uuid.UUID) (models.News, error)

	// List all articles, newest first
	List(ctx context.Context) ([]models.News, error)

	// Update only the fields with non nil pointers
	Update(ctx context.Context, newsID uuid.UUID, arg UpdateNewsParams) (models.News, error)

	Delete(ctx context.Context, newsID uuid.UUID) error
}

type CreateNewsParams struct {
	Title    string
	Content  string
	Author   string
	ImageURL *string
}

type UpdateNewsParams struct {
	Title    *string
	Content  *string
	Author   *string
	ImageURL *string
}

// Contact message repository interface
type ContactRepo interface {
	Create(ctx context.Context, arg CreateContactParams) (models.Contact, error)

	// If message not found must return apperrors.ErrContactNotFound
	Get(ctx context.Context, contactID uuid.UUID) (models.Contact, error)

	// List all messages, newest first
	List(ctx context.Context) ([]models.Contact, error)

	Delete(ctx context.Context, contactID uuid.UUID) error
}

type CreateContactParams struct {
	FirstName string
	LastName  string
	Email     string
	Message   string
}

// Storage aggregates all repositories over a single db connection
type Storage interface {
	User() UserRepo
	News() NewsRepo
	Contact() ContactRepo

	// Run fn with repositories bound to one db transaction
	InTx(ctx context.Context, fn func(Storage) error) error
}
