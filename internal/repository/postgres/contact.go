package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/somtoval/foretrust-api/internal/apperrors"
	"github.com/somtoval/foretrust-api/internal/models"
	"github.com/somtoval/foretrust-api/internal/repository"
)

type ContactRepo struct {
	DB DBTX
}

const createContact = `-- name: CreateContact
INSERT INTO contacts (id, firstname, lastname, email, message)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at, firstname, lastname, email, message
`

func (r *ContactRepo) Create(ctx context.Context, arg repository.CreateContactParams) (models.Contact, error) {
	rows, _ := r.DB.Query(ctx, createContact, uuid.New(), arg.FirstName, arg.LastName, arg.Email, arg.Message)
	contact, err := pgx.CollectOneRow(rows, rowToContact)
	if err != nil {
		return contact, fmt.Errorf("db error: %w", err)
	}

	return contact, nil
}

const getContact = `-- name: getContact
SELECT id, created_at, firstname, lastname, email, message
FROM contacts
WHERE id = $1
`

func (r *ContactRepo) Get(ctx context.Context, id uuid.UUID) (models.Contact, error) {
	rows, _ := r.DB.Query(ctx, getContact, id)
	contact, err := pgx.CollectOneRow(rows, rowToContact)

	switch {
	case err == nil:
		return contact, nil
	case errors.Is(err, pgx.ErrNoRows):
		return contact, apperrors.ErrContactNotFound
	default:
		return contact, fmt.Errorf("db error: %w", err)
	}
}

const listContacts = `-- name: listContacts
SELECT id, created_at, firstname, lastname, email, message
FROM contacts
ORDER BY created_at DESC
`

func (r *ContactRepo) List(ctx context.Context) ([]models.Contact, error) {
	rows, _ := r.DB.Query(ctx, listContacts)
	contacts, err := pgx.CollectRows(rows, rowToContact)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return contacts, nil
}

const deleteContact = `-- name: deleteContact
DELETE FROM contacts
WHERE id = $1
`

func (r *ContactRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.DB.Exec(ctx, deleteContact, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperrors.ErrContactNotFound
	}

	return nil
}

func rowToContact(row pgx.CollectableRow) (models.Contact, error) {
	var c models.Contact
	err := row.Scan(&c.ID, &c.CreatedAt, &c.FirstName, &c.LastName, &c.Email, &c.Message)
	return c, err
}
