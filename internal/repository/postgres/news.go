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

type NewsRepo struct {
	DB DBTX
}

const createNews = `-- name: CreateNews
INSERT INTO news (id, title, content, author, image_url)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at, title, content, author, image_url
`

func (r *NewsRepo) Create(ctx context.Context, arg repository.CreateNewsParams) (models.News, error) {
	rows, _ := r.DB.Query(ctx, createNews, uuid.New(), arg.Title, arg.Content, arg.Author, arg.ImageURL)
	news, err := pgx.CollectOneRow(rows, rowToNews)
	if err != nil {
		return news, fmt.Errorf("db error: %w", err)
	}

	return news, nil
}

const getNews = `-- name: getNews
SELECT id, created_at, title, content, author, image_url
FROM news
WHERE id = $1
`

func (r *NewsRepo) Get(ctx context.Context, id uuid.UUID) (models.News, error) {
	rows, _ := r.DB.Query(ctx, getNews, id)
	news, err := pgx.CollectOneRow(rows, rowToNews)

	switch {
	case err == nil:
		return news, nil
	case errors.Is(err, pgx.ErrNoRows):
		return news, apperrors.ErrNewsNotFound
	default:
		return news, fmt.Errorf("db error: %w", err)
	}
}

const listNews = `-- name: listNews
SELECT id, created_at, title, content, author, image_url
FROM news
ORDER BY created_at DESC
`

func (r *NewsRepo) List(ctx context.Context) ([]models.News, error) {
	rows, _ := r.DB.Query(ctx, listNews)
	news, err := pgx.CollectRows(rows, rowToNews)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return news, nil
}

const updateNews = `-- name: updateNews
UPDATE news
SET title = COALESCE($2, title),
    content = COALESCE($3, content),
    author = COALESCE($4, author),
    image_url = COALESCE($5, image_url)
WHERE id = $1
RETURNING id, created_at, title, content, author, image_url
`

// Update overwrites only fields passed with non nil pointers
func (r *NewsRepo) Update(ctx context.Context, id uuid.UUID, arg repository.UpdateNewsParams) (models.News, error) {
	rows, _ := r.DB.Query(ctx, updateNews, id, arg.Title, arg.Content, arg.Author, arg.ImageURL)
	news, err := pgx.CollectOneRow(rows, rowToNews)

	switch {
	case err == nil:
		return news, nil
	case errors.Is(err, pgx.ErrNoRows):
		return news, apperrors.ErrNewsNotFound
	default:
		return news, fmt.Errorf("db error: %w", err)
	}
}

const deleteNews = `-- name: deleteNews
DELETE FROM news
WHERE id = $1
`

func (r *NewsRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.DB.Exec(ctx, deleteNews, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperrors.ErrNewsNotFound
	}

	return nil
}

func rowToNews(row pgx.CollectableRow) (models.News, error) {
	var n models.News
	err := row.Scan(&n.ID, &n.CreatedAt, &n.Title, &n.Content, &n.Author, &n.ImageURL)
	return n, err
}
