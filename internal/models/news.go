package models

import (
	"time"

	"github.com/google/uuid"
)

type News struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Title     string
	Content   string
	Author    string
	ImageURL  *string // nil if article has no image attached
}
