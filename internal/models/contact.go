package models

import (
	"time"

	"github.com/google/uuid"
)

type Contact struct {
	ID        uuid.UUID
	CreatedAt time.Time
	FirstName string
	LastName  string
	Email     string
	Message   string
}
