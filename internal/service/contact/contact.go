package contact

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/somtoval/foretrust-api/internal/models"
	"github.com/somtoval/foretrust-api/internal/repository"
)

type ContactService struct {
	contactRepo repository.ContactRepo
}

func NewService(contactRepo repository.ContactRepo) *ContactService {
	return &ContactService{contactRepo: contactRepo}
}

func (s *ContactService) Create(ctx context.Context, arg repository.CreateContactParams) (models.Contact, error) {
	contact, err := s.contactRepo.Create(ctx, arg)
	if err != nil {
		return contact, fmt.Errorf("can't save contact message. Err: %w", err)
	}

	return contact, nil
}

func (s *ContactService) Get(ctx context.Context, id uuid.UUID) (models.Contact, error) {
	return s.contactRepo.Get(ctx, id)
}

func (s *ContactService) List(ctx context.Context) ([]models.Contact, error) {
	return s.contactRepo.List(ctx)
}

func (s *ContactService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.contactRepo.Delete(ctx, id)
}
