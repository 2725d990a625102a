package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/somtoval/foretrust-api/internal/apperrors"
	"github.com/somtoval/foretrust-api/internal/handlers/render"
	"github.com/somtoval/foretrust-api/internal/logger"
	"github.com/somtoval/foretrust-api/internal/models"
	"github.com/somtoval/foretrust-api/internal/repository"
)

type contactResponse struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstname"`
	LastName  string    `json:"lastname"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

func newContactResponse(c models.Contact) contactResponse {
	return contactResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Message:   c.Message,
		CreatedAt: c.CreatedAt,
	}
}

func handleCreateContact(svc contactService, l logger.Logger) http.Handler {
	type request struct {
		FirstName string `json:"firstname" validate:"required,max=100"`
		LastName  string `json:"lastname" validate:"required,max=100"`
		Email     string `json:"email" validate:"required,email"`
		Message   string `json:"message" validate:"required"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		contact, err := svc.Create(r.Context(), repository.CreateContactParams{
			FirstName: data.FirstName,
			LastName:  data.LastName,
			Email:     data.Email,
			Message:   data.Message,
		})
		if err != nil {
			l.Error("can't save contact message", "error", err.Error())
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSONWithStatus(w, newContactResponse(contact), http.StatusCreated)
	})
}

func handleListContacts(svc contactService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contacts, err := svc.List(r.Context())
		if err != nil {
			l.Error("can't list contact messages", "error", err.Error())
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		res := make([]contactResponse, 0, len(contacts))
		for _, c := range contacts {
			res = append(res, newContactResponse(c))
		}

		render.JSON(w, res)
	})
}

func handleGetContact(svc contactService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			render.ServiceError(w, "Invalid contact id", http.StatusBadRequest)
			return
		}

		contact, err := svc.Get(r.Context(), id)
		switch {
		case err == nil:
			render.JSON(w, newContactResponse(contact))
		case errors.Is(err, apperrors.ErrContactNotFound):
			render.ServiceError(w, "Contact not found", http.StatusNotFound)
		default:
			l.Error("can't get contact message", "error", err.Error())
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}

func handleDeleteContact(svc contactService, l logger.Logger) http.Handler {
	type response struct {
		Detail string `json:"detail"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			render.ServiceError(w, "Invalid contact id", http.StatusBadRequest)
			return
		}

		err = svc.Delete(r.Context(), id)
		switch {
		case err == nil:
			render.JSON(w, response{Detail: "Contact deleted"})
		case errors.Is(err, apperrors.ErrContactNotFound):
			render.ServiceError(w, "Contact not found", http.StatusNotFound)
		default:
			l.Error("can't delete contact message", "error", err.Error())
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}
