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
	"github.com/somtoval/foretrust-api/internal/service/news"
)

// Keep multipart parsing bounded; images above this are rejected
const maxImageMemory = 32 << 20

type newsResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	ImageURL  *string   `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}

func newNewsResponse(n models.News) newsResponse {
	return newsResponse{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		Author:    n.Author,
		ImageURL:  n.ImageURL,
		CreatedAt: n.CreatedAt,
	}
}

func handleCreateNews(svc newsService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxImageMemory); err != nil {
			render.ServiceError(w, "Failed to parse multipart form", http.StatusBadRequest)
			return
		}

		title := r.FormValue("title")
		content := r.FormValue("content")
		if title == "" || content == "" {
			render.ServiceError(w, "Title and content are required", http.StatusBadRequest)
			return
		}

		image, err := formImage(r)
		if err != nil {
			render.ServiceError(w, "Failed to read image", http.StatusBadRequest)
			return
		}

		article, err := svc.Create(r.Context(), title, content, r.FormValue("author"), image)
		if err != nil {
			l.Error("can't create article", "error", err.Error())
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSONWithStatus(w, newNewsResponse(article), http.StatusCreated)
	})
}

func handleListNews(svc newsService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		articles, err := svc.List(r.Context())
		if err != nil {
			l.Error("can't list articles", "error", err.Error())
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		res := make([]newsResponse, 0, len(articles))
		for _, a := range articles {
			res = append(res, newNewsResponse(a))
		}

		render.JSON(w, res)
	})
}

func handleGetNews(svc newsService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			render.ServiceError(w, "Invalid article id", http.StatusBadRequest)
			return
		}

		article, err := svc.Get(r.Context(), id)
		switch {
		case err == nil:
			render.JSON(w, newNewsResponse(article))
		case errors.Is(err, apperrors.ErrNewsNotFound):
			render.ServiceError(w, "News not found", http.StatusNotFound)
		default:
			l.Error("can't get article", "error", err.Error())
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}

func handleUpdateNews(svc newsService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			render.ServiceError(w, "Invalid article id", http.StatusBadRequest)
			return
		}

		if err := r.ParseMultipartForm(maxImageMemory); err != nil {
			render.ServiceError(w, "Failed to parse multipart form", http.StatusBadRequest)
			return
		}

		// Absent form fields keep their stored values
		arg := repository.UpdateNewsParams{}
		if v := r.FormValue("title"); v != "" {
			arg.Title = &v
		}
		if v := r.FormValue("content"); v != "" {
			arg.Content = &v
		}
		if v := r.FormValue("author"); v != "" {
			arg.Author = &v
		}

		image, err := formImage(r)
		if err != nil {
			render.ServiceError(w, "Failed to read image", http.StatusBadRequest)
			return
		}

		article, err := svc.Update(r.Context(), id, arg, image)
		switch {
		case err == nil:
			render.JSON(w, newNewsResponse(article))
		case errors.Is(err, apperrors.ErrNewsNotFound):
			render.ServiceError(w, "News not found", http.StatusNotFound)
		default:
			l.Error("can't update article", "error", err.Error())
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}

func handleDeleteNews(svc newsService, l logger.Logger) http.Handler {
	type response struct {
		Detail string `json:"detail"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			render.ServiceError(w, "Invalid article id", http.StatusBadRequest)
			return
		}

		err = svc.Delete(r.Context(), id)
		switch {
		case err == nil:
			render.JSON(w, response{Detail: "News deleted"})
		case errors.Is(err, apperrors.ErrNewsNotFound):
			render.ServiceError(w, "News not found", http.StatusNotFound)
		default:
			l.Error("can't delete article", "error", err.Error())
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}

// formImage reads the optional "image" part of a multipart form.
// Returns nil when no image was attached.
func formImage(r *http.Request) (*news.Image, error) {
	file, header, err := r.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile):
		return nil, nil
	case err != nil:
		return nil, err
	}

	return &news.Image{
		Reader:      file,
		Size:        header.Size,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
	}, nil
}

// pathID parses the {id} path segment as uuid
func pathID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(r.PathValue("id"))
}
