package news

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"

	"github.com/somtoval/foretrust-api/internal/models"
	"github.com/somtoval/foretrust-api/internal/repository"
	"github.com/somtoval/foretrust-api/internal/storage"
)

const defaultAuthor = "Anonymous"

// Image upload attached to an article
type Image struct {
	Reader      io.Reader
	Size        int64
	Filename    string
	ContentType string
}

type NewsService struct {
	newsRepo repository.NewsRepo

	// Object storage for article images
	images storage.ObjectStorage
}

func NewService(newsRepo repository.NewsRepo, images storage.ObjectStorage) *NewsService {
	return &NewsService{
		newsRepo: newsRepo,
		images:   images,
	}
}

func (s *NewsService) Create(ctx context.Context, title string, content string, author string, image *Image) (models.News, error) {
	if author == "" {
		author = defaultAuthor
	}

	arg := repository.CreateNewsParams{
		Title:   title,
		Content: content,
		Author:  author,
	}

	if image != nil {
		url, err := s.saveImage(ctx, image)
		if err != nil {
			return models.News{}, err
		}
		arg.ImageURL = &url
	}

	news, err := s.newsRepo.Create(ctx, arg)
	if err != nil {
		return news, fmt.Errorf("can't create article. Err: %w", err)
	}

	return news, nil
}

func (s *NewsService) Get(ctx context.Context, id uuid.UUID) (models.News, error) {
	return s.newsRepo.Get(ctx, id)
}

func (s *NewsService) List(ctx context.Context) ([]models.News, error) {
	return s.newsRepo.List(ctx)
}

// Update overwrites only the provided fields. A new image replaces the
// stored image link; the previous object stays in the bucket.
func (s *NewsService) Update(ctx context.Context, id uuid.UUID, arg repository.UpdateNewsParams, image *Image) (models.News, error) {
	if image != nil {
		url, err := s.saveImage(ctx, image)
		if err != nil {
			return models.News{}, err
		}
		arg.ImageURL = &url
	}

	return s.newsRepo.Update(ctx, id, arg)
}

func (s *NewsService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.newsRepo.Delete(ctx, id)
}

// saveImage uploads the image under a fresh key and returns its public URL
func (s *NewsService) saveImage(ctx context.Context, image *Image) (string, error) {
	key := "news/" + uuid.NewString() + path.Ext(image.Filename)

	err := s.images.Put(ctx, key, image.Reader, image.Size, image.ContentType)
	if err != nil {
		return "", fmt.Errorf("error while uploading image. Err: %w", err)
	}

	return s.images.URL(key), nil
}
