package services

import (
	"context"
	"strings"

	"github.com/rpupo63/blog-api/models"
	"github.com/rpupo63/blog-api/sorting"
)

// BlogStore is the persistence the blog and post services need for blogs.
// Finders return nil without error when nothing matches.
type BlogStore interface {
	FindByID(ctx context.Context, id uint64) (*models.Blog, error)
	FindAll(ctx context.Context) ([]models.Blog, error)
	FindByTitle(ctx context.Context, title string) (*models.Blog, error)
	Add(ctx context.Context, blog *models.Blog) error
	Save(ctx context.Context, blog *models.Blog) error
	SaveAll(ctx context.Context, blogs []models.Blog) ([]models.Blog, error)
	Delete(ctx context.Context, id uint64) error
	DeleteAll(ctx context.Context) error
}

// PostStore is the persistence the services need for posts.
type PostStore interface {
	FindByID(ctx context.Context, id uint64) (*models.Post, error)
	FindAll(ctx context.Context) ([]models.Post, error)
	FindByIDs(ctx context.Context, ids []uint64) ([]models.Post, error)
	FindByBlogID(ctx context.Context, blogID uint64, orders []sorting.Order) ([]models.Post, error)
	FindByExample(ctx context.Context, author string, publishedOn models.Date) ([]models.Post, error)
	Add(ctx context.Context, post *models.Post) error
	Save(ctx context.Context, post *models.Post) error
	SaveAll(ctx context.Context, posts []models.Post) ([]models.Post, error)
	Delete(ctx context.Context, id uint64) error
	DeleteAll(ctx context.Context) error
	DeleteByBlogID(ctx context.Context, blogID uint64) (int64, error)
	CountByBlogID(ctx context.Context, blogID uint64) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type UpdateStatus int

const (
	UpdateNotFound UpdateStatus = iota
	UpdateNoop
	Updated
)

func (s UpdateStatus) String() string {
	switch s {
	case UpdateNotFound:
		return "not found"
	case UpdateNoop:
		return "no changes"
	case Updated:
		return "updated"
	default:
		return "unknown"
	}
}

// UpdateResult carries the refreshed representation when Status is Updated.
type UpdateResult[T any] struct {
	Status UpdateStatus
	Model  T
}

// present reports whether a patch field was supplied with a non-blank value.
func present(value *string) bool {
	return value != nil && strings.TrimSpace(*value) != ""
}
