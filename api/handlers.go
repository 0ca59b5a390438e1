package api

import (
	"context"
	"time"

	"github.com/rpupo63/blog-api/dto"
	"github.com/rpupo63/blog-api/models"
	"github.com/rpupo63/blog-api/services"
)

// BlogOperations is implemented by services.BlogService.
type BlogOperations interface {
	GetByID(ctx context.Context, id uint64) (*dto.BlogModel, error)
	List(ctx context.Context, author string, publishedOn *models.Date) (dto.BlogCollection, error)
	TitleExists(ctx context.Context, title string) (bool, error)
	Create(ctx context.Context, req dto.BlogRequest) (*dto.BlogModel, error)
	Update(ctx context.Context, id uint64, req dto.BlogRequest) (services.UpdateResult[dto.BlogModel], error)
	ReplaceMany(ctx context.Context, reqs []dto.BlogRequestFull) (dto.BlogCollection, error)
	Delete(ctx context.Context, id uint64) (bool, error)
	DeleteAll(ctx context.Context) error
	HasNestedPosts(ctx context.Context, blogID uint64) (bool, error)
	HasAnyNestedPosts(ctx context.Context) (bool, error)
}

// PostOperations is implemented by services.PostService.
type PostOperations interface {
	GetByID(ctx context.Context, id uint64) (*dto.PostModel, error)
	ListAll(ctx context.Context, keyword *string) (dto.PostCollection, error)
	ListForBlog(ctx context.Context, blogID uint64, sortTokens []string) (dto.PostCollection, error)
	Create(ctx context.Context, blogID uint64, req dto.PostRequest) (*dto.PostModel, error)
	Update(ctx context.Context, id uint64, req dto.PostRequest) (services.UpdateResult[dto.PostModel], error)
	ReplaceMany(ctx context.Context, reqs []dto.PostRequestFull) (dto.PostCollection, error)
	DeleteAll(ctx context.Context) error
	Delete(ctx context.Context, id uint64) (bool, error)
	DeleteAllForBlog(ctx context.Context, blogID uint64) (bool, error)
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependencies are the collaborators the router needs.
type Dependencies struct {
	Blogs  BlogOperations
	Posts  PostOperations
	Health Pinger
}

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(deps Dependencies, startupTime time.Time) *routeHandlers {
	return &routeHandlers{
		blogHandler:   newBlogHandler(deps.Blogs),
		postHandler:   newPostHandler(deps.Posts),
		healthHandler: newHealthHandler(deps.Health, startupTime),
	}
}
