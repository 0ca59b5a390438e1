package services

import (
	"context"

	"github.com/rpupo63/blog-api/dto"
	"github.com/rpupo63/blog-api/errs"
	"github.com/rpupo63/blog-api/hateoas"
	"github.com/rpupo63/blog-api/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type BlogService struct {
	blogs     BlogStore
	posts     PostStore
	assembler hateoas.Assembler
	logger    zerolog.Logger
}

func NewBlogService(blogs BlogStore, posts PostStore, assembler hateoas.Assembler) *BlogService {
	return &BlogService{
		blogs:     blogs,
		posts:     posts,
		assembler: assembler,
		logger:    log.With().Str("serviceName", "blogService").Logger(),
	}
}

// GetByID returns nil when the blog does not exist
func (s *BlogService) GetByID(ctx context.Context, id uint64) (*dto.BlogModel, error) {
	blog, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "blog", err)
	}
	if blog == nil {
		return nil, nil
	}
	model := s.assembler.Blog(*blog)
	return &model, nil
}

/*
List returns every blog, or, when author or publishedOn is given, the blogs owning at
least one post that matches both given filters. Filtered blogs keep the order in which
their first matching post was found and appear once.
*/
func (s *BlogService) List(ctx context.Context, author string, publishedOn *models.Date) (dto.BlogCollection, error) {
	if author == "" && publishedOn == nil {
		blogs, err := s.blogs.FindAll(ctx)
		if err != nil {
			return dto.BlogCollection{}, errs.NewDatabaseError("find", "blogs", err)
		}
		return s.assembler.Blogs(blogs), nil
	}

	var date models.Date
	if publishedOn != nil {
		date = *publishedOn
	}

	posts, err := s.posts.FindByExample(ctx, author, date)
	if err != nil {
		return dto.BlogCollection{}, errs.NewDatabaseError("find", "posts", err)
	}

	seen := make(map[uint64]bool, len(posts))
	blogs := make([]models.Blog, 0, len(posts))
	for _, post := range posts {
		if seen[post.BlogID] {
			continue
		}
		seen[post.BlogID] = true

		if post.Blog != nil {
			blogs = append(blogs, *post.Blog)
			continue
		}
		blog, err := s.blogs.FindByID(ctx, post.BlogID)
		if err != nil {
			return dto.BlogCollection{}, errs.NewDatabaseError("find", "blog", err)
		}
		if blog != nil {
			blogs = append(blogs, *blog)
		}
	}

	s.logger.Debug().Str("author", author).Int("posts", len(posts)).Int("blogs", len(blogs)).Msg("blogs filtered by post")
	return s.assembler.Blogs(blogs), nil
}

// TitleExists matches the title exactly
func (s *BlogService) TitleExists(ctx context.Context, title string) (bool, error) {
	blog, err := s.blogs.FindByTitle(ctx, title)
	if err != nil {
		return false, errs.NewDatabaseError("find", "blog", err)
	}
	return blog != nil, nil
}

// Create always assigns a fresh id. Title uniqueness is checked by the caller with
// TitleExists; a concurrent duplicate still fails with a conflict from the unique index.
func (s *BlogService) Create(ctx context.Context, req dto.BlogRequest) (*dto.BlogModel, error) {
	blog := models.Blog{
		BlogTitle:   *req.BlogTitle,
		Description: *req.Description,
	}
	if err := s.blogs.Add(ctx, &blog); err != nil {
		return nil, errs.NewDatabaseError("create", "blog", err)
	}
	if blog.ID == 0 {
		return nil, errs.NewPersistenceError("create", "blog")
	}

	s.logger.Info().Uint64("blogID", blog.ID).Msg("blog created")
	model := s.assembler.Blog(blog)
	return &model, nil
}

// Update overwrites only the fields that are present and not blank.
func (s *BlogService) Update(ctx context.Context, id uint64, req dto.BlogRequest) (UpdateResult[dto.BlogModel], error) {
	blog, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		return UpdateResult[dto.BlogModel]{}, errs.NewDatabaseError("find", "blog", err)
	}
	if blog == nil {
		return UpdateResult[dto.BlogModel]{Status: UpdateNotFound}, nil
	}

	changed := false
	if present(req.BlogTitle) {
		blog.BlogTitle = *req.BlogTitle
		changed = true
	}
	if present(req.Description) {
		blog.Description = *req.Description
		changed = true
	}
	if !changed {
		return UpdateResult[dto.BlogModel]{Status: UpdateNoop}, nil
	}

	if err := s.blogs.Save(ctx, blog); err != nil {
		return UpdateResult[dto.BlogModel]{}, errs.NewDatabaseError("update", "blog", err)
	}
	return UpdateResult[dto.BlogModel]{Status: Updated, Model: s.assembler.Blog(*blog)}, nil
}

// ReplaceMany writes every field of each item, inserting items whose id is unused.
func (s *BlogService) ReplaceMany(ctx context.Context, reqs []dto.BlogRequestFull) (dto.BlogCollection, error) {
	blogs := make([]models.Blog, 0, len(reqs))
	for _, req := range reqs {
		blogs = append(blogs, req.ToModel())
	}

	saved, err := s.blogs.SaveAll(ctx, blogs)
	if err != nil {
		return dto.BlogCollection{}, errs.NewDatabaseError("save", "blogs", err)
	}
	return s.assembler.Blogs(saved), nil
}

// Delete reports false when the blog does not exist
func (s *BlogService) Delete(ctx context.Context, id uint64) (bool, error) {
	blog, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		return false, errs.NewDatabaseError("find", "blog", err)
	}
	if blog == nil {
		return false, nil
	}
	if err := s.blogs.Delete(ctx, id); err != nil {
		return false, errs.NewDatabaseError("delete", "blog", err)
	}

	s.logger.Info().Uint64("blogID", id).Msg("blog deleted")
	return true, nil
}

func (s *BlogService) DeleteAll(ctx context.Context) error {
	if err := s.blogs.DeleteAll(ctx); err != nil {
		return errs.NewDatabaseError("delete", "blogs", err)
	}
	s.logger.Info().Msg("all blogs deleted")
	return nil
}

func (s *BlogService) HasNestedPosts(ctx context.Context, blogID uint64) (bool, error) {
	count, err := s.posts.CountByBlogID(ctx, blogID)
	if err != nil {
		return false, errs.NewDatabaseError("count", "posts", err)
	}
	return count > 0, nil
}

func (s *BlogService) HasAnyNestedPosts(ctx context.Context) (bool, error) {
	count, err := s.posts.Count(ctx)
	if err != nil {
		return false, errs.NewDatabaseError("count", "posts", err)
	}
	return count > 0, nil
}
