package services

import (
	"context"

	"github.com/rpupo63/blog-api/dto"
	"github.com/rpupo63/blog-api/errs"
	"github.com/rpupo63/blog-api/hateoas"
	"github.com/rpupo63/blog-api/models"
	"github.com/rpupo63/blog-api/search"
	"github.com/rpupo63/blog-api/sorting"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type PostService struct {
	posts     PostStore
	blogs     BlogStore
	searcher  search.Searcher
	indexer   search.Indexer
	assembler hateoas.Assembler
	logger    zerolog.Logger
}

// NewPostService wires the post use cases. indexer may be nil when the search
// backend reads the posts table directly.
func NewPostService(posts PostStore, blogs BlogStore, searcher search.Searcher, indexer search.Indexer, assembler hateoas.Assembler) *PostService {
	return &PostService{
		posts:     posts,
		blogs:     blogs,
		searcher:  searcher,
		indexer:   indexer,
		assembler: assembler,
		logger:    log.With().Str("serviceName", "postService").Logger(),
	}
}

func (s *PostService) GetByID(ctx context.Context, id uint64) (*dto.PostModel, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "post", err)
	}
	if post == nil {
		return nil, nil
	}
	model := s.assembler.Post(*post)
	return &model, nil
}

/*
ListAll returns every post, or the posts matching keyword when it is given. A search
backend failure is reported as ErrSearchUnavailable, not logged, so that callers
can tell it apart from an empty result.
*/
func (s *PostService) ListAll(ctx context.Context, keyword *string) (dto.PostCollection, error) {
	var posts []models.Post
	if keyword != nil {
		results, err := s.searcher.Search(ctx, *keyword)
		if err != nil {
			return dto.PostCollection{}, errs.NewSearchUnavailableError(err)
		}

		ids, err := search.PostIDs(results)
		if err != nil {
			return dto.PostCollection{}, errs.NewSearchUnavailableError(err)
		}

		posts, err = s.posts.FindByIDs(ctx, ids)
		if err != nil {
			return dto.PostCollection{}, errs.NewDatabaseError("find", "posts", err)
		}
	} else {
		var err error
		posts, err = s.posts.FindAll(ctx)
		if err != nil {
			return dto.PostCollection{}, errs.NewDatabaseError("find", "posts", err)
		}
	}

	return s.withListingLinks(s.assembler.Posts(posts)), nil
}

// ListForBlog sorts by sortTokens, or by sorting.Default when none are given.
func (s *PostService) ListForBlog(ctx context.Context, blogID uint64, sortTokens []string) (dto.PostCollection, error) {
	blog, err := s.blogs.FindByID(ctx, blogID)
	if err != nil {
		return dto.PostCollection{}, errs.NewDatabaseError("find", "blog", err)
	}
	if blog == nil {
		return dto.PostCollection{}, errs.NewEntityNotFound(blogID)
	}

	if len(sortTokens) == 0 {
		sortTokens = sorting.Default
	}

	posts, err := s.posts.FindByBlogID(ctx, blogID, sorting.Parse(sortTokens))
	if err != nil {
		return dto.PostCollection{}, errs.NewDatabaseError("find", "posts", err)
	}

	collection := s.assembler.Posts(posts)
	collection.Links = append(collection.Links,
		s.assembler.Link(hateoas.RouteBlogPosts, hateoas.RelSelf, blogID),
		s.assembler.Link(hateoas.RoutePosts, hateoas.RelPosts),
		s.assembler.Link(hateoas.RouteBlogs, hateoas.RelBlogs),
	)
	return collection, nil
}

func (s *PostService) Create(ctx context.Context, blogID uint64, req dto.PostRequest) (*dto.PostModel, error) {
	blog, err := s.blogs.FindByID(ctx, blogID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "blog", err)
	}
	if blog == nil {
		return nil, errs.NewEntityNotFound(blogID)
	}

	post := req.ToModel(blog.ID)
	if err := s.posts.Add(ctx, &post); err != nil {
		return nil, errs.NewDatabaseError("create", "post", err)
	}
	if post.ID == 0 {
		return nil, errs.NewPersistenceError("create", "post")
	}

	s.index(ctx, post)
	s.logger.Info().Uint64("postID", post.ID).Uint64("blogID", blogID).Msg("post created")
	model := s.assembler.Post(post)
	return &model, nil
}

// Update overwrites only the fields that are present and not blank. PublishedOn
// only needs to be present.
func (s *PostService) Update(ctx context.Context, id uint64, req dto.PostRequest) (UpdateResult[dto.PostModel], error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return UpdateResult[dto.PostModel]{}, errs.NewDatabaseError("find", "post", err)
	}
	if post == nil {
		return UpdateResult[dto.PostModel]{Status: UpdateNotFound}, nil
	}

	changed := false
	if present(req.PostTitle) {
		post.PostTitle = *req.PostTitle
		changed = true
	}
	if present(req.PostBody) {
		post.PostBody = *req.PostBody
		changed = true
	}
	if present(req.PostConclusion) {
		conclusion := *req.PostConclusion
		post.PostConclusion = &conclusion
		changed = true
	}
	if present(req.Author) {
		post.Author = *req.Author
		changed = true
	}
	if req.PublishedOn != nil {
		post.PublishedOn = *req.PublishedOn
		changed = true
	}
	if !changed {
		return UpdateResult[dto.PostModel]{Status: UpdateNoop}, nil
	}

	if err := s.posts.Save(ctx, post); err != nil {
		return UpdateResult[dto.PostModel]{}, errs.NewDatabaseError("update", "post", err)
	}

	s.index(ctx, *post)
	return UpdateResult[dto.PostModel]{Status: Updated, Model: s.assembler.Post(*post)}, nil
}

// ReplaceMany writes every field of each item. A blogId that does not exist fails
// the whole batch through the foreign key.
func (s *PostService) ReplaceMany(ctx context.Context, reqs []dto.PostRequestFull) (dto.PostCollection, error) {
	posts := make([]models.Post, 0, len(reqs))
	for _, req := range reqs {
		posts = append(posts, req.ToModel())
	}

	saved, err := s.posts.SaveAll(ctx, posts)
	if err != nil {
		return dto.PostCollection{}, errs.NewDatabaseError("save", "posts", err)
	}

	s.index(ctx, saved...)
	return s.withListingLinks(s.assembler.Posts(saved)), nil
}

func (s *PostService) DeleteAll(ctx context.Context) error {
	if err := s.posts.DeleteAll(ctx); err != nil {
		return errs.NewDatabaseError("delete", "posts", err)
	}

	if s.indexer != nil {
		if err := s.indexer.Reset(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("could not reset search index")
		}
	}
	s.logger.Info().Msg("all posts deleted")
	return nil
}

// Delete reports false when the post does not exist
func (s *PostService) Delete(ctx context.Context, id uint64) (bool, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return false, errs.NewDatabaseError("find", "post", err)
	}
	if post == nil {
		return false, nil
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		return false, errs.NewDatabaseError("delete", "post", err)
	}

	s.unindex(ctx, id)
	return true, nil
}

// DeleteAllForBlog reports false when the blog owns no posts. The blog itself is not
// looked up, so an unknown blog also reports false.
func (s *PostService) DeleteAllForBlog(ctx context.Context, blogID uint64) (bool, error) {
	posts, err := s.posts.FindByBlogID(ctx, blogID, nil)
	if err != nil {
		return false, errs.NewDatabaseError("find", "posts", err)
	}
	if len(posts) == 0 {
		return false, nil
	}

	if _, err := s.posts.DeleteByBlogID(ctx, blogID); err != nil {
		return false, errs.NewDatabaseError("delete", "posts", err)
	}

	ids := make([]uint64, 0, len(posts))
	for _, post := range posts {
		ids = append(ids, post.ID)
	}
	s.unindex(ctx, ids...)
	s.logger.Info().Uint64("blogID", blogID).Int("count", len(ids)).Msg("posts of blog deleted")
	return true, nil
}

// Reindex rebuilds the search index from the posts table and returns how many posts
// were indexed. It does nothing when the backend keeps no index of its own.
func (s *PostService) Reindex(ctx context.Context) (int, error) {
	if s.indexer == nil {
		return 0, nil
	}

	posts, err := s.posts.FindAll(ctx)
	if err != nil {
		return 0, errs.NewDatabaseError("find", "posts", err)
	}
	if err := s.indexer.Reset(ctx); err != nil {
		return 0, errs.NewSearchUnavailableError(err)
	}
	if err := s.indexer.Index(ctx, posts...); err != nil {
		return 0, errs.NewSearchUnavailableError(err)
	}
	return len(posts), nil
}

// withListingLinks adds the links shared by the all-posts listing and bulk replace.
func (s *PostService) withListingLinks(collection dto.PostCollection) dto.PostCollection {
	collection.Links = append(collection.Links,
		s.assembler.Link(hateoas.RoutePosts, hateoas.RelSelf),
		s.assembler.Link(hateoas.RouteBlogs, hateoas.RelBlogs),
	)
	return collection
}

// index and unindex only log failures; Reindex repairs a stale index.
func (s *PostService) index(ctx context.Context, posts ...models.Post) {
	if s.indexer == nil || len(posts) == 0 {
		return
	}
	if err := s.indexer.Index(ctx, posts...); err != nil {
		s.logger.Warn().Err(err).Int("count", len(posts)).Msg("could not index posts")
	}
}

func (s *PostService) unindex(ctx context.Context, ids ...uint64) {
	if s.indexer == nil || len(ids) == 0 {
		return
	}
	if err := s.indexer.Remove(ctx, ids...); err != nil {
		s.logger.Warn().Err(err).Int("count", len(ids)).Msg("could not unindex posts")
	}
}
