package api

import (
	"context"

	"github.com/rpupo63/blog-api/dto"
	"github.com/rpupo63/blog-api/hateoas"
	"github.com/rpupo63/blog-api/models"
	"github.com/rpupo63/blog-api/services"
)

var assembler = hateoas.NewAssembler("")

// stubBlogs answers from fixed data and records what it was asked.
type stubBlogs struct {
	blogs        map[uint64]models.Blog
	nested       map[uint64]bool
	err          error
	created      []dto.BlogRequest
	lastAuthor   string
	lastDate     *models.Date
	updateResult services.UpdateResult[dto.BlogModel]
	replaceErr   error
	deletedAll   bool
}

func newStubBlogs() *stubBlogs {
	return &stubBlogs{
		blogs: map[uint64]models.Blog{
			1: {ID: 1, BlogTitle: "Beauty Blog", Description: "Blog about beauty"},
		},
		nested: map[uint64]bool{},
	}
}

func (s *stubBlogs) GetByID(_ context.Context, id uint64) (*dto.BlogModel, error) {
	if s.err != nil {
		return nil, s.err
	}
	blog, ok := s.blogs[id]
	if !ok {
		return nil, nil
	}
	model := assembler.Blog(blog)
	return &model, nil
}

func (s *stubBlogs) List(_ context.Context, author string, publishedOn *models.Date) (dto.BlogCollection, error) {
	s.lastAuthor = author
	s.lastDate = publishedOn
	var blogs []models.Blog
	for _, blog := range s.blogs {
		blogs = append(blogs, blog)
	}
	return assembler.Blogs(blogs), nil
}

func (s *stubBlogs) TitleExists(_ context.Context, title string) (bool, error) {
	for _, blog := range s.blogs {
		if blog.BlogTitle == title {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubBlogs) Create(_ context.Context, req dto.BlogRequest) (*dto.BlogModel, error) {
	s.created = append(s.created, req)
	blog := models.Blog{ID: uint64(len(s.blogs) + 1), BlogTitle: *req.BlogTitle, Description: *req.Description}
	s.blogs[blog.ID] = blog
	model := assembler.Blog(blog)
	return &model, nil
}

func (s *stubBlogs) Update(_ context.Context, _ uint64, _ dto.BlogRequest) (services.UpdateResult[dto.BlogModel], error) {
	return s.updateResult, nil
}

func (s *stubBlogs) ReplaceMany(_ context.Context, reqs []dto.BlogRequestFull) (dto.BlogCollection, error) {
	if s.replaceErr != nil {
		return dto.BlogCollection{}, s.replaceErr
	}
	blogs := make([]models.Blog, 0, len(reqs))
	for _, req := range reqs {
		blogs = append(blogs, req.ToModel())
	}
	return assembler.Blogs(blogs), nil
}

func (s *stubBlogs) Delete(_ context.Context, id uint64) (bool, error) {
	if _, ok := s.blogs[id]; !ok {
		return false, nil
	}
	delete(s.blogs, id)
	return true, nil
}

func (s *stubBlogs) DeleteAll(_ context.Context) error {
	s.deletedAll = true
	return nil
}

func (s *stubBlogs) HasNestedPosts(_ context.Context, blogID uint64) (bool, error) {
	return s.nested[blogID], nil
}

func (s *stubBlogs) HasAnyNestedPosts(_ context.Context) (bool, error) {
	for _, nested := range s.nested {
		if nested {
			return true, nil
		}
	}
	return false, nil
}

type stubPosts struct {
	posts        []models.Post
	listErr      error
	lastKeyword  *string
	lastSort     []string
	listForErr   error
	createErr    error
	updateResult services.UpdateResult[dto.PostModel]
	deleted      map[uint64]bool
	blogsWithAny map[uint64]bool
}

func newStubPosts() *stubPosts {
	return &stubPosts{
		posts: []models.Post{
			{ID: 1, BlogID: 1, PostTitle: "Lipstick", PostBody: "red", Author: "Ann", PublishedOn: models.NewDate(2022, 5, 1)},
		},
		deleted:      map[uint64]bool{},
		blogsWithAny: map[uint64]bool{1: true},
	}
}

func (s *stubPosts) GetByID(_ context.Context, id uint64) (*dto.PostModel, error) {
	for _, post := range s.posts {
		if post.ID == id {
			model := assembler.Post(post)
			return &model, nil
		}
	}
	return nil, nil
}

func (s *stubPosts) ListAll(_ context.Context, keyword *string) (dto.PostCollection, error) {
	s.lastKeyword = keyword
	if s.listErr != nil {
		return dto.PostCollection{}, s.listErr
	}
	if keyword != nil && *keyword != "Lipstick" {
		return assembler.Posts(nil), nil
	}
	return assembler.Posts(s.posts), nil
}

func (s *stubPosts) ListForBlog(_ context.Context, _ uint64, sortTokens []string) (dto.PostCollection, error) {
	s.lastSort = sortTokens
	if s.listForErr != nil {
		return dto.PostCollection{}, s.listForErr
	}
	return assembler.Posts(s.posts), nil
}

func (s *stubPosts) Create(_ context.Context, blogID uint64, req dto.PostRequest) (*dto.PostModel, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	post := req.ToModel(blogID)
	post.ID = 2
	model := assembler.Post(post)
	return &model, nil
}

func (s *stubPosts) Update(_ context.Context, _ uint64, _ dto.PostRequest) (services.UpdateResult[dto.PostModel], error) {
	return s.updateResult, nil
}

func (s *stubPosts) ReplaceMany(_ context.Context, reqs []dto.PostRequestFull) (dto.PostCollection, error) {
	posts := make([]models.Post, 0, len(reqs))
	for _, req := range reqs {
		posts = append(posts, req.ToModel())
	}
	return assembler.Posts(posts), nil
}

func (s *stubPosts) DeleteAll(_ context.Context) error {
	return nil
}

func (s *stubPosts) Delete(_ context.Context, id uint64) (bool, error) {
	if id != 1 || s.deleted[id] {
		return false, nil
	}
	s.deleted[id] = true
	return true, nil
}

func (s *stubPosts) DeleteAllForBlog(_ context.Context, blogID uint64) (bool, error) {
	return s.blogsWithAny[blogID], nil
}

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(context.Context) error {
	return p.err
}
