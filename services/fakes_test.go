package services

import (
	"context"
	"errors"
	"sort"
	"strconv"

	"github.com/rpupo63/blog-api/errs"
	"github.com/rpupo63/blog-api/hateoas"
	"github.com/rpupo63/blog-api/models"
	"github.com/rpupo63/blog-api/search"
	"github.com/rpupo63/blog-api/sorting"
)

var errStoreDown = errors.New("connection refused")

type fakeBlogStore struct {
	blogs  map[uint64]models.Blog
	nextID uint64
	err    error
}

func newFakeBlogStore(blogs ...models.Blog) *fakeBlogStore {
	s := &fakeBlogStore{blogs: make(map[uint64]models.Blog), nextID: 1}
	for _, blog := range blogs {
		s.blogs[blog.ID] = blog
		if blog.ID >= s.nextID {
			s.nextID = blog.ID + 1
		}
	}
	return s
}

func (s *fakeBlogStore) FindByID(_ context.Context, id uint64) (*models.Blog, error) {
	if s.err != nil {
		return nil, s.err
	}
	blog, ok := s.blogs[id]
	if !ok {
		return nil, nil
	}
	return &blog, nil
}

func (s *fakeBlogStore) FindAll(_ context.Context) ([]models.Blog, error) {
	if s.err != nil {
		return nil, s.err
	}
	blogs := make([]models.Blog, 0, len(s.blogs))
	for _, blog := range s.blogs {
		blogs = append(blogs, blog)
	}
	sort.Slice(blogs, func(i, j int) bool { return blogs[i].ID < blogs[j].ID })
	return blogs, nil
}

func (s *fakeBlogStore) FindByTitle(_ context.Context, title string) (*models.Blog, error) {
	for _, blog := range s.blogs {
		if blog.BlogTitle == title {
			return &blog, nil
		}
	}
	return nil, nil
}

func (s *fakeBlogStore) Add(_ context.Context, blog *models.Blog) error {
	if s.err != nil {
		return s.err
	}
	for _, existing := range s.blogs {
		if existing.BlogTitle == blog.BlogTitle {
			return errors.New(`ERROR: duplicate key value violates unique constraint "idx_blogs_blog_title"`)
		}
	}
	blog.ID = s.nextID
	s.nextID++
	s.blogs[blog.ID] = *blog
	return nil
}

func (s *fakeBlogStore) Save(_ context.Context, blog *models.Blog) error {
	s.blogs[blog.ID] = *blog
	return nil
}

func (s *fakeBlogStore) SaveAll(_ context.Context, blogs []models.Blog) ([]models.Blog, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, blog := range blogs {
		s.blogs[blog.ID] = blog
	}
	return blogs, nil
}

func (s *fakeBlogStore) Delete(_ context.Context, id uint64) error {
	delete(s.blogs, id)
	return nil
}

func (s *fakeBlogStore) DeleteAll(_ context.Context) error {
	s.blogs = make(map[uint64]models.Blog)
	return nil
}

type fakePostStore struct {
	posts  map[uint64]models.Post
	blogs  *fakeBlogStore
	nextID uint64
}

func newFakePostStore(blogs *fakeBlogStore, posts ...models.Post) *fakePostStore {
	s := &fakePostStore{posts: make(map[uint64]models.Post), blogs: blogs, nextID: 1}
	for _, post := range posts {
		s.posts[post.ID] = post
		if post.ID >= s.nextID {
			s.nextID = post.ID + 1
		}
	}
	return s
}

func (s *fakePostStore) sorted() []models.Post {
	posts := make([]models.Post, 0, len(s.posts))
	for _, post := range s.posts {
		posts = append(posts, post)
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].ID < posts[j].ID })
	return posts
}

func (s *fakePostStore) FindByID(_ context.Context, id uint64) (*models.Post, error) {
	post, ok := s.posts[id]
	if !ok {
		return nil, nil
	}
	return &post, nil
}

func (s *fakePostStore) FindAll(_ context.Context) ([]models.Post, error) {
	return s.sorted(), nil
}

func (s *fakePostStore) FindByIDs(_ context.Context, ids []uint64) ([]models.Post, error) {
	wanted := make(map[uint64]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	posts := []models.Post{}
	for _, post := range s.sorted() {
		if wanted[post.ID] {
			posts = append(posts, post)
		}
	}
	return posts, nil
}

// FindByBlogID only understands ordering by id, which is all these tests need.
func (s *fakePostStore) FindByBlogID(_ context.Context, blogID uint64, orders []sorting.Order) ([]models.Post, error) {
	for _, order := range orders {
		if _, ok := models.SortableColumns[order.Field]; !ok {
			return nil, errs.NewBadOrderingFieldError(order.Field, "Post")
		}
	}

	var posts []models.Post
	for _, post := range s.sorted() {
		if post.BlogID == blogID {
			posts = append(posts, post)
		}
	}
	if len(orders) > 0 && orders[0].Field == "id" && orders[0].Direction == sorting.Desc {
		sort.Slice(posts, func(i, j int) bool { return posts[i].ID > posts[j].ID })
	}
	return posts, nil
}

func (s *fakePostStore) FindByExample(_ context.Context, author string, publishedOn models.Date) ([]models.Post, error) {
	var posts []models.Post
	for _, post := range s.sorted() {
		if author != "" && post.Author != author {
			continue
		}
		if !publishedOn.IsZero() && !post.PublishedOn.Equal(publishedOn) {
			continue
		}
		if blog, ok := s.blogs.blogs[post.BlogID]; ok {
			post.Blog = &blog
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func (s *fakePostStore) Add(_ context.Context, post *models.Post) error {
	post.ID = s.nextID
	s.nextID++
	s.posts[post.ID] = *post
	return nil
}

func (s *fakePostStore) Save(_ context.Context, post *models.Post) error {
	s.posts[post.ID] = *post
	return nil
}

func (s *fakePostStore) SaveAll(_ context.Context, posts []models.Post) ([]models.Post, error) {
	for _, post := range posts {
		if _, ok := s.blogs.blogs[post.BlogID]; !ok {
			return nil, errors.New(`ERROR: insert or update on table "posts" violates foreign key constraint "fk_posts_blog"`)
		}
	}
	for _, post := range posts {
		s.posts[post.ID] = post
	}
	return posts, nil
}

func (s *fakePostStore) Delete(_ context.Context, id uint64) error {
	delete(s.posts, id)
	return nil
}

func (s *fakePostStore) DeleteAll(_ context.Context) error {
	s.posts = make(map[uint64]models.Post)
	return nil
}

func (s *fakePostStore) DeleteByBlogID(_ context.Context, blogID uint64) (int64, error) {
	var deleted int64
	for id, post := range s.posts {
		if post.BlogID == blogID {
			delete(s.posts, id)
			deleted++
		}
	}
	return deleted, nil
}

func (s *fakePostStore) CountByBlogID(_ context.Context, blogID uint64) (int64, error) {
	var count int64
	for _, post := range s.posts {
		if post.BlogID == blogID {
			count++
		}
	}
	return count, nil
}

func (s *fakePostStore) Count(_ context.Context) (int64, error) {
	return int64(len(s.posts)), nil
}

// fakeSearcher matches keyword against post titles exactly.
type fakeSearcher struct {
	posts *fakePostStore
	err   error
}

func (f *fakeSearcher) Search(_ context.Context, keyword string) ([]search.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	var results []search.Result
	for _, post := range f.posts.sorted() {
		if post.PostTitle == keyword {
			results = append(results, search.Result{Table: "posts", Key: strconv.FormatUint(post.ID, 10)})
		}
	}
	return results, nil
}

type fakeIndexer struct {
	indexed map[uint64]string
	resets  int
}

func newFakeIndexer() *fakeIndexer {
	return &fakeIndexer{indexed: make(map[uint64]string)}
}

func (f *fakeIndexer) Index(_ context.Context, posts ...models.Post) error {
	for _, post := range posts {
		f.indexed[post.ID] = post.PostTitle
	}
	return nil
}

func (f *fakeIndexer) Remove(_ context.Context, ids ...uint64) error {
	for _, id := range ids {
		delete(f.indexed, id)
	}
	return nil
}

func (f *fakeIndexer) Reset(_ context.Context) error {
	f.indexed = make(map[uint64]string)
	f.resets++
	return nil
}

func testAssembler() hateoas.Assembler {
	return hateoas.NewAssembler("")
}

func ptr[T any](v T) *T {
	return &v
}
