package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rpupo63/blog-api/dto"
	"github.com/rpupo63/blog-api/errs"
	"github.com/rpupo63/blog-api/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	blogs  *stubBlogs
	posts  *stubPosts
	pinger *stubPinger
	router http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	ts := &testServer{
		blogs:  newStubBlogs(),
		posts:  newStubPosts(),
		pinger: &stubPinger{},
	}
	ts.router = newRouter(
		Dependencies{Blogs: ts.blogs, Posts: ts.posts, Health: ts.pinger},
		withConfig(map[string]string{"LOG_FORMAT": "json"}),
		withStartupTime(time.Now()),
	)
	return ts
}

func (ts *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, "/api/v1.0.0"+path, nil)
	} else {
		req = httptest.NewRequest(method, "/api/v1.0.0"+path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var response ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	return response
}

func TestNewServer_RequiresOperations(t *testing.T) {
	_, err := NewServer(map[string]string{}, Dependencies{})
	assert.Error(t, err)

	server, err := NewServer(map[string]string{"PORT": "9090"}, Dependencies{Blogs: newStubBlogs(), Posts: newStubPosts()})
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9090", server.Addr)
	assert.Equal(t, 180*time.Second, server.ReadTimeout)
}

func TestGetBlog(t *testing.T) {
	ts := newTestServer(t)

	t.Run("found", func(t *testing.T) {
		rec := ts.do(http.MethodGet, "/blogs/1", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var blog dto.BlogModel
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &blog))
		assert.Equal(t, "Beauty Blog", blog.BlogTitle)
		require.Len(t, blog.Links, 4)
		assert.Equal(t, "/api/v1.0.0/blogs/1", blog.Links.Self())
	})

	t.Run("missing is reported without a body", func(t *testing.T) {
		rec := ts.do(http.MethodGet, "/blogs/9", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("non numeric id", func(t *testing.T) {
		rec := ts.do(http.MethodGet, "/blogs/abc", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "id", decodeError(t, rec).Field)
	})
}

func TestGetAllBlogs(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/blogs?author=Ann&date=2022-05-01", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Ann", ts.blogs.lastAuthor)
	require.NotNil(t, ts.blogs.lastDate)
	assert.Equal(t, "2022-05-01", ts.blogs.lastDate.String())

	rec = ts.do(http.MethodGet, "/blogs?date=01-05-2022", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	ts.blogs.blogs = nil
	rec = ts.do(http.MethodGet, "/blogs", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Nil(t, ts.blogs.lastDate)
}

func TestCreateBlog(t *testing.T) {
	ts := newTestServer(t)

	t.Run("created", func(t *testing.T) {
		rec := ts.do(http.MethodPost, "/blogs", `{"blogTitle":"Travel","description":"Trips"}`)
		require.Equal(t, http.StatusCreated, rec.Code)

		var blog dto.BlogModel
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &blog))
		assert.Equal(t, "Travel", blog.BlogTitle)
		assert.NotZero(t, blog.ID)
	})

	t.Run("duplicate title", func(t *testing.T) {
		rec := ts.do(http.MethodPost, "/blogs", `{"blogTitle":"Travel","description":"Again"}`)
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("missing field", func(t *testing.T) {
		rec := ts.do(http.MethodPost, "/blogs", `{"blogTitle":"Food"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decodeError(t, rec).Details, "field Description is null")
	})

	t.Run("malformed json", func(t *testing.T) {
		rec := ts.do(http.MethodPost, "/blogs", `{"blogTitle":`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid JSON format", decodeError(t, rec).Details)
	})

	assert.Len(t, ts.blogs.created, 1)
}

func TestUpdateBlog(t *testing.T) {
	ts := newTestServer(t)

	ts.blogs.updateResult = services.UpdateResult[dto.BlogModel]{Status: services.UpdateNotFound}
	rec := ts.do(http.MethodPatch, "/blogs/7", `{"description":"new"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotEmpty(t, decodeError(t, rec).Error)

	ts.blogs.updateResult = services.UpdateResult[dto.BlogModel]{Status: services.UpdateNoop}
	rec = ts.do(http.MethodPatch, "/blogs/1", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, rec.Body.String())

	model := assembler.Blog(ts.blogs.blogs[1])
	model.Description = "new"
	ts.blogs.updateResult = services.UpdateResult[dto.BlogModel]{Status: services.Updated, Model: model}
	rec = ts.do(http.MethodPatch, "/blogs/1", `{"description":"new"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"description":"new"`)
}

func TestUpdateBlogList(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodPut, "/blogs", `[{"id":1,"blogTitle":"A","description":"a"},{"blogTitle":"B"}]`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	details := decodeError(t, rec).Details
	assert.Contains(t, details, "field Description is null")
	assert.Contains(t, details, "for entity with id = null")

	rec = ts.do(http.MethodPut, "/blogs", `[{"id":1,"blogTitle":"A","description":"a"}]`)
	require.Equal(t, http.StatusOK, rec.Code)

	var collection dto.BlogCollection
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &collection))
	require.Len(t, collection.Content, 1)
	assert.Equal(t, "A", collection.Content[0].BlogTitle)

	ts.blogs.replaceErr = errs.NewDatabaseError("save", "blogs", errors.New("duplicate key value violates unique constraint"))
	rec = ts.do(http.MethodPut, "/blogs", `[{"id":1,"blogTitle":"A","description":"a"}]`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteBlog(t *testing.T) {
	ts := newTestServer(t)
	ts.blogs.blogs[2] = ts.blogs.blogs[1]
	ts.blogs.nested[1] = true

	rec := ts.do(http.MethodDelete, "/blogs/1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(http.MethodDelete, "/blogs/2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Blog with id = 2 deleted", rec.Body.String())

	rec = ts.do(http.MethodDelete, "/blogs/2", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(http.MethodDelete, "/blogs", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, ts.blogs.deletedAll)

	ts.blogs.nested[1] = false
	rec = ts.do(http.MethodDelete, "/blogs", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "All Blogs deleted", rec.Body.String())
	assert.True(t, ts.blogs.deletedAll)
}

func TestGetAllPosts(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/posts", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, ts.posts.lastKeyword)

	var collection dto.PostCollection
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &collection))
	require.Len(t, collection.Content, 1)
	assert.Equal(t, "/api/v1.0.0/posts", collection.Links.Self())

	rec = ts.do(http.MethodGet, "/posts?keyword=Lipstick", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, ts.posts.lastKeyword)
	assert.Equal(t, "Lipstick", *ts.posts.lastKeyword)

	rec = ts.do(http.MethodGet, "/posts?keyword=perfume", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(http.MethodGet, "/posts?keyword=", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, ts.posts.lastKeyword)
	assert.Equal(t, "", *ts.posts.lastKeyword)

	ts.posts.listErr = errs.NewSearchUnavailableError(errors.New("index closed"))
	rec = ts.do(http.MethodGet, "/posts?keyword=Lipstick", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestSearchFailureIsLoggedOnce(t *testing.T) {
	var logs bytes.Buffer
	previous := log.Logger
	log.Logger = zerolog.New(&logs)
	t.Cleanup(func() { log.Logger = previous })

	ts := newTestServer(t)
	ts.posts.listErr = errs.NewSearchUnavailableError(errors.New("index closed"))

	rec := ts.do(http.MethodGet, "/posts?keyword=Lipstick", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var errorLines int
	for _, line := range strings.Split(strings.TrimSpace(logs.String()), "\n") {
		if strings.Contains(line, "search unavailable") {
			errorLines++
		}
	}
	assert.Equal(t, 1, errorLines)
}

func TestGetAllPostsByGivenBlog(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/blogs/1/posts?sort=postTitle:asc&sort=id,author:desc", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"postTitle:asc", "id", "author:desc"}, ts.posts.lastSort)

	rec = ts.do(http.MethodGet, "/blogs/1/posts", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, ts.posts.lastSort)

	ts.posts.listForErr = errs.NewBadOrderingFieldError("colour", "Post")
	rec = ts.do(http.MethodGet, "/blogs/1/posts?sort=colour:asc", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Details, "colour")

	ts.posts.listForErr = errs.NewEntityNotFound(5)
	rec = ts.do(http.MethodGet, "/blogs/5/posts", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	ts.posts.listForErr = nil
	ts.posts.posts = nil
	rec = ts.do(http.MethodGet, "/blogs/1/posts", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCreatePost(t *testing.T) {
	ts := newTestServer(t)
	body := `{"postTitle":"Mascara","postBody":"black","postConclusion":"worth it","author":"Ann","publishedOn":"2023-01-02"}`

	rec := ts.do(http.MethodPost, "/blogs/1/posts", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var post dto.PostModel
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &post))
	assert.Equal(t, "Mascara", post.PostTitle)
	assert.Equal(t, "2023-01-02", post.PublishedOn.String())
	assert.Len(t, post.Links, 5)
	assert.Equal(t, "/api/v1.0.0/blogs/1", post.Links[4].Href)

	rec = ts.do(http.MethodPost, "/blogs/1/posts",
		`{"postTitle":"Mascara","postBody":"black","postConclusion":null,"author":"Ann","publishedOn":"2023-01-02"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Not valid fields: field PostConclusion is null; ", decodeError(t, rec).Details)

	rec = ts.do(http.MethodPost, "/blogs/1/posts", `{"postTitle":"Mascara","postBody":"black","postConclusion":"ok"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	details := decodeError(t, rec).Details
	assert.Contains(t, details, "field Author is null")
	assert.Contains(t, details, "field PublishedOn is null")

	ts.posts.createErr = errs.NewEntityNotFound(3)
	rec = ts.do(http.MethodPost, "/blogs/3/posts", body)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotEmpty(t, decodeError(t, rec).Error)
}

func TestUpdatePost(t *testing.T) {
	ts := newTestServer(t)

	ts.posts.updateResult = services.UpdateResult[dto.PostModel]{Status: services.UpdateNoop}
	rec := ts.do(http.MethodPatch, "/posts/1", `{"postTitle":"  "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	ts.posts.updateResult = services.UpdateResult[dto.PostModel]{Status: services.UpdateNotFound}
	rec = ts.do(http.MethodPatch, "/posts/4", `{"postTitle":"x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdatePostList(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodPut, "/posts", `[{"postTitle":"A","postBody":"b","postConclusion":"c","author":"d","publishedOn":"2022-01-01"}]`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	details := decodeError(t, rec).Details
	assert.Contains(t, details, "field Id is null")
	assert.Contains(t, details, "field BlogId is null")

	rec = ts.do(http.MethodPut, "/posts", `[{"id":1,"blogId":1,"postTitle":"A","postBody":"b","postConclusion":"c","author":"d","publishedOn":"2022-01-01"}]`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"postTitle":"A"`)
}

func TestDeletePosts(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodDelete, "/posts/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Post with id = 1 deleted", rec.Body.String())

	rec = ts.do(http.MethodDelete, "/posts/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(http.MethodDelete, "/blogs/1/posts", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "All posts with blogId = 1 deleted", rec.Body.String())

	rec = ts.do(http.MethodDelete, "/blogs/2/posts", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(http.MethodDelete, "/posts", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "All Posts deleted", rec.Body.String())
}

func TestRequestIDHeader(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/blogs/1", "")
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1.0.0/blogs/1", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	rec = httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-Id"))
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var health HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "up", health.Database)

	ts.pinger.err = errors.New("connection refused")
	rec = httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "down", health.Database)
}
