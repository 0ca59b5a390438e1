package hateoas

import (
	"encoding/json"
	"testing"

	"github.com/rpupo63/blog-api/dto"
	"github.com/rpupo63/blog-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlogRepresentation(t *testing.T) {
	a := NewAssembler("http://localhost:8080/")
	model := a.Blog(models.Blog{ID: 1, BlogTitle: "Beauty Blog", Description: "Blog about beauty"})

	assert.Equal(t, uint64(1), model.ID)
	assert.Equal(t, "Beauty Blog", model.BlogTitle)
	require.Len(t, model.Links, 4)
	assert.Equal(t, dto.Links{
		{Rel: "self", Href: "http://localhost:8080/api/v1.0.0/blogs/1"},
		{Rel: "blogs", Href: "http://localhost:8080/api/v1.0.0/blogs"},
		{Rel: "posts", Href: "http://localhost:8080/api/v1.0.0/posts"},
		{Rel: "posts", Href: "http://localhost:8080/api/v1.0.0/blogs/1/posts"},
	}, model.Links)
	assert.Len(t, model.Links.ByRel("posts"), 2)

	raw, err := json.Marshal(model)
	require.NoError(t, err)
	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Len(t, fields, 4)
}

func TestPostRepresentation(t *testing.T) {
	a := NewAssembler("")
	conclusion := "that is all"
	model := a.Post(models.Post{
		ID:             5,
		BlogID:         2,
		PostTitle:      "Title",
		PostBody:       "Body",
		PostConclusion: &conclusion,
		Author:         "Jane",
		PublishedOn:    models.NewDate(2022, 12, 31),
	})

	require.Len(t, model.Links, 5)
	assert.Equal(t, "/api/v1.0.0/posts/5", model.Links.Self())
	assert.Equal(t, []dto.Link{
		{Rel: "posts", Href: "/api/v1.0.0/posts"},
		{Rel: "posts", Href: "/api/v1.0.0/blogs/2/posts"},
	}, model.Links.ByRel("posts"))
	assert.Equal(t, []dto.Link{
		{Rel: "blogs", Href: "/api/v1.0.0/blogs"},
		{Rel: "blogs", Href: "/api/v1.0.0/blogs/2"},
	}, model.Links.ByRel("blogs"))

	raw, err := json.Marshal(model)
	require.NoError(t, err)
	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Len(t, fields, 7)
	assert.JSONEq(t, `"2022-12-31"`, string(fields["publishedOn"]))
}

func TestCollections(t *testing.T) {
	a := NewAssembler("")

	blogs := a.Blogs([]models.Blog{{ID: 1}, {ID: 2}})
	assert.Len(t, blogs.Content, 2)
	assert.Equal(t, dto.Links{
		{Rel: "self", Href: "/api/v1.0.0/blogs"},
		{Rel: "posts", Href: "/api/v1.0.0/posts"},
	}, blogs.Links)

	posts := a.Posts(nil)
	assert.True(t, posts.IsEmpty())
	assert.Empty(t, posts.Links)

	raw, err := json.Marshal(posts)
	require.NoError(t, err)
	assert.JSONEq(t, `{"links":[],"content":[]}`, string(raw))
}

func TestLinkUnknownRoutePanics(t *testing.T) {
	assert.Panics(t, func() {
		NewAssembler("").Link(Route("nope"), RelSelf)
	})
}
