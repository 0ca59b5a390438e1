// Package hateoas maps stored blogs and posts to their network representations and
// attaches the navigation links each representation carries.
package hateoas

import (
	"fmt"
	"strings"

	"github.com/rpupo63/blog-api/dto"
	"github.com/rpupo63/blog-api/models"
)

type Assembler struct {
	routes map[Route]string
}

// NewAssembler resolves the route table against baseURL once. An empty baseURL
// yields host-relative links.
func NewAssembler(baseURL string) Assembler {
	base := strings.TrimRight(baseURL, "/") + APIPrefix

	routes := make(map[Route]string, len(routeTemplates))
	for route, template := range routeTemplates {
		routes[route] = base + template
	}
	return Assembler{routes: routes}
}

// Link expands route with params and labels it rel. It panics on an unknown route,
// since the route table is fixed at compile time.
func (a Assembler) Link(route Route, rel string, params ...any) dto.Link {
	template, ok := a.routes[route]
	if !ok {
		panic(fmt.Sprintf("hateoas: unknown route %q", route))
	}
	return dto.Link{Rel: rel, Href: expand(template, params)}
}

func expand(template string, params []any) string {
	href := template
	for _, param := range params {
		start := strings.Index(href, "{")
		if start < 0 {
			break
		}
		end := strings.Index(href[start:], "}")
		if end < 0 {
			break
		}
		href = href[:start] + fmt.Sprint(param) + href[start+end+1:]
	}
	return href
}

func (a Assembler) Blog(blog models.Blog) dto.BlogModel {
	return dto.BlogModel{
		ID:          blog.ID,
		BlogTitle:   blog.BlogTitle,
		Description: blog.Description,
		Links: dto.Links{
			a.Link(RouteBlog, RelSelf, blog.ID),
			a.Link(RouteBlogs, RelBlogs),
			a.Link(RoutePosts, RelPosts),
			a.Link(RouteBlogPosts, RelPosts, blog.ID),
		},
	}
}

// Blogs assembles every blog and links the collection to the blog and post listings.
func (a Assembler) Blogs(blogs []models.Blog) dto.BlogCollection {
	content := make([]dto.BlogModel, 0, len(blogs))
	for _, blog := range blogs {
		content = append(content, a.Blog(blog))
	}
	return dto.BlogCollection{
		Links: dto.Links{
			a.Link(RouteBlogs, RelSelf),
			a.Link(RoutePosts, RelPosts),
		},
		Content: content,
	}
}

func (a Assembler) Post(post models.Post) dto.PostModel {
	return dto.PostModel{
		ID:             post.ID,
		PostTitle:      post.PostTitle,
		PostBody:       post.PostBody,
		PostConclusion: post.PostConclusion,
		Author:         post.Author,
		PublishedOn:    post.PublishedOn,
		Links: dto.Links{
			a.Link(RoutePost, RelSelf, post.ID),
			a.Link(RoutePosts, RelPosts),
			a.Link(RouteBlogPosts, RelPosts, post.BlogID),
			a.Link(RouteBlogs, RelBlogs),
			a.Link(RouteBlog, RelBlogs, post.BlogID),
		},
	}
}

// Posts leaves the collection links empty. The self link depends on which listing
// produced the collection, so callers append their own with Link.
func (a Assembler) Posts(posts []models.Post) dto.PostCollection {
	content := make([]dto.PostModel, 0, len(posts))
	for _, post := range posts {
		content = append(content, a.Post(post))
	}
	return dto.PostCollection{Links: dto.Links{}, Content: content}
}
