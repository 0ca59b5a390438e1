package hateoas

// APIPrefix is mounted in front of every resource route.
const APIPrefix = "/api/v1.0.0"

type Route string

const (
	RouteBlog      Route = "getBlogById"
	RouteBlogs     Route = "getAllBlogs"
	RouteBlogPosts Route = "getAllPostsByGivenBlog"
	RoutePost      Route = "getPostById"
	RoutePosts     Route = "getAllPosts"
)

// Relation names used in links.
const (
	RelSelf  = "self"
	RelBlogs = "blogs"
	RelPosts = "posts"
)

// routeTemplates maps each route to its path below APIPrefix. Placeholders are
// filled left to right from Link's params. The HTTP router mounts the same paths.
var routeTemplates = map[Route]string{
	RouteBlog:      "/blogs/{id}",
	RouteBlogs:     "/blogs",
	RouteBlogPosts: "/blogs/{id}/posts",
	RoutePost:      "/posts/{id}",
	RoutePosts:     "/posts",
}

// Path returns the router pattern for route, relative to APIPrefix.
func Path(route Route) string {
	return routeTemplates[route]
}
