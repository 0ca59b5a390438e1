package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/blog-api/hateoas"
)

// setupRoutes mounts the resource routes under the API prefix. Paths come from the
// same table the link assembler uses, so generated links always resolve.
func setupRoutes(r chi.Router, handlers *routeHandlers) {
	r.Get("/health", handlers.healthHandler.health())

	r.Route(hateoas.APIPrefix, func(r chi.Router) {
		// Blog Handler endpoints
		r.Get(hateoas.Path(hateoas.RouteBlogs), handlers.blogHandler.getAllBlogs())
		r.Post(hateoas.Path(hateoas.RouteBlogs), handlers.blogHandler.createBlog())
		r.Put(hateoas.Path(hateoas.RouteBlogs), handlers.blogHandler.updateBlogList())
		r.Delete(hateoas.Path(hateoas.RouteBlogs), handlers.blogHandler.deleteAllBlogs())
		r.Get(hateoas.Path(hateoas.RouteBlog), handlers.blogHandler.getBlog())
		r.Patch(hateoas.Path(hateoas.RouteBlog), handlers.blogHandler.updateBlog())
		r.Delete(hateoas.Path(hateoas.RouteBlog), handlers.blogHandler.deleteBlog())

		// Post Handler endpoints
		r.Get(hateoas.Path(hateoas.RoutePosts), handlers.postHandler.getAllPosts())
		r.Put(hateoas.Path(hateoas.RoutePosts), handlers.postHandler.updatePostList())
		r.Delete(hateoas.Path(hateoas.RoutePosts), handlers.postHandler.deleteAllPosts())
		r.Get(hateoas.Path(hateoas.RoutePost), handlers.postHandler.getPost())
		r.Patch(hateoas.Path(hateoas.RoutePost), handlers.postHandler.updatePost())
		r.Delete(hateoas.Path(hateoas.RoutePost), handlers.postHandler.deletePost())
		r.Get(hateoas.Path(hateoas.RouteBlogPosts), handlers.postHandler.getAllPostsByGivenBlog())
		r.Post(hateoas.Path(hateoas.RouteBlogPosts), handlers.postHandler.createPost())
		r.Delete(hateoas.Path(hateoas.RouteBlogPosts), handlers.postHandler.deleteAllPostsByBlog())
	})
}
