package api

import (
	"fmt"
	"net/http"

	"github.com/rpupo63/blog-api/dto"
	"github.com/rpupo63/blog-api/errs"
	"github.com/rpupo63/blog-api/services"
	"github.com/rpupo63/blog-api/validation"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type postHandler struct {
	responder Responder
	logger    zerolog.Logger
	posts     PostOperations
}

func newPostHandler(posts PostOperations) postHandler {
	logger := log.With().Str("handlerName", "postHandler").Logger()

	return postHandler{
		responder: NewResponder(logger),
		logger:    logger,
		posts:     posts,
	}
}

// getPost retrieves a post by ID
// @Summary Get a post by its id
// @Tags Posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} dto.PostModel
// @Failure 400 {object} ErrorResponse "Invalid id supplied"
// @Failure 404 "Post not found"
// @Router /api/v1.0.0/posts/{id} [get]
func (h postHandler) getPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post, err := h.posts.GetByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if post == nil {
			h.responder.WriteError(w, errs.NewNotFound("post").WithoutBody())
			return
		}

		h.responder.WriteJSON(w, post)
	}
}

// getAllPosts lists every post, or runs a full-text search when keyword is given
// @Summary Get list of posts
// @Tags Posts
// @Produce json
// @Param keyword query string false "text for search in the title or the body"
// @Success 200 {object} dto.PostCollection
// @Success 204 "Posts not found"
// @Failure 500 "Search backend unavailable"
// @Router /api/v1.0.0/posts [get]
func (h postHandler) getAllPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var keyword *string
		if query := r.URL.Query(); query.Has("keyword") {
			value := query.Get("keyword")
			keyword = &value
		}

		posts, err := h.posts.ListAll(r.Context(), keyword)
		if err != nil {
			if errs.IsSearchUnavailableError(err) {
				err = withoutBody(err)
			}
			h.responder.WriteError(w, err)
			return
		}
		if posts.IsEmpty() {
			h.responder.WriteStatus(w, http.StatusNoContent)
			return
		}

		h.responder.WriteJSON(w, posts)
	}
}

// getAllPostsByGivenBlog lists the posts of one blog, sorted by id descending unless sort is given
// @Summary Get a list of Posts from a given blog sorted by default by id in descending order
// @Tags Posts
// @Produce json
// @Param id path int true "Blog ID"
// @Param sort query []string false "fields to sort by, as field:direction (asc or desc)" collectionFormat(multi)
// @Success 200 {object} dto.PostCollection
// @Success 204 "Posts not found"
// @Failure 400 {object} ErrorResponse "Invalid parameters supplied"
// @Failure 404 {object} ErrorResponse "Blog not found"
// @Router /api/v1.0.0/blogs/{id}/posts [get]
func (h postHandler) getAllPostsByGivenBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogID, err := idParam(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		posts, err := h.posts.ListForBlog(r.Context(), blogID, listQuery(r, "sort"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if posts.IsEmpty() {
			h.responder.WriteStatus(w, http.StatusNoContent)
			return
		}

		h.responder.WriteJSON(w, posts)
	}
}

// createPost adds a post to a blog
// @Summary Create a new post into a blog
// @Tags Posts
// @Accept json
// @Produce json
// @Param id path int true "Blog ID"
// @Param post body dto.PostRequest true "new post"
// @Success 201 {object} dto.PostModel
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 404 {object} ErrorResponse "Blog not found"
// @Failure 500 "Internal Error"
// @Router /api/v1.0.0/blogs/{id}/posts [post]
func (h postHandler) createPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogID, err := idParam(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req dto.PostRequest
		if err := decodeBody(w, r, h.logger, "post", &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if !validation.ValidatePostCreate(req) {
			h.responder.WriteError(w, errs.NewValidationError(validation.ExplainInvalidPostCreate(req)))
			return
		}

		post, err := h.posts.Create(r.Context(), blogID, req)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if post == nil {
			h.responder.WriteError(w, errs.NewPersistenceError("create", "post").WithoutBody())
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, post)
	}
}

// updatePost changes the non-blank fields of a post
// @Summary Update a post by its id
// @Tags Posts
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param post body dto.PostRequest true "post updated information"
// @Success 200 {object} dto.PostModel
// @Failure 400 "No field changed"
// @Failure 404 {object} ErrorResponse "Invalid id supplied"
// @Router /api/v1.0.0/posts/{id} [patch]
func (h postHandler) updatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req dto.PostRequest
		if err := decodeBody(w, r, h.logger, "post", &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		result, err := h.posts.Update(r.Context(), id, req)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		switch result.Status {
		case services.UpdateNotFound:
			h.responder.WriteError(w, errs.NewEntityNotFound(id))
		case services.UpdateNoop:
			h.responder.WriteError(w, errs.NewNoChangesError().WithoutBody())
		default:
			h.responder.WriteJSON(w, result.Model)
		}
	}
}

// updatePostList replaces every listed post
// @Summary Update array of posts
// @Tags Posts
// @Accept json
// @Produce json
// @Param posts body []dto.PostRequestFull true "Array of posts to update"
// @Success 200 {object} dto.PostCollection
// @Failure 400 {object} ErrorResponse "Bad request"
// @Router /api/v1.0.0/posts [put]
func (h postHandler) updatePostList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var reqs []dto.PostRequestFull
		if err := decodeBody(w, r, h.logger, "post list", &reqs); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if message := validation.ExplainInvalidPostList(reqs); message != "" {
			h.responder.WriteError(w, errs.NewValidationError(message))
			return
		}

		posts, err := h.posts.ReplaceMany(r.Context(), reqs)
		if err != nil {
			h.responder.WriteError(w, asBadRequest("could not update posts", err))
			return
		}

		h.responder.WriteJSON(w, posts)
	}
}

// deleteAllPosts removes every post
// @Summary Delete all posts.
// @Tags Posts
// @Produce plain
// @Success 200 {string} string "All Posts deleted"
// @Router /api/v1.0.0/posts [delete]
func (h postHandler) deleteAllPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.posts.DeleteAll(r.Context()); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteText(w, "All Posts deleted")
	}
}

// deletePost removes a post by ID
// @Summary Delete post by its id.
// @Tags Posts
// @Produce plain
// @Param id path int true "Post ID"
// @Success 200 {string} string "Post with id = 1 deleted"
// @Failure 404 "Post not found"
// @Router /api/v1.0.0/posts/{id} [delete]
func (h postHandler) deletePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		deleted, err := h.posts.Delete(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if !deleted {
			h.responder.WriteError(w, errs.NewNotFound("post").WithoutBody())
			return
		}

		h.responder.WriteText(w, fmt.Sprintf("Post with id = %d deleted", id))
	}
}

// deleteAllPostsByBlog removes every post of a blog. A blog without posts is reported as not found.
// @Summary Delete all post from a given blog by blogId.
// @Tags Posts
// @Produce plain
// @Param id path int true "Blog ID"
// @Success 200 {string} string "All posts with blogId = 1 deleted"
// @Failure 404 "Blog not found"
// @Router /api/v1.0.0/blogs/{id}/posts [delete]
func (h postHandler) deleteAllPostsByBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogID, err := idParam(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		deleted, err := h.posts.DeleteAllForBlog(r.Context(), blogID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if !deleted {
			h.responder.WriteError(w, errs.NewNotFound("posts").WithoutBody())
			return
		}

		h.responder.WriteText(w, fmt.Sprintf("All posts with blogId = %d deleted", blogID))
	}
}
