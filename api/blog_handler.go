package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/rpupo63/blog-api/dto"
	"github.com/rpupo63/blog-api/errs"
	"github.com/rpupo63/blog-api/services"
	"github.com/rpupo63/blog-api/validation"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type blogHandler struct {
	responder Responder
	logger    zerolog.Logger
	blogs     BlogOperations
}

func newBlogHandler(blogs BlogOperations) blogHandler {
	logger := log.With().Str("handlerName", "blogHandler").Logger()

	return blogHandler{
		responder: NewResponder(logger),
		logger:    logger,
		blogs:     blogs,
	}
}

// getBlog retrieves a blog by ID
// @Summary Get a blog by its id
// @Tags Blogs
// @Produce json
// @Param id path int true "Blog ID"
// @Success 200 {object} dto.BlogModel
// @Failure 400 {object} ErrorResponse "Invalid id supplied"
// @Failure 404 "Blog not found"
// @Router /api/v1.0.0/blogs/{id} [get]
func (h blogHandler) getBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		blog, err := h.blogs.GetByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if blog == nil {
			h.responder.WriteError(w, errs.NewNotFound("blog").WithoutBody())
			return
		}

		h.responder.WriteJSON(w, blog)
	}
}

// getAllBlogs lists blogs, optionally only those with posts by an author or published on a date
// @Summary Get list of blogs
// @Tags Blogs
// @Produce json
// @Param author query string false "author of post for search"
// @Param date query string false "publication date for search (yyyy-MM-dd)"
// @Success 200 {object} dto.BlogCollection
// @Success 204 "Blogs not found"
// @Failure 400 {object} ErrorResponse "Invalid parameters supplied"
// @Router /api/v1.0.0/blogs [get]
func (h blogHandler) getAllBlogs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		publishedOn, err := dateQuery(r, "date")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		blogs, err := h.blogs.List(r.Context(), r.URL.Query().Get("author"), publishedOn)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if blogs.IsEmpty() {
			h.responder.WriteStatus(w, http.StatusNoContent)
			return
		}

		h.responder.WriteJSON(w, blogs)
	}
}

// createBlog creates a new blog
// @Summary Create a new blog
// @Tags Blogs
// @Accept json
// @Produce json
// @Param blog body dto.BlogRequest true "new blog"
// @Success 201 {object} dto.BlogModel
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 409 "Duplicate blog title"
// @Failure 500 "Internal Error"
// @Router /api/v1.0.0/blogs [post]
func (h blogHandler) createBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.BlogRequest
		if err := decodeBody(w, r, h.logger, "blog", &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if !validation.ValidateBlogCreate(req) {
			h.responder.WriteError(w, errs.NewValidationError(validation.ExplainInvalidBlogCreate(req)))
			return
		}

		exists, err := h.blogs.TitleExists(r.Context(), *req.BlogTitle)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if exists {
			h.responder.WriteError(w, errs.NewAlreadyExists("blog").WithoutBody())
			return
		}

		blog, err := h.blogs.Create(r.Context(), req)
		if err != nil {
			if errs.IsConflict(err) {
				err = withoutBody(err)
			}
			h.responder.WriteError(w, err)
			return
		}
		if blog == nil {
			h.responder.WriteError(w, errs.NewPersistenceError("create", "blog").WithoutBody())
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, blog)
	}
}

// updateBlog changes the title and/or description of a blog
// @Summary Update a blog by its id
// @Tags Blogs
// @Accept json
// @Produce json
// @Param id path int true "Blog ID"
// @Param blog body dto.BlogRequest true "blog updated information"
// @Success 200 {object} dto.BlogModel
// @Failure 400 "No field changed"
// @Failure 404 {object} ErrorResponse "Invalid id supplied"
// @Router /api/v1.0.0/blogs/{id} [patch]
func (h blogHandler) updateBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req dto.BlogRequest
		if err := decodeBody(w, r, h.logger, "blog", &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		result, err := h.blogs.Update(r.Context(), id, req)
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

// updateBlogList replaces every listed blog
// @Summary Update array of blogs
// @Tags Blogs
// @Accept json
// @Produce json
// @Param blogs body []dto.BlogRequestFull true "Array of blogs to update"
// @Success 200 {object} dto.BlogCollection
// @Failure 400 {object} ErrorResponse "Bad request"
// @Router /api/v1.0.0/blogs [put]
func (h blogHandler) updateBlogList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var reqs []dto.BlogRequestFull
		if err := decodeBody(w, r, h.logger, "blog list", &reqs); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if message := validation.ExplainInvalidBlogList(reqs); message != "" {
			h.responder.WriteError(w, errs.NewValidationError(message))
			return
		}

		blogs, err := h.blogs.ReplaceMany(r.Context(), reqs)
		if err != nil {
			h.responder.WriteError(w, asBadRequest("could not update blogs", err))
			return
		}

		h.responder.WriteJSON(w, blogs)
	}
}

// deleteBlog removes a blog that owns no posts
// @Summary Delete blog by its id. Blog can be only be deleted when all nested posts are also deleted
// @Tags Blogs
// @Produce plain
// @Param id path int true "Blog ID"
// @Success 200 {string} string "Blog with id = 1 deleted"
// @Failure 400 {object} ErrorResponse "Blog has nested objects"
// @Failure 404 "Blog not found"
// @Router /api/v1.0.0/blogs/{id} [delete]
func (h blogHandler) deleteBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		nested, err := h.blogs.HasNestedPosts(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if nested {
			h.responder.WriteError(w, errs.NewNestedPostsError())
			return
		}

		deleted, err := h.blogs.Delete(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, asNestedPosts(err))
			return
		}
		if !deleted {
			h.responder.WriteError(w, errs.NewNotFound("blog").WithoutBody())
			return
		}

		h.responder.WriteText(w, fmt.Sprintf("Blog with id = %d deleted", id))
	}
}

// deleteAllBlogs removes every blog when no posts exist
// @Summary Delete all blogs. Blogs can be only be deleted when all nested posts are also deleted
// @Tags Blogs
// @Produce plain
// @Success 200 {string} string "All Blogs deleted"
// @Failure 400 {object} ErrorResponse "Blog has nested objects"
// @Router /api/v1.0.0/blogs [delete]
func (h blogHandler) deleteAllBlogs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		nested, err := h.blogs.HasAnyNestedPosts(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if nested {
			h.responder.WriteError(w, errs.NewNestedPostsError())
			return
		}

		if err := h.blogs.DeleteAll(r.Context()); err != nil {
			h.responder.WriteError(w, asNestedPosts(err))
			return
		}

		h.responder.WriteText(w, "All Blogs deleted")
	}
}

// asBadRequest reports a failed bulk write as a client error, keeping the cause.
func asBadRequest(message string, cause error) error {
	apiErr := errs.NewBadRequestError(message)
	apiErr.Details = cause.Error()
	apiErr.Cause = cause
	return apiErr
}

// withoutBody silences an ApiErr so that only its status is written.
func withoutBody(err error) error {
	var apiErr *errs.ApiErr
	if errors.As(err, &apiErr) {
		return apiErr.WithoutBody()
	}
	return err
}

// asNestedPosts turns a foreign key violation raised by a post inserted after the
// nested-posts check into the same error the check itself reports.
func asNestedPosts(err error) error {
	if errs.IsForeignKeyConstraintError(err) {
		apiErr := errs.NewNestedPostsError()
		apiErr.Cause = err
		return apiErr
	}
	return err
}
