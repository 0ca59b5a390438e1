package dto

import "github.com/rpupo63/blog-api/models"

// BlogRequest is the create and partial-update payload for a blog.
// A nil field was absent from the JSON body.
type BlogRequest struct {
	BlogTitle   *string `json:"blogTitle" validate:"required"`
	Description *string `json:"description" validate:"required"`
}

// BlogRequestFull replaces a blog row wholesale.
type BlogRequestFull struct {
	ID          *uint64 `json:"id" validate:"required"`
	BlogTitle   *string `json:"blogTitle" validate:"required"`
	Description *string `json:"description" validate:"required"`
}

// ToModel copies the payload into a Blog. Callers validate first.
func (r BlogRequestFull) ToModel() models.Blog {
	return models.Blog{
		ID:          deref(r.ID),
		BlogTitle:   deref(r.BlogTitle),
		Description: deref(r.Description),
	}
}

type PostRequest struct {
	PostTitle      *string      `json:"postTitle" validate:"required"`
	PostBody       *string      `json:"postBody" validate:"required"`
	PostConclusion *string      `json:"postConclusion" validate:"required"`
	Author         *string      `json:"author" validate:"required"`
	PublishedOn    *models.Date `json:"publishedOn" validate:"required"`
}

// PostRequestFull replaces a post row wholesale, including its owning blog.
type PostRequestFull struct {
	ID             *uint64      `json:"id" validate:"required"`
	BlogID         *uint64      `json:"blogId" validate:"required"`
	PostTitle      *string      `json:"postTitle" validate:"required"`
	PostBody       *string      `json:"postBody" validate:"required"`
	PostConclusion *string      `json:"postConclusion" validate:"required"`
	Author         *string      `json:"author" validate:"required"`
	PublishedOn    *models.Date `json:"publishedOn" validate:"required"`
}

// ToModel builds a new post owned by blogID.
func (r PostRequest) ToModel(blogID uint64) models.Post {
	return models.Post{
		BlogID:         blogID,
		PostTitle:      deref(r.PostTitle),
		PostBody:       deref(r.PostBody),
		PostConclusion: r.PostConclusion,
		Author:         deref(r.Author),
		PublishedOn:    deref(r.PublishedOn),
	}
}

func (r PostRequestFull) ToModel() models.Post {
	return models.Post{
		ID:             deref(r.ID),
		BlogID:         deref(r.BlogID),
		PostTitle:      deref(r.PostTitle),
		PostBody:       deref(r.PostBody),
		PostConclusion: r.PostConclusion,
		Author:         deref(r.Author),
		PublishedOn:    deref(r.PublishedOn),
	}
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
