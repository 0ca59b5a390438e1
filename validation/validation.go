package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rpupo63/blog-api/dto"
)

const notValidPrefix = "Not valid fields: "

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
	})
	return validate
}

// missingFields returns the Go names of every `required` field that is nil, in declaration order.
func missingFields(payload any) []string {
	err := instance().Struct(payload)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		// InvalidValidationError only happens for non-struct input, which is a programming error.
		panic(err)
	}

	fields := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		fields = append(fields, fieldErr.StructField())
	}
	return fields
}

// explain renders the missing payload fields first and the identifier fields last.
func explain(missing []string, idFields map[string]string, id *uint64) string {
	var b strings.Builder
	b.WriteString(notValidPrefix)

	var missingIDs []string
	for _, field := range missing {
		if name, ok := idFields[field]; ok {
			missingIDs = append(missingIDs, name)
			continue
		}
		fmt.Fprintf(&b, "field %s is null; ", field)
	}

	if idFields == nil {
		return b.String()
	}

	for _, name := range missingIDs {
		fmt.Fprintf(&b, " field %s is null; ", name)
	}
	b.WriteString(" for entity with id = ")
	if id == nil {
		b.WriteString("null")
	} else {
		fmt.Fprintf(&b, "%d", *id)
	}
	return b.String()
}

var (
	blogIDFields = map[string]string{"ID": "Id"}
	postIDFields = map[string]string{"ID": "Id", "BlogID": "BlogId"}
)

func ValidateBlogCreate(req dto.BlogRequest) bool {
	return len(missingFields(req)) == 0
}

func ValidateBlogFull(req dto.BlogRequestFull) bool {
	return len(missingFields(req)) == 0
}

func ExplainInvalidBlogCreate(req dto.BlogRequest) string {
	return explain(missingFields(req), nil, nil)
}

// ExplainInvalidBlogFull always ends with the offending id, which may itself be the missing field.
func ExplainInvalidBlogFull(req dto.BlogRequestFull) string {
	return explain(missingFields(req), blogIDFields, req.ID)
}

func ValidatePostCreate(req dto.PostRequest) bool {
	return len(missingFields(req)) == 0
}

func ValidatePostFull(req dto.PostRequestFull) bool {
	return len(missingFields(req)) == 0
}

func ExplainInvalidPostCreate(req dto.PostRequest) string {
	return explain(missingFields(req), nil, nil)
}

func ExplainInvalidPostFull(req dto.PostRequestFull) string {
	return explain(missingFields(req), postIDFields, req.ID)
}

// ExplainInvalidBlogList joins the messages of every invalid item with " and ".
// An empty result means the whole list is valid.
func ExplainInvalidBlogList(reqs []dto.BlogRequestFull) string {
	var messages []string
	for _, req := range reqs {
		if !ValidateBlogFull(req) {
			messages = append(messages, ExplainInvalidBlogFull(req))
		}
	}
	return strings.Join(messages, " and ")
}

func ExplainInvalidPostList(reqs []dto.PostRequestFull) string {
	var messages []string
	for _, req := range reqs {
		if !ValidatePostFull(req) {
			messages = append(messages, ExplainInvalidPostFull(req))
		}
	}
	return strings.Join(messages, " and ")
}
