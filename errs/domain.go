package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Blog & post domain errors
var (
	ErrValidation        = errors.New("validation failed")
	ErrNoChanges         = errors.New("no update performed")
	ErrBadOrderingField  = errors.New("bad ordering field")
	ErrSearchUnavailable = errors.New("search unavailable")
	ErrNestedPosts       = errors.New("blog has nested objects (post entity)")
)

func NewValidationError(message string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrValidation,
		Details:    message,
	}
}

func NewNoChangesError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrNoChanges,
	}
}

// NewBadOrderingFieldError names the property that could not be resolved for the given type.
func NewBadOrderingFieldError(field, entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrBadOrderingField,
		Details:    fmt.Sprintf("No property '%s' found for type '%s'", field, entity),
		Field:      field,
	}
}

func NewSearchUnavailableError(cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrSearchUnavailable,
		Details:    "Full-text search backend could not be reached",
		Cause:      cause,
	}
}

func NewNestedPostsError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrNestedPosts,
	}
}

func IsSearchUnavailableError(err error) bool {
	return errors.Is(err, ErrSearchUnavailable)
}
