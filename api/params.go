package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/blog-api/errs"
	"github.com/rpupo63/blog-api/models"
	"github.com/rs/zerolog"
)

// maxBodyBytes bounds request bodies, including bulk replace payloads.
const maxBodyBytes = 4 << 20

// idParam reads a numeric path parameter.
func idParam(r *http.Request, name string) (uint64, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return 0, errs.NewInvalidFieldError(name, "missing")
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, errs.NewInvalidFieldError(name, "must be a non-negative integer")
	}
	return id, nil
}

// decodeBody reads the whole body so that it can be logged when it does not parse.
func decodeBody(w http.ResponseWriter, r *http.Request, logger zerolog.Logger, payloadType string, target any) error {
	bodyBytes, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		logger.Error().Err(err).Msg("Failed to read request body")
		return errs.NewMalformedPayloadError(payloadType, err)
	}

	if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(target); err != nil {
		logger.Warn().Err(err).Str("body", string(bodyBytes)).Msgf("Failed to decode %s request body", payloadType)
		return errs.NewInvalidJSONError(err)
	}
	return nil
}

// dateQuery parses an optional yyyy-MM-dd query parameter.
func dateQuery(r *http.Request, name string) (*models.Date, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}

	date, err := models.ParseDate(raw)
	if err != nil {
		return nil, errs.NewInvalidFieldError(name, "expected yyyy-MM-dd")
	}
	return &date, nil
}

// listQuery collects a repeated query parameter, also splitting comma separated values.
func listQuery(r *http.Request, name string) []string {
	var values []string
	for _, raw := range r.URL.Query()[name] {
		for _, value := range strings.Split(raw, ",") {
			if value = strings.TrimSpace(value); value != "" {
				values = append(values, value)
			}
		}
	}
	return values
}
