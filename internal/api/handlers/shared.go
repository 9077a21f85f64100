package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/response"
)

// maxBodyBytes limits request bodies, including legacy imports.
const maxBodyBytes = 10 << 20

// respondJSON sends a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, data any) {
	response.RespondJSON(w, status, data)
}

// parseJSON decodes the request body into T. Unknown fields are rejected and
// the body must hold exactly one JSON value.
func parseJSON[T any](r *http.Request) (T, error) {
	var req T

	if r.Body == nil {
		return req, errors.New("request body is empty")
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return req, errors.New("request body is empty")
		}
		return req, fmt.Errorf("invalid JSON: %w", err)
	}

	if dec.More() {
		return req, errors.New("request body must contain a single JSON object")
	}

	return req, nil
}
