package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/Yimmi-urbano/dencia-app-front/pkg/e"
	"github.com/Yimmi-urbano/dencia-app-front/pkg/validator"
)

const maxBodyBytes = 64 << 10

// ErrEmptyBody is returned by DecodeJSON when the request has no body.
var ErrEmptyBody = e.NewValidation("body", "request body is empty")

// DecodeJSON reads exactly one JSON object into dst and validates it.
// Unknown fields and trailing data are rejected.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return e.NewValidation("body", "invalid JSON")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return e.NewValidation("body", "invalid JSON")
	}

	return validator.Validate(dst)
}
