package respond_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yimmi-urbano/dencia-app-front/internal/api/handlers/http/respond"
	"github.com/Yimmi-urbano/dencia-app-front/pkg/e"
)

func TestError_Mapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		err    error
		status int
		kind   string
		field  string
		reason string
	}{
		{"validation", e.Wrap("op", e.NewValidation("coordinates", "missing")), http.StatusBadRequest, "validation", "coordinates", ""},
		{"location", e.Wrap("op", &e.LocationError{Reason: e.ReasonTimeout}), http.StatusUnprocessableEntity, "location", "", e.ReasonTimeout},
		{"not_found", e.Wrap("op", e.ErrNotFound), http.StatusNotFound, "not_found", "", ""},
		{"session", e.Wrap("op", e.ErrSessionNotFound), http.StatusNotFound, "session_not_found", "", ""},
		{"superseded", e.Wrap("op", e.ErrSuperseded), http.StatusConflict, "superseded", "", ""},
		{"service", e.Wrap("op", e.ErrService), http.StatusBadGateway, "service", "", ""},
		{"internal", errors.New("boom"), http.StatusInternalServerError, "internal", "", ""},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			rr := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			respond.Error(rr, r, logger, c.err)

			assert.Equal(t, c.status, rr.Code)
			var body respond.ErrorBody
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, c.kind, body.Kind)
			assert.Equal(t, c.field, body.Field)
			assert.Equal(t, c.reason, body.Reason)
			assert.NotEmpty(t, body.Error)
			assert.NotContains(t, body.Error, "op:")
		})
	}
}
