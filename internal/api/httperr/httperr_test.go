package httperr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/futig/lifestory-backend/internal/entity"
	pkghttp "github.com/futig/lifestory-backend/pkg/http"
	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"expired session", fmt.Errorf("%w: %w", entity.ErrSessionNotFound, entity.ErrSessionExpired), http.StatusNotFound},
		{"share link", entity.ErrShareLinkNotFound, http.StatusNotFound},
		{"wrapped validation", fmt.Errorf("%w: name", entity.ErrMissingField), http.StatusBadRequest},
		{"relationship", entity.ErrInvalidRelationship, http.StatusBadRequest},
		{"profile locked", entity.ErrProfileLocked, http.StatusConflict},
		{"no content", entity.ErrNoContent, http.StatusConflict},
		{"rate limited", entity.ErrRateLimited, http.StatusTooManyRequests},
		{"mail provider", fmt.Errorf("send invitation email: %w", &pkghttp.HTTPError{StatusCode: 401, Message: "bad key"}), http.StatusBadGateway},
		{"transcription network", fmt.Errorf("transcribe audio: %w", &pkghttp.NetworkError{Err: errors.New("dial tcp")}), http.StatusBadGateway},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Status(tt.err))
		})
	}
}

func TestWriteHidesInternalErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	Write(context.Background(), rec, errors.New("pq: relation does not exist"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	Write(context.Background(), rec, entity.ErrProfileLocked)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"error":"profile cannot change after story input has started"}`, rec.Body.String())
}
