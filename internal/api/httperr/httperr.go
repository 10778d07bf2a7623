// Package httperr maps domain errors to HTTP responses.
package httperr

import (
	"context"
	"errors"
	"net/http"

	"github.com/futig/lifestory-backend/internal/entity"
	"github.com/futig/lifestory-backend/internal/pkg/response"
	pkghttp "github.com/futig/lifestory-backend/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

var (
	notFound = []error{
		entity.ErrSessionNotFound,
		entity.ErrInvitationNotFound,
		entity.ErrShareLinkNotFound,
	}
	badRequest = []error{
		entity.ErrInvalidRelationship,
		entity.ErrUnknownQuestion,
		entity.ErrNoQuestionsSelected,
		entity.ErrMissingField,
		entity.ErrInvalidParameter,
		entity.ErrInvalidFormat,
		entity.ErrInvalidFile,
		entity.ErrInvalidExtension,
		entity.ErrFileTooLarge,
		entity.ErrTooManyFiles,
	}
	conflict = []error{
		entity.ErrProfileRequired,
		entity.ErrProfileLocked,
		entity.ErrNoContent,
		entity.ErrNoResult,
		entity.ErrInvitationCompleted,
	}
)

// Status returns the HTTP status for err
func Status(err error) int {
	switch {
	case isAny(err, notFound):
		return http.StatusNotFound
	case isAny(err, badRequest):
		return http.StatusBadRequest
	case isAny(err, conflict):
		return http.StatusConflict
	case errors.Is(err, entity.ErrRateLimited):
		return http.StatusTooManyRequests
	case isUpstream(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Write logs err and writes the matching JSON error body. Client errors carry
// the error text, server errors a generic message.
func Write(ctx context.Context, w http.ResponseWriter, err error) {
	status := Status(err)

	switch {
	case status == http.StatusBadGateway:
		ctxzap.Error(ctx, "upstream service failed", zap.Error(err))
		response.Error(w, status, "upstream service is unavailable, please try again later")
	case status >= http.StatusInternalServerError:
		ctxzap.Error(ctx, "request failed", zap.Error(err))
		response.Error(w, status, http.StatusText(status))
	default:
		ctxzap.Warn(ctx, "request rejected", zap.Int("status", status), zap.Error(err))
		response.Error(w, status, err.Error())
	}
}

// BadRequest writes a 400 for malformed input that never reached a use case
func BadRequest(ctx context.Context, w http.ResponseWriter, message string, err error) {
	ctxzap.Warn(ctx, message, zap.Error(err))
	response.Error(w, http.StatusBadRequest, message)
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func isUpstream(err error) bool {
	var httpErr *pkghttp.HTTPError
	var netErr *pkghttp.NetworkError
	return errors.As(err, &httpErr) || errors.As(err, &netErr)
}
