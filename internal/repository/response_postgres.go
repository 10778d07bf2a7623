package repository

import (
	"context"
	"fmt"

	"github.com/futig/lifestory-backend/internal/entity"
	"github.com/futig/lifestory-backend/internal/repository/sqlc"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ResponseRepository stores answers keyed by (session, question)
type ResponseRepository interface {
	UpsertResponse(ctx context.Context, sessionID, questionID, text string) (*entity.Response, error)
	AppendResponse(ctx context.Context, sessionID, questionID, text string) (*entity.Response, error)
	ListResponses(ctx context.Context, sessionID string) ([]entity.Response, error)
}

var _ ResponseRepository = &ResponsePostgres{}

type ResponsePostgres struct {
	queries *sqlc.Queries
}

func NewResponsePostgres(db *pgxpool.Pool) *ResponsePostgres {
	return &ResponsePostgres{queries: sqlc.New(db)}
}

// UpsertResponse replaces the answer text. The row keeps its original position.
func (r *ResponsePostgres) UpsertResponse(ctx context.Context, sessionID, questionID, text string) (*entity.Response, error) {
	id, err := toPgUUID(sessionID)
	if err != nil {
		return nil, err
	}

	dbResponse, err := r.queries.UpsertStoryResponse(ctx, sqlc.UpsertStoryResponseParams{
		SessionID:    id,
		QuestionID:   questionID,
		ResponseText: text,
	})
	if err != nil {
		return nil, fmt.Errorf("upsert response: %w", err)
	}

	return toEntityResponse(&dbResponse), nil
}

// AppendResponse adds text after an existing answer, separated by a space
func (r *ResponsePostgres) AppendResponse(ctx context.Context, sessionID, questionID, text string) (*entity.Response, error) {
	id, err := toPgUUID(sessionID)
	if err != nil {
		return nil, err
	}

	dbResponse, err := r.queries.AppendStoryResponse(ctx, sqlc.AppendStoryResponseParams{
		SessionID:    id,
		QuestionID:   questionID,
		ResponseText: text,
	})
	if err != nil {
		return nil, fmt.Errorf("append response: %w", err)
	}

	return toEntityResponse(&dbResponse), nil
}

func (r *ResponsePostgres) ListResponses(ctx context.Context, sessionID string) ([]entity.Response, error) {
	id, err := toPgUUID(sessionID)
	if err != nil {
		return nil, err
	}

	dbResponses, err := r.queries.ListStoryResponses(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}

	responses := make([]entity.Response, 0, len(dbResponses))
	for i := range dbResponses {
		responses = append(responses, *toEntityResponse(&dbResponses[i]))
	}

	return responses, nil
}
