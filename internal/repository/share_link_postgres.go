package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/futig/lifestory-backend/internal/entity"
	"github.com/futig/lifestory-backend/internal/repository/sqlc"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ShareLinkRepository stores storybook snapshots behind share slugs
type ShareLinkRepository interface {
	CreateShareLink(ctx context.Context, link *entity.ShareLink, book *entity.Storybook) (*entity.ShareLink, error)
	GetSharedStorybook(ctx context.Context, slug string) (*entity.Storybook, error)
}

var _ ShareLinkRepository = &ShareLinkPostgres{}

type ShareLinkPostgres struct {
	queries *sqlc.Queries
}

func NewShareLinkPostgres(db *pgxpool.Pool) *ShareLinkPostgres {
	return &ShareLinkPostgres{queries: sqlc.New(db)}
}

func (r *ShareLinkPostgres) CreateShareLink(ctx context.Context, link *entity.ShareLink, book *entity.Storybook) (*entity.ShareLink, error) {
	sessionID, err := toPgUUID(link.SessionID)
	if err != nil {
		return nil, err
	}

	snapshot, err := json.Marshal(book)
	if err != nil {
		return nil, fmt.Errorf("marshal storybook: %w", err)
	}

	dbLink, err := r.queries.CreateShareLink(ctx, sqlc.CreateShareLinkParams{
		Slug:      link.Slug,
		SessionID: sessionID,
		Storybook: snapshot,
		CreatedAt: toPgTime(link.CreatedAt),
	})
	if err != nil {
		return nil, fmt.Errorf("create share link: %w", err)
	}

	saved := toEntityShareLink(&dbLink)
	saved.URL = link.URL

	return saved, nil
}

func (r *ShareLinkPostgres) GetSharedStorybook(ctx context.Context, slug string) (*entity.Storybook, error) {
	dbLink, err := r.queries.GetShareLink(ctx, slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrShareLinkNotFound
		}
		return nil, fmt.Errorf("get share link: %w", err)
	}

	var book entity.Storybook
	if err := json.Unmarshal(dbLink.Storybook, &book); err != nil {
		return nil, fmt.Errorf("unmarshal storybook snapshot: %w", err)
	}

	return &book, nil
}
