package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/futig/lifestory-backend/internal/entity"
	"github.com/futig/lifestory-backend/internal/repository/sqlc"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type InvitationRepository interface {
	CreateInvitation(ctx context.Context, invitation *entity.Invitation) (*entity.Invitation, error)
	GetInvitationByToken(ctx context.Context, token string) (*entity.Invitation, error)
	SetInvitationMessageID(ctx context.Context, id, messageID string) (*entity.Invitation, error)
	MarkInvitationOpened(ctx context.Context, id string, at time.Time) (*entity.Invitation, error)
	MarkInvitationCompleted(ctx context.Context, id string, at time.Time) (*entity.Invitation, error)
	DeleteInvitation(ctx context.Context, id string) error
}

var _ InvitationRepository = &InvitationPostgres{}

type InvitationPostgres struct {
	queries *sqlc.Queries
}

func NewInvitationPostgres(db *pgxpool.Pool) *InvitationPostgres {
	return &InvitationPostgres{queries: sqlc.New(db)}
}

func (r *InvitationPostgres) CreateInvitation(ctx context.Context, invitation *entity.Invitation) (*entity.Invitation, error) {
	id, err := toPgUUID(invitation.ID)
	if err != nil {
		return nil, err
	}
	sessionID, err := toPgUUID(invitation.SessionID)
	if err != nil {
		return nil, err
	}

	dbInvitation, err := r.queries.CreateInvitation(ctx, sqlc.CreateInvitationParams{
		ID:          id,
		Token:       invitation.Token,
		SessionID:   sessionID,
		Email:       invitation.Email,
		ProfileName: invitation.ProfileName,
		SenderName:  invitation.SenderName,
		Status:      string(invitation.Status),
		SentAt:      toPgTime(invitation.SentAt),
		ExpiresAt:   toPgTime(invitation.ExpiresAt),
	})
	if err != nil {
		return nil, fmt.Errorf("create invitation: %w", err)
	}

	return toEntityInvitation(&dbInvitation), nil
}

func (r *InvitationPostgres) GetInvitationByToken(ctx context.Context, token string) (*entity.Invitation, error) {
	dbInvitation, err := r.queries.GetInvitationByToken(ctx, token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrInvitationNotFound
		}
		return nil, fmt.Errorf("get invitation: %w", err)
	}

	return toEntityInvitation(&dbInvitation), nil
}

func (r *InvitationPostgres) SetInvitationMessageID(ctx context.Context, id, messageID string) (*entity.Invitation, error) {
	invitationID, err := toPgUUID(id)
	if err != nil {
		return nil, err
	}

	dbInvitation, err := r.queries.SetInvitationMessageID(ctx, sqlc.SetInvitationMessageIDParams{
		ID:        invitationID,
		MessageID: pgtype.Text{String: messageID, Valid: messageID != ""},
	})
	if err != nil {
		return nil, fmt.Errorf("set invitation message id: %w", err)
	}

	return toEntityInvitation(&dbInvitation), nil
}

// MarkInvitationOpened moves a sent invitation to opened; later states are kept
func (r *InvitationPostgres) MarkInvitationOpened(ctx context.Context, id string, at time.Time) (*entity.Invitation, error) {
	invitationID, err := toPgUUID(id)
	if err != nil {
		return nil, err
	}

	dbInvitation, err := r.queries.MarkInvitationOpened(ctx, sqlc.MarkInvitationOpenedParams{
		ID: invitationID,
		At: toPgTime(at),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrInvitationNotFound
		}
		return nil, fmt.Errorf("mark invitation opened: %w", err)
	}

	return toEntityInvitation(&dbInvitation), nil
}

func (r *InvitationPostgres) MarkInvitationCompleted(ctx context.Context, id string, at time.Time) (*entity.Invitation, error) {
	invitationID, err := toPgUUID(id)
	if err != nil {
		return nil, err
	}

	dbInvitation, err := r.queries.MarkInvitationCompleted(ctx, sqlc.MarkInvitationCompletedParams{
		ID: invitationID,
		At: toPgTime(at),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrInvitationNotFound
		}
		return nil, fmt.Errorf("mark invitation completed: %w", err)
	}

	return toEntityInvitation(&dbInvitation), nil
}

func (r *InvitationPostgres) DeleteInvitation(ctx context.Context, id string) error {
	invitationID, err := toPgUUID(id)
	if err != nil {
		return err
	}

	if err := r.queries.DeleteInvitation(ctx, invitationID); err != nil {
		return fmt.Errorf("delete invitation: %w", err)
	}

	return nil
}
