package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/futig/lifestory-backend/internal/entity"
	"github.com/futig/lifestory-backend/internal/repository/sqlc"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SessionRepository defines the interface for wizard session persistence.
// Loaded sessions carry their profile and responses.
type SessionRepository interface {
	CreateSession(ctx context.Context, session *entity.StorySession) (*entity.StorySession, error)
	GetSessionByToken(ctx context.Context, token string) (*entity.StorySession, error)
	GetSessionByID(ctx context.Context, id string) (*entity.StorySession, error)
	SaveProfile(ctx context.Context, sessionID string, profile *entity.ProfileData) (*entity.ProfileData, error)
	SetSelectedQuestions(ctx context.Context, sessionID string, questionIDs []string) error
	AdvanceStep(ctx context.Context, sessionID string, step entity.WizardStep) (entity.WizardStep, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

var _ SessionRepository = &SessionPostgres{}

// SessionPostgres implements SessionRepository using PostgreSQL
type SessionPostgres struct {
	db      *pgxpool.Pool
	queries *sqlc.Queries
}

func NewSessionPostgres(db *pgxpool.Pool) *SessionPostgres {
	return &SessionPostgres{
		db:      db,
		queries: sqlc.New(db),
	}
}

func (r *SessionPostgres) CreateSession(ctx context.Context, session *entity.StorySession) (*entity.StorySession, error) {
	sessionID, err := toPgUUID(session.ID)
	if err != nil {
		return nil, err
	}

	dbSession, err := r.queries.CreateUserSession(ctx, sqlc.CreateUserSessionParams{
		ID:                 sessionID,
		Token:              session.Token,
		Relationship:       string(session.Relationship.Type),
		CustomRelationship: session.Relationship.CustomLabel,
		CurrentStep:        int16(session.CurrentStep),
		ExpiresAt:          toPgTime(session.ExpiresAt),
	})
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return toEntitySession(&dbSession), nil
}

func (r *SessionPostgres) GetSessionByToken(ctx context.Context, token string) (*entity.StorySession, error) {
	dbSession, err := r.queries.GetUserSessionByToken(ctx, token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session by token: %w", err)
	}

	return r.hydrate(ctx, &dbSession)
}

func (r *SessionPostgres) GetSessionByID(ctx context.Context, id string) (*entity.StorySession, error) {
	sessionID, err := toPgUUID(id)
	if err != nil {
		return nil, err
	}

	dbSession, err := r.queries.GetUserSessionByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	return r.hydrate(ctx, &dbSession)
}

// hydrate attaches the profile and the responses in first-insert order
func (r *SessionPostgres) hydrate(ctx context.Context, dbSession *sqlc.UserSession) (*entity.StorySession, error) {
	session := toEntitySession(dbSession)

	if dbSession.ProfileID.Valid {
		dbProfile, err := r.queries.GetProfileByID(ctx, dbSession.ProfileID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("get profile: %w", err)
		}
		if err == nil {
			session.Profile = toEntityProfile(&dbProfile)
		}
	}

	dbResponses, err := r.queries.ListStoryResponses(ctx, dbSession.ID)
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	for i := range dbResponses {
		session.Responses.Set(dbResponses[i].QuestionID, dbResponses[i].ResponseText)
	}

	return session, nil
}

// SaveProfile creates or replaces the session profile and links it in one transaction
func (r *SessionPostgres) SaveProfile(ctx context.Context, sessionID string, profile *entity.ProfileData) (*entity.ProfileData, error) {
	id, err := toPgUUID(sessionID)
	if err != nil {
		return nil, err
	}

	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	profileID, err := toPgUUID(profile.ID)
	if err != nil {
		return nil, err
	}

	params := sqlc.UpsertProfileParams{
		ID:          profileID,
		Name:        profile.Name,
		Description: profile.Description,
		Images:      profile.Images,
	}
	if params.Images == nil {
		params.Images = []string{}
	}
	if profile.BirthYear != nil {
		params.BirthYear = pgtype.Int4{Int32: int32(*profile.BirthYear), Valid: true}
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	q := r.queries.WithTx(tx)

	dbProfile, err := q.UpsertProfile(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}

	_, err = q.SetUserSessionProfile(ctx, sqlc.SetUserSessionProfileParams{
		ID:        id,
		ProfileID: profileID,
		Step:      int16(entity.StepProfile),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrSessionNotFound
		}
		return nil, fmt.Errorf("link profile to session: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	return toEntityProfile(&dbProfile), nil
}

func (r *SessionPostgres) SetSelectedQuestions(ctx context.Context, sessionID string, questionIDs []string) error {
	id, err := toPgUUID(sessionID)
	if err != nil {
		return err
	}

	_, err = r.queries.SetUserSessionQuestions(ctx, sqlc.SetUserSessionQuestionsParams{
		ID:                id,
		SelectedQuestions: questionIDs,
		Step:              int16(entity.StepQuestions),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.ErrSessionNotFound
		}
		return fmt.Errorf("set selected questions: %w", err)
	}

	return nil
}

// AdvanceStep never moves a session backwards and returns the resulting step
func (r *SessionPostgres) AdvanceStep(ctx context.Context, sessionID string, step entity.WizardStep) (entity.WizardStep, error) {
	id, err := toPgUUID(sessionID)
	if err != nil {
		return 0, err
	}

	dbSession, err := r.queries.AdvanceUserSessionStep(ctx, sqlc.AdvanceUserSessionStepParams{
		ID:   id,
		Step: int16(step),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, entity.ErrSessionNotFound
		}
		return 0, fmt.Errorf("advance session step: %w", err)
	}

	return entity.WizardStep(dbSession.CurrentStep), nil
}

// DeleteSession removes the session, its responses and invitations, and its profile.
// Share links keep their snapshot.
func (r *SessionPostgres) DeleteSession(ctx context.Context, sessionID string) error {
	id, err := toPgUUID(sessionID)
	if err != nil {
		return err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	q := r.queries.WithTx(tx)

	dbSession, err := q.GetUserSessionByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.ErrSessionNotFound
		}
		return fmt.Errorf("get session: %w", err)
	}

	if err := q.DeleteUserSession(ctx, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	if dbSession.ProfileID.Valid {
		if err := q.DeleteProfile(ctx, dbSession.ProfileID); err != nil {
			return fmt.Errorf("delete profile: %w", err)
		}
	}

	return tx.Commit(ctx)
}
