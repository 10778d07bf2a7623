package repository

import (
	"fmt"
	"time"

	"github.com/futig/lifestory-backend/internal/entity"
	"github.com/futig/lifestory-backend/internal/repository/sqlc"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

func toPgUUID(id string) (pgtype.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return pgtype.UUID{}, fmt.Errorf("invalid ID %q: %w", id, err)
	}
	return pgtype.UUID{Bytes: parsed, Valid: true}, nil
}

func fromPgUUID(id pgtype.UUID) string {
	if !id.Valid {
		return ""
	}
	return uuid.UUID(id.Bytes).String()
}

func toPgTime(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: !t.IsZero()}
}

func fromPgTimePtr(t pgtype.Timestamptz) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func toEntityProfile(dbProfile *sqlc.Profile) *entity.ProfileData {
	profile := &entity.ProfileData{
		ID:          fromPgUUID(dbProfile.ID),
		Name:        dbProfile.Name,
		Description: dbProfile.Description,
		Images:      dbProfile.Images,
		CreatedAt:   dbProfile.CreatedAt.Time,
	}

	if profile.Images == nil {
		profile.Images = []string{}
	}

	if dbProfile.BirthYear.Valid {
		year := int(dbProfile.BirthYear.Int32)
		profile.BirthYear = &year
	}

	return profile
}

func toEntitySession(dbSession *sqlc.UserSession) *entity.StorySession {
	selected := dbSession.SelectedQuestions
	if selected == nil {
		selected = []string{}
	}

	return &entity.StorySession{
		ID:    fromPgUUID(dbSession.ID),
		Token: dbSession.Token,
		Relationship: entity.Relationship{
			Type:        entity.RelationshipType(dbSession.Relationship),
			CustomLabel: dbSession.CustomRelationship,
		},
		SelectedQuestions: selected,
		Responses:         entity.NewResponseMap(),
		CurrentStep:       entity.WizardStep(dbSession.CurrentStep),
		CreatedAt:         dbSession.CreatedAt.Time,
		UpdatedAt:         dbSession.UpdatedAt.Time,
		ExpiresAt:         dbSession.ExpiresAt.Time,
	}
}

func toEntityResponse(dbResponse *sqlc.StoryResponse) *entity.Response {
	return &entity.Response{
		QuestionID: dbResponse.QuestionID,
		Text:       dbResponse.ResponseText,
	}
}

func toEntityInvitation(dbInvitation *sqlc.Invitation) *entity.Invitation {
	return &entity.Invitation{
		ID:          fromPgUUID(dbInvitation.ID),
		Token:       dbInvitation.Token,
		SessionID:   fromPgUUID(dbInvitation.SessionID),
		Email:       dbInvitation.Email,
		ProfileName: dbInvitation.ProfileName,
		SenderName:  dbInvitation.SenderName,
		Status:      entity.InvitationStatus(dbInvitation.Status),
		MessageID:   dbInvitation.MessageID.String,
		SentAt:      dbInvitation.SentAt.Time,
		OpenedAt:    fromPgTimePtr(dbInvitation.OpenedAt),
		CompletedAt: fromPgTimePtr(dbInvitation.CompletedAt),
		ExpiresAt:   dbInvitation.ExpiresAt.Time,
	}
}

func toEntityShareLink(dbLink *sqlc.ShareLink) *entity.ShareLink {
	return &entity.ShareLink{
		Slug:      dbLink.Slug,
		SessionID: fromPgUUID(dbLink.SessionID),
		CreatedAt: dbLink.CreatedAt.Time,
	}
}
