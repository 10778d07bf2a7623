package session

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/futig/lifestory-backend/internal/entity"
	"github.com/futig/lifestory-backend/internal/integration/mail"
	"github.com/futig/lifestory-backend/internal/pkg/logger"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Invite emails the subject a link to answer the selected questions directly
func (uc *SessionUsecase) Invite(ctx context.Context, token string, req *entity.InviteRequest) (*entity.Invitation, error) {
	ctx = logger.WithAction(ctx, "invite_subject")

	if err := uc.validator.ValidateInvite(req); err != nil {
		return nil, err
	}

	session, err := uc.Load(ctx, token)
	if err != nil {
		return nil, err
	}
	if session.Profile == nil {
		return nil, entity.ErrProfileRequired
	}
	if len(session.SelectedQuestions) == 0 {
		return nil, entity.ErrNoQuestionsSelected
	}

	now := uc.now()
	invitation, err := uc.invitationRepo.CreateInvitation(ctx, &entity.Invitation{
		ID:          uuid.New().String(),
		Token:       uuid.New().String(),
		SessionID:   session.ID,
		Email:       req.Email,
		ProfileName: session.Profile.Name,
		SenderName:  strings.TrimSpace(req.SenderName),
		Status:      entity.InvitationStatusSent,
		SentAt:      now,
		ExpiresAt:   now.Add(uc.sessionCfg.InvitationTTL),
	})
	if err != nil {
		return nil, fmt.Errorf("create invitation: %w", err)
	}

	questions := uc.questions.Resolve(session.SelectedQuestions, session.Relationship)
	preview := make([]string, 0, len(questions))
	for _, q := range questions {
		preview = append(preview, q.Text)
	}

	messageID, err := uc.mailConnector.SendInvitation(ctx, &mail.InvitationMail{
		Email:       invitation.Email,
		ProfileName: invitation.ProfileName,
		SenderName:  invitation.SenderName,
		InviteLink:  uc.inviteLink(invitation.Token),
		Questions:   preview,
	})
	if err != nil {
		if derr := uc.invitationRepo.DeleteInvitation(ctx, invitation.ID); derr != nil {
			ctxzap.Error(ctx, "failed to remove unsent invitation", zap.Error(derr))
		}
		return nil, fmt.Errorf("send invitation email: %w", err)
	}

	invitation, err = uc.invitationRepo.SetInvitationMessageID(ctx, invitation.ID, messageID)
	if err != nil {
		return nil, fmt.Errorf("store invitation message id: %w", err)
	}

	ctxzap.Info(ctx, "invitation sent",
		zap.String("session_id", session.ID),
		zap.String("invitation_id", invitation.ID),
		zap.String("message_id", messageID),
	)

	return invitation, nil
}

// GetInvitation opens an invitation and returns what the subject should answer
func (uc *SessionUsecase) GetInvitation(ctx context.Context, inviteToken string) (*entity.InvitationView, error) {
	invitation, session, err := uc.loadInvitation(ctx, inviteToken)
	if err != nil {
		return nil, err
	}

	if invitation.Status == entity.InvitationStatusSent {
		invitation, err = uc.invitationRepo.MarkInvitationOpened(ctx, invitation.ID, uc.now())
		if err != nil {
			return nil, fmt.Errorf("mark invitation opened: %w", err)
		}
	}

	return &entity.InvitationView{
		Token:       invitation.Token,
		ProfileName: invitation.ProfileName,
		SenderName:  invitation.SenderName,
		Status:      invitation.Status,
		Questions:   uc.questions.Resolve(session.SelectedQuestions, session.Relationship),
		Responses:   session.Responses.All(),
	}, nil
}

// AnswerInvitation stores the subject's answer in the inviting session
func (uc *SessionUsecase) AnswerInvitation(ctx context.Context, inviteToken, questionID, text string) (*entity.Response, error) {
	invitation, session, err := uc.loadInvitation(ctx, inviteToken)
	if err != nil {
		return nil, err
	}

	if invitation.Status == entity.InvitationStatusCompleted {
		return nil, entity.ErrInvitationCompleted
	}
	if !slices.Contains(session.SelectedQuestions, questionID) {
		return nil, fmt.Errorf("%w: %s", entity.ErrUnknownQuestion, questionID)
	}

	return uc.storeResponse(ctx, session, questionID, text)
}

// CompleteInvitation marks the subject as done. Completing twice is allowed.
func (uc *SessionUsecase) CompleteInvitation(ctx context.Context, inviteToken string) (*entity.Invitation, error) {
	invitation, session, err := uc.loadInvitation(ctx, inviteToken)
	if err != nil {
		return nil, err
	}

	completed, err := uc.invitationRepo.MarkInvitationCompleted(ctx, invitation.ID, uc.now())
	if err != nil {
		return nil, fmt.Errorf("mark invitation completed: %w", err)
	}

	ctxzap.Info(ctx, "invitation completed",
		zap.String("session_id", session.ID),
		zap.String("invitation_id", invitation.ID),
		zap.Int("meaningful_responses", len(session.Responses.Meaningful())),
	)

	return completed, nil
}

// loadInvitation resolves an invite token to a live invitation and its session
func (uc *SessionUsecase) loadInvitation(ctx context.Context, inviteToken string) (*entity.Invitation, *entity.StorySession, error) {
	invitation, err := uc.invitationRepo.GetInvitationByToken(ctx, inviteToken)
	if err != nil {
		return nil, nil, err
	}

	now := uc.now()
	if !invitation.ExpiresAt.IsZero() && now.After(invitation.ExpiresAt) {
		return nil, nil, fmt.Errorf("%w: invitation expired", entity.ErrInvitationNotFound)
	}

	session, err := uc.sessionRepo.GetSessionByID(ctx, invitation.SessionID)
	if err != nil {
		if errors.Is(err, entity.ErrSessionNotFound) {
			return nil, nil, fmt.Errorf("%w: session is gone", entity.ErrInvitationNotFound)
		}
		return nil, nil, err
	}
	if session.Expired(now) {
		return nil, nil, fmt.Errorf("%w: session expired", entity.ErrInvitationNotFound)
	}

	return invitation, session, nil
}

func (uc *SessionUsecase) inviteLink(inviteToken string) string {
	return strings.TrimSuffix(uc.siteURL, "/") + "/invite/" + inviteToken
}
