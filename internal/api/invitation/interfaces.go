package invitation

import (
	"context"

	"github.com/futig/lifestory-backend/internal/entity"
)

type InvitationUsecase interface {
	GetInvitation(ctx context.Context, inviteToken string) (*entity.InvitationView, error)
	AnswerInvitation(ctx context.Context, inviteToken, questionID, text string) (*entity.Response, error)
	CompleteInvitation(ctx context.Context, inviteToken string) (*entity.Invitation, error)
}
