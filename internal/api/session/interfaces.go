package session

import (
	"context"
	"mime/multipart"

	"github.com/futig/lifestory-backend/internal/entity"
)

type SessionUsecase interface {
	Start(ctx context.Context, req *entity.StartSessionRequest) (*entity.StorySession, error)
	Load(ctx context.Context, token string) (*entity.StorySession, error)
	Clear(ctx context.Context, token string) error
	UpdateProfile(ctx context.Context, token string, req *entity.UpdateProfileRequest) (*entity.ProfileData, error)
	SelectQuestions(ctx context.Context, token string, req *entity.SelectQuestionsRequest) ([]string, error)
	SetResponse(ctx context.Context, token, questionID, text string) (*entity.Response, error)
	SubmitAudioResponse(ctx context.Context, token, questionID string, audioFile *multipart.FileHeader) (*entity.Response, error)
	MeaningfulResponses(ctx context.Context, token string) ([]entity.Response, error)
	Invite(ctx context.Context, token string, req *entity.InviteRequest) (*entity.Invitation, error)
}
