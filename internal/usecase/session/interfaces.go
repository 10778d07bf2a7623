package session

import (
	"context"

	"github.com/futig/lifestory-backend/internal/entity"
	"github.com/futig/lifestory-backend/internal/integration/mail"
)

type ASRConnector interface {
	TranscribeBytes(ctx context.Context, audioData []byte, filename string) (string, error)
}

type MailConnector interface {
	SendInvitation(ctx context.Context, inv *mail.InvitationMail) (string, error)
}

type QuestionCatalog interface {
	Question(id string) (entity.Question, bool)
	Resolve(ids []string, rel entity.Relationship) []entity.Question
}

// StoryCache holds generated storybooks keyed by session id
type StoryCache interface {
	Delete(key string)
}
