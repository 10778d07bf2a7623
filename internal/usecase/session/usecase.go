package session

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"time"

	"github.com/futig/lifestory-backend/internal/config"
	"github.com/futig/lifestory-backend/internal/entity"
	"github.com/futig/lifestory-backend/internal/pkg/logger"
	"github.com/futig/lifestory-backend/internal/pkg/validator"
	"github.com/futig/lifestory-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// SessionUsecase drives the storybook wizard and subject invitations
type SessionUsecase struct {
	sessionRepo    repository.SessionRepository
	responseRepo   repository.ResponseRepository
	invitationRepo repository.InvitationRepository
	questions      QuestionCatalog
	validator      *validator.Validator
	asrConnector   ASRConnector
	mailConnector  MailConnector
	storyCache     StoryCache
	sessionCfg     config.SessionConfig
	siteURL        string
	now            func() time.Time
}

// NewUsecase creates a new session use case
func NewUsecase(
	sessionRepo repository.SessionRepository,
	responseRepo repository.ResponseRepository,
	invitationRepo repository.InvitationRepository,
	questions QuestionCatalog,
	validator *validator.Validator,
	asrConnector ASRConnector,
	mailConnector MailConnector,
	storyCache StoryCache,
	sessionCfg config.SessionConfig,
	siteURL string,
) *SessionUsecase {
	return &SessionUsecase{
		sessionRepo:    sessionRepo,
		responseRepo:   responseRepo,
		invitationRepo: invitationRepo,
		questions:      questions,
		validator:      validator,
		asrConnector:   asrConnector,
		mailConnector:  mailConnector,
		storyCache:     storyCache,
		sessionCfg:     sessionCfg,
		siteURL:        siteURL,
		now:            time.Now,
	}
}

// Start opens a wizard session for the chosen relationship
func (uc *SessionUsecase) Start(ctx context.Context, req *entity.StartSessionRequest) (*entity.StorySession, error) {
	if err := uc.validator.ValidateStartSession(req); err != nil {
		return nil, err
	}

	now := uc.now()
	session := &entity.StorySession{
		ID:    uuid.New().String(),
		Token: uuid.New().String(),
		Relationship: entity.Relationship{
			Type:        req.Relationship,
			CustomLabel: req.CustomRelationship,
		},
		CurrentStep: entity.StepRelationship,
		ExpiresAt:   now.Add(uc.sessionCfg.TTL),
	}

	created, err := uc.sessionRepo.CreateSession(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	ctxzap.Info(ctx, "session started",
		zap.String("session_id", created.ID),
		zap.String("relationship", string(created.Relationship.Type)),
	)

	return created, nil
}

// Load returns the session for a token. Expired sessions are reported as not found.
func (uc *SessionUsecase) Load(ctx context.Context, token string) (*entity.StorySession, error) {
	session, err := uc.sessionRepo.GetSessionByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if session.Expired(uc.now()) {
		return nil, fmt.Errorf("%w: %w", entity.ErrSessionNotFound, entity.ErrSessionExpired)
	}

	return session, nil
}

// AdvanceStep moves the session forward. It never moves it back.
func (uc *SessionUsecase) AdvanceStep(ctx context.Context, session *entity.StorySession, step entity.WizardStep) error {
	if session.CurrentStep >= step {
		return nil
	}

	current, err := uc.sessionRepo.AdvanceStep(ctx, session.ID, step)
	if err != nil {
		return err
	}
	session.CurrentStep = current

	return nil
}

// Clear deletes the session with everything collected in it
func (uc *SessionUsecase) Clear(ctx context.Context, token string) error {
	session, err := uc.sessionRepo.GetSessionByToken(ctx, token)
	if err != nil {
		return err
	}

	if err := uc.sessionRepo.DeleteSession(ctx, session.ID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	uc.storyCache.Delete(session.ID)

	ctxzap.Info(ctx, "session cleared", zap.String("session_id", session.ID))

	return nil
}

// UpdateProfile creates or replaces the profile until the first answer is stored
func (uc *SessionUsecase) UpdateProfile(ctx context.Context, token string, req *entity.UpdateProfileRequest) (*entity.ProfileData, error) {
	if err := uc.validator.ValidateProfile(req); err != nil {
		return nil, err
	}

	session, err := uc.Load(ctx, token)
	if err != nil {
		return nil, err
	}

	if session.Responses.Len() > 0 {
		return nil, entity.ErrProfileLocked
	}

	profile := &entity.ProfileData{
		Name:        req.Name,
		BirthYear:   req.BirthYear,
		Description: req.Description,
		Images:      req.Images,
	}
	if session.Profile != nil {
		profile.ID = session.Profile.ID
	}

	saved, err := uc.sessionRepo.SaveProfile(ctx, session.ID, profile)
	if err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}

	return saved, nil
}

// SelectQuestions replaces the selected questions, dropping duplicates
func (uc *SessionUsecase) SelectQuestions(ctx context.Context, token string, req *entity.SelectQuestionsRequest) ([]string, error) {
	if err := uc.validator.ValidateSelectQuestions(req); err != nil {
		return nil, err
	}

	session, err := uc.Load(ctx, token)
	if err != nil {
		return nil, err
	}
	if session.Profile == nil {
		return nil, entity.ErrProfileRequired
	}

	selected := make([]string, 0, len(req.QuestionIDs))
	seen := make(map[string]struct{}, len(req.QuestionIDs))
	for _, id := range req.QuestionIDs {
		if _, ok := uc.questions.Question(id); !ok {
			return nil, fmt.Errorf("%w: %s", entity.ErrUnknownQuestion, id)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		selected = append(selected, id)
	}

	if err := uc.sessionRepo.SetSelectedQuestions(ctx, session.ID, selected); err != nil {
		return nil, fmt.Errorf("set selected questions: %w", err)
	}

	return selected, nil
}

// SetResponse stores the answer as given. Empty answers are kept.
func (uc *SessionUsecase) SetResponse(ctx context.Context, token, questionID, text string) (*entity.Response, error) {
	session, err := uc.answerableSession(ctx, token, questionID)
	if err != nil {
		return nil, err
	}

	return uc.storeResponse(ctx, session, questionID, text)
}

// SubmitAudioResponse transcribes a recording and appends it to the answer
func (uc *SessionUsecase) SubmitAudioResponse(ctx context.Context, token, questionID string, audioFile *multipart.FileHeader) (*entity.Response, error) {
	ctx = logger.WithAction(ctx, "submit_audio_response")

	if err := uc.validator.ValidateAudioFile(audioFile); err != nil {
		return nil, err
	}

	session, err := uc.answerableSession(ctx, token, questionID)
	if err != nil {
		return nil, err
	}

	transcript, err := uc.transcribe(ctx, audioFile)
	if err != nil {
		return nil, err
	}

	response, err := uc.responseRepo.AppendResponse(ctx, session.ID, questionID, transcript)
	if err != nil {
		return nil, fmt.Errorf("append response: %w", err)
	}

	if err := uc.AdvanceStep(ctx, session, entity.StepStoryInput); err != nil {
		return nil, fmt.Errorf("advance session step: %w", err)
	}

	return response, nil
}

// MeaningfulResponses lists non-blank answers in the order they were first given
func (uc *SessionUsecase) MeaningfulResponses(ctx context.Context, token string) ([]entity.Response, error) {
	session, err := uc.Load(ctx, token)
	if err != nil {
		return nil, err
	}
	return session.Responses.Meaningful(), nil
}

func (uc *SessionUsecase) answerableSession(ctx context.Context, token, questionID string) (*entity.StorySession, error) {
	session, err := uc.Load(ctx, token)
	if err != nil {
		return nil, err
	}
	if session.Profile == nil {
		return nil, entity.ErrProfileRequired
	}
	if _, ok := uc.questions.Question(questionID); !ok {
		return nil, fmt.Errorf("%w: %s", entity.ErrUnknownQuestion, questionID)
	}
	return session, nil
}

func (uc *SessionUsecase) storeResponse(ctx context.Context, session *entity.StorySession, questionID, text string) (*entity.Response, error) {
	response, err := uc.responseRepo.UpsertResponse(ctx, session.ID, questionID, text)
	if err != nil {
		return nil, fmt.Errorf("upsert response: %w", err)
	}

	if err := uc.AdvanceStep(ctx, session, entity.StepStoryInput); err != nil {
		return nil, fmt.Errorf("advance session step: %w", err)
	}

	return response, nil
}

// transcribe converts recorded audio to text
func (uc *SessionUsecase) transcribe(ctx context.Context, audioFile *multipart.FileHeader) (string, error) {
	file, err := audioFile.Open()
	if err != nil {
		return "", fmt.Errorf("open audio file: %w", err)
	}
	defer file.Close()

	audioData, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("read audio file: %w", err)
	}

	transcript, err := uc.asrConnector.TranscribeBytes(ctx, audioData, validator.SanitizeFilename(audioFile.Filename))
	if err != nil {
		return "", fmt.Errorf("transcribe audio: %w", err)
	}

	if transcript == "" {
		return "", fmt.Errorf("%w: transcription is empty", entity.ErrInvalidFile)
	}

	return transcript, nil
}
