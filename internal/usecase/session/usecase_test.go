package session

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/textproto"
	"testing"
	"time"

	"github.com/futig/lifestory-backend/internal/config"
	"github.com/futig/lifestory-backend/internal/entity"
	"github.com/futig/lifestory-backend/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	uc    *SessionUsecase
	store *memoryStore
	asr   *fakeASR
	mail  *fakeMail
	cache *fakeCache
	now   time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		store: newMemoryStore(),
		asr:   &fakeASR{transcript: "We lived by the river."},
		mail:  &fakeMail{},
		cache: &fakeCache{},
		now:   time.Date(2025, time.May, 1, 12, 0, 0, 0, time.UTC),
	}

	catalog := fakeCatalog{questions: map[string]entity.Question{
		"meet-partner": {ID: "meet-partner", Text: "How did you meet your partner or spouse?", Variants: map[string]string{"mom": "How did you meet Dad?"}},
		"first-job":    {ID: "first-job", Text: "What was your first job?"},
		"hometown":     {ID: "hometown", Text: "Where did you grow up?"},
	}}

	v := validator.New(config.FileUploadConfig{MaxAudioFileSize: 1 << 20, MaxUploadSize: 2 << 20})

	f.uc = NewUsecase(f.store, f.store, f.store, catalog, v, f.asr, f.mail, f.cache,
		config.SessionConfig{TTL: 24 * time.Hour, InvitationTTL: 48 * time.Hour}, "https://lifestory.app/")
	f.uc.now = func() time.Time { return f.now }

	return f
}

// started returns a session token with a profile and two selected questions
func (f *fixture) started(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	s, err := f.uc.Start(ctx, &entity.StartSessionRequest{Relationship: entity.RelationshipMom})
	require.NoError(t, err)

	_, err = f.uc.UpdateProfile(ctx, s.Token, &entity.UpdateProfileRequest{Name: "Rose"})
	require.NoError(t, err)

	_, err = f.uc.SelectQuestions(ctx, s.Token, &entity.SelectQuestionsRequest{QuestionIDs: []string{"meet-partner", "first-job"}})
	require.NoError(t, err)

	return s.Token
}

func TestStart(t *testing.T) {
	f := newFixture(t)

	s, err := f.uc.Start(context.Background(), &entity.StartSessionRequest{
		Relationship: entity.RelationshipOther, CustomRelationship: "godmother",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, s.ID)
	assert.NotEmpty(t, s.Token)
	assert.NotEqual(t, s.ID, s.Token)
	assert.Equal(t, entity.StepRelationship, s.CurrentStep)
	assert.Equal(t, f.now.Add(24*time.Hour), s.ExpiresAt)

	_, err = f.uc.Start(context.Background(), &entity.StartSessionRequest{Relationship: entity.RelationshipOther})
	assert.ErrorIs(t, err, entity.ErrInvalidRelationship)
}

func TestLoadExpiredSession(t *testing.T) {
	f := newFixture(t)
	s, err := f.uc.Start(context.Background(), &entity.StartSessionRequest{Relationship: entity.RelationshipDad})
	require.NoError(t, err)

	f.now = f.now.Add(25 * time.Hour)

	_, err = f.uc.Load(context.Background(), s.Token)
	assert.ErrorIs(t, err, entity.ErrSessionNotFound)
	assert.ErrorIs(t, err, entity.ErrSessionExpired)
}

func TestWizardStepsOnlyMoveForward(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	token := f.started(t)

	s, err := f.uc.Load(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, entity.StepQuestions, s.CurrentStep)

	_, err = f.uc.SetResponse(ctx, token, "first-job", "Baker")
	require.NoError(t, err)

	require.NoError(t, f.uc.AdvanceStep(ctx, s, entity.StepStorybook))
	require.NoError(t, f.uc.AdvanceStep(ctx, s, entity.StepPreview))

	s, err = f.uc.Load(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, entity.StepStorybook, s.CurrentStep)
}

func TestUpdateProfileLockedAfterFirstResponse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	token := f.started(t)

	year := 1950
	profile, err := f.uc.UpdateProfile(ctx, token, &entity.UpdateProfileRequest{Name: "Rose Silva", BirthYear: &year})
	require.NoError(t, err)
	assert.Equal(t, "Rose Silva", profile.Name)

	s, err := f.uc.Load(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, s.Profile.ID)

	_, err = f.uc.SetResponse(ctx, token, "first-job", "")
	require.NoError(t, err)

	_, err = f.uc.UpdateProfile(ctx, token, &entity.UpdateProfileRequest{Name: "Someone Else"})
	assert.ErrorIs(t, err, entity.ErrProfileLocked)
}

func TestUpdateProfileValidation(t *testing.T) {
	f := newFixture(t)
	token := f.started(t)

	_, err := f.uc.UpdateProfile(context.Background(), token, &entity.UpdateProfileRequest{Name: " "})
	assert.ErrorIs(t, err, entity.ErrMissingField)
}

func TestSelectQuestions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	s, err := f.uc.Start(ctx, &entity.StartSessionRequest{Relationship: entity.RelationshipMom})
	require.NoError(t, err)

	_, err = f.uc.SelectQuestions(ctx, s.Token, &entity.SelectQuestionsRequest{QuestionIDs: []string{"first-job"}})
	assert.ErrorIs(t, err, entity.ErrProfileRequired)

	_, err = f.uc.UpdateProfile(ctx, s.Token, &entity.UpdateProfileRequest{Name: "Rose"})
	require.NoError(t, err)

	selected, err := f.uc.SelectQuestions(ctx, s.Token, &entity.SelectQuestionsRequest{
		QuestionIDs: []string{"hometown", "first-job", "hometown"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"hometown", "first-job"}, selected)

	_, err = f.uc.SelectQuestions(ctx, s.Token, &entity.SelectQuestionsRequest{QuestionIDs: []string{"nope"}})
	assert.ErrorIs(t, err, entity.ErrUnknownQuestion)

	_, err = f.uc.SelectQuestions(ctx, s.Token, &entity.SelectQuestionsRequest{})
	assert.ErrorIs(t, err, entity.ErrNoQuestionsSelected)
}

func TestSetResponseAndMeaningfulResponses(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	token := f.started(t)

	_, err := f.uc.SetResponse(ctx, token, "meet-partner", "At a dance in 1968.")
	require.NoError(t, err)
	_, err = f.uc.SetResponse(ctx, token, "first-job", "   ")
	require.NoError(t, err)
	_, err = f.uc.SetResponse(ctx, token, "hometown", "Porto")
	require.NoError(t, err)
	_, err = f.uc.SetResponse(ctx, token, "meet-partner", "At a dance.")
	require.NoError(t, err)

	_, err = f.uc.SetResponse(ctx, token, "unknown", "text")
	assert.ErrorIs(t, err, entity.ErrUnknownQuestion)

	s, err := f.uc.Load(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Responses.Len())
	assert.Equal(t, entity.StepStoryInput, s.CurrentStep)

	first, err := f.uc.MeaningfulResponses(ctx, token)
	require.NoError(t, err)
	second, err := f.uc.MeaningfulResponses(ctx, token)
	require.NoError(t, err)

	assert.Equal(t, []entity.Response{
		{QuestionID: "meet-partner", Text: "At a dance."},
		{QuestionID: "hometown", Text: "Porto"},
	}, first)
	assert.Equal(t, first, second)
}

func audioFile(t *testing.T, name string, data []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", `form-data; name="audio"; filename="`+name+`"`)
	h.Set("Content-Type", "audio/webm")
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["audio"][0]
}

func TestSubmitAudioResponseAppendsTranscript(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	token := f.started(t)

	_, err := f.uc.SetResponse(ctx, token, "hometown", "Porto.")
	require.NoError(t, err)

	resp, err := f.uc.SubmitAudioResponse(ctx, token, "hometown", audioFile(t, "my answer.webm", []byte("audio-bytes")))
	require.NoError(t, err)

	assert.Equal(t, "Porto. We lived by the river.", resp.Text)
	assert.Equal(t, "my_answer.webm", f.asr.filename)
	assert.Equal(t, 1, f.asr.calls)
}

func TestSubmitAudioResponseErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	token := f.started(t)

	_, err := f.uc.SubmitAudioResponse(ctx, token, "hometown", audioFile(t, "answer.txt", []byte("x")))
	assert.ErrorIs(t, err, entity.ErrInvalidExtension)
	assert.Zero(t, f.asr.calls)

	f.asr.err = errProvider
	_, err = f.uc.SubmitAudioResponse(ctx, token, "hometown", audioFile(t, "answer.webm", []byte("x")))
	assert.ErrorIs(t, err, errProvider)

	f.asr.err = nil
	f.asr.transcript = ""
	_, err = f.uc.SubmitAudioResponse(ctx, token, "hometown", audioFile(t, "answer.webm", []byte("x")))
	assert.ErrorIs(t, err, entity.ErrInvalidFile)
}

func TestClear(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	token := f.started(t)

	s, err := f.uc.Load(ctx, token)
	require.NoError(t, err)

	require.NoError(t, f.uc.Clear(ctx, token))
	assert.Equal(t, []string{s.ID}, f.cache.deleted)

	_, err = f.uc.Load(ctx, token)
	assert.ErrorIs(t, err, entity.ErrSessionNotFound)
	assert.ErrorIs(t, f.uc.Clear(ctx, token), entity.ErrSessionNotFound)
}
