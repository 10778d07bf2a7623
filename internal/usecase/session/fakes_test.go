package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/futig/lifestory-backend/internal/entity"
	"github.com/futig/lifestory-backend/internal/integration/mail"
	"github.com/google/uuid"
)

// memoryStore implements the session, response and invitation repositories in memory
type memoryStore struct {
	mu          sync.Mutex
	sessions    map[string]*entity.StorySession
	invitations map[string]*entity.Invitation
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		sessions:    map[string]*entity.StorySession{},
		invitations: map[string]*entity.Invitation{},
	}
}

// clone returns a detached copy so callers never share state with the store
func clone(s *entity.StorySession) *entity.StorySession {
	c := *s
	c.SelectedQuestions = append([]string{}, s.SelectedQuestions...)
	c.Responses = entity.NewResponseMap(s.Responses.All()...)
	if s.Profile != nil {
		p := *s.Profile
		c.Profile = &p
	}
	return &c
}

func (m *memoryStore) CreateSession(_ context.Context, s *entity.StorySession) (*entity.StorySession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s = clone(s)
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	m.sessions[s.ID] = s
	return clone(s), nil
}

func (m *memoryStore) GetSessionByToken(_ context.Context, token string) (*entity.StorySession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sessions {
		if s.Token == token {
			return clone(s), nil
		}
	}
	return nil, entity.ErrSessionNotFound
}

func (m *memoryStore) GetSessionByID(_ context.Context, id string) (*entity.StorySession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, entity.ErrSessionNotFound
	}
	return clone(s), nil
}

func (m *memoryStore) SaveProfile(_ context.Context, sessionID string, profile *entity.ProfileData) (*entity.ProfileData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, entity.ErrSessionNotFound
	}
	p := *profile
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	s.Profile = &p
	s.CurrentStep = max(s.CurrentStep, entity.StepProfile)
	out := p
	return &out, nil
}

func (m *memoryStore) SetSelectedQuestions(_ context.Context, sessionID string, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return entity.ErrSessionNotFound
	}
	s.SelectedQuestions = append([]string{}, ids...)
	s.CurrentStep = max(s.CurrentStep, entity.StepQuestions)
	return nil
}

func (m *memoryStore) AdvanceStep(_ context.Context, sessionID string, step entity.WizardStep) (entity.WizardStep, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return 0, entity.ErrSessionNotFound
	}
	s.CurrentStep = max(s.CurrentStep, step)
	return s.CurrentStep, nil
}

func (m *memoryStore) DeleteSession(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[sessionID]; !ok {
		return entity.ErrSessionNotFound
	}
	delete(m.sessions, sessionID)
	return nil
}

func (m *memoryStore) UpsertResponse(_ context.Context, sessionID, questionID, text string) (*entity.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, entity.ErrSessionNotFound
	}
	s.Responses.Set(questionID, text)
	return &entity.Response{QuestionID: questionID, Text: text}, nil
}

func (m *memoryStore) AppendResponse(ctx context.Context, sessionID, questionID, text string) (*entity.Response, error) {
	m.mu.Lock()
	s, ok := m.sessions[sessionID]
	m.mu.Unlock()
	if !ok {
		return nil, entity.ErrSessionNotFound
	}
	if existing, ok := s.Responses.Get(questionID); ok && (entity.Response{Text: existing}).Meaningful() {
		text = existing + " " + text
	}
	return m.UpsertResponse(ctx, sessionID, questionID, text)
}

func (m *memoryStore) ListResponses(_ context.Context, sessionID string) ([]entity.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, entity.ErrSessionNotFound
	}
	return s.Responses.All(), nil
}

func (m *memoryStore) CreateInvitation(_ context.Context, inv *entity.Invitation) (*entity.Invitation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *inv
	m.invitations[c.ID] = &c
	out := c
	return &out, nil
}

func (m *memoryStore) GetInvitationByToken(_ context.Context, token string) (*entity.Invitation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, inv := range m.invitations {
		if inv.Token == token {
			out := *inv
			return &out, nil
		}
	}
	return nil, entity.ErrInvitationNotFound
}

func (m *memoryStore) update(id string, fn func(*entity.Invitation)) (*entity.Invitation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inv, ok := m.invitations[id]
	if !ok {
		return nil, entity.ErrInvitationNotFound
	}
	fn(inv)
	out := *inv
	return &out, nil
}

func (m *memoryStore) SetInvitationMessageID(_ context.Context, id, messageID string) (*entity.Invitation, error) {
	return m.update(id, func(inv *entity.Invitation) { inv.MessageID = messageID })
}

func (m *memoryStore) MarkInvitationOpened(_ context.Context, id string, at time.Time) (*entity.Invitation, error) {
	return m.update(id, func(inv *entity.Invitation) {
		if inv.Status == entity.InvitationStatusSent {
			inv.Status = entity.InvitationStatusOpened
		}
		if inv.OpenedAt == nil {
			inv.OpenedAt = &at
		}
	})
}

func (m *memoryStore) MarkInvitationCompleted(_ context.Context, id string, at time.Time) (*entity.Invitation, error) {
	return m.update(id, func(inv *entity.Invitation) {
		inv.Status = entity.InvitationStatusCompleted
		if inv.OpenedAt == nil {
			inv.OpenedAt = &at
		}
		if inv.CompletedAt == nil {
			inv.CompletedAt = &at
		}
	})
}

func (m *memoryStore) DeleteInvitation(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.invitations, id)
	return nil
}

type fakeCatalog struct {
	questions map[string]entity.Question
}

func (f fakeCatalog) Question(id string) (entity.Question, bool) {
	q, ok := f.questions[id]
	return q, ok
}

func (f fakeCatalog) Resolve(ids []string, rel entity.Relationship) []entity.Question {
	out := make([]entity.Question, 0, len(ids))
	for _, id := range ids {
		q, ok := f.questions[id]
		if !ok {
			continue
		}
		if v := q.Variants[rel.VariantKey()]; v != "" {
			q.Text = v
		}
		out = append(out, q)
	}
	return out
}

type fakeASR struct {
	transcript string
	err        error
	calls      int
	filename   string
}

func (f *fakeASR) TranscribeBytes(_ context.Context, _ []byte, filename string) (string, error) {
	f.calls++
	f.filename = filename
	return f.transcript, f.err
}

type fakeMail struct {
	sent []*mail.InvitationMail
	err  error
}

func (f *fakeMail) SendInvitation(_ context.Context, inv *mail.InvitationMail) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, inv)
	return "<msg-1@brevo>", nil
}

type fakeCache struct {
	deleted []string
}

func (f *fakeCache) Delete(key string) {
	f.deleted = append(f.deleted, key)
}

var errProvider = errors.New("provider unavailable")
