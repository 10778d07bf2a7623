package entity

import (
	"fmt"
	"strings"
	"time"
)

type RelationshipType string

// Relationship of the storybook author to its subject
const (
	RelationshipMom         RelationshipType = "mom"
	RelationshipDad         RelationshipType = "dad"
	RelationshipGrandparent RelationshipType = "grandparent"
	RelationshipSpouse      RelationshipType = "spouse"
	RelationshipSibling     RelationshipType = "sibling"
	RelationshipMyself      RelationshipType = "myself" // Autobiography, no question variants
	RelationshipOther       RelationshipType = "other"  // Requires a custom label
)

type Relationship struct {
	Type        RelationshipType `json:"relationship"`
	CustomLabel string           `json:"custom_relationship,omitempty"`
}

func (r Relationship) Validate() error {
	switch r.Type {
	case RelationshipMom, RelationshipDad, RelationshipGrandparent, RelationshipSpouse,
		RelationshipSibling, RelationshipMyself:
		return nil
	case RelationshipOther:
		if strings.TrimSpace(r.CustomLabel) == "" {
			return fmt.Errorf("%w: custom relationship label is required for 'other'", ErrInvalidRelationship)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown relationship '%s'", ErrInvalidRelationship, r.Type)
	}
}

// VariantKey returns the key used to look up question variants.
// Custom relationships never match a variant.
func (r Relationship) VariantKey() string {
	if r.Type == RelationshipOther {
		return ""
	}
	return string(r.Type)
}

// Label is the human readable relationship used in prompts
func (r Relationship) Label() string {
	if r.Type == RelationshipOther {
		return strings.TrimSpace(r.CustomLabel)
	}
	return string(r.Type)
}

type WizardStep int

const (
	StepRelationship WizardStep = iota + 1
	StepProfile
	StepQuestions
	StepStoryInput
	StepPreview
	StepStorybook
)

type QuestionCategory struct {
	ID          string     `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	Icon        string     `json:"icon" yaml:"icon"`
	Description string     `json:"description" yaml:"description"`
	Questions   []Question `json:"questions" yaml:"questions"`
}

type Question struct {
	ID       string            `json:"id" yaml:"id"`
	Text     string            `json:"text" yaml:"text"`
	Variants map[string]string `json:"variants,omitempty" yaml:"variants,omitempty"`
}

type ProfileData struct {
	ID          string    `json:"id,omitempty"`
	Name        string    `json:"name"`
	BirthYear   *int      `json:"birth_year,omitempty"`
	Description string    `json:"description,omitempty"`
	Images      []string  `json:"images"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// DisplayName returns the subject name or the given default when it is blank
func (p *ProfileData) DisplayName(def string) string {
	if p == nil || strings.TrimSpace(p.Name) == "" {
		return def
	}
	return strings.TrimSpace(p.Name)
}

// StorySession is the explicit wizard context loaded by token for every step
type StorySession struct {
	ID                string
	Token             string
	Relationship      Relationship
	Profile           *ProfileData
	SelectedQuestions []string
	Responses         *ResponseMap
	CurrentStep       WizardStep
	CreatedAt         time.Time
	UpdatedAt         time.Time
	ExpiresAt         time.Time
}

func (s *StorySession) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

type InvitationStatus string

const (
	InvitationStatusSent      InvitationStatus = "sent"
	InvitationStatusOpened    InvitationStatus = "opened"
	InvitationStatusCompleted InvitationStatus = "completed"
)

type Invitation struct {
	ID          string           `json:"id"`
	Token       string           `json:"invite_token"`
	SessionID   string           `json:"-"`
	Email       string           `json:"email"`
	ProfileName string           `json:"profile_name"`
	SenderName  string           `json:"sender_name,omitempty"`
	Status      InvitationStatus `json:"status"`
	MessageID   string           `json:"message_id,omitempty"`
	SentAt      time.Time        `json:"sent_at"`
	OpenedAt    *time.Time       `json:"opened_at,omitempty"`
	CompletedAt *time.Time       `json:"completed_at,omitempty"`
	ExpiresAt   time.Time        `json:"expires_at"`
}

type ShareLink struct {
	Slug      string    `json:"slug"`
	SessionID string    `json:"-"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}
