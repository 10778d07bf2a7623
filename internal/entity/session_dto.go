package entity

import (
	"mime/multipart"
	"time"
)

type StartSessionRequest struct {
	Relationship       RelationshipType `json:"relationship" validate:"required"`
	CustomRelationship string           `json:"custom_relationship,omitempty" validate:"max=100"`
}

type UpdateProfileRequest struct {
	Name        string   `json:"name" validate:"required,max=200"`
	BirthYear   *int     `json:"birth_year,omitempty" validate:"omitempty,min=1900,notfuture"`
	Description string   `json:"description,omitempty" validate:"max=5000"`
	Images      []string `json:"images,omitempty" validate:"max=2,dive,required,url"`
}

type SelectQuestionsRequest struct {
	QuestionIDs []string `json:"question_ids" validate:"required,dive,required"`
}

type SubmitResponseRequest struct {
	Text string `json:"text"`
}

type SubmitAudioResponseRequest struct {
	AudioFile *multipart.FileHeader
}

type InviteRequest struct {
	Email      string `json:"email" validate:"required,email"`
	SenderName string `json:"sender_name,omitempty" validate:"max=200"`
}

type SessionDTO struct {
	Token              string           `json:"token"`
	Relationship       RelationshipType `json:"relationship"`
	CustomRelationship string           `json:"custom_relationship,omitempty"`
	CurrentStep        WizardStep       `json:"current_step"`
	Profile            *ProfileData     `json:"profile,omitempty"`
	SelectedQuestions  []string         `json:"selected_questions"`
	Responses          []Response       `json:"responses"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
	ExpiresAt          time.Time        `json:"expires_at"`
}

// InvitationView is what the invited subject sees when opening the link
type InvitationView struct {
	Token       string           `json:"invite_token"`
	ProfileName string           `json:"profile_name"`
	SenderName  string           `json:"sender_name,omitempty"`
	Status      InvitationStatus `json:"status"`
	Questions   []Question       `json:"questions"`
	Responses   []Response       `json:"responses"`
}

type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}
