package session

import "github.com/futig/lifestory-backend/internal/entity"

// toSessionDTO converts StorySession entity to SessionDTO
func toSessionDTO(s *entity.StorySession) *entity.SessionDTO {
	selected := s.SelectedQuestions
	if selected == nil {
		selected = []string{}
	}

	responses := s.Responses.All()
	if responses == nil {
		responses = []entity.Response{}
	}

	return &entity.SessionDTO{
		Token:              s.Token,
		Relationship:       s.Relationship.Type,
		CustomRelationship: s.Relationship.CustomLabel,
		CurrentStep:        s.CurrentStep,
		Profile:            s.Profile,
		SelectedQuestions:  selected,
		Responses:          responses,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
		ExpiresAt:          s.ExpiresAt,
	}
}
