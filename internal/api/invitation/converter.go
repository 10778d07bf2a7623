package invitation

import (
	"time"

	"github.com/futig/lifestory-backend/internal/entity"
)

// completion is what the subject sees after finishing. Contact details stay with the inviter.
type completion struct {
	Status      entity.InvitationStatus `json:"status"`
	ProfileName string                  `json:"profile_name"`
	CompletedAt *time.Time              `json:"completed_at,omitempty"`
}

func toCompletion(inv *entity.Invitation) *completion {
	return &completion{
		Status:      inv.Status,
		ProfileName: inv.ProfileName,
		CompletedAt: inv.CompletedAt,
	}
}
