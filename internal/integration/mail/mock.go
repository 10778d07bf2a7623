package mail

import (
	"context"
	"fmt"

	pkglogger "github.com/futig/lifestory-backend/internal/pkg/logger"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) SendInvitation(ctx context.Context, inv *InvitationMail) (string, error) {
	ctx = pkglogger.WithFallback(ctx, m.logger)

	if _, err := renderInvitation(inv); err != nil {
		return "", err
	}

	messageID := fmt.Sprintf("<mock-%s@lifestory.app>", uuid.NewString())

	ctxzap.Info(ctx, "[MOCK] invitation email sent",
		zap.String("profile_name", inv.ProfileName),
		zap.String("subject", invitationSubject(inv.SenderName)),
		zap.String("invite_link", inv.InviteLink),
		zap.String("message_id", messageID),
	)

	return messageID, nil
}
