package mail

import (
	"context"
	"fmt"
	"net/http"

	"github.com/futig/lifestory-backend/internal/config"
	"github.com/futig/lifestory-backend/internal/entity"
	"github.com/futig/lifestory-backend/internal/integration/common"
	pkglogger "github.com/futig/lifestory-backend/internal/pkg/logger"
	pkghttp "github.com/futig/lifestory-backend/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const apiKeyHeader = "api-key"

// Connector sends transactional email through the Brevo SMTP API
type Connector struct {
	config    config.MailConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.MailConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewAPIKeyConnector(cfg.HTTPClientConfig, apiKeyHeader, logger),
		config:    cfg,
		logger:    logger,
	}
}

// SendInvitation emails the story subject a link to answer the questions and returns the provider message id
func (c *Connector) SendInvitation(ctx context.Context, inv *InvitationMail) (string, error) {
	ctx = pkglogger.WithFallback(ctx, c.logger)

	html, err := renderInvitation(inv)
	if err != nil {
		return "", err
	}

	msg := &entity.MailMessage{
		Sender: entity.MailContact{
			Name:  c.config.SenderName,
			Email: c.config.SenderEmail,
		},
		To: []entity.MailContact{
			{Email: inv.Email, Name: inv.ProfileName},
		},
		Subject:     invitationSubject(inv.SenderName),
		HTMLContent: html,
	}

	ctxzap.Info(ctx, "sending invitation email", zap.String("profile_name", inv.ProfileName))

	retryCtx, cancel := c.config.Retry.WithTimeout(ctx)
	defer cancel()

	var resp entity.MailSendResponse
	err = c.connector.DoRequest(retryCtx, http.MethodPost, c.config.SendEndpoint, msg, &resp,
		pkghttp.WithRetry(c.config.Retry.ToRetryOptions(retryCtx)...),
	)
	if err != nil {
		return "", fmt.Errorf("failed to send invitation email: %w", err)
	}

	ctxzap.Info(ctx, "invitation email accepted", zap.String("message_id", resp.MessageID))

	return resp.MessageID, nil
}
