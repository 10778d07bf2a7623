package asr

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/futig/lifestory-backend/internal/config"
	"github.com/futig/lifestory-backend/internal/entity"
	"github.com/futig/lifestory-backend/internal/integration/common"
	pkglogger "github.com/futig/lifestory-backend/internal/pkg/logger"
	pkghttp "github.com/futig/lifestory-backend/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Connector talks to an OpenAI-compatible /audio/transcriptions endpoint
type Connector struct {
	config    config.ASRConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.ASRConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

func (c *Connector) TranscribeBytes(ctx context.Context, audioData []byte, filename string) (string, error) {
	ctx = pkglogger.WithFallback(ctx, c.logger)

	if len(audioData) == 0 {
		return "", fmt.Errorf("empty audio data provided")
	}

	hash := sha256.Sum256(audioData)

	ctxzap.Info(ctx, "transcribing audio",
		zap.String("filename", filename),
		zap.String("checksum", hex.EncodeToString(hash[:])),
		zap.Int("size", len(audioData)),
		zap.String("model", c.config.Model),
	)

	prepareBody := func(writer *multipart.Writer) error {
		part, err := writer.CreateFormFile("file", filename)
		if err != nil {
			return fmt.Errorf("create form file: %w", err)
		}

		if _, err := part.Write(audioData); err != nil {
			return fmt.Errorf("write file content: %w", err)
		}

		fields := map[string]string{
			"model":           c.config.Model,
			"language":        c.config.Language,
			"response_format": "json",
		}
		for name, value := range fields {
			if value == "" {
				continue
			}
			if err := writer.WriteField(name, value); err != nil {
				return fmt.Errorf("write %s field: %w", name, err)
			}
		}

		return nil
	}

	retryCtx, cancel := c.config.Retry.WithTimeout(ctx)
	defer cancel()

	var resp entity.ASRTranscribeResponse
	err := c.connector.DoMultipartRequest(retryCtx, http.MethodPost, c.config.TranscribeEndpoint, prepareBody, &resp,
		pkghttp.WithRetry(c.config.Retry.ToRetryOptions(retryCtx)...),
	)
	if err != nil {
		return "", fmt.Errorf("failed to transcribe audio: %w", err)
	}

	text := strings.TrimSpace(resp.Text)
	ctxzap.Info(ctx, "audio transcribed successfully", zap.Int("transcription_length", len(text)))

	return text, nil
}
