package asr

import (
	"context"
	"fmt"

	pkglogger "github.com/futig/lifestory-backend/internal/pkg/logger"
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

func (m *MockConnector) TranscribeBytes(ctx context.Context, audioData []byte, filename string) (string, error) {
	ctx = pkglogger.WithFallback(ctx, m.logger)

	if len(audioData) == 0 {
		return "", fmt.Errorf("empty audio data provided")
	}

	ctxzap.Info(ctx, "[MOCK] transcribing audio",
		zap.String("filename", filename),
		zap.Int("size", len(audioData)),
	)

	transcript := "I remember the summer we spent at the lake house. " +
		"My father taught me to fish off the old wooden dock, and we would sit there for hours without saying a word. " +
		"Those quiet mornings taught me patience more than anything else ever did."

	ctxzap.Info(ctx, "[MOCK] audio transcribed", zap.Int("transcription_length", len(transcript)))
	return transcript, nil
}
