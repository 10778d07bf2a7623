package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/futig/lifestory-backend/internal/config"
	"github.com/futig/lifestory-backend/internal/entity"
	pkglogger "github.com/futig/lifestory-backend/internal/pkg/logger"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.uber.org/zap"
)

// Connector generates text with the OpenAI chat completions API.
// Each Generate call is exactly one request; SDK retries are disabled.
type Connector struct {
	config config.LLMConnectorConfig
	client openai.Client
	logger *zap.Logger
}

func NewConnector(
	cfg config.LLMConnectorConfig,
	logger *zap.Logger,
) *Connector {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.RequestTimeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.RequestTimeout))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Connector{
		config: cfg,
		client: openai.NewClient(opts...),
		logger: logger,
	}
}

func (c *Connector) Generate(ctx context.Context, req *entity.GenerationRequest) (string, error) {
	ctx = pkglogger.WithFallback(ctx, c.logger)

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.config.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.Instructions),
			openai.UserMessage(req.Input),
		},
		Temperature:      openai.Float(req.Temperature),
		PresencePenalty:  openai.Float(req.PresencePenalty),
		FrequencyPenalty: openai.Float(req.FrequencyPenalty),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(req.MaxTokens)
	}
	if req.Schema != nil {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:        req.Schema.Name,
					Description: openai.String(req.Schema.Description),
					Schema:      req.Schema.Schema,
					Strict:      openai.Bool(true),
				},
			},
		}
	}

	ctxzap.Debug(ctx, "requesting chat completion",
		zap.String("model", c.config.Model),
		zap.Int64("max_tokens", req.MaxTokens),
		zap.Bool("structured", req.Schema != nil),
	)

	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("chat completion failed with status %d: %w", apiErr.StatusCode, err)
		}
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	content := strings.TrimSpace(completion.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("chat completion returned empty content")
	}

	ctxzap.Info(ctx, "chat completion received",
		zap.Int("content_length", len(content)),
		zap.Int64("total_tokens", completion.Usage.TotalTokens),
	)

	return content, nil
}
