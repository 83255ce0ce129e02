package summary

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/irbrowse/core/internal/config"
	"github.com/irbrowse/core/internal/pkg/apperr"
)

// Generator produces a summary for a document text. It is stateless; caching
// and deduplication live in the Cache.
type Generator interface {
	Generate(ctx context.Context, documentText string) (string, error)
}

// OpenAIGenerator talks to an OpenAI-compatible chat-completions endpoint
// with a fixed prompt template. No automatic retries; retry policy belongs to
// the caller.
type OpenAIGenerator struct {
	client  openai.Client
	model   string
	prompt  string
	timeout time.Duration
}

func NewOpenAIGenerator(cfg config.LLMConfig) *OpenAIGenerator {
	client := openai.NewClient(
		option.WithBaseURL(cfg.BaseURL()),
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	)
	return &OpenAIGenerator{
		client:  client,
		model:   cfg.Model,
		prompt:  cfg.PromptTemplate,
		timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
	}
}

func (g *OpenAIGenerator) Generate(ctx context.Context, documentText string) (string, error) {
	prompt := strings.ReplaceAll(g.prompt, config.PromptPlaceholder, documentText)

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", classifyGeneratorError(err)
	}

	if len(resp.Choices) == 0 {
		return "", apperr.E(apperr.KindGeneratorUnavailable, "text-generation service returned no completion")
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", apperr.E(apperr.KindGeneratorUnavailable, "text-generation service returned an empty summary")
	}
	return text, nil
}

func classifyGeneratorError(err error) error {
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return apperr.Wrap(apperr.KindGeneratorTimeout, "summary generation timed out", err)
	}
	return apperr.Wrap(apperr.KindGeneratorUnavailable, "text-generation service unavailable", err)
}
