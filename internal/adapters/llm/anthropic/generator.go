package anthropic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

var (
	ErrNotConfigured = errors.New("anthropic api key not configured")
	ErrUpstream      = errors.New("anthropic upstream error")
	ErrEmptyResponse = errors.New("anthropic returned no text")
)

const DefaultModel = "claude-sonnet-4-20250514"

type Config struct {
	APIKey  string
	Model   string
	Timeout time.Duration
	// BaseURL solo para tests.
	BaseURL string
}

// Generator implementa llm.Generator con una única llamada a Messages.New.
type Generator struct {
	client  anthropic.Client
	model   string
	timeout time.Duration
}

func NewGenerator(cfg Config) (*Generator, error) {
	key := strings.TrimSpace(cfg.APIKey)
	if key == "" {
		return nil, ErrNotConfigured
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}

	opts := []option.RequestOption{
		option.WithAPIKey(key),
		option.WithMaxRetries(0),
	}
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		opts = append(opts, option.WithBaseURL(base))
	}

	return &Generator{
		client:  anthropic.NewClient(opts...),
		model:   model,
		timeout: cfg.Timeout,
	}, nil
}

// Generate devuelve la concatenación de los bloques de texto de la respuesta.
func (g *Generator) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if g == nil {
		return "", ErrNotConfigured
	}
	if maxTokens <= 0 {
		maxTokens = 2000
	}
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	msg, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(g.model),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", ErrEmptyResponse
	}
	return b.String(), nil
}
