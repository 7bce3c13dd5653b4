// Package external provides clients for third-party APIs.
package external

import (
	"context"
	"fmt"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const systemPrompt = "You are a knowledgeable baseball historian and writer."

// TextGenerator produces text from a prompt. Implemented by the Anthropic
// client below; faked in tests.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// AnthropicGenerator implements TextGenerator on the official SDK.
type AnthropicGenerator struct {
	client    sdk.Client
	model     string
	maxTokens int64
}

// NewAnthropicGenerator creates a generator. The key is not validated here;
// a missing or bad key surfaces as an upstream failure on the first call.
func NewAnthropicGenerator(apiKey, model string, maxTokens int) *AnthropicGenerator {
	return &AnthropicGenerator{
		client:    sdk.NewClient(option.WithAPIKey(apiKey)),
		model:     model,
		maxTokens: int64(maxTokens),
	}
}

// Generate performs a single completion call and returns the joined text
// content.
func (g *AnthropicGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	msg, err := g.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(g.model),
		MaxTokens: g.maxTokens,
		System: []sdk.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(prompt)),
		},
		Temperature: sdk.Float(0.7),
	})
	if err != nil {
		return "", fmt.Errorf("anthropic message: %w", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("anthropic message: empty completion")
	}
	return text, nil
}
