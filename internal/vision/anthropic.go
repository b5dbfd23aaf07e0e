package vision

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicProvider queries a Claude vision model, grounded on
// internal/agent/ai/api_anthropic.go's client construction
// (anthropic.NewClient(option.WithAPIKey(...))) adapted for a single-shot
// image+text message instead of a streaming chat.
type AnthropicProvider struct {
	client anthropic.Client
	model  anthropic.Model
}

// NewAnthropicProvider builds a provider for the given model name (e.g.
// "claude-3-5-sonnet-latest").
func NewAnthropicProvider(apiKey, model string) *AnthropicProvider {
	return &AnthropicProvider{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  anthropic.Model(model),
	}
}

func (p *AnthropicProvider) Name() string { return "anthropic:" + string(p.model) }

// Query sends imageJPEG and prompt as a single user turn at low
// temperature, per spec.md §4.7.
func (p *AnthropicProvider) Query(ctx context.Context, imageJPEG []byte, prompt string) (string, error) {
	encoded := base64.StdEncoding.EncodeToString(imageJPEG)

	temperature := 0.1
	msg, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       p.model,
		MaxTokens:   1024,
		Temperature: anthropic.Float(temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewImageBlockBase64("image/jpeg", encoded),
				anthropic.NewTextBlock(prompt),
			),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic: %w", err)
	}

	var text string
	for _, block := range msg.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	if text == "" {
		return "", fmt.Errorf("anthropic: empty response")
	}
	return text, nil
}
