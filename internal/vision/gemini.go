package vision

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiProvider queries a Gemini vision model. The teacher's go.mod
// carries google/generative-ai-go as an indirect dependency with no
// provider file actually calling it; this wires it into the third
// fallback tier of the Vision Client. The model name is supplied by the
// caller (cmd/agentos defaults it to "gemini-1.5-pro").
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider builds a provider for the given model name.
func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: new client: %w", err)
	}
	return &GeminiProvider{client: client, model: model}, nil
}

func (p *GeminiProvider) Name() string { return "gemini:" + p.model }

// Query sends imageJPEG and prompt at low temperature, per spec.md §4.7.
func (p *GeminiProvider) Query(ctx context.Context, imageJPEG []byte, prompt string) (string, error) {
	model := p.client.GenerativeModel(p.model)
	temperature := float32(0.1)
	model.Temperature = &temperature

	resp, err := model.GenerateContent(ctx, genai.ImageData("jpeg", imageJPEG), genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini: empty response")
	}

	var text string
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text += string(t)
		}
	}
	if text == "" {
		return "", fmt.Errorf("gemini: no text parts in response")
	}
	return text, nil
}

// Close releases the underlying client connection.
func (p *GeminiProvider) Close() error {
	return p.client.Close()
}
