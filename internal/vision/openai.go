package vision

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIProvider queries a GPT-4o-class vision model, grounded on
// internal/agent/ai/api_openai.go's client construction pattern.
type OpenAIProvider struct {
	client openai.Client
	model  openai.ChatModel
}

// NewOpenAIProvider builds a provider for the given model name (e.g.
// "gpt-4o").
func NewOpenAIProvider(apiKey, model string) *OpenAIProvider {
	return &OpenAIProvider{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  openai.ChatModel(model),
	}
}

func (p *OpenAIProvider) Name() string { return "openai:" + string(p.model) }

// Query sends imageJPEG and prompt as a single user turn at low
// temperature, per spec.md §4.7.
func (p *OpenAIProvider) Query(ctx context.Context, imageJPEG []byte, prompt string) (string, error) {
	dataURL := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(imageJPEG)

	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       p.model,
		Temperature: openai.Float(0.1),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart(prompt),
				openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
					URL: dataURL,
				}),
			}),
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: empty response")
	}
	return resp.Choices[0].Message.Content, nil
}
