// Package vision implements the Vision Client described in spec.md §4.7: a
// single multimodal query wrapper that tries an ordered list of model
// providers, falling through to the next on failure, and tolerantly
// extracts a decision JSON object out of whatever prose the model returns.
//
// Grounded on the teacher's internal/agent/ai package: Provider is a
// trimmed analog of ai.Provider (one-shot query instead of streaming
// chat), and the ordered-fallback behavior is adapted from
// ai.ModelSelector.SelectWithExclusions in internal/agent/ai/selector.go,
// simplified to a flat list since spec.md has no task-classification or
// cooldown/backoff requirement.
package vision

import (
	"context"
	"errors"
	"fmt"

	"github.com/silvermark/agentos/internal/logging"
)

// Provider performs a single multimodal query: an image plus a text prompt,
// returning the model's raw text response.
type Provider interface {
	Name() string
	Query(ctx context.Context, imageJPEG []byte, prompt string) (string, error)
}

// Client tries each Provider in order, returning the first successful
// response. An empty provider list is a configuration error.
type Client struct {
	providers []Provider
}

// NewClient builds a Client over providers, in fallback priority order.
func NewClient(providers ...Provider) (*Client, error) {
	if len(providers) == 0 {
		return nil, errors.New("vision: at least one provider is required")
	}
	return &Client{providers: providers}, nil
}

// ErrAllProvidersFailed is returned when every provider in the chain
// failed. Callers in the Supervisor/Brain treat this the same as a "No" /
// FAIL verdict per spec.md §7 (VisionUnavailable).
var ErrAllProvidersFailed = errors.New("vision: all providers failed")

// Query sends imageJPEG and prompt to each provider in order, at low
// temperature per spec.md §4.7, returning the first successful raw text
// response.
func (c *Client) Query(ctx context.Context, imageJPEG []byte, prompt string) (string, error) {
	var errs []error
	for _, p := range c.providers {
		text, err := p.Query(ctx, imageJPEG, prompt)
		if err != nil {
			logging.Warnf("vision: provider %s failed: %v", p.Name(), err)
			errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
			continue
		}
		return text, nil
	}
	return "", fmt.Errorf("%w: %v", ErrAllProvidersFailed, errors.Join(errs...))
}

// QueryDecision sends prompt and imageJPEG and parses the response into a
// Decision, tolerating any surrounding prose or code fences per spec.md
// §4.7. A parse failure or an all-providers failure both map to a "No"
// verdict with a diagnostic reason, matching the ParseFailure/
// VisionUnavailable error-kinds in spec.md §7.
func (c *Client) QueryDecision(ctx context.Context, imageJPEG []byte, prompt string) Decision {
	text, err := c.Query(ctx, imageJPEG, prompt)
	if err != nil {
		return Decision{Decision: "No", Reason: fmt.Sprintf("vision unavailable: %v", err)}
	}

	decision, err := ParseDecision(text)
	if err != nil {
		return Decision{Decision: "No", Reason: fmt.Sprintf("could not parse vision response: %v", err)}
	}
	return decision
}
