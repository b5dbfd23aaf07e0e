package perception

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silvermark/agentos/internal/browser"
)

func TestContentHashStableForSameInput(t *testing.T) {
	dom := []browser.DomNode{
		{Tag: "button", Text: "Submit", Rect: browser.Rect{X: 1, Y: 2, W: 10, H: 5}},
	}

	h1, err := ContentHash("https://example.com", dom)
	require.NoError(t, err)
	h2, err := ContentHash("https://example.com", dom)
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
}

func TestContentHashChangesWithDOM(t *testing.T) {
	dom1 := []browser.DomNode{{Tag: "button", Text: "Submit"}}
	dom2 := []browser.DomNode{{Tag: "button", Text: "Cancel"}}

	h1, err := ContentHash("https://example.com", dom1)
	require.NoError(t, err)
	h2, err := ContentHash("https://example.com", dom2)
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}

func TestContentHashChangesWithURL(t *testing.T) {
	dom := []browser.DomNode{{Tag: "a", Text: "link"}}

	h1, err := ContentHash("https://example.com/a", dom)
	require.NoError(t, err)
	h2, err := ContentHash("https://example.com/b", dom)
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}
