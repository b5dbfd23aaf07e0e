package gateway

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silvermark/agentos/internal/browser"
	"github.com/silvermark/agentos/internal/display"
	"github.com/silvermark/agentos/internal/supervisor"
	"github.com/silvermark/agentos/internal/vision"
)

type fakeBrowser struct {
	url        string
	navigated  string
	actionable bool
	actErr     error
	typedInto  string
	typedText  string
	typeErr    error
}

func (f *fakeBrowser) Navigate(url string) error {
	f.navigated = url
	return nil
}
func (f *fakeBrowser) CurrentURL() string { return f.url }
func (f *fakeBrowser) IsActionable(selector string) (bool, error) {
	return f.actionable, f.actErr
}
func (f *fakeBrowser) Type(selector, text string) error {
	if f.typeErr != nil {
		return f.typeErr
	}
	f.typedInto, f.typedText = selector, text
	return nil
}

type fakeInput struct {
	clickX, clickY int
	clicked        bool
	typed          string
}

func (f *fakeInput) Click(_ context.Context, x, y int) error {
	f.clickX, f.clickY, f.clicked = x, y, true
	return nil
}
func (f *fakeInput) Type(_ context.Context, text string) error {
	f.typed = text
	return nil
}

type fakeVision struct{ decision vision.Decision }

func (f *fakeVision) QueryDecision(_ context.Context, _ []byte, _ string) vision.Decision {
	return f.decision
}

type fakePerception struct{}

func (fakePerception) PixelFrame() []byte { return []byte("frame") }

func newTestGateway(b *fakeBrowser, in *fakeInput, v *fakeVision, hosts []string) *Gateway {
	sup := supervisor.New(v)
	ctx := display.Context{ScalingFactor: 2.0, PhysicalWidth: 1920, PhysicalHeight: 1080}
	return New(b, in, sup, ctx, hosts)
}

func TestTranslateRectFormula(t *testing.T) {
	ctx := display.Context{ScalingFactor: 2.0, PhysicalWidth: 1920, PhysicalHeight: 1080}
	rect := browser.Rect{X: 100, Y: 200, W: 40, H: 20}

	x, y := TranslateRect(rect, ctx)
	// center = (100+20, 200+10) = (120, 210); /2.0 scale = (60, 105)
	assert.Equal(t, 60, x)
	assert.Equal(t, 105, y)
}

func TestTranslateRectClampsToMonitor(t *testing.T) {
	ctx := display.Context{ScalingFactor: 1.0, PhysicalWidth: 100, PhysicalHeight: 100}
	rect := browser.Rect{X: 1000, Y: 1000, W: 10, H: 10}

	x, y := TranslateRect(rect, ctx)
	assert.Equal(t, 99, x)
	assert.Equal(t, 99, y)
}

func TestRequestActionBrowseNavigates(t *testing.T) {
	b := &fakeBrowser{url: "https://example.com"}
	in := &fakeInput{}
	g := newTestGateway(b, in, &fakeVision{}, nil)

	ok := g.RequestAction(context.Background(), "writer", ActionBrowse, "https://news.example.com", "", "read the news", nil, nil)
	require.True(t, ok)
	assert.Equal(t, "https://news.example.com", b.navigated)
}

func TestRequestActionClickWebBlockedWhenNotActionable(t *testing.T) {
	b := &fakeBrowser{url: "https://example.com", actionable: false}
	in := &fakeInput{}
	v := &fakeVision{decision: vision.Decision{Decision: "Yes"}}
	g := newTestGateway(b, in, v, nil)

	ok := g.RequestAction(context.Background(), "poster", ActionClickWeb, "", "", "submit the post",
		&ClickTarget{Selector: "#submit", Rect: browser.Rect{X: 0, Y: 0, W: 10, H: 10}}, fakePerception{})
	assert.False(t, ok)
	assert.False(t, in.clicked)
}

func TestRequestActionClickWebStubbornHostSkipsActionabilityCheck(t *testing.T) {
	b := &fakeBrowser{url: "https://x.com/compose", actionable: false}
	in := &fakeInput{}
	v := &fakeVision{decision: vision.Decision{Decision: "Yes"}}
	g := newTestGateway(b, in, v, nil)

	ok := g.RequestAction(context.Background(), "poster", ActionClickWeb, "", "", "submit the post",
		&ClickTarget{Selector: "#submit", Rect: browser.Rect{X: 0, Y: 0, W: 10, H: 10}}, fakePerception{})
	assert.True(t, ok)
	assert.True(t, in.clicked)
}

func TestRequestActionClickWebBlockedByVisionDenies(t *testing.T) {
	b := &fakeBrowser{url: "https://example.com", actionable: true}
	in := &fakeInput{}
	v := &fakeVision{decision: vision.Decision{Decision: "No"}}
	g := newTestGateway(b, in, v, nil)

	ok := g.RequestAction(context.Background(), "poster", ActionClickWeb, "", "", "submit the post",
		&ClickTarget{Selector: "#submit", Rect: browser.Rect{X: 0, Y: 0, W: 10, H: 10}}, fakePerception{})
	assert.False(t, ok)
	assert.False(t, in.clicked)
}

func TestRequestActionClickWebTranslatesCoordinates(t *testing.T) {
	b := &fakeBrowser{url: "https://example.com", actionable: true}
	in := &fakeInput{}
	v := &fakeVision{decision: vision.Decision{Decision: "Yes"}}
	g := newTestGateway(b, in, v, nil)

	ok := g.RequestAction(context.Background(), "poster", ActionClickWeb, "", "", "submit the post",
		&ClickTarget{Selector: "#submit", Rect: browser.Rect{X: 100, Y: 200, W: 40, H: 20}}, fakePerception{})
	require.True(t, ok)
	assert.Equal(t, 60, in.clickX)
	assert.Equal(t, 105, in.clickY)
}

func TestRequestActionRawClickParsesAndClamps(t *testing.T) {
	b := &fakeBrowser{url: "https://example.com"}
	in := &fakeInput{}
	g := newTestGateway(b, in, &fakeVision{}, nil)

	ok := g.RequestAction(context.Background(), "poster", ActionClick, "5000,5000", "", "read the news", nil, nil)
	require.True(t, ok)
	assert.Equal(t, 1919, in.clickX)
	assert.Equal(t, 1079, in.clickY)
}

func TestRequestActionRawClickRejectsMalformedValue(t *testing.T) {
	b := &fakeBrowser{url: "https://example.com"}
	in := &fakeInput{}
	g := newTestGateway(b, in, &fakeVision{}, nil)

	ok := g.RequestAction(context.Background(), "poster", ActionClick, "not-coordinates", "", "read the news", nil, nil)
	assert.False(t, ok)
	assert.False(t, in.clicked)
}

func TestRequestActionTypeTextLowRisk(t *testing.T) {
	b := &fakeBrowser{url: "https://example.com"}
	in := &fakeInput{}
	g := newTestGateway(b, in, &fakeVision{}, nil)

	ok := g.RequestAction(context.Background(), "writer", ActionTypeText, "hello world", "", "write a greeting", nil, nil)
	require.True(t, ok)
	assert.Equal(t, "hello world", in.typed)
}

func TestRequestActionTypeWebFillsSelector(t *testing.T) {
	b := &fakeBrowser{url: "https://example.com"}
	in := &fakeInput{}
	g := newTestGateway(b, in, &fakeVision{}, nil)

	ok := g.RequestAction(context.Background(), "writer", ActionTypeWeb, "hello world", "[data-testid='tweetTextarea_0']", "write a greeting", nil, nil)
	require.True(t, ok)
	assert.Equal(t, "[data-testid='tweetTextarea_0']", b.typedInto)
	assert.Equal(t, "hello world", b.typedText)
}
