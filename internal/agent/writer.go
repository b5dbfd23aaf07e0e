// Package agent holds the stock mission agents: minimal implementations of
// mission.Agent that ship with the system, grounded on
// original_source/agents/writer_agent.py and poster_agent.py.
package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/silvermark/agentos/internal/memory"
)

// PostContentKey is the well-known Memory key the Writer writes to and the
// Poster reads from, per spec.md §3's Memory well-known keys.
const PostContentKey = "post_content"

// Writer generates post content and stores it in Memory, rather than
// driving the browser itself: content generation is split from
// Brain-driven delegation (Writer generates content, Poster delegates to
// the Brain).
//
// original_source/agents/writer_agent.py asked Gemini for trending hashtags
// and built a tweet around them; the concrete prompt-to-provider wiring is
// out of scope here (spec.md §1 names "per-agent domain prompts" as an
// external collaborator), so Writer composes from a supplied topic line
// instead of calling a model directly.
type Writer struct {
	name        string
	memory      *memory.Store
	taskContext string

	// Topic seeds the generated content. When empty, Writer falls back to
	// the default topic "#AI #BuildWithAI".
	Topic string
}

// NewWriter builds a Writer bound to store.
func NewWriter(name string, store *memory.Store) *Writer {
	return &Writer{name: name, memory: store}
}

// SetTaskContext implements mission.TaskContextSetter.
func (w *Writer) SetTaskContext(taskContext string) {
	w.taskContext = taskContext
}

// Run composes post content and writes it to Memory under PostContentKey.
// A timestamp watermark is appended so repeated runs produce distinguishable
// content — the one feature of writer_agent.py's think() this
// implementation keeps: a " [HH:MM:SS]" suffix on the generated text.
func (w *Writer) Run(ctx context.Context) error {
	topic := w.Topic
	if topic == "" {
		topic = "#AI #BuildWithAI"
	}

	content := fmt.Sprintf("Let's rise and lead the change. %s [%s]", topic, time.Now().Format("15:04:05"))

	if err := w.memory.Set(PostContentKey, content); err != nil {
		return fmt.Errorf("writer: save %s: %w", PostContentKey, err)
	}
	return nil
}
