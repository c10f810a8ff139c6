// Package logging installs the process-wide slog logger: a text handler for
// diagnostics and, when a Seq URL is configured, a Seq sink fed from the same
// records.
package logging

import (
	"context"
	"io"
	"log/slog"
	"time"

	slogseq "github.com/sokkalf/slog-seq"
)

// multiHandler forwards log records to multiple handlers.
type multiHandler struct {
	handlers []slog.Handler
}

func (m *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.handlers {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			return err
		}
	}
	return nil
}

func (m *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithAttrs(attrs)
	}
	return &multiHandler{handlers: handlers}
}

func (m *multiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithGroup(name)
	}
	return &multiHandler{handlers: handlers}
}

// Options configures Setup.
type Options struct {
	// Verbose lowers the level from Info to Debug.
	Verbose bool
	// SeqURL enables the Seq sink when non-empty, e.g. "http://localhost:5341".
	SeqURL string
}

// Setup builds the logger, installs it with slog.SetDefault and returns it
// with a cleanup function that flushes the Seq sink. Diagnostics go to w.
func Setup(w io.Writer, opt Options) (*slog.Logger, func()) {
	level := slog.LevelInfo
	if opt.Verbose {
		level = slog.LevelDebug
	}
	hopts := &slog.HandlerOptions{Level: level}
	console := slog.NewTextHandler(w, hopts)

	logger, cleanup := slog.New(console), func() {}
	if opt.SeqURL != "" {
		_, seqHandler := slogseq.NewLogger(
			opt.SeqURL,
			slogseq.WithBatchSize(50),
			slogseq.WithFlushInterval(500*time.Millisecond),
			slogseq.WithHandlerOptions(hopts),
		)
		if seqHandler != nil {
			logger = slog.New(&multiHandler{handlers: []slog.Handler{console, seqHandler}})
			cleanup = func() { seqHandler.Close() }
		}
	}

	slog.SetDefault(logger)
	return logger, cleanup
}
