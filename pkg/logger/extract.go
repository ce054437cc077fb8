package logger

import (
	"context"
	"log/slog"
)

// ContextExtractor reports an attribute carried by ctx, if any.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// extractingHandler appends extractor attributes to each record at Handle
// time, so values set on the context after the logger was built still show.
type extractingHandler struct {
	slog.Handler
	extractors []ContextExtractor
}

func withExtractors(h slog.Handler, extractors []ContextExtractor) slog.Handler {
	if len(extractors) == 0 {
		return h
	}
	return extractingHandler{Handler: h, extractors: extractors}
}

func (h extractingHandler) Handle(ctx context.Context, rec slog.Record) error {
	for _, extract := range h.extractors {
		if attr, ok := extract(ctx); ok {
			rec.AddAttrs(attr)
		}
	}
	return h.Handler.Handle(ctx, rec)
}

func (h extractingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return extractingHandler{Handler: h.Handler.WithAttrs(attrs), extractors: h.extractors}
}

func (h extractingHandler) WithGroup(name string) slog.Handler {
	return extractingHandler{Handler: h.Handler.WithGroup(name), extractors: h.extractors}
}
