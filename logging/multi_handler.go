package logging

import (
	"context"
	"errors"
	"log/slog"
)

// multiHandler 将同一条记录分发给多个 Handler，单个目标写入失败不影响其他目标。
type multiHandler []slog.Handler

func newMultiHandler(handlers ...slog.Handler) slog.Handler {
	return multiHandler(handlers)
}

func (h multiHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	for _, handler := range h {
		if handler.Enabled(ctx, lvl) {
			return true
		}
	}
	return false
}

// Handle 只写入对该级别启用的目标，每个目标拿到独立的记录副本。
func (h multiHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, handler := range h {
		if !handler.Enabled(ctx, record.Level) {
			continue
		}
		if err := handler.Handle(ctx, record.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (h multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.derive(func(handler slog.Handler) slog.Handler { return handler.WithAttrs(attrs) })
}

func (h multiHandler) WithGroup(name string) slog.Handler {
	return h.derive(func(handler slog.Handler) slog.Handler { return handler.WithGroup(name) })
}

func (h multiHandler) derive(fn func(slog.Handler) slog.Handler) multiHandler {
	out := make(multiHandler, 0, len(h))
	for _, handler := range h {
		out = append(out, fn(handler))
	}
	return out
}
