package logger

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/i18nurl/pkg/locale"
)

// LocaleExtractor adds the request locale resolved by the locale middleware.
func LocaleExtractor() ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		l, ok := locale.FromContext(ctx)
		if !ok {
			return slog.Attr{}, false
		}
		return slog.String("locale", l), true
	}
}

// StaticExtractor always adds key=value. Useful for a component name.
func StaticExtractor(key, value string) ContextExtractor {
	return func(context.Context) (slog.Attr, bool) {
		return slog.String(key, value), true
	}
}
