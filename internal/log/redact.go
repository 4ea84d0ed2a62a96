package log

import (
	"context"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
)

// MaskValue replaces sensitive values.
const MaskValue = "***REDACTED***"

// sensitiveKeys are attribute keys whose values are always masked.
var sensitiveKeys = map[string]bool{
	"authorization":       true,
	"proxy-authorization": true,
	"cookie":              true,
	"set-cookie":          true,
	"x-api-key":           true,
	"x-auth-token":        true,
	"api_key":             true,
	"apikey":              true,
	"api-key":             true,
	"session":             true,
	"session_id":          true,
	"sid":                 true,
	"email":               true,
	"signature":           true,
	"sig":                 true,
}

// sensitiveKeywords mask any key containing them. The bare word "key" is
// left out because it matches "sort_key" and friends.
var sensitiveKeywords = []string{
	"password", "passwd", "secret", "token", "auth", "credential", "private",
}

// queryKeys are the attribute keys whose values are parsed as URLs or raw
// query strings so individual parameters can be masked.
var queryKeys = map[string]bool{
	"query": true,
	"url":   true,
	"uri":   true,
	"href":  true,
}

var sensitivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^eyJ[A-Za-z0-9_-]*\.eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*$`),
	regexp.MustCompile(`(?i)^bearer\s+.+`),
	regexp.MustCompile(`(?i)^basic\s+[A-Za-z0-9+/=]+$`),
	regexp.MustCompile(`^[A-Za-z0-9]{32,}$`),
	regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[A-Za-z]{2,}$`),
}

// RedactHandler wraps an slog.Handler. It masks sensitive attributes and
// adds the request ID carried by the context, if any.
type RedactHandler struct {
	handler slog.Handler
}

// NewRedactHandler wraps handler. A nil handler falls back to
// slog.Default().Handler().
func NewRedactHandler(handler slog.Handler) *RedactHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &RedactHandler{handler: handler}
}

// Enabled delegates to the wrapped handler.
func (h *RedactHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle masks the record's attributes and forwards it.
func (h *RedactHandler) Handle(ctx context.Context, r slog.Record) error {
	out := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	hasReqID := false
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "request_id" {
			hasReqID = true
		}
		out.AddAttrs(redactAttr(a))
		return true
	})

	if !hasReqID && ctx != nil {
		if id := middleware.GetReqID(ctx); id != "" {
			out.AddAttrs(slog.String("request_id", id))
		}
	}

	return h.handler.Handle(ctx, out)
}

// WithAttrs masks attrs before attaching them.
func (h *RedactHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	masked := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		masked[i] = redactAttr(a)
	}
	return &RedactHandler{handler: h.handler.WithAttrs(masked)}
}

// WithGroup delegates to the wrapped handler.
func (h *RedactHandler) WithGroup(name string) slog.Handler {
	return &RedactHandler{handler: h.handler.WithGroup(name)}
}

func redactAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		masked := make([]slog.Attr, len(attrs))
		for i, ga := range attrs {
			masked[i] = redactAttr(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(masked...)}
	}

	key := strings.ToLower(a.Key)
	if isSensitiveKey(key) {
		return slog.String(a.Key, MaskValue)
	}

	if a.Value.Kind() != slog.KindString {
		return a
	}
	v := a.Value.String()
	if queryKeys[key] {
		return slog.String(a.Key, redactQuery(v))
	}
	if isSensitiveValue(v) {
		return slog.String(a.Key, MaskValue)
	}
	return a
}

func isSensitiveKey(key string) bool {
	if sensitiveKeys[key] {
		return true
	}
	for _, kw := range sensitiveKeywords {
		if strings.Contains(key, kw) {
			return true
		}
	}
	return false
}

func isSensitiveValue(v string) bool {
	for _, p := range sensitivePatterns {
		if p.MatchString(v) {
			return true
		}
	}
	return false
}

// redactQuery masks sensitive parameters in a URL or a raw query string.
// The path and the remaining parameters are kept. Values that do not parse
// are masked whole when they look sensitive and returned unchanged otherwise.
func redactQuery(s string) string {
	if s == "" {
		return s
	}

	raw := s
	prefix := ""
	if i := strings.IndexByte(s, '?'); i >= 0 {
		prefix, raw = s[:i+1], s[i+1:]
	} else if strings.Contains(s, "://") || strings.HasPrefix(s, "/") {
		return s
	}

	q, err := url.ParseQuery(raw)
	if err != nil {
		if isSensitiveValue(s) {
			return MaskValue
		}
		return s
	}

	changed := false
	for k, vals := range q {
		lk := strings.ToLower(k)
		for i, v := range vals {
			if isSensitiveKey(lk) || isSensitiveValue(v) {
				vals[i] = MaskValue
				changed = true
			}
		}
	}
	if !changed {
		return s
	}
	return prefix + encodeQuery(q)
}

// encodeQuery is url.Values.Encode without escaping the mask, so log
// readers see ***REDACTED*** rather than %2A%2A%2A.
func encodeQuery(q url.Values) string {
	return strings.ReplaceAll(q.Encode(), url.QueryEscape(MaskValue), MaskValue)
}
