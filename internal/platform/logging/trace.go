package logging

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
)

const traceparentHeader = "traceparent"

// W3C Trace Context: {version}-{trace-id}-{parent-id}-{trace-flags}
var traceparentRe = regexp.MustCompile(
	`^([0-9a-f]{2})-([0-9a-f]{32})-([0-9a-f]{16})-([0-9a-f]{2})$`,
)

// traceContext is the parsed form of a traceparent header.
type traceContext struct {
	TraceID string
	SpanID  string
	Sampled bool
}

// parseTraceparent parses a W3C traceparent header. Version ff and all-zero
// trace or parent IDs are invalid.
func parseTraceparent(header string) (traceContext, bool) {
	m := traceparentRe.FindStringSubmatch(strings.ToLower(strings.TrimSpace(header)))
	if m == nil {
		return traceContext{}, false
	}
	if m[1] == "ff" || strings.Trim(m[2], "0") == "" || strings.Trim(m[3], "0") == "" {
		return traceContext{}, false
	}
	flags, err := strconv.ParseUint(m[4], 16, 8)
	if err != nil {
		return traceContext{}, false
	}
	return traceContext{
		TraceID: m[2],
		SpanID:  m[3],
		Sampled: flags&1 == 1,
	}, true
}

func traceAttrs(header string) []slog.Attr {
	tc, ok := parseTraceparent(header)
	if !ok {
		return nil
	}
	return []slog.Attr{
		slog.String("traceId", tc.TraceID),
		slog.String("spanId", tc.SpanID),
		slog.Bool("traceSampled", tc.Sampled),
	}
}

func loggerWithTrace(base *slog.Logger, header, requestID string) *slog.Logger {
	attrs := traceAttrs(header)
	if requestID != "" {
		attrs = append(attrs, slog.String("requestId", requestID))
	}
	if len(attrs) == 0 {
		return base
	}
	args := make([]any, len(attrs))
	for i, a := range attrs {
		args[i] = a
	}
	return base.With(args...)
}
