package trace

import (
	"context"
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// context key type stays unexported so callers go through the helpers.
type ctxKey string

const ctxKeyTrace ctxKey = "trace_info"

// Info carries the tracing state of one HTTP request.
// RequestID is unique per request; spanSeq increments for each outbound
// call made while serving it.
type Info struct {
	RequestID string
	spanSeq   int64
}

// GenerateID returns a fresh request id.
func GenerateID() string {
	return uuid.NewString()
}

// WithRequestAndSpan stores the request id and initial span value
// (normally 0) in a new context.
func WithRequestAndSpan(ctx context.Context, requestID string, initialSpan int64) context.Context {
	info := &Info{RequestID: requestID, spanSeq: initialSpan}
	return context.WithValue(ctx, ctxKeyTrace, info)
}

func infoFromContext(ctx context.Context) *Info {
	if ctx == nil {
		return nil
	}
	v, _ := ctx.Value(ctxKeyTrace).(*Info)
	return v
}

// CurrentSpanID returns the current span sequence value without
// incrementing it.
func CurrentSpanID(ctx context.Context) string {
	info := infoFromContext(ctx)
	if info == nil {
		return "0"
	}
	val := atomic.LoadInt64(&info.spanSeq)
	if val <= 0 {
		return "0"
	}
	return strconv.FormatInt(val, 10)
}

// NextSpanID increments the span sequence and returns (requestID, spanID).
func NextSpanID(ctx context.Context) (string, string) {
	info := infoFromContext(ctx)
	if info == nil {
		// fallback when used outside the middleware
		return GenerateID(), "1"
	}
	val := atomic.AddInt64(&info.spanSeq, 1)
	if val <= 0 {
		val = 1
	}
	return info.RequestID, strconv.FormatInt(val, 10)
}
