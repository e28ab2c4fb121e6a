package llm

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// classifyHTTPError maps a transport error or non-2xx status into a
// closed Error. body is the raw response payload, may be empty.
func classifyHTTPError(err error, status int, body string) *Error {
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return newError(KindTimeout, "request timed out", err)
		}
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline") {
			return newError(KindTimeout, "request timed out", err)
		}
		return newError(KindUnavailable, "request failed", err)
	}

	switch {
	case status == http.StatusTooManyRequests:
		return newError(KindRateLimited, "rate limit exceeded", nil)
	case status == http.StatusRequestEntityTooLarge:
		return newError(KindContextExceeded, "request too large", nil)
	case status == http.StatusBadGateway, status == http.StatusServiceUnavailable, status == http.StatusGatewayTimeout:
		return newError(KindUnavailable, "upstream unavailable", nil)
	case status == http.StatusRequestTimeout:
		return newError(KindTimeout, "request timed out", nil)
	case status >= 400:
		if strings.Contains(strings.ToLower(body), "context") && strings.Contains(strings.ToLower(body), "length") {
			return newError(KindContextExceeded, "context window exceeded", nil)
		}
		return newError(KindUnknown, "non-2xx response: "+body, nil)
	default:
		return nil
	}
}

// isRetryable reports whether an Error's Kind warrants a retry.
func isRetryable(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	switch e.Kind {
	case KindTimeout, KindUnavailable, KindRateLimited:
		return true
	default:
		return false
	}
}
