package providers

import (
	"errors"
	"strings"
)

var (
	ErrMissingAPIKey = errors.New("groq api key missing: set GROQ_API_KEY")
	ErrEmptyResponse = errors.New("provider returned empty choices")
)

type ErrorType string

const (
	ErrorAuth      ErrorType = "auth"
	ErrorQuota     ErrorType = "quota"
	ErrorRate      ErrorType = "rate"
	ErrorTransient ErrorType = "transient"
	ErrorPermanent ErrorType = "permanent"
	ErrorContext   ErrorType = "context"
)

func ClassifyError(err error) ErrorType {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrMissingAPIKey) {
		return ErrorAuth
	}
	e := strings.ToLower(err.Error())
	switch {
	case strings.Contains(e, "401"), strings.Contains(e, "unauthorized"), strings.Contains(e, "invalid_api_key"), strings.Contains(e, "api key"):
		return ErrorAuth
	case strings.Contains(e, "quota"), strings.Contains(e, "credit"), strings.Contains(e, "insufficient_quota"):
		return ErrorQuota
	case strings.Contains(e, "rate limit"), strings.Contains(e, "rate_limit"), strings.Contains(e, "429"):
		return ErrorRate
	case strings.Contains(e, "context length"), strings.Contains(e, "too long"), strings.Contains(e, "context_length_exceeded"):
		return ErrorContext
	case strings.Contains(e, "timeout"), strings.Contains(e, "deadline"), strings.Contains(e, "temporarily"), strings.Contains(e, "unavailable"), strings.Contains(e, "connection refused"):
		return ErrorTransient
	default:
		return ErrorPermanent
	}
}
