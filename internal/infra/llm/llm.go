// Package llm holds what the provider adapters share.
package llm

import (
	"context"
	"net/http"

	"github.com/yanqian/ai-horoscope/internal/domain/horoscope"
	apperrors "github.com/yanqian/ai-horoscope/pkg/errors"
)

// Disabled stands in for a provider when no credential is configured.
type Disabled struct {
	Provider string
}

// Generate always reports the generator as unavailable.
func (d Disabled) Generate(context.Context, horoscope.Prompt) (horoscope.Generation, error) {
	return horoscope.Generation{}, apperrors.Wrap(apperrors.CodeLLMUnavailable, d.Provider+" credential not configured", nil)
}

// UnavailableStatus reports whether an upstream status means the generator
// cannot serve requests right now (quota, rate limit or credential).
func UnavailableStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests, http.StatusUnauthorized, http.StatusForbidden:
		return true
	}
	return false
}

// Classify wraps a provider error with llm_unavailable or llm_error.
func Classify(provider string, err error, unavailable bool) error {
	if unavailable {
		return apperrors.Wrap(apperrors.CodeLLMUnavailable, provider+" unavailable", err)
	}
	return apperrors.Wrap(apperrors.CodeLLMError, provider+" request failed", err)
}

var _ horoscope.Generator = Disabled{}
