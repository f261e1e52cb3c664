package llm

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/ai-horoscope/internal/domain/horoscope"
	apperrors "github.com/yanqian/ai-horoscope/pkg/errors"
)

func TestDisabledIsUnavailable(t *testing.T) {
	_, err := Disabled{Provider: "openai"}.Generate(context.Background(), horoscope.Prompt{})
	require.True(t, apperrors.IsCode(err, apperrors.CodeLLMUnavailable))
	require.Contains(t, err.Error(), "openai")
}

func TestUnavailableStatus(t *testing.T) {
	require.True(t, UnavailableStatus(http.StatusTooManyRequests))
	require.True(t, UnavailableStatus(http.StatusUnauthorized))
	require.True(t, UnavailableStatus(http.StatusForbidden))
	require.False(t, UnavailableStatus(http.StatusInternalServerError))
	require.False(t, UnavailableStatus(http.StatusBadRequest))
}

func TestClassify(t *testing.T) {
	cause := errors.New("boom")
	err := Classify("gemini", cause, false)
	require.True(t, apperrors.IsCode(err, apperrors.CodeLLMError))
	require.ErrorIs(t, err, cause)
	require.True(t, apperrors.IsCode(Classify("gemini", cause, true), apperrors.CodeLLMUnavailable))
}
