package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapAndCode(t *testing.T) {
	cause := fmt.Errorf("status=503")
	err := Wrap(CodeGeocodingError, "Geocoding service error", cause)

	require.True(t, IsCode(err, CodeGeocodingError))
	require.False(t, IsCode(err, CodeInvalidInput))
	require.ErrorIs(t, err, cause)
	require.Equal(t, "Geocoding service error: status=503", err.Error())
	require.Equal(t, "Geocoding service error", MessageOf(err))
}

func TestCodeOfWrappedChain(t *testing.T) {
	inner := Wrap(CodeLLMUnavailable, "llm credential missing", nil)
	outer := fmt.Errorf("generate: %w", inner)

	require.Equal(t, CodeLLMUnavailable, CodeOf(outer))
	require.Equal(t, "", CodeOf(fmt.Errorf("plain")))
	require.Equal(t, "plain", MessageOf(fmt.Errorf("plain")))
}
