package gemini

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/yanqian/ai-horoscope/internal/domain/horoscope"
	apperrors "github.com/yanqian/ai-horoscope/pkg/errors"
)

func TestGenerateReturnsCandidateText(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"Stars align."}]}}],
			"usageMetadata":{"promptTokenCount":9,"candidatesTokenCount":3,"totalTokenCount":12}}`)
	}))
	defer srv.Close()

	client, err := NewClient(context.Background(), Config{APIKey: "test", BaseURL: srv.URL, Model: "gemini-2.0-flash", Temperature: 0.85, MaxTokens: 260})
	require.NoError(t, err)

	gen, err := client.Generate(context.Background(), horoscope.Prompt{System: "sys", User: "usr"})
	require.NoError(t, err)
	require.Equal(t, "Stars align.", gen.Text)
	require.Equal(t, 12, gen.Usage.TotalTokens)
	require.True(t, strings.HasSuffix(path, "gemini-2.0-flash:generateContent"), path)
}

func TestNewClientReplacesForeignModel(t *testing.T) {
	client, err := NewClient(context.Background(), Config{APIKey: "test", Model: "gpt-4o-mini"})
	require.NoError(t, err)
	require.Equal(t, defaultModel, client.cfg.Model)
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code string
	}{
		{name: "exhausted", err: genai.APIError{Code: 429, Status: "RESOURCE_EXHAUSTED"}, code: apperrors.CodeLLMUnavailable},
		{name: "wrapped pointer", err: fmt.Errorf("call: %w", &genai.APIError{Code: 403, Status: "PERMISSION_DENIED"}), code: apperrors.CodeLLMUnavailable},
		{name: "server", err: genai.APIError{Code: 500, Status: "INTERNAL"}, code: apperrors.CodeLLMError},
		{name: "transport", err: errors.New("dial tcp: refused"), code: apperrors.CodeLLMError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.True(t, apperrors.IsCode(classify(tc.err), tc.code))
		})
	}
}
