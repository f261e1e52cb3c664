package bootstrap

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/yanqian/ai-horoscope/internal/infra/config"
	"github.com/yanqian/ai-horoscope/pkg/logger"
)

func TestRunStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}
	app := NewApp(&config.Config{LLM: config.LLMConfig{Provider: config.ProviderOpenAI}}, logger.Discard(), server)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
}

func TestRunReportsListenErrors(t *testing.T) {
	server := &http.Server{Addr: "256.0.0.1:bad", Handler: http.NotFoundHandler()}
	app := NewApp(&config.Config{}, logger.Discard(), server)
	require.Error(t, app.Run(context.Background()))
}
