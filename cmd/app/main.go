package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/yanqian/ai-horoscope/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "YAML config file, overrides CONFIG_PATH")
	envFile := flag.String("env-file", "", "dotenv file, overrides ENV_FILE")
	flag.Parse()

	os.Exit(run(*configPath, *envFile))
}

func run(configPath, envFile string) int {
	log := logger.New()
	if configPath != "" {
		_ = os.Setenv("CONFIG_PATH", configPath)
	}
	if envFile != "" {
		_ = os.Setenv("ENV_FILE", envFile)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := initializeApp()
	if err != nil {
		log.Error("horoscope service failed to start", "error", err)
		return 1
	}
	if err := app.Run(ctx); err != nil {
		log.Error("horoscope service stopped with error", "error", err)
		return 1
	}
	return 0
}
