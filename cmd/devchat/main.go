package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"devchatClient/cmd/app"
	"devchatClient/internal/cli"
	"devchatClient/internal/config"
	"devchatClient/internal/logger"
)

func main() {
	cfg := config.LoadCLIConfig()

	// stdout belongs to the command output; logs only matter when asked for
	if cfg.LogLevel == "debug" {
		if _, err := logger.Init(cfg.LogLevel); err != nil {
			log.Fatalf("failed to initialize logger: %v", err)
		}
		defer logger.Sync()
	}

	st, store, services, err := app.App(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	root := cli.New(services, store, cfg, os.Stdin, os.Stdout).NewRootCommand()
	err = root.ExecuteContext(ctx)

	stop()
	st.Close()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
