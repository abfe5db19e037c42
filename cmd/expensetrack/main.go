package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kislikjeka/expensetrack/internal/transport/cli"
	"github.com/kislikjeka/expensetrack/internal/transport/cli/output"
	"github.com/kislikjeka/expensetrack/pkg/config"
	"github.com/kislikjeka/expensetrack/pkg/logger"
)

func main() {
	// Cancel in-flight requests on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Logs go to stderr; stdout carries command output
	log := logger.NewWithFormat(cfg.Env, cfg.LogFormat, os.Stderr)

	output.ResetProcessExitCode()

	if err := cli.NewRootCmd(cfg, log).ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}

	if code := output.CurrentProcessExitCode(); code > 0 {
		stop()
		os.Exit(code)
	}
}
