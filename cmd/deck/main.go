package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackzampolin/deck/internal/pipeline"
)

// Process exit codes.
const (
	exitOK           = 0
	exitFailure      = 1
	exitNoValidInput = 2
	exitLoad         = 3
	exitValidation   = 4
)

func main() {
	// Set up context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	cancel()
	os.Exit(exitCode(err))
}

// exitCode maps a command error to the process exit status.
func exitCode(err error) int {
	var (
		noInput    *pipeline.NoValidInputError
		load       *pipeline.DocumentLoadError
		validation *pipeline.ValidationError
	)
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &noInput):
		return exitNoValidInput
	case errors.As(err, &load):
		return exitLoad
	case errors.As(err, &validation):
		return exitValidation
	default:
		return exitFailure
	}
}
