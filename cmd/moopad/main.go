package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/arthur-debert/moopad/internal/cli"
	"github.com/arthur-debert/moopad/pkg/style"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Cancelling the context kills the running actions
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := cli.NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// A failed stage is already in the report
		if !stderrors.Is(err, cli.ErrPipelineFailed) {
			fmt.Fprintln(os.Stderr, style.ErrorStyle.Render(fmt.Sprintf("Error: %v", err)))
		}
		return 1
	}
	return 0
}
