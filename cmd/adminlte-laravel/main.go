package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/acacha/adminlte-laravel-installer/internal/errors"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		writeError(os.Stderr, err)
		os.Exit(errors.ExitCode(err))
	}
}

// writeError renders err in the format selected with --error-format.
func writeError(w io.Writer, err error) {
	formatter := errors.NewFormatter(w, rootCfg.noColor)

	if rootCfg.errorFormat == outputJSON {
		data, jsonErr := formatter.FormatJSON(err)
		if jsonErr == nil {
			_, _ = w.Write(append(data, '\n'))
			return
		}
		slog.Warn("failed to encode error as JSON", "error", jsonErr)
	}

	_, _ = io.WriteString(w, formatter.Format(err))
}
