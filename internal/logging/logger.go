package logging

import (
	"log/slog"
	"os"
)

// Setup installs the process-wide JSON logger. The Postgres handler is
// attached later in main, once the database connection exists, by swapping
// in a MultiHandler.
func Setup() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))
}
