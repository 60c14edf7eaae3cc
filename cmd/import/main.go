package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/filipinasabroad/abroad-backend/internal/config"
	"github.com/filipinasabroad/abroad-backend/internal/database"
	"github.com/filipinasabroad/abroad-backend/internal/importer"
	"github.com/filipinasabroad/abroad-backend/internal/logging"
)

// import loads reference data (schools, programs, accommodations, visa
// requirements) from CSV files. Re-running with the same file is safe: rows
// are matched on their natural keys and skipped or updated instead of
// duplicated.
func main() {
	_ = godotenv.Load()
	logging.Setup()

	kind := flag.String("kind", "", "dataset to import: schools | programs | accommodations | visa")
	file := flag.String("file", "", "path to the CSV file")
	flag.Parse()

	if *kind == "" || *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load()
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	f, err := os.Open(*file)
	if err != nil {
		slog.Error("failed to open file", "file", *file, "error", err)
		os.Exit(1)
	}
	defer f.Close()

	imp := importer.New(database.DB)

	var result *importer.Result
	switch *kind {
	case "schools":
		result, err = imp.Schools(f)
	case "programs":
		result, err = imp.Programs(f)
	case "accommodations":
		result, err = imp.Accommodations(f)
	case "visa":
		result, err = imp.VisaRequirements(f)
	default:
		slog.Error("unknown kind", "kind", *kind)
		os.Exit(2)
	}
	if err != nil {
		slog.Error("import failed", "kind", *kind, "error", err)
		os.Exit(1)
	}

	slog.Info("import complete",
		"kind", *kind,
		"created", result.Created,
		"updated", result.Updated,
		"skipped", result.Skipped,
	)
}
