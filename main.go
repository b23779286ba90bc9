// main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"couponview/appcontext"
	"couponview/config"
	"couponview/csv"
	"couponview/loader"
	"couponview/page"
	"couponview/server"
	"couponview/sheets"
	"couponview/storage"
	"couponview/synthetic"
)

const (
	formatHTML = "html"
	formatText = "text"
	formatJSON = "json"
)

var errUsage = errors.New("usage: couponview <serve|render|generate-synthetic-data> [options]")

func main() {
	// Create the logger instance at the very beginning.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file found, using system environment variables")
	}

	if len(os.Args) < 2 {
		logger.Error(errUsage.Error())
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(appcontext.WithLogger(context.Background(), logger), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, os.Args[1], os.Args[2:]); err != nil {
		logger.Error("Application terminated with an error", "error", fmt.Sprintf("%+v", err))
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, command string, args []string) error {
	cfg := config.LoadConfig(ctx, logger)

	switch command {
	case "serve":
		return runServe(ctx, logger, cfg, args)
	case "render":
		return runRender(ctx, logger, cfg, args, os.Stdout)
	case "generate-synthetic-data":
		return synthetic.RunGenerateSyntheticData(ctx, logger, args, cfg.SheetsDir)
	default:
		return fmt.Errorf("unknown command: %s, %w", command, errUsage)
	}
}

func runServe(ctx context.Context, logger *slog.Logger, cfg *config.Config, args []string) error {
	serveFlagSet := flag.NewFlagSet("serve", flag.ContinueOnError)
	addr := serveFlagSet.String("addr", cfg.ListenAddr, "Address to listen on")
	if err := serveFlagSet.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}

	source, closeSource, err := newSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSource()

	views := newLoader(source, cfg)
	return server.New(logger, views).ListenAndServe(ctx, *addr)
}

func runRender(ctx context.Context, logger *slog.Logger, cfg *config.Config, args []string, stdout io.Writer) error {
	renderFlagSet := flag.NewFlagSet("render", flag.ContinueOnError)
	format := renderFlagSet.String("format", formatText, "Output format: html, text or json")
	out := renderFlagSet.String("out", "", "File to write to instead of stdout")
	if err := renderFlagSet.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}
	if renderFlagSet.NArg() != 1 {
		return fmt.Errorf("render needs exactly one store identifier, %w", errUsage)
	}

	source, closeSource, err := newSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSource()

	view := newLoader(source, cfg).Load(ctx, renderFlagSet.Arg(0))

	w := stdout
	if *out != "" {
		file, createErr := os.Create(*out)
		if createErr != nil {
			return fmt.Errorf("failed to create output file %s: %w", *out, createErr)
		}
		defer func() {
			if closeErr := file.Close(); closeErr != nil {
				logger.ErrorContext(ctx, "Error closing output file", "file", *out, "error", closeErr)
			}
		}()
		w = file
	}

	switch *format {
	case formatHTML:
		err = page.Render(w, view)
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(view)
	case formatText:
		err = page.RenderText(w, view)
	default:
		return fmt.Errorf("unknown format: %s", *format)
	}
	if err != nil {
		return fmt.Errorf("failed to write %s output: %w", *format, err)
	}

	logger.InfoContext(ctx, "Rendered store", "store", view.Store, "cards", len(view.Cards), "failed", view.Failed())
	return nil
}

func newLoader(source sheets.Source, cfg *config.Config) *loader.Loader {
	return loader.New(source, csv.NewParser(), loader.Options{
		Matchups:   cfg.Matchups,
		LabelStyle: cfg.LabelStyle,
	})
}

// newSource builds the configured sheet source and a func that releases it.
func newSource(ctx context.Context, cfg *config.Config) (sheets.Source, func(), error) {
	logger := appcontext.LoggerFromContext(ctx)
	noop := func() {}

	switch cfg.Source {
	case config.SourceHTTP:
		source, err := sheets.NewHTTPSource(&http.Client{Timeout: cfg.HTTPTimeout}, cfg.SheetsBaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to configure HTTP sheet source: %w", err)
		}
		return source, noop, nil
	case config.SourceWorkbook:
		if _, err := os.Stat(cfg.WorkbookPath); err != nil {
			return nil, nil, fmt.Errorf("stat check for workbook %s: %w", cfg.WorkbookPath, err)
		}
		return sheets.NewWorkbookSource(cfg.WorkbookPath), noop, nil
	case config.SourceGridFS:
		client, err := storage.ConnectToMongoDB(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, fmt.Errorf("connection to MongoDB failed: %w", err)
		}
		closeClient := func() {
			if deferErr := client.Disconnect(context.WithoutCancel(ctx)); deferErr != nil {
				logger.ErrorContext(ctx, "Error disconnecting from MongoDB", "error", deferErr)
			}
		}
		bucket, err := storage.OpenBucket(client, cfg.MongoDatabase, cfg.GridFSBucket)
		if err != nil {
			closeClient()
			return nil, nil, err
		}
		return storage.NewGridFSSource(bucket), closeClient, nil
	default:
		if _, err := os.Stat(cfg.SheetsDir); err != nil {
			logger.WarnContext(ctx, "Sheets directory is not readable; every store will fail to load",
				"dir", cfg.SheetsDir, "error", err)
		}
		return sheets.NewDirSource(cfg.SheetsDir), noop, nil
	}
}
