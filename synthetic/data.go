package synthetic

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
)

const (
	defaultRows  = 25
	defaultStore = "sample"
)

// RunGenerateSyntheticData parses the command flags and writes sample sheets.
func RunGenerateSyntheticData(ctx context.Context, logger *slog.Logger, args []string, defaultDir string) error {
	genFlagSet := flag.NewFlagSet("generate-synthetic-data", flag.ContinueOnError)
	rows := genFlagSet.Int("rows", defaultRows, "Number of offers to generate")
	dir := genFlagSet.String("dir", defaultDir, "Directory to write the stores/ sheets under")
	store := genFlagSet.String("store", defaultStore, "Store identifier used for the file names")
	if err := genFlagSet.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}

	logger.InfoContext(ctx, "Generating synthetic data", "rows", *rows, "dir", *dir, "store", *store)
	if err := GenerateSyntheticData(*rows, *dir, *store); err != nil {
		return fmt.Errorf("failed to generate synthetic data: %w", err)
	}
	logger.InfoContext(ctx, "Synthetic data generated successfully")
	return nil
}
