// Package config loads the viewer configuration from the environment.
package config

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"time"

	"couponview/loader"
	"couponview/textutil"
)

// Default values.
const (
	defaultSource             = SourceDir
	defaultSheetsDir          = "./output"
	defaultWorkbookPath       = "output/stores.xlsx"
	defaultMongoURI           = "mongodb://localhost:27017/coupons"
	defaultMongoHost          = "localhost"
	defaultMongoPort          = "27017"
	defaultMongoDatabase      = "coupons"
	defaultGridFSBucket       = "sheets"
	defaultListenAddr         = ":8080"
	defaultMatchups           = loader.MatchupsFirst
	defaultLabelStyle         = textutil.LabelSpaced
	defaultHTTPTimeoutSeconds = 30
	envSource                 = "SHEET_SOURCE"
	envSheetsDir              = "SHEETS_DIR"
	envSheetsBaseURL          = "SHEETS_BASE_URL"
	envWorkbookPath           = "WORKBOOK_PATH"
	envMongoURI               = "MONGO_URI"
	envMongoHost              = "MONGO_HOST"
	envMongoUser              = "MONGO_USER"
	envMongoPassword          = "MONGO_PASSWORD"
	envMongoDatabase          = "MONGO_DATABASE"
	envGridFSBucket           = "GRIDFS_BUCKET"
	envListenAddr             = "LISTEN_ADDR"
	envMatchups               = "CARDS_MATCHUPS_POSITION"
	envLabelStyle             = "CARDS_LABEL_STYLE"
	envHTTPTimeoutSeconds     = "HTTP_TIMEOUT_SECONDS"
)

// LoadConfig loads the application configuration from environment variables or uses default values.
// Invalid values are logged and replaced by their default.
func LoadConfig(ctx context.Context, logger *slog.Logger) *Config {
	mongoDatabase := getString(ctx, logger, envMongoDatabase, defaultMongoDatabase)

	return &Config{
		Source:        getSource(ctx, logger),
		SheetsDir:     getString(ctx, logger, envSheetsDir, defaultSheetsDir),
		SheetsBaseURL: getString(ctx, logger, envSheetsBaseURL, ""),
		WorkbookPath:  getString(ctx, logger, envWorkbookPath, defaultWorkbookPath),
		MongoURI:      formatMongoURI(ctx, os.Getenv(envMongoURI), mongoDatabase, logger),
		MongoDatabase: mongoDatabase,
		GridFSBucket:  getString(ctx, logger, envGridFSBucket, defaultGridFSBucket),
		ListenAddr:    getString(ctx, logger, envListenAddr, defaultListenAddr),
		Matchups:      getMatchups(ctx, logger),
		LabelStyle:    getLabelStyle(ctx, logger),
		HTTPTimeout:   getHTTPTimeout(ctx, logger),
	}
}

// Fetch the env var named key or fall back to def.
func getString(ctx context.Context, logger *slog.Logger, key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		logger.DebugContext(ctx, "Using default value", "key", key, "value", def)
		return def
	}

	logger.DebugContext(ctx, "Using value from environment variable", "key", key, "value", value)
	return value
}

func getSource(ctx context.Context, logger *slog.Logger) SourceKind {
	value := os.Getenv(envSource)
	switch kind := SourceKind(value); kind {
	case SourceDir, SourceHTTP, SourceWorkbook, SourceGridFS:
		logger.DebugContext(ctx, "Using sheet source from environment variable", "source", kind)
		return kind
	case "":
		logger.DebugContext(ctx, "Using default sheet source", "source", defaultSource)
	default:
		logger.WarnContext(ctx, "Invalid value for SHEET_SOURCE, using default",
			"value", value, "default", defaultSource)
	}
	return defaultSource
}

func getMatchups(ctx context.Context, logger *slog.Logger) loader.MatchupsPosition {
	value := os.Getenv(envMatchups)
	if value == "" {
		logger.DebugContext(ctx, "Using default matchups position", "position", defaultMatchups)
		return defaultMatchups
	}

	pos, ok := loader.ParseMatchupsPosition(value)
	if !ok {
		logger.WarnContext(ctx, "Invalid value for CARDS_MATCHUPS_POSITION, using default",
			"value", value, "default", defaultMatchups)
		return defaultMatchups
	}
	return pos
}

func getLabelStyle(ctx context.Context, logger *slog.Logger) textutil.LabelStyle {
	value := os.Getenv(envLabelStyle)
	if value == "" {
		logger.DebugContext(ctx, "Using default label style", "style", defaultLabelStyle)
		return defaultLabelStyle
	}

	style, ok := textutil.ParseLabelStyle(value)
	if !ok {
		logger.WarnContext(ctx, "Invalid value for CARDS_LABEL_STYLE, using default",
			"value", value, "default", defaultLabelStyle)
		return defaultLabelStyle
	}
	return style
}

func getHTTPTimeout(ctx context.Context, logger *slog.Logger) time.Duration {
	value := os.Getenv(envHTTPTimeoutSeconds)
	seconds := defaultHTTPTimeoutSeconds
	if value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed <= 0 {
			logger.WarnContext(ctx, "Invalid value for HTTP_TIMEOUT_SECONDS, using default",
				"value", value, "default", defaultHTTPTimeoutSeconds, "error", err)
		} else {
			seconds = parsed
		}
	}

	return time.Duration(seconds) * time.Second
}

// formatMongoURI formats mongo settings to a url and return the result.
func formatMongoURI(
	ctx context.Context,
	mongoURI string,
	database string,
	logger *slog.Logger,
) string {
	if mongoURI != "" {
		logger.DebugContext(ctx, "Using MongoDB URI from environment variable", "uri", mongoURI)
		return mongoURI
	}

	mongoHost := os.Getenv(envMongoHost)
	if mongoHost == "" {
		mongoHost = defaultMongoHost
		logger.DebugContext(ctx, "Using default MongoDB host", "host", mongoHost)
	} else {
		logger.DebugContext(ctx, "Using MongoDB host from environment variable", "host", mongoHost)
	}

	mongoUser := os.Getenv(envMongoUser)
	mongoPassword := os.Getenv(envMongoPassword)

	if mongoUser != "" && mongoPassword != "" {
		hostPort := net.JoinHostPort(mongoHost, defaultMongoPort)
		mongoURI = fmt.Sprintf(
			"mongodb://%s:%s@%s/%s?authSource=admin",
			mongoUser,
			mongoPassword,
			hostPort,
			database,
		)
		logger.DebugContext(ctx, "Created MongoDB URI from user, password, and host", "host", hostPort)
	} else {
		mongoURI = defaultMongoURI
		logger.DebugContext(ctx, "Using default MongoDB URI", "uri", mongoURI)
	}
	return mongoURI
}
