package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables, all optional.
const (
	EnvAPIBaseURL     = "RECIPES_API_URL"
	EnvStorageURL     = "RECIPES_STORAGE_URL"
	EnvAppBaseURL     = "RECIPES_APP_URL"
	EnvDatabasePath   = "RECIPES_DB"
	EnvRequestTimeout = "RECIPES_TIMEOUT"
	EnvLogLevel       = "RECIPES_LOG_LEVEL"
	EnvExportDir      = "RECIPES_EXPORT_DIR"
	EnvExportFormat   = "RECIPES_EXPORT_FORMAT"
	EnvExportBucket   = "RECIPES_EXPORT_BUCKET"
	EnvExportRegion   = "RECIPES_EXPORT_REGION"
	EnvExportEndpoint = "RECIPES_EXPORT_ENDPOINT"
	EnvExportPrefix   = "RECIPES_EXPORT_PREFIX"
	EnvExportKey      = "RECIPES_EXPORT_ACCESS_KEY"
	EnvExportSecret   = "RECIPES_EXPORT_SECRET_KEY"
)

// parseEnv overlays cfg with RECIPES_* variables. Values from envFile (a
// dotenv file, skipped when missing) are used when the process environment
// does not set the variable.
func parseEnv(cfg *Config, envFile string) error {
	file := map[string]string{}
	if envFile != "" {
		vals, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			file = vals
		case errors.Is(err, fs.ErrNotExist):
		default:
			return fmt.Errorf("read %s: %w", envFile, err)
		}
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := file[key]
		return v, ok
	}

	strs := map[string]*string{
		EnvAPIBaseURL:     &cfg.APIBaseURL,
		EnvStorageURL:     &cfg.StorageURL,
		EnvAppBaseURL:     &cfg.AppBaseURL,
		EnvDatabasePath:   &cfg.DatabasePath,
		EnvLogLevel:       &cfg.LogLevel,
		EnvExportDir:      &cfg.Export.Dir,
		EnvExportFormat:   &cfg.Export.Format,
		EnvExportBucket:   &cfg.Export.Bucket,
		EnvExportRegion:   &cfg.Export.Region,
		EnvExportEndpoint: &cfg.Export.Endpoint,
		EnvExportPrefix:   &cfg.Export.Prefix,
		EnvExportKey:      &cfg.Export.AccessKey,
		EnvExportSecret:   &cfg.Export.SecretKey,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}

	if v, ok := lookup(EnvRequestTimeout); ok {
		d, err := parseTimeout(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRequestTimeout, err)
		}
		cfg.RequestTimeout = d
	}
	return nil
}

// parseTimeout accepts a Go duration ("10s") or whole seconds ("10").
func parseTimeout(v string) (time.Duration, error) {
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(v)
}
