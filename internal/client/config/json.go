package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/pt428/recipes/internal/flagx"
	"github.com/pt428/recipes/internal/timex"
)

// JSONConfig is a DTO used exclusively for JSON unmarshalling. Fields left
// out of the file keep their previous values. RequestTimeout uses
// timex.Duration so it can be written as "15s" or as integer nanoseconds.
type JSONConfig struct {
	APIBaseURL        *string         `json:"api_base_url"`
	StorageURL        *string         `json:"storage_url"`
	AppBaseURL        *string         `json:"app_base_url"`
	DatabasePath      *string         `json:"database_path"`
	RequestTimeout    *timex.Duration `json:"request_timeout"`
	PageSize          *int            `json:"page_size"`
	LogLevel          *string         `json:"log_level"`
	MaxImageDimension *int            `json:"max_image_dimension"`
	Export            *JSONExport     `json:"export"`
}

type JSONExport struct {
	Dir       *string `json:"dir"`
	Format    *string `json:"format"`
	Bucket    *string `json:"bucket"`
	Region    *string `json:"region"`
	Endpoint  *string `json:"endpoint"`
	Prefix    *string `json:"prefix"`
	AccessKey *string `json:"access_key"`
	SecretKey *string `json:"secret_key"`
}

// parseJSON overlays cfg with the JSON file named by -c or -config. Without
// either flag nothing is loaded.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var jc JSONConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	set(&cfg.APIBaseURL, jc.APIBaseURL)
	set(&cfg.StorageURL, jc.StorageURL)
	set(&cfg.AppBaseURL, jc.AppBaseURL)
	set(&cfg.DatabasePath, jc.DatabasePath)
	set(&cfg.PageSize, jc.PageSize)
	set(&cfg.LogLevel, jc.LogLevel)
	set(&cfg.MaxImageDimension, jc.MaxImageDimension)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if e := jc.Export; e != nil {
		set(&cfg.Export.Dir, e.Dir)
		set(&cfg.Export.Format, e.Format)
		set(&cfg.Export.Bucket, e.Bucket)
		set(&cfg.Export.Region, e.Region)
		set(&cfg.Export.Endpoint, e.Endpoint)
		set(&cfg.Export.Prefix, e.Prefix)
		set(&cfg.Export.AccessKey, e.AccessKey)
		set(&cfg.Export.SecretKey, e.SecretKey)
	}
	return nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
