package config

import "time"

// Config holds runtime settings for the recipes CLI.
//
// Fields:
//   - APIBaseURL: base URL of the REST backend, e.g. ".../api".
//   - StorageURL: public prefix under which recipe images are served.
//   - AppBaseURL: public address of the web app, used to compose share links.
//   - DatabasePath: SQLite file keeping the token and the list position.
//   - RequestTimeout: per-request HTTP timeout.
//   - PageSize: recipes per listing page.
//   - LogLevel: debug, info, warn or error.
//   - MaxImageDimension: longest side, in pixels, of uploaded images.
//   - Export: where the export command writes to.
type Config struct {
	APIBaseURL        string
	StorageURL        string
	AppBaseURL        string
	DatabasePath      string
	RequestTimeout    time.Duration
	PageSize          int
	LogLevel          string
	MaxImageDimension int
	Export            ExportConfig
}

// ExportConfig selects the export target. With Bucket empty, documents go
// to Dir.
type ExportConfig struct {
	Dir       string
	Format    string
	Bucket    string
	Region    string
	Endpoint  string
	Prefix    string
	AccessKey string
	SecretKey string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "https://tisoft.cz/recepty/backend/public/api"
	c.StorageURL = "https://tisoft.cz/recepty/backend/storage/app/public"
	c.AppBaseURL = "https://tisoft.cz/recepty"
	c.DatabasePath = "recipes.db"
	c.RequestTimeout = 15 * time.Second
	c.PageSize = 12
	c.LogLevel = "warn"
	c.MaxImageDimension = 1600
	c.Export = ExportConfig{Dir: "export", Format: "json"}
}

// Load constructs a Config, applies defaults, then overlays values from the
// environment (including an optional .env file), a JSON file and
// command-line flags. Later sources take precedence over earlier ones.
// args are the command-line arguments without the program name.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseEnv(cfg, ".env"); err != nil {
		return nil, err
	}
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
