// Package export writes recipes out as JSON or YAML documents, one file per
// recipe, to a local directory or an S3-compatible bucket.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/pt428/recipes/internal/client/models"
	"github.com/pt428/recipes/internal/logging"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" and "yml"; empty means JSON.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown export format %q", s)
	}
}

func (f Format) ContentType() string {
	if f == FormatYAML {
		return "application/yaml"
	}
	return "application/json"
}

// Sink stores exported documents.
type Sink interface {
	Put(ctx context.Context, name string, data []byte, contentType string) error
	// Location describes where name ends up, for reporting.
	Location(name string) string
}

type Exporter struct {
	sink   Sink
	format Format
	logger logging.Logger
}

func NewExporter(sink Sink, format Format, logger logging.Logger) *Exporter {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Exporter{sink: sink, format: format, logger: logger}
}

// Export writes every recipe and returns the locations written, in order.
// It stops at the first failure.
func (e *Exporter) Export(ctx context.Context, recipes []models.Recipe) ([]string, error) {
	written := make([]string, 0, len(recipes))
	for i := range recipes {
		r := &recipes[i]
		data, err := Encode(r, e.format)
		if err != nil {
			return written, fmt.Errorf("encode recipe %d: %w", r.ID, err)
		}

		name := FileName(r, e.format)
		if err := e.sink.Put(ctx, name, data, e.format.ContentType()); err != nil {
			return written, fmt.Errorf("write recipe %d: %w", r.ID, err)
		}
		loc := e.sink.Location(name)
		e.logger.Debug(ctx, "recipe exported", "id", r.ID, "location", loc)
		written = append(written, loc)
	}
	return written, nil
}

// Encode renders a recipe. YAML documents use the same field names as the
// JSON API.
func Encode(r *models.Recipe, format Format) ([]byte, error) {
	js, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, err
	}
	if format != FormatYAML {
		return append(js, '\n'), nil
	}

	var doc map[string]any
	dec := json.NewDecoder(bytes.NewReader(js))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	normalizeNumbers(doc)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// normalizeNumbers turns json.Number values into int64 or float64 so YAML
// prints them as plain scalars.
func normalizeNumbers(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, x := range t {
			t[k] = normalizeNumbers(x)
		}
		return t
	case []any:
		for i, x := range t {
			t[i] = normalizeNumbers(x)
		}
		return t
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	default:
		return v
	}
}

// FileName is "<id>-<slug>.<ext>". The slug falls back to one made from the
// title.
func FileName(r *models.Recipe, format Format) string {
	slug := Slugify(r.Slug)
	if slug == "" {
		slug = Slugify(r.Title)
	}
	if slug == "" {
		slug = "recipe"
	}
	return fmt.Sprintf("%d-%s.%s", r.ID, slug, format)
}

// Slugify lowercases s and replaces every run of non letters/digits with a
// single dash.
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
