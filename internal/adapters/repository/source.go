package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-resty/resty/v2"
	"gopkg.in/yaml.v3"

	"github.com/okian/herodex/internal/domain/hero"
)

// Format identifies a catalog encoding.
type Format string

// Supported catalog encodings.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var validate = validator.New()

// FormatFromPath picks the encoding from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// record mirrors one catalog entry as stored in a source document. Pointers
// let validation tell a missing key from a zero value.
type record struct {
	ID         *int         `json:"id" yaml:"id" validate:"required"`
	Name       string       `json:"name" yaml:"name"`
	Image      string       `json:"image" yaml:"image"`
	Powerstats *statsRecord `json:"powerstats" yaml:"powerstats" validate:"required"`
}

type statsRecord struct {
	Intelligence *int `json:"intelligence" yaml:"intelligence" validate:"required"`
	Strength     *int `json:"strength" yaml:"strength" validate:"required"`
	Speed        *int `json:"speed" yaml:"speed" validate:"required"`
	Durability   *int `json:"durability" yaml:"durability" validate:"required"`
	Power        *int `json:"power" yaml:"power" validate:"required"`
	Combat       *int `json:"combat" yaml:"combat" validate:"required"`
}

func (r record) entity() hero.Entity {
	return hero.Entity{
		ID:    hero.ID(*r.ID),
		Name:  r.Name,
		Image: r.Image,
		Powerstats: hero.Statline{
			Intelligence: *r.Powerstats.Intelligence,
			Strength:     *r.Powerstats.Strength,
			Speed:        *r.Powerstats.Speed,
			Durability:   *r.Powerstats.Durability,
			Power:        *r.Powerstats.Power,
			Combat:       *r.Powerstats.Combat,
		},
	}
}

// Decode parses and validates a catalog document. Source order is kept.
func Decode(data []byte, format Format) ([]hero.Entity, error) {
	var records []record
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("decode json catalog: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("decode yaml catalog: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	heroes := make([]hero.Entity, 0, len(records))
	for i, r := range records {
		if err := validate.Struct(r); err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrInvalidRecord, i, err)
		}
		heroes = append(heroes, r.entity())
	}
	if err := Validate(heroes); err != nil {
		return nil, err
	}
	return heroes, nil
}

// Validate checks every record and rejects duplicate ids.
func Validate(heroes []hero.Entity) error {
	seen := make(map[hero.ID]struct{}, len(heroes))
	for i, h := range heroes {
		if err := validate.Struct(h); err != nil {
			return fmt.Errorf("%w: record %d (id %d): %v", ErrInvalidRecord, i, h.ID, err)
		}
		if _, dup := seen[h.ID]; dup {
			return fmt.Errorf("%w: %d", ErrDuplicateID, h.ID)
		}
		seen[h.ID] = struct{}{}
	}
	return nil
}

// LoadFile reads and decodes a catalog file.
func LoadFile(path string) ([]hero.Entity, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Decode(data, format)
}

// FetchRemote downloads a JSON catalog over HTTP.
func FetchRemote(ctx context.Context, url string, opts ...FetchOption) ([]hero.Entity, error) {
	o := defaultFetchOptions()
	for _, opt := range opts {
		opt(&o)
	}

	client := resty.New().
		SetTimeout(o.timeout).
		SetRetryCount(o.retries).
		SetRetryWaitTime(o.retryWait).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || (r != nil && r.StatusCode() >= http.StatusInternalServerError)
		})

	resp, err := client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: %s returned %d", ErrFetch, url, resp.StatusCode())
	}
	return Decode(resp.Body(), FormatJSON)
}

// Source describes where a catalog comes from. URL takes precedence over Path.
type Source struct {
	Path string
	URL  string
}

// String returns a printable description of the source.
func (s Source) String() string {
	if s.URL != "" {
		return s.URL
	}
	return s.Path
}

// Load resolves a Source to a validated list of heroes.
func Load(ctx context.Context, src Source, opts ...FetchOption) ([]hero.Entity, error) {
	switch {
	case src.URL != "":
		return FetchRemote(ctx, src.URL, opts...)
	case src.Path != "":
		return LoadFile(src.Path)
	default:
		return nil, ErrNoSource
	}
}
