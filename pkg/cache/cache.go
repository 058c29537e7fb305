// Package cache stores computed layouts and rendered artifacts.
//
// A render pass is deterministic: the same dataset rendered with the same
// options always produces the same bytes. The pipeline therefore caches its
// two expensive products under content-addressed keys:
//
//   - layout:   the serialized [layout.Layout], keyed by the dataset hash and
//     every option that influences geometry
//   - artifact: one rendered output (SVG, PNG, ...), keyed by the layout hash
//     and every option that influences drawing
//
// # Backends
//
//   - [FileCache] keeps entries as JSON files under the user cache directory
//     and is what the CLI uses by default.
//   - [RedisCache] shares entries between server replicas.
//   - [NullCache] disables caching.
//
// Keys are produced by a [Keyer]; wrap one in a [ScopedKeyer] to isolate
// tenants that share a backend.
//
// [layout.Layout]: github.com/matzehuels/timespiral/pkg/layout.Layout
package cache

import (
	"context"
	"time"
)

// TTLs applied by the pipeline when storing entries.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Key types reported to observability hooks.
const (
	KeyTypeLayout   = "layout"
	KeyTypeArtifact = "artifact"
)

// Cache is a byte-oriented key/value store with per-entry expiration.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the stored value and whether it was found. A missing or
	// expired entry is a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// LayoutKey generates a key for a computed layout.
	LayoutKey(datasetHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for one rendered output of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds every option that changes the computed geometry.
type LayoutKeyOpts struct {
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	InnerRadius  float64 `json:"inner_radius"`
	Layers       int     `json:"layers"`
	Precision    int     `json:"precision"`
	Centered     bool    `json:"centered"`
	Skinny       bool    `json:"skinny"`
	Interval     string  `json:"interval"`
	TickCount    int     `json:"tick_count"`
	CenterWindow int     `json:"center_window"`
	LabelHeight  float64 `json:"label_height"`
}

// ArtifactKeyOpts holds every option that changes a rendered output.
type ArtifactKeyOpts struct {
	Format      string   `json:"format"`
	Rounded     bool     `json:"rounded"`
	ShowTicks   bool     `json:"show_ticks"`
	ShowAxis    bool     `json:"show_axis"`
	ColorBy     string   `json:"color_by"`
	Reverse     bool     `json:"reverse"`
	Palette     string   `json:"palette"`
	Stops       []string `json:"stops,omitempty"`
	Scheme      string   `json:"scheme"`
	TickColor   string   `json:"tick_color"`
	TickSize    string   `json:"tick_size"`
	TitleFormat string   `json:"title_format"`
	Background  string   `json:"background,omitempty"`
	Scale       float64  `json:"scale,omitempty"`
}
