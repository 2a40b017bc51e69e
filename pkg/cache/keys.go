package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// LayoutKeyOpts identifies a layout response.
type LayoutKeyOpts struct {
	Count       int     `json:"count"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	NoLookahead bool    `json:"no_lookahead,omitempty"`
	WidthPolicy string  `json:"width_policy,omitempty"`
	MinWidth    float64 `json:"min_width,omitempty"`
}

// ViewportKeyOpts identifies a viewport response.
type ViewportKeyOpts struct {
	LayoutKeyOpts
	Animating bool  `json:"animating,omitempty"`
	Duration  int64 `json:"duration_ms,omitempty"`
}

// Keyer derives cache keys from request parameters.
type Keyer interface {
	LayoutKey(opts LayoutKeyOpts) string
	ViewportKey(opts ViewportKeyOpts) string
}

// DefaultKeyer hashes the JSON form of the options.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(opts LayoutKeyOpts) string {
	return hashKey("layout", opts)
}

// ViewportKey returns "viewport:<sha256>".
func (DefaultKeyer) ViewportKey(opts ViewportKeyOpts) string {
	return hashKey("viewport", opts)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return fmt.Sprintf("%s:%s", prefix, Hash(data))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
