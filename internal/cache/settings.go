// Package cache keeps recently served public listings in process memory.
package cache

import (
	"net/url"
	"time"

	"github.com/albretostimbung/naraicoderbe/internal/model"
	gocache "github.com/patrickmn/go-cache"
)

// Grouped is the settings listing keyed by group
type Grouped map[string][]model.Setting

// Settings caches grouped settings listings by query
type Settings struct {
	store *gocache.Cache
	ttl   time.Duration
}

// NewSettings creates a cache whose entries live for ttl. A non-positive ttl disables caching.
func NewSettings(ttl time.Duration) *Settings {
	s := &Settings{ttl: ttl}
	if ttl > 0 {
		s.store = gocache.New(ttl, 2*ttl)
	}
	return s
}

var defaultSettings = NewSettings(0)

// Initialize replaces the package-level settings cache
func Initialize(ttl time.Duration) {
	defaultSettings = NewSettings(ttl)
}

// Default returns the package-level settings cache
func Default() *Settings {
	return defaultSettings
}

// Key normalizes list parameters into a cache key
func Key(params url.Values) string {
	return params.Encode()
}

// Get returns the cached listing for key
func (s *Settings) Get(key string) (Grouped, bool) {
	if s.store == nil {
		return nil, false
	}
	v, ok := s.store.Get(key)
	if !ok {
		return nil, false
	}
	grouped, ok := v.(Grouped)
	return grouped, ok
}

// Set stores a listing under key
func (s *Settings) Set(key string, grouped Grouped) {
	if s.store == nil {
		return
	}
	s.store.Set(key, grouped, gocache.DefaultExpiration)
}

// Flush drops every cached listing. Called after any setting write.
func (s *Settings) Flush() {
	if s.store == nil {
		return
	}
	s.store.Flush()
}

// Len reports the number of cached listings
func (s *Settings) Len() int {
	if s.store == nil {
		return 0
	}
	return s.store.ItemCount()
}
