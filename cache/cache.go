package cache

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/domino14/crossfill/config"
)

// Word lists are large and get reused across repeated solves of different
// grids, so they get loaded once per process and kept here.

var (
	mu      sync.Mutex
	objects = make(map[string]any)
)

// A LoadFunc builds the object for a key the first time it is requested.
type LoadFunc[T any] func(cfg *config.Config, key string) (T, error)

// Load returns the cached object for key, building it with loadFunc on the
// first request. A failed load caches nothing; the next request retries.
func Load[T any](cfg *config.Config, key string, loadFunc LoadFunc[T]) (T, error) {
	mu.Lock()
	defer mu.Unlock()
	if obj, ok := objects[key]; ok {
		log.Debug().Str("key", key).Msg("getting obj from cache")
		return obj.(T), nil
	}
	log.Debug().Str("key", key).Msg("loading into cache")
	obj, err := loadFunc(cfg, key)
	if err != nil {
		var zero T
		return zero, err
	}
	objects[key] = obj
	return obj, nil
}

// Reset drops every cached object. Meant for tests.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	objects = make(map[string]any)
}
