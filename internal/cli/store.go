package cli

import (
	"github.com/arlojs/dissonmap/internal/cache"
	"github.com/arlojs/dissonmap/internal/cache/envelope"
	"github.com/arlojs/dissonmap/internal/mapcompute"
)

// resolveStore maps the --cache-dir global flag onto a cache.Store,
// following CacheMode::from_str in original_source/src/disson/cli.rs:
// "-" disables caching entirely, anything else (including "") is a
// FileStore rooted at that path, or the platform cache dir if empty.
func resolveStore(cacheDir string) cache.Store[envelope.Value] {
	if cacheDir == "-" {
		return cache.NullStore[envelope.Value]{}
	}
	return &cache.FileStore[envelope.Value]{Root: cacheDir, Codec: mapcompute.Codec{}}
}
