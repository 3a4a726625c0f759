package utils

import (
	"fmt"

	"github.com/voxelsplace/blockymesh/meshcache"
)

// RunCacheInfo opens a mesh result cache and reports how many entries it
// holds, the CLI's window into a store a long-running server has been
// filling.
func RunCacheInfo(cachePath string) error {
	store, err := meshcache.Open(cachePath)
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	defer store.Close()

	n, err := store.Count()
	if err != nil {
		return fmt.Errorf("failed to count cache entries: %w", err)
	}
	fmt.Printf("%s: %d cached meshes\n", cachePath, n)
	return nil
}
