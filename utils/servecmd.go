package utils

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/voxelsplace/blockymesh/blocklib/catalogdef"
	"github.com/voxelsplace/blockymesh/blockymesh"
	"github.com/voxelsplace/blockymesh/meshcache"
	"github.com/voxelsplace/blockymesh/meshserver"
	"github.com/voxelsplace/blockymesh/voxelbuffer"
)

// RunServe bakes a catalog, opens (or creates) a mesh cache, and serves
// chunks over websocket at addr, reading chunk files named "cx_cy_cz.chunk"
// out of chunkDir on demand. It is the long-running counterpart to the other
// one-shot commands in this package.
func RunServe(catalogPath, chunkDir, cachePath, addr string) error {
	catalogData, err := os.ReadFile(catalogPath)
	if err != nil {
		return fmt.Errorf("failed to read catalog: %w", err)
	}
	lib, err := catalogdef.Load(catalogData)
	if err != nil {
		return fmt.Errorf("failed to bake catalog: %w", err)
	}

	var cache *meshcache.Store
	if cachePath != "" {
		cache, err = meshcache.Open(cachePath)
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		defer cache.Close()
	}

	source := func(cx, cy, cz int32) (voxelbuffer.Buffer, bool) {
		path := filepath.Join(chunkDir, fmt.Sprintf("%d_%d_%d.chunk", cx, cy, cz))
		buf, err := LoadDenseChunk(path)
		if err != nil {
			return nil, false
		}
		return buf, true
	}
	newMesher := func() *blockymesh.Mesher { return blockymesh.NewMesher(lib) }

	srv := meshserver.NewServer(source, newMesher, cache, nil)
	fmt.Printf("serving chunks on %s\n", addr)
	return http.ListenAndServe(addr, srv.Handler())
}
