package utils

import (
	"fmt"
	"os"

	"github.com/voxelsplace/blockymesh/blocklib/catalogdef"
	"github.com/voxelsplace/blockymesh/blockymesh"
	"github.com/voxelsplace/blockymesh/meshexport"
)

// RunChunkToGLB loads a catalog and a chunk file from disk, meshes the chunk
// against the baked catalog, and writes the result as a binary glTF file,
// the CLI-level analogue of the teacher's RunVOPL2GLB.
func RunChunkToGLB(catalogPath, chunkPath, outPath string, opts blockymesh.Options) error {
	catalogData, err := os.ReadFile(catalogPath)
	if err != nil {
		return fmt.Errorf("failed to read catalog: %w", err)
	}
	lib, err := catalogdef.Load(catalogData)
	if err != nil {
		return fmt.Errorf("failed to bake catalog: %w", err)
	}

	buf, err := LoadDenseChunk(chunkPath)
	if err != nil {
		return fmt.Errorf("failed to load chunk: %w", err)
	}

	out, err := blockymesh.NewMesher(lib).Build(buf, opts)
	if err != nil {
		return fmt.Errorf("failed to build mesh: %w", err)
	}

	colorOf := func(materialIndex uint32) [4]float32 { return [4]float32{1, 1, 1, 1} }
	if err := meshexport.Write(outPath, out, colorOf); err != nil {
		return fmt.Errorf("failed to write glb: %w", err)
	}
	if fi, err := os.Stat(outPath); err == nil {
		fmt.Printf(".glb written (%d bytes)\n", fi.Size())
	} else {
		fmt.Println(".glb written.")
	}
	return nil
}
