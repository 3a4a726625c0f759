package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/voxelsplace/blockymesh/blockymesh"
	"github.com/voxelsplace/blockymesh/voxelbuffer"
)

func TestSaveLoadDenseChunkRoundtrips(t *testing.T) {
	buf := voxelbuffer.NewDense(3, 3, 3, voxelbuffer.Depth8)
	buf.Set(1, 1, 1, 7)
	path := filepath.Join(t.TempDir(), "chunk0.chunk")
	if err := SaveDenseChunk(buf, path); err != nil {
		t.Fatalf("SaveDenseChunk failed: %v", err)
	}

	got, err := LoadDenseChunk(path)
	if err != nil {
		t.Fatalf("LoadDenseChunk failed: %v", err)
	}
	if gsx, gsy, gsz := got.Size(); gsx != 3 || gsy != 3 || gsz != 3 {
		t.Fatalf("size did not round-trip: got (%d,%d,%d)", gsx, gsy, gsz)
	}
	if got.Get(1, 1, 1) != 7 {
		t.Fatalf("voxel value did not round-trip: got %d", got.Get(1, 1, 1))
	}
}

func TestLoadDenseChunkRejectsWrongMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.chunk")
	if err := os.WriteFile(path, []byte("not a chunk file"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := LoadDenseChunk(path); err == nil {
		t.Fatalf("expected an error loading a non-chunk file")
	}
}

func TestRunGenerateNoiseChunksWritesRequestedAmount(t *testing.T) {
	dir := t.TempDir()
	if err := RunGenerateNoiseChunks(4, 4, 4, voxelbuffer.Depth8, 10, 50, 50, 3, dir); err != nil {
		t.Fatalf("RunGenerateNoiseChunks failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		path := filepath.Join(dir, fmt.Sprintf("%d.chunk", i))
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("expected %s to exist: %v", path, err)
		}
		buf, err := LoadDenseChunk(path)
		if err != nil {
			t.Fatalf("LoadDenseChunk failed for %s: %v", path, err)
		}
		if sx, sy, sz := buf.Size(); sx != 4 || sy != 4 || sz != 4 {
			t.Fatalf("unexpected chunk size: (%d,%d,%d)", sx, sy, sz)
		}
	}
}

const testCatalog = `
materials: ["stone"]
models:
  - id: 1
    material: 0
    color: [1, 1, 1, 1]
`

func TestRunChunkToGLBWritesNonEmptyFile(t *testing.T) {
	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "catalog.yaml")
	if err := os.WriteFile(catalogPath, []byte(testCatalog), 0o644); err != nil {
		t.Fatalf("WriteFile catalog failed: %v", err)
	}

	chunk := voxelbuffer.NewDense(3, 3, 3, voxelbuffer.Depth8)
	chunk.Set(1, 1, 1, 1)
	chunkPath := filepath.Join(dir, "chunk0.chunk")
	if err := SaveDenseChunk(chunk, chunkPath); err != nil {
		t.Fatalf("SaveDenseChunk failed: %v", err)
	}

	outPath := filepath.Join(dir, "out.glb")
	if err := RunChunkToGLB(catalogPath, chunkPath, outPath, blockymesh.Options{}); err != nil {
		t.Fatalf("RunChunkToGLB failed: %v", err)
	}
	info, err := os.Stat(outPath)
	if err != nil {
		t.Fatalf("expected a .glb file: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("expected a non-empty .glb file")
	}
}

func TestRunCacheInfoReportsEmptyStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	if err := RunCacheInfo(path); err != nil {
		t.Fatalf("RunCacheInfo failed: %v", err)
	}
}
