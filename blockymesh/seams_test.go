package blockymesh

import (
	"testing"

	"github.com/voxelsplace/blockymesh/voxelbuffer"
)

// A single solid voxel sitting in the padding layer at the -X chunk
// boundary, exposed to air in-plane and backed by a solid voxel one step
// inward, must get an extra stitched quad at non-zero LOD — and none at
// LOD 0, where the stitcher never runs.
func TestBuildLODSeamAddsBoundaryQuad(t *testing.T) {
	lib := newTestLibrary()
	m := NewMesher(lib)

	buf := voxelbuffer.NewDense(4, 4, 4, voxelbuffer.Depth8)
	buf.Set(0, 1, 1, 1) // outer padding-layer voxel on the -X boundary
	buf.Set(1, 1, 1, 1) // inward voxel backing the seam

	outNoLOD, err := m.Build(buf, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	baseline := indexCount(outNoLOD)

	outLOD, err := m.Build(buf, Options{LODIndex: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// the LOD build also scales positions by 2, but the index count is
	// what tells us whether the seam stitcher actually added geometry.
	stitched := indexCount(outLOD)
	if stitched <= baseline {
		t.Fatalf("expected LOD stitching to add indices over the baseline (%d), got %d", baseline, stitched)
	}
}

func TestStitchSeamsSkipsWhenFullyEnclosedInPlane(t *testing.T) {
	lib := newTestLibrary()
	m := NewMesher(lib)

	// the outer voxel's four in-plane neighbors are all solid, so it is
	// not considered exposed to air and nothing should be stitched for it.
	buf := voxelbuffer.NewDense(4, 4, 4, voxelbuffer.Depth8)
	buf.Set(0, 1, 1, 1)
	buf.Set(0, 0, 1, 1)
	buf.Set(0, 2, 1, 1)
	buf.Set(0, 1, 0, 1)
	buf.Set(0, 1, 2, 1)
	buf.Set(1, 1, 1, 1)

	out, err := m.Build(buf, Options{LODIndex: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	baselineBuf := voxelbuffer.NewDense(4, 4, 4, voxelbuffer.Depth8)
	baselineBuf.Set(0, 1, 1, 1)
	baselineBuf.Set(0, 0, 1, 1)
	baselineBuf.Set(0, 2, 1, 1)
	baselineBuf.Set(0, 1, 0, 1)
	baselineBuf.Set(0, 1, 2, 1)
	baselineBuf.Set(1, 1, 1, 1)
	outNoLOD, err := m.Build(baselineBuf, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if indexCount(out) != indexCount(outNoLOD) {
		t.Fatalf("expected no stitched geometry when the boundary voxel is fully enclosed in-plane: LOD=%d, baseline=%d", indexCount(out), indexCount(outNoLOD))
	}
}
