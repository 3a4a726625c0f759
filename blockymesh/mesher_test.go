package blockymesh

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/voxelsplace/blockymesh/blocklib"
	"github.com/voxelsplace/blockymesh/voxelbuffer"
)

func newTestLibrary() *blocklib.BakedLibrary {
	lib := blocklib.NewBakedLibrary()
	lib.SetMaterials([]string{"stone"})
	lib.SetModel(1, blocklib.NewCubeModel(0, mgl32.Vec4{1, 1, 1, 1}, blocklib.PatternFull))
	return lib
}

func indexCount(out Output) int {
	n := 0
	for _, s := range out.Surfaces {
		n += len(s.Arrays.Indices)
	}
	return n
}

func TestBuildWithNoLibraryReturnsEmptyOutput(t *testing.T) {
	m := NewMesher(nil)
	buf := voxelbuffer.NewDense(4, 4, 4, voxelbuffer.Depth8)
	out, err := m.Build(buf, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Surfaces) != 0 {
		t.Fatalf("expected no surfaces, got %d", len(out.Surfaces))
	}
}

func TestBuildUndersizedChunkErrors(t *testing.T) {
	lib := newTestLibrary()
	m := NewMesher(lib)
	buf := voxelbuffer.NewDense(1, 4, 4, voxelbuffer.Depth8)
	_, err := m.Build(buf, Options{})
	if err != ErrUndersizedChunk {
		t.Fatalf("expected ErrUndersizedChunk, got %v", err)
	}
}

func TestBuildUniformCompressionIsEmptyNotError(t *testing.T) {
	lib := newTestLibrary()
	m := NewMesher(lib)
	buf := voxelbuffer.NewUniform(4, 4, 4, voxelbuffer.Depth8, 1)
	out, err := m.Build(buf, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Surfaces) != 0 {
		t.Fatalf("expected an empty output for a uniform (degenerate) chunk")
	}
}

func TestBuildUnsupportedCompressionErrors(t *testing.T) {
	lib := newTestLibrary()
	m := NewMesher(lib)
	buf := voxelbuffer.NewPacked(4, 4, 4, voxelbuffer.Depth8, []byte{1, 2, 3})
	_, err := m.Build(buf, Options{})
	if err != ErrUnsupportedCompression {
		t.Fatalf("expected ErrUnsupportedCompression, got %v", err)
	}
}

func TestBuildSingleVoxelEmitsSixFaces(t *testing.T) {
	lib := newTestLibrary()
	m := NewMesher(lib)
	// inner region is 1x1x1; size 3 on every axis puts it at (1,1,1) with a
	// one-voxel air skirt all around.
	buf := voxelbuffer.NewDense(3, 3, 3, voxelbuffer.Depth8)
	buf.Set(1, 1, 1, 1)

	out, err := m.Build(buf, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Surfaces) != 1 {
		t.Fatalf("expected geometry on exactly one material, got %d", len(out.Surfaces))
	}
	// six quads, two triangles each, three indices per triangle.
	if got := indexCount(out); got != 6*2*3 {
		t.Fatalf("expected %d indices for a fully exposed cube, got %d", 6*2*3, got)
	}
}

func TestBuildTwoAdjacentVoxelsCullSharedFace(t *testing.T) {
	lib := newTestLibrary()
	m := NewMesher(lib)
	buf := voxelbuffer.NewDense(4, 3, 3, voxelbuffer.Depth8)
	buf.Set(1, 1, 1, 1)
	buf.Set(2, 1, 1, 1)

	out, err := m.Build(buf, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// two cubes expose 6+6 faces minus the two that touch = 10.
	if got := indexCount(out); got != 10*2*3 {
		t.Fatalf("expected %d indices after face culling, got %d", 10*2*3, got)
	}
}

func TestBuildLODScalesPositions(t *testing.T) {
	lib := newTestLibrary()
	m := NewMesher(lib)
	buf := voxelbuffer.NewDense(3, 3, 3, voxelbuffer.Depth8)
	buf.Set(1, 1, 1, 1)

	out, err := m.Build(buf, Options{LODIndex: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Surfaces) != 1 {
		t.Fatalf("expected geometry on exactly one material, got %d", len(out.Surfaces))
	}
	for _, p := range out.Surfaces[0].Arrays.Positions {
		// the voxel sits at local (0,0,0); every coordinate should be an
		// integer multiple of 4 (2^LODIndex) after scaling, within [0,4].
		for _, v := range [3]float32{p.X(), p.Y(), p.Z()} {
			if v != 0 && v != 4 {
				t.Fatalf("position component %v not scaled to a multiple of 4", v)
			}
		}
	}
}

func TestBuildOcclusionDarkensCornerNearNeighbors(t *testing.T) {
	lib := newTestLibrary()
	m := NewMesher(lib)
	// voxel A at (1,1,1) is fully exposed; B at (2,2,1) shares only the
	// edge diagonal to A's top face (it sits neither directly above nor
	// beside A), so A's +Y face stays visible but picks up AO on the two
	// corners that edge touches.
	buf := voxelbuffer.NewDense(4, 4, 4, voxelbuffer.Depth8)
	buf.Set(1, 1, 1, 1)
	buf.Set(2, 2, 1, 1)

	outFlat, err := m.Build(buf, Options{BakeOcclusion: false})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	outShaded, err := m.Build(buf, Options{BakeOcclusion: true, OcclusionDarkness: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(outFlat.Surfaces) == 0 || len(outShaded.Surfaces) == 0 {
		t.Fatalf("expected geometry in both builds")
	}

	flatHasFullWhite := false
	shadedHasDarkened := false
	for _, c := range outFlat.Surfaces[0].Arrays.Colors {
		if c.X() == 1 && c.Y() == 1 && c.Z() == 1 {
			flatHasFullWhite = true
		}
	}
	for _, c := range outShaded.Surfaces[0].Arrays.Colors {
		if c.X() < 1 || c.Y() < 1 || c.Z() < 1 {
			shadedHasDarkened = true
		}
	}
	if !flatHasFullWhite {
		t.Fatalf("expected unshaded vertices to keep the flat base color")
	}
	if !shadedHasDarkened {
		t.Fatalf("expected at least one vertex darkened by occlusion baking")
	}
}

// A single occluding edge contributes shade=1 to its two corners; with
// OcclusionDarkness=1 divided by 3 before use, the darkest a vertex can go
// is gs = 1 - (1/3)*1*falloff >= 2/3. If the /3 were dropped, gs could
// reach 0 (full black) for the same input.
func TestBuildOcclusionDarknessIsDividedByThree(t *testing.T) {
	lib := newTestLibrary()
	m := NewMesher(lib)
	buf := voxelbuffer.NewDense(4, 4, 4, voxelbuffer.Depth8)
	buf.Set(1, 1, 1, 1)
	buf.Set(2, 2, 1, 1)

	out, err := m.Build(buf, Options{BakeOcclusion: true, OcclusionDarkness: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Surfaces) == 0 {
		t.Fatalf("expected geometry")
	}
	const minAllowed = 2.0/3.0 - 1e-4
	for _, c := range out.Surfaces[0].Arrays.Colors {
		for _, v := range [3]float32{c.X(), c.Y(), c.Z()} {
			if v < minAllowed {
				t.Fatalf("vertex channel %v darkened past 1/3, darkness was not divided by 3", v)
			}
		}
	}
}

func TestMesherCloneShallowSharesLibrary(t *testing.T) {
	lib := newTestLibrary()
	m := NewMesher(lib)
	clone := m.Clone(false)
	if clone.library != m.library {
		t.Fatalf("expected a shallow clone to share the same library reference")
	}
}

func TestMesherCloneDeepGivesIndependentLibrary(t *testing.T) {
	lib := newTestLibrary()
	m := NewMesher(lib)
	clone := m.Clone(true)
	if clone.library == m.library {
		t.Fatalf("expected a deep clone to hold an independent library")
	}

	// mutating the clone's library must not affect the original's models.
	cloneLib, ok := clone.library.(*blocklib.BakedLibrary)
	if !ok {
		t.Fatalf("expected clone.library to be a *blocklib.BakedLibrary")
	}
	cloneLib.SetModel(1, blocklib.NewCubeModel(0, mgl32.Vec4{0, 0, 0, 1}, blocklib.PatternFull))
	if got := lib.Model(1).Color; got != (mgl32.Vec4{1, 1, 1, 1}) {
		t.Fatalf("original library was mutated through the clone: %v", got)
	}
}
