package blocklib

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestRegisterPatternDedupes(t *testing.T) {
	lib := NewBakedLibrary()
	a := lib.RegisterPattern(0xFF00FF00)
	b := lib.RegisterPattern(0xFF00FF00)
	c := lib.RegisterPattern(0x0000FFFF)
	if a != b {
		t.Fatalf("identical masks registered to different indices: %d vs %d", a, b)
	}
	if a == c {
		t.Fatalf("distinct masks collapsed to the same index")
	}
	if lib.RegisterPattern(0) != PatternEmpty {
		t.Fatalf("all-zero mask should reuse the reserved PatternEmpty index")
	}
	if lib.RegisterPattern(^uint64(0)) != PatternFull {
		t.Fatalf("all-ones mask should reuse the reserved PatternFull index")
	}
}

func TestVisibleRegardlessOfShape(t *testing.T) {
	lib := NewBakedLibrary()
	opaque := NewCubeModel(0, mgl32.Vec4{1, 1, 1, 1}, PatternFull)
	glass := opaque
	glass.TransparencyIndex = 1

	if !lib.VisibleRegardlessOfShape(glass, opaque) {
		t.Fatalf("differing transparency indices must always be visible regardless of shape")
	}
	nonCulling := opaque
	nonCulling.CullsNeighbors = false
	if !lib.VisibleRegardlessOfShape(opaque, nonCulling) {
		t.Fatalf("a neighbor that doesn't cull must always be visible regardless of shape")
	}
	if lib.VisibleRegardlessOfShape(opaque, opaque) {
		t.Fatalf("two identical opaque culling models should not be regardless-visible")
	}
}

func TestVisibleAccordingToShapeSubsetTest(t *testing.T) {
	lib := NewBakedLibrary()
	full := NewCubeModel(0, mgl32.Vec4{1, 1, 1, 1}, PatternFull)

	half := full
	halfPattern := lib.RegisterPattern(0x00000000FFFFFFFF)
	for s := Side(0); s < SideCount; s++ {
		half.Model.SidePatternIndices[s] = halfPattern
	}

	if lib.VisibleAccordingToShape(full, full, PosX) {
		t.Fatalf("a full face against a full opposing face should be fully occluded")
	}
	if !lib.VisibleAccordingToShape(full, half, PosX) {
		t.Fatalf("a full face against a half-open opposing face should remain partially visible")
	}
}

func TestConfigurationWarningsFlagDanglingFluidIndex(t *testing.T) {
	lib := NewBakedLibrary()
	m := NewCubeModel(0, mgl32.Vec4{1, 1, 1, 1}, PatternFull)
	m.FluidIndex = 3 // no fluids registered at all
	lib.SetModel(0, m)
	lib.SetMaterials([]string{"stone"})

	warnings := lib.ConfigurationWarnings()
	if len(warnings) == 0 {
		t.Fatalf("expected a warning about the dangling fluid index")
	}
}

func TestCloneIsIndependentOfOriginal(t *testing.T) {
	lib := NewBakedLibrary()
	m := NewCubeModel(0, mgl32.Vec4{1, 1, 1, 1}, PatternFull)
	m.CollisionAABBs = []AABB{{Min: mgl32.Vec3{0, 0, 0}, Max: mgl32.Vec3{1, 1, 1}}}
	lib.SetModel(1, m)
	lib.SetMaterials([]string{"stone"})

	cloneLibrary := lib.Clone()
	clone, ok := cloneLibrary.(*BakedLibrary)
	if !ok {
		t.Fatalf("expected Clone to return a *BakedLibrary")
	}

	// replacing a model in the clone's table must not touch the original's.
	clone.SetModel(1, NewCubeModel(0, mgl32.Vec4{0, 0, 0, 1}, PatternFull))
	if lib.Model(1).Color != (mgl32.Vec4{1, 1, 1, 1}) {
		t.Fatalf("mutating the clone's model table affected the original")
	}

	// the clone's CollisionAABBs backing array must be its own, not shared.
	otherClone, ok := lib.Clone().(*BakedLibrary)
	if !ok {
		t.Fatalf("expected Clone to return a *BakedLibrary")
	}
	otherClone.Model(1).CollisionAABBs[0] = AABB{}
	if len(lib.Model(1).CollisionAABBs) != 1 || lib.Model(1).CollisionAABBs[0].Max != (mgl32.Vec3{1, 1, 1}) {
		t.Fatalf("clone and original shared the same CollisionAABBs backing array")
	}
}
