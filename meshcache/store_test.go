package meshcache

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/voxelsplace/blockymesh/blockymesh"
)

func sampleOutput() blockymesh.Output {
	return blockymesh.Output{
		PrimitiveType: blockymesh.PrimitiveTriangles,
		Surfaces: []blockymesh.SurfaceOutput{
			{
				MaterialIndex: 2,
				Arrays: blockymesh.MeshArrays{
					Positions: []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0}},
					Normals:   []mgl32.Vec3{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}, {0, 0, 1}},
					UVs:       []mgl32.Vec2{{0, 0}, {1, 0}, {0, 1}, {1, 1}},
					Colors:    []mgl32.Vec4{{1, 1, 1, 1}, {1, 1, 1, 1}, {1, 1, 1, 1}, {1, 1, 1, 1}},
					Indices:   []int32{0, 2, 1, 1, 2, 3},
				},
			},
		},
		Collision: blockymesh.CollisionSurface{
			Positions: []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
			Indices:   []int32{0, 1, 2},
		},
	}
}

func TestEncodeDecodeOutputRoundtrips(t *testing.T) {
	want := sampleOutput()
	got, err := decodeOutput(encodeOutput(want))
	if err != nil {
		t.Fatalf("decodeOutput failed: %v", err)
	}
	if len(got.Surfaces) != 1 || len(got.Surfaces[0].Arrays.Positions) != 4 {
		t.Fatalf("surface shape did not round-trip: %+v", got)
	}
	if got.Surfaces[0].MaterialIndex != 2 {
		t.Fatalf("material index did not round-trip: got %d", got.Surfaces[0].MaterialIndex)
	}
	for i, p := range want.Surfaces[0].Arrays.Positions {
		gp := got.Surfaces[0].Arrays.Positions[i]
		if p != gp {
			t.Fatalf("position %d did not round-trip: want %v got %v", i, p, gp)
		}
	}
	if len(got.Collision.Indices) != 3 {
		t.Fatalf("collision surface did not round-trip: %+v", got.Collision)
	}
}

func TestStorePutGetRoundtrips(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer s.Close()

	key := KeyFor(0xdeadbeef, blockymesh.Options{LODIndex: 1, BakeOcclusion: true})
	want := sampleOutput()

	if _, hit, err := s.Get(key); err != nil || hit {
		t.Fatalf("expected a clean miss before Put, got hit=%v err=%v", hit, err)
	}

	if err := s.Put(key, want); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, hit, err := s.Get(key)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !hit {
		t.Fatalf("expected a cache hit after Put")
	}
	if len(got.Surfaces) != len(want.Surfaces) {
		t.Fatalf("surface count mismatch: got %d want %d", len(got.Surfaces), len(want.Surfaces))
	}

	n, err := s.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 cached entry, got %d", n)
	}

	if err := s.Delete(key); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, hit, err := s.Get(key); err != nil || hit {
		t.Fatalf("expected a miss after Delete, got hit=%v err=%v", hit, err)
	}
}

func TestKeyDistinguishesOptions(t *testing.T) {
	a := KeyFor(1, blockymesh.Options{LODIndex: 0})
	b := KeyFor(1, blockymesh.Options{LODIndex: 1})
	if a.String() == b.String() {
		t.Fatalf("keys with different LOD indexes should not collide")
	}
}

func TestPutOverwritesExistingKey(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer s.Close()

	key := KeyFor(7, blockymesh.Options{})
	if err := s.Put(key, sampleOutput()); err != nil {
		t.Fatalf("first Put failed: %v", err)
	}
	second := blockymesh.Output{PrimitiveType: blockymesh.PrimitiveTriangles}
	if err := s.Put(key, second); err != nil {
		t.Fatalf("second Put failed: %v", err)
	}
	got, hit, err := s.Get(key)
	if err != nil || !hit {
		t.Fatalf("expected a hit after overwrite, got hit=%v err=%v", hit, err)
	}
	if len(got.Surfaces) != 0 {
		t.Fatalf("expected the overwritten (empty) output, got %d surfaces", len(got.Surfaces))
	}

	n, err := s.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 1 {
		t.Fatalf("overwriting the same key should not add a second row, got %d", n)
	}
}
