// Package blockymesh is the CORE of the mesher: it turns a padded, dense
// voxel buffer into renderable triangle surfaces grouped by material. It
// never allocates storage for its own inputs (the library and the voxel
// buffer are read-only external collaborators) and reuses its own output
// scratch across builds on the same Mesher value.
package blockymesh

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
)

// Error taxonomy (spec §7). Missing-library and degenerate-chunk are not
// errors at all — Build returns an empty Output with a nil error for both,
// matching the original's "keep editor setup silent" stance.
var (
	ErrUnsupportedCompression = errors.New("blockymesh: unsupported voxel channel compression")
	ErrUnsupportedDepth       = errors.New("blockymesh: unsupported voxel channel bit depth")
	ErrUndersizedChunk        = errors.New("blockymesh: chunk smaller than twice the padding on some axis")
	// ErrInternalInvariant names the internal-invariant member of the error
	// taxonomy. No code path in this package returns it, and none panics in
	// its place: a material index at or above the library's count grows the
	// per-material scratch instead of being rejected.
	ErrInternalInvariant = errors.New("blockymesh: internal invariant violation")
)

// Padding is the one-voxel skirt around the inner region every padded
// buffer carries so neighbor queries never go out of bounds.
const Padding = 1

// Arrays is the per-material mutable scratch the main loop appends to.
// Reused across builds: Clear empties it without releasing capacity.
type Arrays struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
	Colors    []mgl32.Vec4
	Tangents  []float32
	Indices   []int32
}

func (a *Arrays) Clear() {
	a.Positions = a.Positions[:0]
	a.Normals = a.Normals[:0]
	a.UVs = a.UVs[:0]
	a.Colors = a.Colors[:0]
	a.Tangents = a.Tangents[:0]
	a.Indices = a.Indices[:0]
}

func (a *Arrays) IsEmpty() bool { return len(a.Indices) == 0 }

// MeshArrays is the immutable, caller-owned view of one material's
// geometry returned from Build.
type MeshArrays struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
	Colors    []mgl32.Vec4
	Tangents  []float32
	Indices   []int32
}

// SurfaceOutput pairs one material index with its built geometry.
type SurfaceOutput struct {
	MaterialIndex uint32
	Arrays        MeshArrays
}

// CollisionSurface collects positions and indices from every surface whose
// CollisionEnabled flag was set, with normals/uvs/colors/tangents dropped.
type CollisionSurface struct {
	Positions []mgl32.Vec3
	Indices   []int32
}

func (c *CollisionSurface) clear() {
	c.Positions = c.Positions[:0]
	c.Indices = c.Indices[:0]
}

// PrimitiveTriangles is the only primitive type Build ever produces.
const PrimitiveTriangles = "TRIANGLES"

// Output is the result of one Build call, transferred to the caller.
type Output struct {
	Surfaces      []SurfaceOutput
	Collision     CollisionSurface
	PrimitiveType string
}

// Options controls one Build call.
type Options struct {
	LODIndex          uint8
	CollisionHint      bool
	BakeOcclusion      bool
	OcclusionDarkness float32
}

func (o Options) clampedDarkness() float32 {
	d := o.OcclusionDarkness
	if d < 0 {
		d = 0
	}
	if d > 1 {
		d = 1
	}
	return d / 3
}

func cloneVec3(s []mgl32.Vec3) []mgl32.Vec3 { return append([]mgl32.Vec3(nil), s...) }
func cloneVec2(s []mgl32.Vec2) []mgl32.Vec2 { return append([]mgl32.Vec2(nil), s...) }
func cloneVec4(s []mgl32.Vec4) []mgl32.Vec4 { return append([]mgl32.Vec4(nil), s...) }
func cloneF32(s []float32) []float32        { return append([]float32(nil), s...) }
func cloneI32(s []int32) []int32            { return append([]int32(nil), s...) }
