package blocklib

import "github.com/go-gl/mathgl/mgl32"

const (
	// AirID is the reserved identifier meaning "no voxel here".
	AirID = 0
	// NullFluidIndex marks a model as not a fluid.
	NullFluidIndex = 255
	// MaxSurfaces bounds how many material slots a single baked model
	// (or a single side of it) can carry.
	MaxSurfaces = 2
)

// SideSurface is side-clipped geometry for one model, one side, one
// material slot: no normals (the side's normal is constant and supplied by
// the emitter), and tangents are optional (4 floats per vertex).
type SideSurface struct {
	Positions []mgl32.Vec3
	UVs       []mgl32.Vec2
	Indices   []int32
	Tangents  []float32
}

// Clear empties a side surface without releasing its backing arrays.
func (s *SideSurface) Clear() {
	s.Positions = s.Positions[:0]
	s.UVs = s.UVs[:0]
	s.Indices = s.Indices[:0]
	s.Tangents = s.Tangents[:0]
}

// IsEmpty reports whether the surface contributes no geometry.
func (s *SideSurface) IsEmpty() bool { return len(s.Indices) == 0 }

// Clone returns a deep copy, used when the fluid generator seeds its
// per-build scratch from a baked template.
func (s SideSurface) Clone() SideSurface {
	return SideSurface{
		Positions: append([]mgl32.Vec3(nil), s.Positions...),
		UVs:       append([]mgl32.Vec2(nil), s.UVs...),
		Indices:   append([]int32(nil), s.Indices...),
		Tangents:  append([]float32(nil), s.Tangents...),
	}
}

// Surface is interior (non-side) geometry for one model, one material slot.
type Surface struct {
	Positions        []mgl32.Vec3
	Normals          []mgl32.Vec3
	UVs              []mgl32.Vec2
	Indices          []int32
	Tangents         []float32
	MaterialID       uint32
	CollisionEnabled bool
}

func (s *Surface) Clear() {
	s.Positions = s.Positions[:0]
	s.Normals = s.Normals[:0]
	s.UVs = s.UVs[:0]
	s.Indices = s.Indices[:0]
	s.Tangents = s.Tangents[:0]
}

func (s *Surface) IsEmpty() bool { return len(s.Indices) == 0 }

// Model is the per-voxel-id baked geometry: interior surfaces plus a
// side-clipped variant per side per material slot.
type Model struct {
	Surfaces           [MaxSurfaces]Surface
	SidesSurfaces      [SideCount][MaxSurfaces]SideSurface
	SurfaceCount       uint8
	EmptySidesMask     uint8
	SidePatternIndices [SideCount]uint32
	CutoutSideSurfaces [SideCount]map[uint32][MaxSurfaces]SideSurface
}

// AABB is a simple axis-aligned box, local to the voxel's unit cell.
type AABB struct {
	Min, Max mgl32.Vec3
}

// BakedModel is the immutable per-id library entry the mesher reads.
type BakedModel struct {
	Model             Model
	Color             mgl32.Vec4
	TransparencyIndex uint8
	CullsNeighbors    bool
	ContributesToAO   bool
	Empty             bool
	CutoutSidesEnabled bool
	FluidIndex        uint8
	FluidLevel        uint8
	CollisionMask     uint32
	CollisionAABBs    []AABB
}

// FlowState is the small stable integer written into a fluid vertex's
// uv.y; shaders decode it to animate flow. Part of the external ABI.
type FlowState int32

const (
	FlowIdle FlowState = iota
	FlowStraightPosX
	FlowStraightNegX
	FlowStraightPosZ
	FlowStraightNegZ
	FlowDiagPosXPosZ
	FlowDiagPosXNegZ
	FlowDiagNegXPosZ
	FlowDiagNegXNegZ
)

// lateral side UV axis tags, written as uv.x for the four non-top,
// non-bottom fluid sides.
const (
	AxisX float32 = 0
	AxisY float32 = 1
	AxisZ float32 = 2
)

// FlowStateTable maps the 4-bit "which corners are at the minimum level"
// mask (bit3=corner0, bit2=corner1, bit1=corner2, bit0=corner3) to a flow
// state. Masks 0b0101 and 0b1010 are ambiguous (diagonal corners tie) and
// resolve to IDLE by convention; 0b0000 cannot occur (there is always a
// minimum) but also maps to IDLE defensively.
var FlowStateTable = [16]FlowState{
	0b0000: FlowIdle,
	0b0001: FlowDiagPosXPosZ,
	0b0010: FlowDiagNegXPosZ,
	0b0011: FlowStraightPosZ,
	0b0100: FlowDiagNegXNegZ,
	0b0101: FlowIdle,
	0b0110: FlowStraightNegX,
	0b0111: FlowDiagNegXPosZ,
	0b1000: FlowDiagPosXNegZ,
	0b1001: FlowStraightPosX,
	0b1010: FlowIdle,
	0b1011: FlowDiagPosXPosZ,
	0b1100: FlowStraightNegZ,
	0b1101: FlowDiagPosXNegZ,
	0b1110: FlowDiagNegXNegZ,
	0b1111: FlowIdle,
}

// BakedFluid is the immutable per-fluid-kind record: material, level range
// and the six pre-baked side surfaces the fluid face generator starts from.
type BakedFluid struct {
	MaterialID         uint32
	MaxLevel           uint8
	DipWhenFlowingDown bool
	SideSurfaces       [SideCount]SideSurface
}

// Height range for the fluid top/side quads: a corner's height is
// interpolated from BottomHeight (level 0) to TopHeight (max level).
const (
	BottomHeight float32 = 0.0
	TopHeight    float32 = 0.9
)

// NewBakedFluid builds a fluid record whose six side surfaces are unit-cube
// quads (positions in [0,1]^3), the shape the face generator expects to
// start from before raising tops to corner heights.
func NewBakedFluid(materialID uint32, maxLevel uint8, dipWhenFlowingDown bool) BakedFluid {
	var f BakedFluid
	f.MaterialID = materialID
	f.MaxLevel = maxLevel
	f.DipWhenFlowingDown = dipWhenFlowingDown
	for s := Side(0); s < SideCount; s++ {
		f.SideSurfaces[s] = unitSideSurface(s)
	}
	return f
}

// NewCubeModel builds a fully solid, opaque unit-cube baked model: all six
// sides present, no interior geometry, no fluid. Used both directly by
// catalog tooling and by tests as the canonical "solid cube" fixture.
func NewCubeModel(materialID uint32, color mgl32.Vec4, fullPattern uint32) BakedModel {
	var m Model
	m.SurfaceCount = 0
	m.Surfaces[0].MaterialID = materialID
	for s := Side(0); s < SideCount; s++ {
		m.SidesSurfaces[s][0] = unitSideSurface(s)
		m.SidePatternIndices[s] = fullPattern
	}
	return BakedModel{
		Model:           m,
		Color:           color,
		CullsNeighbors:  true,
		ContributesToAO: true,
		FluidIndex:      NullFluidIndex,
	}
}
