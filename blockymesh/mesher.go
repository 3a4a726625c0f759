package blockymesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/voxelsplace/blockymesh/blocklib"
	"github.com/voxelsplace/blockymesh/voxelbuffer"
)

// Mesher is C9, the public build entrypoint, plus the per-worker-thread
// scratch the rest of the CORE reuses across builds. A Mesher must not be
// shared across goroutines: create one per worker and keep reusing it,
// exactly like the per-thread arenas the original engine attaches to its
// meshing thread pool.
type Mesher struct {
	library blocklib.Library

	arraysPerMaterial []Arrays
	collision         CollisionSurface

	fluidTop   [blocklib.MaxSurfaces]blocklib.Surface
	fluidSides [blocklib.SideCount][blocklib.MaxSurfaces]blocklib.SideSurface
}

// NewMesher builds a Mesher bound to library. The library may be swapped
// later with SetLibrary; scratch storage survives the swap.
func NewMesher(library blocklib.Library) *Mesher {
	return &Mesher{library: library}
}

// SetLibrary rebinds the mesher to a different library without discarding
// scratch arrays.
func (m *Mesher) SetLibrary(library blocklib.Library) { m.library = library }

// MaterialByIndex returns the name of material i in the table the mesher's
// library bakes models against, reinstating the original façade's material
// introspection. It reports false when no library is bound.
func (m *Mesher) MaterialByIndex(i uint32) (string, bool) {
	if m.library == nil {
		return "", false
	}
	return m.library.MaterialByIndex(i)
}

func (m *Mesher) MaterialIndexCount() uint32 {
	if m.library == nil {
		return 0
	}
	return m.library.MaterialIndexCount()
}

// Clone returns a new Mesher bound to m's library. With deep set and the
// library implementing blocklib.Cloner, the clone gets its own independent
// copy of the library's subresources (models, fluids, pattern masks,
// materials) instead of sharing m's; libraries that don't implement Cloner
// fall back to a shared reference either way. The clone always starts with
// empty scratch: scratch is never meaningful to share.
func (m *Mesher) Clone(deep bool) *Mesher {
	lib := m.library
	if deep {
		if cloner, ok := lib.(blocklib.Cloner); ok {
			lib = cloner.Clone()
		}
	}
	return &Mesher{library: lib}
}

func (m *Mesher) arrayFor(materialID uint32) *Arrays {
	if materialID >= uint32(len(m.arraysPerMaterial)) {
		grown := make([]Arrays, materialID+1)
		copy(grown, m.arraysPerMaterial)
		m.arraysPerMaterial = grown
	}
	return &m.arraysPerMaterial[materialID]
}

func (m *Mesher) resetScratch(materialCount uint32) {
	if uint32(len(m.arraysPerMaterial)) < materialCount {
		grown := make([]Arrays, materialCount)
		copy(grown, m.arraysPerMaterial)
		m.arraysPerMaterial = grown
	}
	for i := range m.arraysPerMaterial {
		m.arraysPerMaterial[i].Clear()
	}
	m.collision.clear()
}

// Build is C9: validate input, run the main loop, stitch seams, scale for
// LOD and package the per-material scratch into an Output.
func (m *Mesher) Build(buf voxelbuffer.Buffer, opts Options) (Output, error) {
	if m.library == nil {
		return Output{PrimitiveType: PrimitiveTriangles}, nil
	}

	sx, sy, sz := buf.Size()
	if sx < 2*Padding || sy < 2*Padding || sz < 2*Padding {
		return Output{PrimitiveType: PrimitiveTriangles}, ErrUndersizedChunk
	}

	switch buf.ChannelCompression() {
	case voxelbuffer.CompressionUniform:
		return Output{PrimitiveType: PrimitiveTriangles}, nil
	case voxelbuffer.CompressionOther:
		return Output{PrimitiveType: PrimitiveTriangles}, ErrUnsupportedCompression
	}

	opts.OcclusionDarkness = opts.clampedDarkness()

	materialCount := m.library.MaterialIndexCount()
	m.library.RLock()
	m.resetScratch(materialCount)

	var err error
	switch buf.ChannelDepth() {
	case voxelbuffer.Depth8:
		data := buf.ChannelBytes()
		err = m.runLoop(sx, sy, sz, opts, func(i int) uint32 { return uint32(data[i]) })
	case voxelbuffer.Depth16:
		data := buf.ChannelBytes()
		err = m.runLoop(sx, sy, sz, opts, func(i int) uint32 {
			o := i * 2
			return uint32(data[o]) | uint32(data[o+1])<<8
		})
	default:
		err = ErrUnsupportedDepth
	}
	if err == nil && opts.LODIndex > 0 {
		m.stitchSeams(sx, sy, sz, opts, func(i int) uint32 {
			if buf.ChannelDepth() == voxelbuffer.Depth16 {
				data := buf.ChannelBytes()
				o := i * 2
				return uint32(data[o]) | uint32(data[o+1])<<8
			}
			return uint32(buf.ChannelBytes()[i])
		})
	}
	m.library.RUnlock()

	if err != nil {
		return Output{PrimitiveType: PrimitiveTriangles}, err
	}

	if opts.LODIndex > 0 {
		scale := float32(uint32(1) << opts.LODIndex)
		for i := range m.arraysPerMaterial {
			scalePositions(m.arraysPerMaterial[i].Positions, scale)
		}
		scalePositions(m.collision.Positions, scale)
	}

	return m.packageOutput(), nil
}

func scalePositions(positions []mgl32.Vec3, scale float32) {
	for i := range positions {
		positions[i] = positions[i].Mul(scale)
	}
}

func (m *Mesher) packageOutput() Output {
	out := Output{PrimitiveType: PrimitiveTriangles}
	for materialID := range m.arraysPerMaterial {
		a := &m.arraysPerMaterial[materialID]
		if a.IsEmpty() {
			continue
		}
		out.Surfaces = append(out.Surfaces, SurfaceOutput{
			MaterialIndex: uint32(materialID),
			Arrays: MeshArrays{
				Positions: cloneVec3(a.Positions),
				Normals:   cloneVec3(a.Normals),
				UVs:       cloneVec2(a.UVs),
				Colors:    cloneVec4(a.Colors),
				Tangents:  cloneF32(a.Tangents),
				Indices:   cloneI32(a.Indices),
			},
		})
	}
	out.Collision = CollisionSurface{
		Positions: cloneVec3(m.collision.Positions),
		Indices:   cloneI32(m.collision.Indices),
	}
	return out
}
