package blockymesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/voxelsplace/blockymesh/blocklib"
	"github.com/voxelsplace/blockymesh/voxelbuffer"
)

// runLoop is C7: walk the buffer's inner region (excluding the padding
// skirt), and for every non-air voxel resolve its six sides through C3,
// shade them through C2 when requested, and emit through C4/C5. Fluid
// voxels are overridden through C6 before the per-side walk runs.
func (m *Mesher) runLoop(sx, sy, sz int, opts Options, read func(int) uint32) error {
	lut := blocklib.BuildNeighborLUTs(sx, sy, sz)
	lib := m.library

	contributesToAO := func(id uint32) bool {
		if id == blocklib.AirID {
			return false
		}
		if !lib.HasModel(id) {
			return true
		}
		return lib.Model(id).ContributesToAO
	}

	for z := Padding; z < sz-Padding; z++ {
		for x := Padding; x < sx-Padding; x++ {
			for y := Padding; y < sy-Padding; y++ {
				at := voxelbuffer.Index(x, y, z, sx, sy)
				id := read(at)
				if id == blocklib.AirID {
					continue
				}
				if !lib.HasModel(id) {
					continue
				}
				v := lib.Model(id)
				if v.Empty {
					continue
				}

				voxelPos := mgl32.Vec3{float32(x - Padding), float32(y - Padding), float32(z - Padding)}
				isFluid := v.FluidIndex != blocklib.NullFluidIndex

				var sidesSurfaces *[blocklib.SideCount][blocklib.MaxSurfaces]blocklib.SideSurface
				var emptyMask uint8
				var fluidMaterialID uint32

				if isFluid {
					fluid := lib.Fluid(v.FluidIndex)
					fluidMaterialID = fluid.MaterialID
					m.buildFluidModel(lib, v, fluid, at, &lut, read, &m.fluidTop, &m.fluidSides)
					sidesSurfaces = &m.fluidSides
					emptyMask = 0
				} else {
					sidesSurfaces = &v.Model.SidesSurfaces
					emptyMask = v.Model.EmptySidesMask
				}

				sideMaterial := func(slot int) (uint32, bool) {
					if isFluid {
						return fluidMaterialID, false
					}
					return v.Model.Surfaces[slot].MaterialID, v.Model.Surfaces[slot].CollisionEnabled
				}

				for s := blocklib.Side(0); s < blocklib.SideCount; s++ {
					if !isFluid && emptyMask&(1<<uint(s)) != 0 {
						continue
					}
					neighborID := read(at + lut.SideOffset[s])

					var cutout map[uint32][blocklib.MaxSurfaces]blocklib.SideSurface
					if !isFluid {
						cutout = v.Model.CutoutSideSurfaces[s]
					}

					visible, surfaces := resolveSide(lib, v, &sidesSurfaces[s], cutout, s, neighborID)
					if !visible || surfaces == nil {
						continue
					}

					var shadePtr *[4]float32
					var cornerPos [4]mgl32.Vec3
					if opts.BakeOcclusion && !isFluid {
						shade := shadeCorners(lut, at, s, read, contributesToAO)
						shadePtr = &shade
						cornerPos = faceCornerPositions(lut, s)
					}

					n := blocklib.SideNormal[s]
					normal := mgl32.Vec3{n[0], n[1], n[2]}

					for slot := 0; slot < blocklib.MaxSurfaces; slot++ {
						ss := &surfaces[slot]
						if ss.IsEmpty() {
							continue
						}
						materialID, collisionEnabled := sideMaterial(slot)
						m.emitSideSurface(ss, materialID, collisionEnabled, voxelPos, normal, v.Color, shadePtr, cornerPos, opts.OcclusionDarkness, opts.CollisionHint)
					}
				}

				if isFluid {
					m.emitInterior(&m.fluidTop[0], voxelPos, v.Color, opts.CollisionHint)
				} else {
					for slot := 0; slot < int(v.Model.SurfaceCount); slot++ {
						m.emitInterior(&v.Model.Surfaces[slot], voxelPos, v.Color, opts.CollisionHint)
					}
				}
			}
		}
	}
	return nil
}
