package blockymesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/voxelsplace/blockymesh/blocklib"
	"github.com/voxelsplace/blockymesh/voxelbuffer"
)

// stitchSeams is C8, run only when opts.LODIndex > 0: for each of the six
// chunk boundary faces, walk the padded outer slab and, where a boundary
// voxel is exposed to air in-plane but backed by a solid voxel one step
// inward, append that inward voxel's own pre-baked side surface at the
// boundary. This is what keeps a coarse chunk's face from showing a crack
// against a finer neighbor. No AO is baked here — the seam check only looks
// at whether the inward voxel is non-air, it never consults the visibility
// oracle, so it can over-emit in rare topologies; that is preserved as-is.
func (m *Mesher) stitchSeams(sx, sy, sz int, opts Options, read func(int) uint32) {
	lib := m.library
	size := [3]int{sx, sy, sz}

	for s := blocklib.Side(0); s < blocklib.SideCount; s++ {
		axis := int(s) / 2 // 0=X, 1=Y, 2=Z per the NegX,PosX,NegY,PosY,NegZ,PosZ ordering
		isPos := s%2 == 1

		depth := 0
		inward := 1
		if isPos {
			depth = size[axis] - 1
			inward = size[axis] - 2
		}

		var uAxis, wAxis int
		switch axis {
		case 0:
			uAxis, wAxis = 1, 2
		case 1:
			uAxis, wAxis = 0, 2
		default:
			uAxis, wAxis = 0, 1
		}

		coordAt := func(depthVal, u, w int) [3]int {
			var c [3]int
			c[axis] = depthVal
			c[uAxis] = u
			c[wAxis] = w
			return c
		}
		linear := func(c [3]int) int {
			return voxelbuffer.Index(c[0], c[1], c[2], sx, sy)
		}

		for u := Padding; u < size[uAxis]-Padding; u++ {
			for w := Padding; w < size[wAxis]-Padding; w++ {
				outerCoord := coordAt(depth, u, w)
				at := linear(outerCoord)
				id := read(at)
				if id == blocklib.AirID {
					continue
				}

				neighborOffsets := [4][3]int{
					coordAt(depth, u-1, w),
					coordAt(depth, u+1, w),
					coordAt(depth, u, w-1),
					coordAt(depth, u, w+1),
				}
				allNonAir := true
				for _, nc := range neighborOffsets {
					if read(linear(nc)) == blocklib.AirID {
						allNonAir = false
						break
					}
				}
				if allNonAir {
					continue
				}

				inwardCoord := coordAt(inward, u, w)
				inwardID := read(linear(inwardCoord))
				if inwardID == blocklib.AirID {
					continue
				}
				if !lib.HasModel(inwardID) {
					continue
				}
				inwardModel := lib.Model(inwardID)
				if inwardModel.Empty {
					continue
				}

				n := blocklib.SideNormal[s]
				normal := mgl32.Vec3{n[0], n[1], n[2]}
				voxelPos := mgl32.Vec3{
					float32(outerCoord[0] - Padding),
					float32(outerCoord[1] - Padding),
					float32(outerCoord[2] - Padding),
				}

				surfaces := &inwardModel.Model.SidesSurfaces[s]
				for slot := 0; slot < blocklib.MaxSurfaces; slot++ {
					ss := &surfaces[slot]
					if ss.IsEmpty() {
						continue
					}
					materialID := inwardModel.Model.Surfaces[slot].MaterialID
					collisionEnabled := inwardModel.Model.Surfaces[slot].CollisionEnabled
					m.emitSideSurface(ss, materialID, collisionEnabled, voxelPos, normal, inwardModel.Color, nil, [4]mgl32.Vec3{}, 0, opts.CollisionHint)
				}
			}
		}
	}
}
