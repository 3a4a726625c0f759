package blockymesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/voxelsplace/blockymesh/blocklib"
)

// emitSideSurface is C4: append one side surface for one material,
// rebasing indices against that material's running position count (INV-2).
// shade == nil means no occlusion baking: every vertex gets the flat
// modulate color.
func (m *Mesher) emitSideSurface(ss *blocklib.SideSurface, materialID uint32, collisionEnabled bool, voxelPos, normal mgl32.Vec3, baseColor mgl32.Vec4, shade *[4]float32, cornerPos [4]mgl32.Vec3, darkness float32, wantCollision bool) {
	if ss.IsEmpty() {
		return
	}
	arr := m.arrayFor(materialID)
	base := int32(len(arr.Positions))
	collisionBase := int32(len(m.collision.Positions))

	for _, p := range ss.Positions {
		wp := p.Add(voxelPos)
		arr.Positions = append(arr.Positions, wp)
		arr.Normals = append(arr.Normals, normal)
		var col mgl32.Vec4
		if shade != nil {
			col = shadedVertexColor(baseColor, *shade, cornerPos, p, darkness)
		} else {
			col = baseColor
		}
		arr.Colors = append(arr.Colors, col)
		if collisionEnabled && wantCollision {
			m.collision.Positions = append(m.collision.Positions, wp)
		}
	}
	arr.UVs = append(arr.UVs, ss.UVs...)
	if len(ss.Tangents) > 0 {
		arr.Tangents = append(arr.Tangents, ss.Tangents...)
	}
	for _, idx := range ss.Indices {
		arr.Indices = append(arr.Indices, base+idx)
		if collisionEnabled && wantCollision {
			m.collision.Indices = append(m.collision.Indices, collisionBase+idx)
		}
	}
}

// emitInterior is C5: append a model's non-side geometry. No ambient
// occlusion is ever applied here (§9 Design Notes: preserved as-is,
// whether that is deliberate or not is not stated upstream).
func (m *Mesher) emitInterior(surf *blocklib.Surface, voxelPos mgl32.Vec3, baseColor mgl32.Vec4, wantCollision bool) {
	if surf.IsEmpty() {
		return
	}
	arr := m.arrayFor(surf.MaterialID)
	base := int32(len(arr.Positions))
	collisionBase := int32(len(m.collision.Positions))

	for i, p := range surf.Positions {
		wp := p.Add(voxelPos)
		arr.Positions = append(arr.Positions, wp)
		arr.Normals = append(arr.Normals, surf.Normals[i])
		arr.Colors = append(arr.Colors, baseColor)
		if surf.CollisionEnabled && wantCollision {
			m.collision.Positions = append(m.collision.Positions, wp)
		}
	}
	arr.UVs = append(arr.UVs, surf.UVs...)
	if len(surf.Tangents) > 0 {
		arr.Tangents = append(arr.Tangents, surf.Tangents...)
	}
	for _, idx := range surf.Indices {
		arr.Indices = append(arr.Indices, base+idx)
		if surf.CollisionEnabled && wantCollision {
			m.collision.Indices = append(m.collision.Indices, collisionBase+idx)
		}
	}
}
