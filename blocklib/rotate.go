package blocklib

import "github.com/go-gl/mathgl/mgl32"

// sideFromNormal finds the side whose constant normal matches n (within
// rounding), used to remap side surfaces under an orthogonal rotation.
func sideFromNormal(n mgl32.Vec3) Side {
	best := Side(0)
	bestDot := float32(-2)
	for s := Side(0); s < SideCount; s++ {
		sn := SideNormal[s]
		d := n[0]*sn[0] + n[1]*sn[1] + n[2]*sn[2]
		if d > bestDot {
			bestDot = d
			best = s
		}
	}
	return best
}

func rotateAroundUnitCenter(v mgl32.Vec3, basis mgl32.Mat3) mgl32.Vec3 {
	centered := v.Sub(mgl32.Vec3{0.5, 0.5, 0.5})
	rotated := basis.Mul3x1(centered)
	return rotated.Add(mgl32.Vec3{0.5, 0.5, 0.5})
}

// RotateOrtho applies one of the 24 cube-symmetry rotations (an orthogonal,
// axis-permuting matrix with entries in {-1,0,1}) to a baked model's
// geometry, producing the model a catalog author would otherwise have to
// author by hand for each orientation. Interior surfaces are rotated in
// place; side surfaces are both rotated and remapped to whichever side
// their normal now points at.
func RotateOrtho(m Model, basis mgl32.Mat3) Model {
	var out Model
	out.SurfaceCount = m.SurfaceCount
	for i := range m.Surfaces {
		src := m.Surfaces[i]
		dst := Surface{
			MaterialID:       src.MaterialID,
			CollisionEnabled: src.CollisionEnabled,
			Indices:          append([]int32(nil), src.Indices...),
			UVs:              append([]mgl32.Vec2(nil), src.UVs...),
			Tangents:         append([]float32(nil), src.Tangents...),
		}
		for _, p := range src.Positions {
			dst.Positions = append(dst.Positions, rotateAroundUnitCenter(p, basis))
		}
		for _, n := range src.Normals {
			dst.Normals = append(dst.Normals, basis.Mul3x1(n))
		}
		out.Surfaces[i] = dst
	}

	for s := Side(0); s < SideCount; s++ {
		newSide := sideFromNormal(basis.Mul3x1(mgl32.Vec3(SideNormal[s])))
		out.SidePatternIndices[newSide] = m.SidePatternIndices[s]
		for slot := range m.SidesSurfaces[s] {
			src := m.SidesSurfaces[s][slot]
			dst := src.Clone()
			for i, p := range src.Positions {
				dst.Positions[i] = rotateAroundUnitCenter(p, basis)
			}
			out.SidesSurfaces[newSide][slot] = dst
		}
	}
	out.recomputeEmptySidesMask()
	return out
}

func (m *Model) recomputeEmptySidesMask() {
	m.EmptySidesMask = 0
	for s := Side(0); s < SideCount; s++ {
		empty := true
		for slot := range m.SidesSurfaces[s] {
			if !m.SidesSurfaces[s][slot].IsEmpty() {
				empty = false
				break
			}
		}
		if empty {
			m.EmptySidesMask |= 1 << uint(s)
		}
	}
}
