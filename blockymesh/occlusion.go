package blockymesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/voxelsplace/blockymesh/blocklib"
)

// shadeCorners implements C2: for voxel at linear index `at` and side s,
// derive a 0-3 occlusion count per face corner (in blocklib.SideCorners(s)
// order). read fetches a neighbor's raw identifier by linear offset;
// contributes decides whether an identifier contributes to AO (true for
// unknown/out-of-range ids, per the library otherwise).
//
// The edge pass must run before the corner pass: a corner already shaded by
// both its adjacent edges is forced to the maximum (3) without consulting
// the diagonal voxel at all.
func shadeCorners(lut blocklib.NeighborLUTs, at int, s blocklib.Side, read func(offset int) uint32, contributes func(id uint32) bool) [4]float32 {
	corners := blocklib.SideCorners(s)
	edges := blocklib.SideEdges(s)

	cornerSlot := func(c blocklib.Corner) int {
		for i, cc := range corners {
			if cc == c {
				return i
			}
		}
		return -1
	}

	var shade [4]float32
	for _, e := range edges {
		id := read(at + lut.EdgeOffset[e])
		if !contributes(id) {
			continue
		}
		for _, c := range blocklib.EdgeCorners(e) {
			if slot := cornerSlot(c); slot >= 0 {
				shade[slot]++
			}
		}
	}
	for i, c := range corners {
		if shade[i] >= 2 {
			shade[i] = 3
			continue
		}
		id := read(at + lut.CornerOffset[c])
		if contributes(id) {
			shade[i]++
		}
	}
	return shade
}

// shadedVertexColor applies the per-vertex darkening formula: the vertex's
// modulate color scaled by (1 - shade_sum), where shade_sum is the maximum
// over the face's four corners of darkness * shade[c] * a falloff in the
// squared distance from the vertex to that corner's reference position.
func shadedVertexColor(base mgl32.Vec4, shade [4]float32, cornerPos [4]mgl32.Vec3, p mgl32.Vec3, darkness float32) mgl32.Vec4 {
	var shadeSum float32
	for c := 0; c < 4; c++ {
		d := p.Sub(cornerPos[c])
		falloff := 1 - d.Dot(d)
		if falloff < 0 {
			falloff = 0
		}
		v := darkness * shade[c] * falloff
		if v > shadeSum {
			shadeSum = v
		}
	}
	if shadeSum > 1 {
		shadeSum = 1
	}
	if shadeSum < 0 {
		shadeSum = 0
	}
	gs := 1 - shadeSum
	return mgl32.Vec4{base[0] * gs, base[1] * gs, base[2] * gs, base[3]}
}

// faceCornerPositions returns, in blocklib.SideCorners(s) order, the local
// unit-cube reference position of each of side s's four corners.
func faceCornerPositions(lut blocklib.NeighborLUTs, s blocklib.Side) [4]mgl32.Vec3 {
	var out [4]mgl32.Vec3
	for i, c := range blocklib.SideCorners(s) {
		p := lut.CornerPos[c]
		out[i] = mgl32.Vec3{p[0], p[1], p[2]}
	}
	return out
}
