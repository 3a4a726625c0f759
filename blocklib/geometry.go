package blocklib

import "github.com/go-gl/mathgl/mgl32"

// unitQuadPositions gives the four corner positions of the unit-cube face
// for each side, in an order such that the default triangulation below
// winds front-facing (CCW as seen from outside the cube). Index 2 and 3 are
// always the top pair (larger y) for the four lateral sides, matching the
// invariant the fluid face generator relies on.
var unitQuadPositions = [SideCount][4]mgl32.Vec3{
	NegX: {{0, 0, 1}, {0, 0, 0}, {0, 1, 0}, {0, 1, 1}},
	PosX: {{1, 0, 0}, {1, 0, 1}, {1, 1, 1}, {1, 1, 0}},
	NegY: {{0, 0, 0}, {0, 0, 1}, {1, 0, 1}, {1, 0, 0}},
	PosY: {{0, 1, 0}, {1, 1, 0}, {1, 1, 1}, {0, 1, 1}},
	NegZ: {{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}},
	PosZ: {{1, 0, 1}, {0, 0, 1}, {0, 1, 1}, {1, 1, 1}},
}

var unitQuadUVs = [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

// defaultQuadIndices is the baked triangulation for a 4-vertex quad authored
// in the order above: two triangles sharing the 0-2 diagonal.
var defaultQuadIndices = [6]int32{0, 2, 1, 0, 3, 2}

// TransposeQuadTriangles swaps the shared diagonal of a baked quad from
// 0-2 to 1-3, used when a fluid's flow direction runs along the other
// diagonal.
func TransposeQuadTriangles(idx [6]int32) [6]int32 {
	idx[1] = idx[4]
	idx[3] = idx[2]
	return idx
}

// unitSideSurface builds the canonical single-quad surface for one side of
// a unit cube, tangent-free.
func unitSideSurface(s Side) SideSurface {
	p := unitQuadPositions[s]
	return SideSurface{
		Positions: []mgl32.Vec3{p[0], p[1], p[2], p[3]},
		UVs:       []mgl32.Vec2{unitQuadUVs[0], unitQuadUVs[1], unitQuadUVs[2], unitQuadUVs[3]},
		Indices:   append([]int32(nil), defaultQuadIndices[:]...),
	}
}
