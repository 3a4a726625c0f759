// Package blocklib implements the Library contract the mesher consumes:
// an immutable, pre-baked catalog of models, side surfaces, side-pattern
// indices, cutout tables and fluid parameters. Baking (turning author-time
// data into this form) lives in blocklib/catalogdef; this package only
// defines the baked shape and the read-only predicates the core calls.
package blocklib

// Side indexes one of the six axis-aligned faces of a voxel.
type Side uint8

const (
	NegX Side = iota
	PosX
	NegY
	PosY
	NegZ
	PosZ
	SideCount = 6
)

// Opposite returns the side facing the other way along the same axis.
// Sides are paired two-by-two in declaration order, so opposite(s) is
// always the sibling with its low bit flipped.
func (s Side) Opposite() Side { return s ^ 1 }

func (s Side) String() string {
	switch s {
	case NegX:
		return "-X"
	case PosX:
		return "+X"
	case NegY:
		return "-Y"
	case PosY:
		return "+Y"
	case NegZ:
		return "-Z"
	case PosZ:
		return "+Z"
	default:
		return "?"
	}
}

// Edge indexes one of the 12 edges of a voxel, each the intersection of two
// sides on different axes.
type Edge uint8

const (
	EdgeXnYn Edge = iota
	EdgeXnYp
	EdgeXpYn
	EdgeXpYp
	EdgeXnZn
	EdgeXnZp
	EdgeXpZn
	EdgeXpZp
	EdgeYnZn
	EdgeYnZp
	EdgeYpZn
	EdgeYpZp
	EdgeCount = 12
)

// Corner indexes one of the 8 corners of a voxel, each the intersection of
// three sides, one per axis.
type Corner uint8

const (
	CornerXnYnZn Corner = iota
	CornerXnYnZp
	CornerXnYpZn
	CornerXnYpZp
	CornerXpYnZn
	CornerXpYnZp
	CornerXpYpZn
	CornerXpYpZp
	CornerCount = 8
)

var edgeSides = [EdgeCount][2]Side{
	EdgeXnYn: {NegX, NegY},
	EdgeXnYp: {NegX, PosY},
	EdgeXpYn: {PosX, NegY},
	EdgeXpYp: {PosX, PosY},
	EdgeXnZn: {NegX, NegZ},
	EdgeXnZp: {NegX, PosZ},
	EdgeXpZn: {PosX, NegZ},
	EdgeXpZp: {PosX, PosZ},
	EdgeYnZn: {NegY, NegZ},
	EdgeYnZp: {NegY, PosZ},
	EdgeYpZn: {PosY, NegZ},
	EdgeYpZp: {PosY, PosZ},
}

var cornerSides = [CornerCount][3]Side{
	CornerXnYnZn: {NegX, NegY, NegZ},
	CornerXnYnZp: {NegX, NegY, PosZ},
	CornerXnYpZn: {NegX, PosY, NegZ},
	CornerXnYpZp: {NegX, PosY, PosZ},
	CornerXpYnZn: {PosX, NegY, NegZ},
	CornerXpYnZp: {PosX, NegY, PosZ},
	CornerXpYpZn: {PosX, PosY, NegZ},
	CornerXpYpZp: {PosX, PosY, PosZ},
}

// sideEdges lists, for each side, the four edges that border it: those
// whose defining side pair includes that side.
var sideEdges [SideCount][4]Edge

// sideCorners lists, for each side, the four corners that lie on it.
var sideCorners [SideCount][4]Corner

// edgeCorners lists, for each edge, the two corners it connects: the two
// corners sharing both sides that define the edge.
var edgeCorners [EdgeCount][2]Corner

func init() {
	for s := Side(0); s < SideCount; s++ {
		n := 0
		for e, pair := range edgeSides {
			if pair[0] == s || pair[1] == s {
				sideEdges[s][n] = Edge(e)
				n++
			}
		}
		n = 0
		for c, triple := range cornerSides {
			if triple[0] == s || triple[1] == s || triple[2] == s {
				sideCorners[s][n] = Corner(c)
				n++
			}
		}
	}
	for e, pair := range edgeSides {
		n := 0
		for c, triple := range cornerSides {
			if (triple[0] == pair[0] || triple[1] == pair[0] || triple[2] == pair[0]) &&
				(triple[0] == pair[1] || triple[1] == pair[1] || triple[2] == pair[1]) {
				edgeCorners[e][n] = Corner(c)
				n++
			}
		}
	}
}

// NeighborLUTs holds the linear offsets into a padded voxel buffer of
// dimensions (sx, sy, sz) for every side, edge and corner of a voxel, plus
// the float-space position of each corner used by the occlusion shading
// formula. Built once per mesher build from the chunk's own dimensions.
type NeighborLUTs struct {
	SideOffset   [SideCount]int
	EdgeOffset   [EdgeCount]int
	CornerOffset [CornerCount]int
	CornerPos    [CornerCount][3]float32
}

// BuildNeighborLUTs derives the C1 offset tables for a padded buffer of the
// given size, using the y-fastest layout index(x,y,z) = y + x*sy + z*sx*sy.
func BuildNeighborLUTs(sx, sy, sz int) NeighborLUTs {
	var lut NeighborLUTs
	lut.SideOffset[NegX] = -sy
	lut.SideOffset[PosX] = sy
	lut.SideOffset[NegY] = -1
	lut.SideOffset[PosY] = 1
	lut.SideOffset[NegZ] = -sx * sy
	lut.SideOffset[PosZ] = sx * sy

	for e, pair := range edgeSides {
		lut.EdgeOffset[e] = lut.SideOffset[pair[0]] + lut.SideOffset[pair[1]]
	}
	for c, triple := range cornerSides {
		lut.CornerOffset[c] = lut.SideOffset[triple[0]] + lut.SideOffset[triple[1]] + lut.SideOffset[triple[2]]
		var pos [3]float32
		for _, s := range triple {
			switch s {
			case PosX:
				pos[0] = 1
			case PosY:
				pos[1] = 1
			case PosZ:
				pos[2] = 1
			}
		}
		lut.CornerPos[c] = pos
	}
	return lut
}

// SideEdges returns the four edges bordering side s.
func SideEdges(s Side) [4]Edge { return sideEdges[s] }

// SideCorners returns the four corners lying on side s.
func SideCorners(s Side) [4]Corner { return sideCorners[s] }

// EdgeCorners returns the two corners an edge connects.
func EdgeCorners(e Edge) [2]Corner { return edgeCorners[e] }

// SideNormal is the constant outward normal baked into every vertex of a
// side surface for side s.
var SideNormal = [SideCount][3]float32{
	NegX: {-1, 0, 0},
	PosX: {1, 0, 0},
	NegY: {0, -1, 0},
	PosY: {0, 1, 0},
	NegZ: {0, 0, -1},
	PosZ: {0, 0, 1},
}
