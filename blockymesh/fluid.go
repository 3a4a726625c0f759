package blockymesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/voxelsplace/blockymesh/blocklib"
)

// buildFluidModel is C6: compute the top surface and the six side surfaces
// for one fluid voxel, overriding whatever the plain baked model would have
// contributed. outTop and outSides are the caller's scratch: every call
// resets them and fills them with fresh clones of the fluid's baked
// surfaces, so earlier backing arrays are not reused.
func (m *Mesher) buildFluidModel(lib blocklib.Library, v blocklib.BakedModel, fluid blocklib.BakedFluid, at int, lut *blocklib.NeighborLUTs, read func(int) uint32, outTop *[blocklib.MaxSurfaces]blocklib.Surface, outSides *[blocklib.SideCount][blocklib.MaxSurfaces]blocklib.SideSurface) {
	for i := range outTop {
		outTop[i] = blocklib.Surface{}
	}
	for s := blocklib.Side(0); s < blocklib.SideCount; s++ {
		outSides[s][0] = blocklib.SideSurface{}
	}

	isFluidOfKind := func(id uint32) bool {
		return id != blocklib.AirID && lib.HasModel(id) && lib.Model(id).FluidIndex == v.FluidIndex
	}

	topID := read(at + lut.SideOffset[blocklib.PosY])
	topCovered := isFluidOfKind(topID)

	lateralAndBottom := [5]blocklib.Side{blocklib.NegX, blocklib.PosX, blocklib.NegZ, blocklib.PosZ, blocklib.NegY}
	for _, s := range lateralAndBottom {
		ss := fluid.SideSurfaces[s].Clone()
		var axisTag float32
		var flowTag blocklib.FlowState
		switch s {
		case blocklib.NegX, blocklib.PosX:
			axisTag, flowTag = blocklib.AxisX, blocklib.FlowStraightPosZ
		case blocklib.NegZ, blocklib.PosZ:
			axisTag, flowTag = blocklib.AxisZ, blocklib.FlowStraightPosZ
		case blocklib.NegY:
			axisTag, flowTag = blocklib.AxisY, blocklib.FlowIdle
		}
		for i := range ss.UVs {
			ss.UVs[i] = mgl32.Vec2{axisTag, float32(flowTag)}
		}
		outSides[s][0] = ss
	}

	if topCovered {
		outTop[0].MaterialID = fluid.MaterialID
		return
	}

	axisOf := func(axis blocklib.Side, d int) int {
		if d == 0 {
			return 0
		}
		if d > 0 {
			return lut.SideOffset[axis]
		}
		return -lut.SideOffset[axis]
	}

	var fluidLevels [9]uint8
	var neighborIsFluid [9]bool
	for dz := -1; dz <= 1; dz++ {
		for dx := -1; dx <= 1; dx++ {
			i := (dz+1)*3 + (dx + 1)
			if dz == 0 && dx == 0 {
				fluidLevels[i] = v.FluidLevel
				neighborIsFluid[i] = true
				continue
			}
			offset := axisOf(blocklib.PosX, dx) + axisOf(blocklib.PosZ, dz)
			nid := read(at + offset)
			if isFluidOfKind(nid) {
				neighborIsFluid[i] = true
				fluidLevels[i] = lib.Model(nid).FluidLevel
			}
		}
	}

	var coveredNeighbors uint16
	for dz := -1; dz <= 1; dz++ {
		for dx := -1; dx <= 1; dx++ {
			i := (dz+1)*3 + (dx + 1)
			if i == 4 || !neighborIsFluid[i] {
				continue
			}
			offset := axisOf(blocklib.PosX, dx) + axisOf(blocklib.PosZ, dz)
			aboveID := read(at + offset + lut.SideOffset[blocklib.PosY])
			if isFluidOfKind(aboveID) {
				coveredNeighbors |= 1 << uint(i)
			}
		}
	}

	if fluid.DipWhenFlowingDown {
		for dz := -1; dz <= 1; dz++ {
			for dx := -1; dx <= 1; dx++ {
				i := (dz+1)*3 + (dx + 1)
				if i == 4 || !neighborIsFluid[i] {
					continue
				}
				if fluidLevels[i] >= fluid.MaxLevel {
					continue
				}
				if coveredNeighbors&(1<<uint(i)) != 0 {
					continue
				}
				offset := axisOf(blocklib.PosX, dx) + axisOf(blocklib.PosZ, dz)
				belowID := read(at + offset + lut.SideOffset[blocklib.NegY])
				if belowID == blocklib.AirID || isFluidOfKind(belowID) {
					fluidLevels[i] = 0
				}
			}
		}
	}

	maxu8 := func(vals ...uint8) uint8 {
		best := vals[0]
		for _, v := range vals[1:] {
			if v > best {
				best = v
			}
		}
		return best
	}
	var cornerLevels [4]uint8
	cornerLevels[0] = maxu8(fluidLevels[1], fluidLevels[2], fluidLevels[4], fluidLevels[5])
	cornerLevels[1] = maxu8(fluidLevels[0], fluidLevels[1], fluidLevels[3], fluidLevels[4])
	cornerLevels[2] = maxu8(fluidLevels[3], fluidLevels[4], fluidLevels[6], fluidLevels[7])
	cornerLevels[3] = maxu8(fluidLevels[4], fluidLevels[5], fluidLevels[7], fluidLevels[8])

	minLevel := cornerLevels[0]
	for _, c := range cornerLevels[1:] {
		if c < minLevel {
			minLevel = c
		}
	}
	var mask uint8
	if cornerLevels[0] == minLevel {
		mask |= 0b1000
	}
	if cornerLevels[1] == minLevel {
		mask |= 0b0100
	}
	if cornerLevels[2] == minLevel {
		mask |= 0b0010
	}
	if cornerLevels[3] == minLevel {
		mask |= 0b0001
	}
	flowState := blocklib.FlowStateTable[mask]

	var cornerHeights [4]float32
	for i, level := range cornerLevels {
		t := float32(level) / float32(fluid.MaxLevel)
		cornerHeights[i] = blocklib.BottomHeight + t*(blocklib.TopHeight-blocklib.BottomHeight)
	}

	// bit i set means 3x3 sample i (i = (dz+1)*3+(dx+1)) is a covered
	// neighbor; a corner snaps to full height if any bit of its mask is set.
	// Corners 1-3 test the three non-center samples of their group. Corner
	// 0's mask is {2,4,5}; bit 4 (the center) is never set, so corner 0
	// tests samples 2 and 5 only, not sample 1.
	overrideBits := [4]uint16{
		0: 1<<2 | 1<<4 | 1<<5,
		1: 1<<0 | 1<<1 | 1<<3,
		2: 1<<3 | 1<<6 | 1<<7,
		3: 1<<5 | 1<<7 | 1<<8,
	}
	for c := 0; c < 4; c++ {
		if coveredNeighbors&overrideBits[c] != 0 {
			cornerHeights[c] = 1
		}
	}

	top := fluid.SideSurfaces[blocklib.PosY].Clone()
	for i := 0; i < 4 && i < len(top.Positions); i++ {
		top.Positions[i][1] = cornerHeights[i]
	}
	for i := range top.UVs {
		top.UVs[i] = mgl32.Vec2{blocklib.AxisY, float32(flowState)}
	}
	if flowState == blocklib.FlowDiagPosXPosZ || flowState == blocklib.FlowDiagNegXNegZ {
		var idx [6]int32
		copy(idx[:], top.Indices)
		idx = blocklib.TransposeQuadTriangles(idx)
		top.Indices = append(top.Indices[:0], idx[:]...)
	}

	outTop[0] = blocklib.Surface{
		Positions:        top.Positions,
		Normals:          []mgl32.Vec3{{0, 1, 0}, {0, 1, 0}, {0, 1, 0}, {0, 1, 0}},
		UVs:              top.UVs,
		Indices:          top.Indices,
		Tangents:         nil,
		MaterialID:       fluid.MaterialID,
		CollisionEnabled: false,
	}

	type heightAssign struct {
		idx2, idx3 int
	}
	assigns := map[blocklib.Side]heightAssign{
		blocklib.NegX: {2, 1},
		blocklib.PosX: {0, 3},
		blocklib.NegZ: {1, 0},
		blocklib.PosZ: {3, 2},
	}
	for _, s := range [4]blocklib.Side{blocklib.NegX, blocklib.PosX, blocklib.NegZ, blocklib.PosZ} {
		a := assigns[s]
		ss := &outSides[s][0]
		if len(ss.Positions) >= 4 {
			ss.Positions[2][1] = cornerHeights[a.idx2]
			ss.Positions[3][1] = cornerHeights[a.idx3]
		}
	}
}

// PreviewFluidModel builds a single fluid voxel's mesh in isolation, as if
// it were alone in a 3x3x3 block surrounded by air — the catalog-tooling
// preview the original engine's generate_preview_fluid_model produced.
func PreviewFluidModel(lib blocklib.Library, fluid blocklib.BakedFluid, v blocklib.BakedModel) (top [blocklib.MaxSurfaces]blocklib.Surface, sides [blocklib.SideCount][blocklib.MaxSurfaces]blocklib.SideSurface) {
	m := &Mesher{library: lib}
	lut := blocklib.BuildNeighborLUTs(3, 3, 3)
	read := func(int) uint32 { return blocklib.AirID }
	m.buildFluidModel(lib, v, fluid, 0, &lut, read, &top, &sides)
	return
}
