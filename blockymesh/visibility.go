package blockymesh

import "github.com/voxelsplace/blockymesh/blocklib"

// resolveSide implements C3: given the current voxel's baked model, the
// pre-baked side surfaces for one of its sides (and, for non-fluid models,
// the cutout table for that side), and the raw neighbor identifier on that
// side, decide whether the face contributes geometry and which surface
// slots to emit from.
func resolveSide(lib blocklib.Library, v blocklib.BakedModel, sideSurfaces *[blocklib.MaxSurfaces]blocklib.SideSurface, cutout map[uint32][blocklib.MaxSurfaces]blocklib.SideSurface, side blocklib.Side, neighborID uint32) (visible bool, surfaces *[blocklib.MaxSurfaces]blocklib.SideSurface) {
	if neighborID == blocklib.AirID || !lib.HasModel(neighborID) {
		return true, sideSurfaces
	}
	n := lib.Model(neighborID)
	if lib.VisibleRegardlessOfShape(v, n) {
		return true, sideSurfaces
	}
	if !lib.VisibleAccordingToShape(v, n, side) {
		return false, nil
	}
	surfaces = sideSurfaces
	if v.CutoutSidesEnabled && cutout != nil {
		neighborShapeID := n.Model.SidePatternIndices[side.Opposite()]
		if cut, ok := cutout[neighborShapeID]; ok {
			cutCopy := cut
			surfaces = &cutCopy
		}
	}
	return true, surfaces
}
