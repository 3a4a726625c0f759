// Package meshexport writes a blockymesh.Output out as a binary glTF
// (.glb) file, the debugging/visualization counterpart to the teacher's
// vopl2glb command. It is strictly downstream of Build: nothing here
// feeds back into the mesher.
package meshexport

import (
	"bytes"
	"fmt"
	"math"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/voxelsplace/blockymesh/blockymesh"
)

// MaterialColor resolves the base color a given material index should
// render with. Callers that baked a blocklib.Library already have this
// mapping; meshexport takes it as a plain function so it depends on
// nothing but blockymesh's own output shape.
type MaterialColor func(materialIndex uint32) [4]float32

// Write renders every surface in out as one glTF mesh with one primitive
// per material and saves it to path. out's Collision surface is not
// exported.
func Write(path string, out blockymesh.Output, colorOf MaterialColor) error {
	doc, err := buildDocument(out, colorOf)
	if err != nil {
		return err
	}
	return gltf.SaveBinary(doc, path)
}

// EncodeBytes renders out the same way Write does but returns the binary
// glTF container in memory instead of writing it to disk; api's
// ChunkMeshToGLBBytes and the wasm bridge use it.
func EncodeBytes(out blockymesh.Output, colorOf MaterialColor) ([]byte, error) {
	doc, err := buildDocument(out, colorOf)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := gltf.NewEncoder(&buf)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("meshexport: encode glb: %w", err)
	}
	return buf.Bytes(), nil
}

func buildDocument(out blockymesh.Output, colorOf MaterialColor) (*gltf.Document, error) {
	doc := gltf.NewDocument()
	doc.Asset.Generator = "blockymesh -> GLB"

	var prims []*gltf.Primitive
	for _, surf := range out.Surfaces {
		if len(surf.Arrays.Indices) == 0 {
			continue
		}
		prim, err := buildPrimitive(doc, surf, colorOf)
		if err != nil {
			return nil, fmt.Errorf("meshexport: material %d: %w", surf.MaterialIndex, err)
		}
		prims = append(prims, prim)
	}
	if len(prims) == 0 {
		return nil, fmt.Errorf("meshexport: output has no renderable surfaces")
	}

	meshGltf := &gltf.Mesh{Name: "ChunkMesh", Primitives: prims}
	doc.Meshes = []*gltf.Mesh{meshGltf}
	node := &gltf.Node{Mesh: gltf.Index(0)}
	doc.Nodes = []*gltf.Node{node}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)
	return doc, nil
}

func buildPrimitive(doc *gltf.Document, surf blockymesh.SurfaceOutput, colorOf MaterialColor) (*gltf.Primitive, error) {
	positions := make([][3]float32, len(surf.Arrays.Positions))
	for i, p := range surf.Arrays.Positions {
		positions[i] = [3]float32{p.X(), p.Y(), p.Z()}
	}

	normals := make([][3]float32, len(surf.Arrays.Positions))
	if len(surf.Arrays.Normals) == len(surf.Arrays.Positions) {
		for i, n := range surf.Arrays.Normals {
			normals[i] = [3]float32{n.X(), n.Y(), n.Z()}
		}
	} else {
		computeFlatNormals(positions, surf.Arrays.Indices, normals)
	}

	colors := make([][4]float32, len(positions))
	if len(surf.Arrays.Colors) == len(positions) {
		for i, c := range surf.Arrays.Colors {
			colors[i] = [4]float32{c.X(), c.Y(), c.Z(), c.W()}
		}
	} else {
		base := [4]float32{1, 1, 1, 1}
		if colorOf != nil {
			base = colorOf(surf.MaterialIndex)
		}
		for i := range colors {
			colors[i] = base
		}
	}
	hasAlpha := false
	for _, c := range colors {
		if c[3] < 1.0 {
			hasAlpha = true
			break
		}
	}

	indices := make([]uint32, len(surf.Arrays.Indices))
	for i, idx := range surf.Arrays.Indices {
		indices[i] = uint32(idx)
	}

	posAccessor := modeler.WritePosition(doc, positions)
	normalAccessor := modeler.WriteNormal(doc, normals)
	colorAccessor := modeler.WriteColor(doc, colors)
	indicesAccessor := modeler.WriteIndices(doc, indices)

	pbr := &gltf.PBRMetallicRoughness{
		BaseColorFactor: &[4]float64{1, 1, 1, 1},
		MetallicFactor:  gltf.Float(0),
		RoughnessFactor: gltf.Float(1),
	}
	material := &gltf.Material{PBRMetallicRoughness: pbr}
	if hasAlpha {
		material.AlphaMode = gltf.AlphaBlend
	} else {
		material.AlphaMode = gltf.AlphaOpaque
	}
	doc.Materials = append(doc.Materials, material)
	materialIndex := len(doc.Materials) - 1

	return &gltf.Primitive{
		Attributes: gltf.PrimitiveAttributes{
			gltf.POSITION: posAccessor,
			gltf.NORMAL:   normalAccessor,
			gltf.COLOR_0:  colorAccessor,
		},
		Indices:  gltf.Index(indicesAccessor),
		Material: gltf.Index(materialIndex),
	}, nil
}

// computeFlatNormals derives one face normal per triangle and broadcasts it
// to all three of that triangle's vertices, mirroring the teacher's
// vopl2glb flat-shading fallback for geometry that carries no normals of
// its own.
func computeFlatNormals(positions [][3]float32, indices []int32, out [][3]float32) {
	for i := 0; i+2 < len(indices); i += 3 {
		v0, v1, v2 := indices[i], indices[i+1], indices[i+2]
		p0, p1, p2 := positions[v0], positions[v1], positions[v2]
		e1 := [3]float32{p1[0] - p0[0], p1[1] - p0[1], p1[2] - p0[2]}
		e2 := [3]float32{p2[0] - p0[0], p2[1] - p0[1], p2[2] - p0[2]}
		n := [3]float32{
			e1[1]*e2[2] - e1[2]*e2[1],
			e1[2]*e2[0] - e1[0]*e2[2],
			e1[0]*e2[1] - e1[1]*e2[0],
		}
		if length := float32(math.Sqrt(float64(n[0]*n[0] + n[1]*n[1] + n[2]*n[2]))); length > 0 {
			n[0] /= length
			n[1] /= length
			n[2] /= length
		}
		out[v0] = n
		out[v1] = n
		out[v2] = n
	}
}
