//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/voxelsplace/blockymesh/api"
	"github.com/voxelsplace/blockymesh/blockymesh"
	"github.com/voxelsplace/blockymesh/meshexport"
	"github.com/voxelsplace/blockymesh/voxelbuffer"
)

// chunkMeshRequest is the one JSON argument meshChunkToGLB takes (and the
// value type of the name-keyed map packChunkMeshes takes): a catalog
// document plus a run-length-encoded chunk,
// the same JSON-bridge idiom RunUpdateVOPL used for its own structured
// argument instead of a long positional parameter list.
type chunkMeshRequest struct {
	Catalog string `json:"catalog"`
	RLE     []int  `json:"rle"`
	SX      int    `json:"sx"`
	SY      int    `json:"sy"`
	SZ      int    `json:"sz"`
	Depth   uint8  `json:"depth"`
	LOD     uint8  `json:"lod"`
}

func toUint8Array(b []byte) js.Value {
	arr := js.Global().Get("Uint8Array").New(len(b))
	js.CopyBytesToJS(arr, b)
	return arr
}

func meshChunkToGLB(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing request JSON")
	}
	var req chunkMeshRequest
	if err := json.Unmarshal([]byte(args[0].String()), &req); err != nil {
		return js.ValueOf(err.Error())
	}

	lib, err := api.BakeCatalog([]byte(req.Catalog))
	if err != nil {
		return js.ValueOf(err.Error())
	}
	buf, err := api.DecodeRLE(req.RLE, req.SX, req.SY, req.SZ, voxelbuffer.Depth(req.Depth))
	if err != nil {
		return js.ValueOf(err.Error())
	}
	out, err := api.ChunkMeshToGLBBytes(lib, buf, blockymesh.Options{LODIndex: req.LOD}, nil)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return toUint8Array(out)
}

func packChunkMeshes(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing request JSON")
	}
	var raw map[string]chunkMeshRequest
	if err := json.Unmarshal([]byte(args[0].String()), &raw); err != nil {
		return js.ValueOf(err.Error())
	}

	meshes := map[string]blockymesh.Output{}
	for name, req := range raw {
		lib, err := api.BakeCatalog([]byte(req.Catalog))
		if err != nil {
			return js.ValueOf(err.Error())
		}
		buf, err := api.DecodeRLE(req.RLE, req.SX, req.SY, req.SZ, voxelbuffer.Depth(req.Depth))
		if err != nil {
			return js.ValueOf(err.Error())
		}
		out, err := api.BuildChunkMesh(lib, buf, blockymesh.Options{LODIndex: req.LOD})
		if err != nil {
			return js.ValueOf(err.Error())
		}
		meshes[name] = out
	}

	packed, err := api.PackChunkMeshes(meshes)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return toUint8Array(packed)
}

func unpackChunkMeshesToGLB(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing packed bytes")
	}
	buf := make([]byte, args[0].Get("length").Int())
	js.CopyBytesToGo(buf, args[0])

	meshes, err := api.UnpackChunkMeshes(buf)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	result := js.Global().Get("Object").New()
	for name, out := range meshes {
		glb, err := meshexport.EncodeBytes(out, nil)
		if err != nil {
			return js.ValueOf(err.Error())
		}
		result.Set(name, toUint8Array(glb))
	}
	return result
}

func main() {
	js.Global().Set("meshChunkToGLB", js.FuncOf(meshChunkToGLB))
	js.Global().Set("packChunkMeshes", js.FuncOf(packChunkMeshes))
	js.Global().Set("unpackChunkMeshesToGLB", js.FuncOf(unpackChunkMeshesToGLB))
	select {}
}
