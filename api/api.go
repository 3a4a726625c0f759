// Package api is the byte-in/byte-out convenience surface over the rest of
// this module: build a voxel buffer from a compact run-length encoding, mesh
// it, and hand back glTF or a portable cache blob, without making the caller
// wire blocklib/blockymesh/meshcache/meshexport together by hand. It mirrors
// the shape of the teacher's own api.go (RLE in, GLB out, pack/unpack many at
// once) against this module's domain.
package api

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/voxelsplace/blockymesh/blocklib"
	"github.com/voxelsplace/blockymesh/blocklib/catalogdef"
	"github.com/voxelsplace/blockymesh/blockymesh"
	"github.com/voxelsplace/blockymesh/meshcache"
	"github.com/voxelsplace/blockymesh/meshexport"
	"github.com/voxelsplace/blockymesh/voxelbuffer"
)

// BakeCatalog parses and bakes a YAML catalog document into a ready-to-mesh
// library, the data-driven entry point most callers of this package reach
// for instead of building a blocklib.BakedLibrary by hand.
func BakeCatalog(yamlBytes []byte) (*blocklib.BakedLibrary, error) {
	return catalogdef.Load(yamlBytes)
}

// DecodeRLE expands a flat (count, value) run-length pair list into a dense
// voxel buffer of the given padded size and bit depth, the generalization of
// the teacher's RLEToVOPLBytes to an arbitrary chunk shape and identifier
// width instead of one fixed 16x16x16, 6-bit palette.
func DecodeRLE(rle []int, sx, sy, sz int, depth voxelbuffer.Depth) (*voxelbuffer.Dense, error) {
	if len(rle)%2 != 0 {
		return nil, fmt.Errorf("api: RLE must hold count-value pairs")
	}
	total := sx * sy * sz
	maxValue := uint32(1)<<uint(depth) - 1

	buf := voxelbuffer.NewDense(sx, sy, sz, depth)
	idx := 0
	for i := 0; i < len(rle); i += 2 {
		count, value := rle[i], rle[i+1]
		if count < 0 {
			return nil, fmt.Errorf("api: negative run length %d", count)
		}
		if value < 0 || uint32(value) > maxValue {
			return nil, fmt.Errorf("api: value %d out of range for a %d-bit channel", value, depth)
		}
		for j := 0; j < count; j++ {
			if idx >= total {
				return nil, fmt.Errorf("api: RLE overruns a %d-voxel chunk", total)
			}
			y := idx % sy
			x := (idx / sy) % sx
			z := idx / (sx * sy)
			buf.Set(x, y, z, uint32(value))
			idx++
		}
	}
	if idx != total {
		return nil, fmt.Errorf("api: RLE does not fill the whole chunk (%d/%d)", idx, total)
	}
	return buf, nil
}

// BuildChunkMesh meshes buf against lib in one call, the convenience wrapper
// around constructing and discarding a one-off blockymesh.Mesher for callers
// that do not keep one around per worker.
func BuildChunkMesh(lib blocklib.Library, buf voxelbuffer.Buffer, opts blockymesh.Options) (blockymesh.Output, error) {
	return blockymesh.NewMesher(lib).Build(buf, opts)
}

// ChunkMeshToGLBBytes meshes buf and renders the result as an in-memory
// binary glTF container, the analogue of the teacher's VOPLToGLB.
func ChunkMeshToGLBBytes(lib blocklib.Library, buf voxelbuffer.Buffer, opts blockymesh.Options, colorOf meshexport.MaterialColor) ([]byte, error) {
	out, err := BuildChunkMesh(lib, buf, opts)
	if err != nil {
		return nil, err
	}
	return meshexport.EncodeBytes(out, colorOf)
}

// packEntry is one named mesh inside a packed blob.
type packEntry struct {
	name string
	data []byte
}

// PackChunkMeshes bundles several already-built meshes into one
// zstd-compressed blob keyed by name, the batch counterpart to
// meshcache.Encode the way the teacher's PackVOPLs batches several .vopl
// files into one .voplpack.
func PackChunkMeshes(meshes map[string]blockymesh.Output) ([]byte, error) {
	if len(meshes) == 0 {
		return nil, fmt.Errorf("api: no meshes to pack")
	}
	entries := make([]packEntry, 0, len(meshes))
	for name, out := range meshes {
		entries = append(entries, packEntry{name: name, data: meshcache.Encode(out)})
	}

	var raw bytes.Buffer
	binary.Write(&raw, binary.LittleEndian, uint32(len(entries)))
	for _, e := range entries {
		binary.Write(&raw, binary.LittleEndian, uint32(len(e.name)))
		raw.WriteString(e.name)
		binary.Write(&raw, binary.LittleEndian, uint32(len(e.data)))
		raw.Write(e.data)
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("api: open zstd encoder: %w", err)
	}
	defer enc.Close()
	return enc.EncodeAll(raw.Bytes(), nil), nil
}

// UnpackChunkMeshes is PackChunkMeshes's inverse, returning every mesh keyed
// by the name it was packed under.
func UnpackChunkMeshes(packed []byte) (map[string]blockymesh.Output, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("api: open zstd decoder: %w", err)
	}
	defer dec.Close()
	raw, err := dec.DecodeAll(packed, nil)
	if err != nil {
		return nil, fmt.Errorf("api: decompress pack: %w", err)
	}

	r := bytes.NewReader(raw)
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, fmt.Errorf("api: decode entry count: %w", err)
	}
	out := make(map[string]blockymesh.Output, n)
	for i := uint32(0); i < n; i++ {
		var nameLen uint32
		if err := binary.Read(r, binary.LittleEndian, &nameLen); err != nil {
			return nil, fmt.Errorf("api: decode name length: %w", err)
		}
		nameBuf := make([]byte, nameLen)
		if _, err := io.ReadFull(r, nameBuf); err != nil {
			return nil, fmt.Errorf("api: decode name: %w", err)
		}
		var dataLen uint32
		if err := binary.Read(r, binary.LittleEndian, &dataLen); err != nil {
			return nil, fmt.Errorf("api: decode mesh length: %w", err)
		}
		dataBuf := make([]byte, dataLen)
		if _, err := io.ReadFull(r, dataBuf); err != nil {
			return nil, fmt.Errorf("api: decode mesh bytes: %w", err)
		}
		mesh, err := meshcache.Decode(dataBuf)
		if err != nil {
			return nil, fmt.Errorf("api: decode mesh %q: %w", nameBuf, err)
		}
		out[string(nameBuf)] = mesh
	}
	return out, nil
}
