package meshcache

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/voxelsplace/blockymesh/blockymesh"
)

// Encode exposes encodeOutput's uncompressed wire format for callers
// outside this package that need to ship a blockymesh.Output somewhere
// other than this store (meshserver streams it straight over a
// websocket connection without the sqlite/zstd round trip).
func Encode(out blockymesh.Output) []byte { return encodeOutput(out) }

// Decode is Encode's inverse.
func Decode(data []byte) (blockymesh.Output, error) { return decodeOutput(data) }

// encodeOutput serializes a blockymesh.Output to a flat byte stream: one
// section per material surface, then the collision surface, mirroring the
// teacher's length-prefixed binary.Write style in vopl/io.go and
// vopl/pack.go rather than a general-purpose codec like gob.
func encodeOutput(out blockymesh.Output) []byte {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, uint32(len(out.Surfaces)))
	for _, s := range out.Surfaces {
		binary.Write(&buf, binary.LittleEndian, s.MaterialIndex)
		writeVec3s(&buf, s.Arrays.Positions)
		writeVec3s(&buf, s.Arrays.Normals)
		writeVec2s(&buf, s.Arrays.UVs)
		writeVec4s(&buf, s.Arrays.Colors)
		writeF32s(&buf, s.Arrays.Tangents)
		writeI32s(&buf, s.Arrays.Indices)
	}
	writeVec3s(&buf, out.Collision.Positions)
	writeI32s(&buf, out.Collision.Indices)
	return buf.Bytes()
}

// decodeOutput is encodeOutput's inverse.
func decodeOutput(data []byte) (blockymesh.Output, error) {
	r := bytes.NewReader(data)
	var out blockymesh.Output
	out.PrimitiveType = blockymesh.PrimitiveTriangles

	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return out, fmt.Errorf("meshcache: decode surface count: %w", err)
	}
	out.Surfaces = make([]blockymesh.SurfaceOutput, n)
	for i := range out.Surfaces {
		var matID uint32
		if err := binary.Read(r, binary.LittleEndian, &matID); err != nil {
			return out, fmt.Errorf("meshcache: decode material index: %w", err)
		}
		s := blockymesh.SurfaceOutput{MaterialIndex: matID}
		var err error
		if s.Arrays.Positions, err = readVec3s(r); err != nil {
			return out, err
		}
		if s.Arrays.Normals, err = readVec3s(r); err != nil {
			return out, err
		}
		if s.Arrays.UVs, err = readVec2s(r); err != nil {
			return out, err
		}
		if s.Arrays.Colors, err = readVec4s(r); err != nil {
			return out, err
		}
		if s.Arrays.Tangents, err = readF32s(r); err != nil {
			return out, err
		}
		if s.Arrays.Indices, err = readI32s(r); err != nil {
			return out, err
		}
		out.Surfaces[i] = s
	}
	var err error
	if out.Collision.Positions, err = readVec3s(r); err != nil {
		return out, err
	}
	if out.Collision.Indices, err = readI32s(r); err != nil {
		return out, err
	}
	return out, nil
}

func writeVec3s(w io.Writer, v []mgl32.Vec3) {
	binary.Write(w, binary.LittleEndian, uint32(len(v)))
	for _, e := range v {
		binary.Write(w, binary.LittleEndian, [3]float32{e.X(), e.Y(), e.Z()})
	}
}

func writeVec2s(w io.Writer, v []mgl32.Vec2) {
	binary.Write(w, binary.LittleEndian, uint32(len(v)))
	for _, e := range v {
		binary.Write(w, binary.LittleEndian, [2]float32{e.X(), e.Y()})
	}
}

func writeVec4s(w io.Writer, v []mgl32.Vec4) {
	binary.Write(w, binary.LittleEndian, uint32(len(v)))
	for _, e := range v {
		binary.Write(w, binary.LittleEndian, [4]float32{e.X(), e.Y(), e.Z(), e.W()})
	}
}

func writeF32s(w io.Writer, v []float32) {
	binary.Write(w, binary.LittleEndian, uint32(len(v)))
	binary.Write(w, binary.LittleEndian, v)
}

func writeI32s(w io.Writer, v []int32) {
	binary.Write(w, binary.LittleEndian, uint32(len(v)))
	binary.Write(w, binary.LittleEndian, v)
}

func readVec3s(r io.Reader) ([]mgl32.Vec3, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, fmt.Errorf("meshcache: decode vec3 count: %w", err)
	}
	out := make([]mgl32.Vec3, n)
	for i := range out {
		var raw [3]float32
		if err := binary.Read(r, binary.LittleEndian, &raw); err != nil {
			return nil, fmt.Errorf("meshcache: decode vec3: %w", err)
		}
		out[i] = mgl32.Vec3{raw[0], raw[1], raw[2]}
	}
	return out, nil
}

func readVec2s(r io.Reader) ([]mgl32.Vec2, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, fmt.Errorf("meshcache: decode vec2 count: %w", err)
	}
	out := make([]mgl32.Vec2, n)
	for i := range out {
		var raw [2]float32
		if err := binary.Read(r, binary.LittleEndian, &raw); err != nil {
			return nil, fmt.Errorf("meshcache: decode vec2: %w", err)
		}
		out[i] = mgl32.Vec2{raw[0], raw[1]}
	}
	return out, nil
}

func readVec4s(r io.Reader) ([]mgl32.Vec4, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, fmt.Errorf("meshcache: decode vec4 count: %w", err)
	}
	out := make([]mgl32.Vec4, n)
	for i := range out {
		var raw [4]float32
		if err := binary.Read(r, binary.LittleEndian, &raw); err != nil {
			return nil, fmt.Errorf("meshcache: decode vec4: %w", err)
		}
		out[i] = mgl32.Vec4{raw[0], raw[1], raw[2], raw[3]}
	}
	return out, nil
}

func readF32s(r io.Reader) ([]float32, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, fmt.Errorf("meshcache: decode float32 count: %w", err)
	}
	out := make([]float32, n)
	if n > 0 {
		if err := binary.Read(r, binary.LittleEndian, out); err != nil {
			return nil, fmt.Errorf("meshcache: decode float32 slice: %w", err)
		}
	}
	return out, nil
}

func readI32s(r io.Reader) ([]int32, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, fmt.Errorf("meshcache: decode int32 count: %w", err)
	}
	out := make([]int32, n)
	if n > 0 {
		if err := binary.Read(r, binary.LittleEndian, out); err != nil {
			return nil, fmt.Errorf("meshcache: decode int32 slice: %w", err)
		}
	}
	return out, nil
}
