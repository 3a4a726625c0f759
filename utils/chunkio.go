package utils

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/voxelsplace/blockymesh/voxelbuffer"
)

// chunkMagic tags a .chunk file so a stray file of the wrong format fails
// fast instead of decoding into garbage dimensions.
const chunkMagic uint32 = 0x564f5842 // "VOXB"

// SaveDenseChunk writes a dense voxel buffer to path as a small
// length-prefixed binary record: magic, dimensions, depth, then the raw
// channel bytes, mirroring the teacher's length-prefixed binary.Write style
// in vopl/io.go rather than a general-purpose codec.
func SaveDenseChunk(buf *voxelbuffer.Dense, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("utils: create chunk file: %w", err)
	}
	defer f.Close()

	sx, sy, sz := buf.Size()
	header := []any{chunkMagic, uint32(sx), uint32(sy), uint32(sz), uint8(buf.ChannelDepth())}
	for _, field := range header {
		if err := binary.Write(f, binary.LittleEndian, field); err != nil {
			return fmt.Errorf("utils: write chunk header: %w", err)
		}
	}
	if _, err := f.Write(buf.ChannelBytes()); err != nil {
		return fmt.Errorf("utils: write chunk bytes: %w", err)
	}
	return nil
}

// LoadDenseChunk is SaveDenseChunk's inverse.
func LoadDenseChunk(path string) (*voxelbuffer.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("utils: open chunk file: %w", err)
	}
	defer f.Close()

	var magic uint32
	if err := binary.Read(f, binary.LittleEndian, &magic); err != nil {
		return nil, fmt.Errorf("utils: read chunk magic: %w", err)
	}
	if magic != chunkMagic {
		return nil, fmt.Errorf("utils: %s is not a chunk file", path)
	}
	var sx, sy, sz uint32
	var depth uint8
	for _, field := range []any{&sx, &sy, &sz, &depth} {
		if err := binary.Read(f, binary.LittleEndian, field); err != nil {
			return nil, fmt.Errorf("utils: read chunk header: %w", err)
		}
	}

	buf := voxelbuffer.NewDense(int(sx), int(sy), int(sz), voxelbuffer.Depth(depth))
	if _, err := io.ReadFull(f, buf.ChannelBytes()); err != nil {
		return nil, fmt.Errorf("utils: read chunk bytes: %w", err)
	}
	return buf, nil
}
