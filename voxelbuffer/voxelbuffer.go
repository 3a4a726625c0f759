// Package voxelbuffer holds the padded, dense voxel storage that the mesher
// reads from. It plays the role of an external collaborator: the mesher
// never mutates it and only ever sees a read-only byte span, a bit depth and
// a compression state.
package voxelbuffer

import "github.com/cespare/xxhash/v2"

// Depth is the bit width of one voxel identifier in the type channel.
type Depth uint8

const (
	Depth8  Depth = 8
	Depth16 Depth = 16
)

// Compression describes the storage state of the type channel, mirroring
// the three cases the mesher façade has to branch on.
type Compression uint8

const (
	// CompressionNone means channel_bytes holds one identifier per voxel,
	// packed at Depth bits, ready to mesh directly.
	CompressionNone Compression = iota
	// CompressionUniform means the whole channel is a single repeated
	// identifier; no per-voxel bytes are stored.
	CompressionUniform
	// CompressionOther covers any other packed representation (e.g. a
	// zstd-compressed blob) that the mesher cannot consume directly.
	CompressionOther
)

// Buffer is the view the mesher consumes. Implementations own their
// storage; ChannelBytes returns that storage itself, not a copy, and the
// mesher only reads from it.
type Buffer interface {
	// Size returns the padded dimensions (sx, sy, sz).
	Size() (sx, sy, sz int)
	ChannelDepth() Depth
	ChannelCompression() Compression
	// ChannelBytes returns the raw type channel, valid only when
	// ChannelCompression() == CompressionNone.
	ChannelBytes() []byte
	// UniformValue returns the repeated identifier, valid only when
	// ChannelCompression() == CompressionUniform.
	UniformValue() uint32
}

// Index computes the linear offset of (x, y, z) in a buffer of size
// (sx, sy, sz), y-fastest then x then z, per the padded voxel buffer layout.
func Index(x, y, z, sx, sy int) int {
	return y + x*sy + z*sx*sy
}

// Dense is a fully materialized, uncompressed voxel buffer: one identifier
// per voxel at the declared bit depth, y-fastest linear layout. It is the
// concrete storage a caller hands the mesher on the hot path.
type Dense struct {
	sx, sy, sz int
	depth      Depth
	data       []byte
}

// NewDense allocates a zeroed (all-AIR) dense buffer of the given padded
// size and bit depth. sx, sy and sz must each be at least 2 (2*PADDING).
func NewDense(sx, sy, sz int, depth Depth) *Dense {
	n := sx * sy * sz
	bpv := 1
	if depth == Depth16 {
		bpv = 2
	}
	return &Dense{sx: sx, sy: sy, sz: sz, depth: depth, data: make([]byte, n*bpv)}
}

func (d *Dense) Size() (int, int, int)          { return d.sx, d.sy, d.sz }
func (d *Dense) ChannelDepth() Depth            { return d.depth }
func (d *Dense) ChannelCompression() Compression { return CompressionNone }
func (d *Dense) ChannelBytes() []byte           { return d.data }
func (d *Dense) UniformValue() uint32           { panic("voxelbuffer: UniformValue called on a non-uniform buffer") }

// Get returns the voxel identifier at (x, y, z).
func (d *Dense) Get(x, y, z int) uint32 {
	i := Index(x, y, z, d.sx, d.sy)
	if d.depth == Depth16 {
		o := i * 2
		return uint32(d.data[o]) | uint32(d.data[o+1])<<8
	}
	return uint32(d.data[i])
}

// Set stores a voxel identifier at (x, y, z).
func (d *Dense) Set(x, y, z int, id uint32) {
	i := Index(x, y, z, d.sx, d.sy)
	if d.depth == Depth16 {
		o := i * 2
		d.data[o] = byte(id)
		d.data[o+1] = byte(id >> 8)
		return
	}
	d.data[i] = byte(id)
}

// ContentHash digests the raw channel bytes into a single cache key,
// allowing a caller (e.g. meshcache) to address a build result by the exact
// voxel content without re-hashing the whole chunk on every lookup.
func (d *Dense) ContentHash() uint64 {
	return xxhash.Sum64(d.data)
}

// Uniform is a degenerate buffer: every voxel shares one identifier, and no
// per-voxel bytes are ever materialized. The mesher façade treats this as a
// degenerate chunk and returns an empty mesh without touching channel bytes.
type Uniform struct {
	sx, sy, sz int
	depth      Depth
	value      uint32
}

func NewUniform(sx, sy, sz int, depth Depth, value uint32) *Uniform {
	return &Uniform{sx: sx, sy: sy, sz: sz, depth: depth, value: value}
}

func (u *Uniform) Size() (int, int, int)          { return u.sx, u.sy, u.sz }
func (u *Uniform) ChannelDepth() Depth            { return u.depth }
func (u *Uniform) ChannelCompression() Compression { return CompressionUniform }
func (u *Uniform) ChannelBytes() []byte           { panic("voxelbuffer: ChannelBytes called on a uniform buffer") }
func (u *Uniform) UniformValue() uint32           { return u.value }

// Packed wraps a type channel stored in some other compressed
// representation (e.g. zstd, see meshcache) that the mesher cannot read
// directly. Its only purpose on the mesher's input side is to make the
// unsupported-compression error path exercisable without a real codec.
type Packed struct {
	sx, sy, sz int
	depth      Depth
	blob       []byte
}

func NewPacked(sx, sy, sz int, depth Depth, blob []byte) *Packed {
	return &Packed{sx: sx, sy: sy, sz: sz, depth: depth, blob: blob}
}

func (p *Packed) Size() (int, int, int)          { return p.sx, p.sy, p.sz }
func (p *Packed) ChannelDepth() Depth            { return p.depth }
func (p *Packed) ChannelCompression() Compression { return CompressionOther }
func (p *Packed) ChannelBytes() []byte           { panic("voxelbuffer: ChannelBytes called on a packed buffer") }
func (p *Packed) UniformValue() uint32           { panic("voxelbuffer: UniformValue called on a packed buffer") }

// Blob exposes the opaque payload for a decompressor outside the mesher.
func (p *Packed) Blob() []byte { return p.blob }
