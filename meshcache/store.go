// Package meshcache is a per-chunk mesh result cache, keyed by the exact
// voxel content that produced it: a Build call this expensive (the hot
// path spec.md §1 frames world-streaming latency around) is worth skipping
// entirely when the same chunk content, LOD and baking options were already
// meshed once. Grounded on the teacher's vopl/pack.go for the
// xxhash-keyed, zstd-compressed blob idiom, backed by modernc.org/sqlite
// (pure Go, no cgo) the way hellsoul86-voxelcraft.ai uses it for engine
// state persistence.
package meshcache

import (
	"database/sql"
	"fmt"

	"github.com/klauspost/compress/zstd"

	_ "modernc.org/sqlite"

	"github.com/voxelsplace/blockymesh/blockymesh"
)

// Key identifies one cached Build result. ContentHash is the voxel
// buffer's own xxhash digest (voxelbuffer.Dense.ContentHash); the rest of
// the key is every Options field that changes Build's output.
type Key struct {
	ContentHash       uint64
	LODIndex          uint8
	BakeOcclusion     bool
	OcclusionDarkness float32
	CollisionHint     bool
}

func (k Key) String() string {
	occ := 0
	if k.BakeOcclusion {
		occ = 1
	}
	coll := 0
	if k.CollisionHint {
		coll = 1
	}
	return fmt.Sprintf("%016x:%d:%d:%d:%.4f", k.ContentHash, k.LODIndex, occ, coll, k.OcclusionDarkness)
}

// KeyFor builds a Key from a content hash and the Options a Build call
// used, so a caller never has to hand-assemble one.
func KeyFor(contentHash uint64, opts blockymesh.Options) Key {
	return Key{
		ContentHash:       contentHash,
		LODIndex:          opts.LODIndex,
		BakeOcclusion:     opts.BakeOcclusion,
		OcclusionDarkness: opts.OcclusionDarkness,
		CollisionHint:     opts.CollisionHint,
	}
}

// Store is a sqlite-backed cache of encoded, zstd-compressed Build
// results. The zero value is not usable; construct with Open.
type Store struct {
	db  *sql.DB
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// Open creates or attaches to a sqlite database at path (use ":memory:"
// for a process-local cache) and ensures its single table exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("meshcache: open %s: %w", path, err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS mesh_cache (
		cache_key TEXT PRIMARY KEY,
		blob      BLOB NOT NULL,
		raw_size  INTEGER NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("meshcache: create table: %w", err)
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("meshcache: new zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		db.Close()
		enc.Close()
		return nil, fmt.Errorf("meshcache: new zstd decoder: %w", err)
	}
	return &Store{db: db, enc: enc, dec: dec}, nil
}

// Close releases the underlying database handle and zstd resources.
func (s *Store) Close() error {
	s.dec.Close()
	s.enc.Close()
	return s.db.Close()
}

// Put encodes and compresses out, storing it under key. A later Put with
// the same key overwrites the previous entry.
func (s *Store) Put(key Key, out blockymesh.Output) error {
	raw := encodeOutput(out)
	compressed := s.enc.EncodeAll(raw, nil)
	_, err := s.db.Exec(
		`INSERT INTO mesh_cache (cache_key, blob, raw_size) VALUES (?, ?, ?)
		 ON CONFLICT(cache_key) DO UPDATE SET blob = excluded.blob, raw_size = excluded.raw_size`,
		key.String(), compressed, len(raw),
	)
	if err != nil {
		return fmt.Errorf("meshcache: put %s: %w", key, err)
	}
	return nil
}

// Get looks up key, returning (result, true, nil) on a hit and
// (zero, false, nil) on a clean miss; an error is only returned for a
// genuinely broken entry (database error, corrupt blob).
func (s *Store) Get(key Key) (blockymesh.Output, bool, error) {
	var compressed []byte
	var rawSize int
	err := s.db.QueryRow(`SELECT blob, raw_size FROM mesh_cache WHERE cache_key = ?`, key.String()).
		Scan(&compressed, &rawSize)
	if err == sql.ErrNoRows {
		return blockymesh.Output{}, false, nil
	}
	if err != nil {
		return blockymesh.Output{}, false, fmt.Errorf("meshcache: get %s: %w", key, err)
	}

	raw, err := s.dec.DecodeAll(compressed, make([]byte, 0, rawSize))
	if err != nil {
		return blockymesh.Output{}, false, fmt.Errorf("meshcache: decompress %s: %w", key, err)
	}
	out, err := decodeOutput(raw)
	if err != nil {
		return blockymesh.Output{}, false, fmt.Errorf("meshcache: decode %s: %w", key, err)
	}
	return out, true, nil
}

// Delete removes key's entry, if any. Deleting a missing key is not an
// error, matching the teacher's tolerant cleanup style in utils/*.go.
func (s *Store) Delete(key Key) error {
	if _, err := s.db.Exec(`DELETE FROM mesh_cache WHERE cache_key = ?`, key.String()); err != nil {
		return fmt.Errorf("meshcache: delete %s: %w", key, err)
	}
	return nil
}

// Count returns the number of entries currently cached, used by the CLI's
// cache-inspection command.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM mesh_cache`).Scan(&n); err != nil {
		return 0, fmt.Errorf("meshcache: count: %w", err)
	}
	return n, nil
}
