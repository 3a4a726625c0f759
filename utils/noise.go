package utils

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/voxelsplace/blockymesh/voxelbuffer"
)

// generateNoiseChunk fills a percentage of a padded chunk's voxels with
// random block identifiers in [1, maxID], leaving the rest at 0 (air), the
// same partial Fisher-Yates approach the teacher's generateNoiseGrid used
// for its fixed 16x16x16 grid, generalized to an arbitrary chunk shape and
// identifier range.
func generateNoiseChunk(sx, sy, sz int, depth voxelbuffer.Depth, maxID uint32, percentage float64, r *rand.Rand) *voxelbuffer.Dense {
	if percentage < 0 {
		percentage = 0
	}
	if percentage > 100 {
		percentage = 100
	}
	total := sx * sy * sz
	want := int(float64(total)*(percentage/100.0) + 0.5)
	if want < 0 {
		want = 0
	}
	if want > total {
		want = total
	}

	idx := make([]int, total)
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < want; i++ {
		j := i + r.Intn(total-i)
		idx[i], idx[j] = idx[j], idx[i]
	}

	buf := voxelbuffer.NewDense(sx, sy, sz, depth)
	for k := 0; k < want; k++ {
		i := idx[k]
		y := i % sy
		x := (i / sy) % sx
		z := i / (sx * sy)
		id := uint32(1 + r.Intn(int(maxID)))
		buf.Set(x, y, z, id)
	}
	return buf
}

// RunGenerateNoiseChunks writes amount .chunk files named 0.chunk..(amount-1).chunk
// to outDir, each a padded (sx, sy, sz) buffer with a random fill percentage
// uniformly sampled in [percentageMin, percentageMax] and voxel identifiers
// drawn from [1, maxID]. Seeding follows the teacher's per-file Weyl-sequence
// derivation so repeated runs still vary file to file without sharing one
// PRNG instance across iterations.
func RunGenerateNoiseChunks(sx, sy, sz int, depth voxelbuffer.Depth, maxID uint32, percentageMin, percentageMax float64, amount int, outDir string) error {
	if amount < 0 {
		amount = 0
	}
	if outDir == "" {
		outDir = "."
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	if percentageMin < 0 {
		percentageMin = 0
	}
	if percentageMax > 100 {
		percentageMax = 100
	}
	if percentageMax < percentageMin {
		percentageMin, percentageMax = percentageMax, percentageMin
	}

	baseSeed := uint64(time.Now().UnixNano())
	for i := 0; i < amount; i++ {
		const weyl = uint64(0x9e3779b97f4a7c15)
		seed := baseSeed ^ (uint64(i)+1)*weyl
		r := rand.New(rand.NewSource(int64(seed & 0x7fffffffffffffff)))

		perc := percentageMin
		if percentageMax > percentageMin {
			perc = percentageMin + r.Float64()*(percentageMax-percentageMin)
		}

		buf := generateNoiseChunk(sx, sy, sz, depth, maxID, perc, r)
		path := filepath.Join(outDir, fmt.Sprintf("%d.chunk", i))
		if err := SaveDenseChunk(buf, path); err != nil {
			return fmt.Errorf("failed to save %s: %w", path, err)
		}
	}
	return nil
}
