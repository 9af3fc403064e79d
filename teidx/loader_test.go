package teidx

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadRoundtripsCountsAndOffsets(t *testing.T) {
	root := buildFixtureProject(t, map[string][]string{
		"f0.bgz": {
			"chr1\t100\t200\tDF0001.1\t0\t1",
			"chr1\t16300\t16500\tDF0002.2\t0\t0",
		},
		"f1.bgz": {
			"chr2\t50\t75\tDF0001.1\t0\t1",
		},
	})

	assert.NoError(t, Build(testLogger(), root, "annot", BuildOptions{}))

	idx, err := Load(testLogger(), filepath.Join(root, "annot_idx.dat"))
	assert.NoError(t, err)

	assert.Equal(t, DefaultTileSize, idx.TileSize)
	assert.Equal(t, 2, len(idx.Contigs))
	assert.Equal(t, 2, len(idx.FileDescriptors))
	assert.Contains(t, idx.ContigLookup, "chr1")
	assert.Contains(t, idx.ContigLookup, "chr2")

	c1 := idx.ContigLookup["chr1"]
	// chr1 has A (100-200, tile 0 only) and B (16300-16500), which starts
	// in tile 0 (16300 < 16384) and is replicated into tile 1 as well.
	assert.Equal(t, uint32(2), idx.TileCounts[c1])
	assert.Equal(t, uint32(2), idx.RangeCounts[c1][0])
	assert.Equal(t, uint32(1), idx.RangeCounts[c1][1])

	// Offsets strictly increase with each non-empty tile.
	assert.Less(t, idx.RangeDataOffset[c1][0], idx.RangeDataOffset[c1][1])
}

func TestLoadMissingFileReturnsErrIndexMissing(t *testing.T) {
	root := t.TempDir()
	_, err := Load(testLogger(), filepath.Join(root, "nope_idx.dat"))
	assert.True(t, errors.Is(err, ErrIndexMissing))
}
