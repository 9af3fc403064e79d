package teidx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnumerateDataFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.bgz", "a.bgz", "c.txt"} {
		f, err := os.Create(filepath.Join(dir, name))
		assert.NoError(t, err)
		f.Close()
	}

	names, err := enumerateDataFiles(dir, ".bgz")
	assert.NoError(t, err)
	assert.Equal(t, []string{"a.bgz", "b.bgz"}, names)
}

func TestAddContigRangeReplication(t *testing.T) {
	idx := newIndex(100)
	assert.NoError(t, idx.addContigRange("chr1", 0, 50, 250, 1000))

	c := idx.ContigLookup["chr1"]
	// [50, 250) spans tiles 0, 1, 2 under tile_size=100.
	assert.Equal(t, 3, len(idx.Contigs[c].Tiles))
	for t := 0; t < 3; t++ {
		assert.Equal(t, 1, len(idx.Contigs[c].Tiles[t].Ranges))
		assert.Equal(t, uint64(1000), idx.Contigs[c].Tiles[t].Ranges[0].RecordPointer)
	}
}

func TestAddContigRangeRejectsZeroEnd(t *testing.T) {
	idx := newIndex(100)
	err := idx.addContigRange("chr1", 0, 50, 0, 1000)
	assert.Error(t, err)
}

func TestFinalizeCountsSortsByStartBp(t *testing.T) {
	idx := newIndex(100)
	assert.NoError(t, idx.addContigRange("chr1", 0, 30, 40, 3))
	assert.NoError(t, idx.addContigRange("chr1", 0, 10, 20, 1))
	assert.NoError(t, idx.addContigRange("chr1", 0, 20, 30, 2))

	idx.finalizeCounts()

	c := idx.ContigLookup["chr1"]
	ranges := idx.Contigs[c].Tiles[0].Ranges
	var starts []uint64
	for _, r := range ranges {
		starts = append(starts, r.StartBp)
	}
	assert.Equal(t, []uint64{10, 20, 30}, starts)
	assert.Equal(t, []uint32{3}, idx.RangeCounts[c])
}

func TestFinalizeCountsPreservesTiesInInsertionOrder(t *testing.T) {
	idx := newIndex(100)
	assert.NoError(t, idx.addContigRange("chr1", 0, 10, 20, 100))
	assert.NoError(t, idx.addContigRange("chr1", 1, 10, 20, 200))

	idx.finalizeCounts()

	c := idx.ContigLookup["chr1"]
	ranges := idx.Contigs[c].Tiles[0].Ranges
	assert.Equal(t, uint32(0), ranges[0].DataFileIndex)
	assert.Equal(t, uint32(1), ranges[1].DataFileIndex)
}

func TestBuildWritesIndexFile(t *testing.T) {
	root := buildFixtureProject(t, map[string][]string{
		"f0.bgz": {
			"chr1\t100\t200\tDF0001.1\t0\t1",
			"chr1\t16300\t16500\tDF0002.2\t0\t0",
		},
	})

	err := Build(testLogger(), root, "annot", BuildOptions{})
	assert.NoError(t, err)

	info, err := os.Stat(filepath.Join(root, "annot_idx.dat"))
	assert.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
