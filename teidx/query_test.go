package teidx

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func buildCrossTileFixture(t *testing.T) (*Index, *os.File, string) {
	t.Helper()
	root := buildFixtureProject(t, map[string][]string{
		"f0.bgz": {
			"chr1\t100\t200\tDF0001.1\t0\t1",  // A: tile 0
			"chr1\t300\t350\tDF0001.1\t0\t0",  // D: tile 0
			"chr1\t16300\t16500\tDF0002.1\t0\t0", // B: tiles 0,1
			"chr1\t20000\t20100\tDF0001.1\t0\t1", // C: tile 1
		},
	})

	assert.NoError(t, Build(testLogger(), root, "annot", BuildOptions{}))

	idx, err := Load(testLogger(), filepath.Join(root, "annot_idx.dat"))
	assert.NoError(t, err)

	f, err := os.Open(filepath.Join(root, "annot_idx.dat"))
	assert.NoError(t, err)

	return idx, f, filepath.Join(root, "annot")
}

func TestQueryAcrossTilesNoFilter(t *testing.T) {
	idx, f, dataDir := buildCrossTileFixture(t)
	defer f.Close()

	lines, err := idx.Query(testLogger(), f, dataDir, "chr1", 50, 20050, nil, false)
	assert.NoError(t, err)
	assert.Equal(t, []string{
		"chr1\t100\t200\tDF0001.1\t0\t1",
		"chr1\t300\t350\tDF0001.1\t0\t0",
		"chr1\t16300\t16500\tDF0002.1\t0\t0",
		"chr1\t20000\t20100\tDF0001.1\t0\t1",
	}, lines)
}

func TestQueryWithFamilyFilter(t *testing.T) {
	idx, f, dataDir := buildCrossTileFixture(t)
	defer f.Close()

	family := "DF0001"
	lines, err := idx.Query(testLogger(), f, dataDir, "chr1", 50, 20050, &family, false)
	assert.NoError(t, err)
	assert.Equal(t, []string{
		"chr1\t100\t200\tDF0001.1\t0\t1",
		"chr1\t300\t350\tDF0001.1\t0\t0",
		"chr1\t20000\t20100\tDF0001.1\t0\t1",
	}, lines)
}

func TestQueryWithNRPHFilter(t *testing.T) {
	idx, f, dataDir := buildCrossTileFixture(t)
	defer f.Close()

	lines, err := idx.Query(testLogger(), f, dataDir, "chr1", 50, 20050, nil, true)
	assert.NoError(t, err)
	assert.Equal(t, []string{
		"chr1\t100\t200\tDF0001.1\t0\t1",
		"chr1\t20000\t20100\tDF0001.1\t0\t1",
	}, lines)
}

func TestQueryUnknownContig(t *testing.T) {
	idx, f, dataDir := buildCrossTileFixture(t)
	defer f.Close()

	_, err := idx.Query(testLogger(), f, dataDir, "chrX", 0, 100, nil, false)
	assert.True(t, errors.Is(err, ErrUnknownContig))
}

func TestQueryOutOfRange(t *testing.T) {
	idx, f, dataDir := buildCrossTileFixture(t)
	defer f.Close()

	_, err := idx.Query(testLogger(), f, dataDir, "chr1", 1_000_000, 1_000_100, nil, false)
	assert.True(t, errors.Is(err, ErrOutOfRange))
}

func TestQueryClampsLastTileToIndexedRange(t *testing.T) {
	idx, f, dataDir := buildCrossTileFixture(t)
	defer f.Close()

	// q_end far beyond the last indexed tile; last_tile should clamp
	// rather than error, since q_start still overlaps something. The
	// single-tile scan is unconditional below k, so it also recovers B's
	// replica (start_bp=16300), which started in an earlier tile but was
	// replicated into this one.
	lines, err := idx.Query(testLogger(), f, dataDir, "chr1", 19000, 10_000_000, nil, false)
	assert.NoError(t, err)
	assert.Equal(t, []string{
		"chr1\t16300\t16500\tDF0002.1\t0\t0",
		"chr1\t20000\t20100\tDF0001.1\t0\t1",
	}, lines)
}
