package teidx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryFamilyScansAllTilesAndDedupes(t *testing.T) {
	root := buildFixtureProject(t, map[string][]string{
		"f0.bgz": {
			"chr1\t100\t200\tDF0001.1\t0\t1",
			"chr1\t16300\t16500\tDF0001.2\t0\t0", // replicated across tiles 0 and 1
		},
		"f1.bgz": {
			"chr2\t50\t100\tDF0002.1\t0\t1",
		},
	})
	assert.NoError(t, Build(testLogger(), root, "annot", BuildOptions{}))

	idx, err := Load(testLogger(), filepath.Join(root, "annot_idx.dat"))
	assert.NoError(t, err)

	f, err := os.Open(filepath.Join(root, "annot_idx.dat"))
	assert.NoError(t, err)
	defer f.Close()

	lines, err := QueryFamily(testLogger(), idx, f, filepath.Join(root, "annot"), "DF0001", false)
	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"chr1\t100\t200\tDF0001.1\t0\t1",
		"chr1\t16300\t16500\tDF0001.2\t0\t0",
	}, lines)
}

func TestQueryFamilyWithNRPHFilter(t *testing.T) {
	root := buildFixtureProject(t, map[string][]string{
		"f0.bgz": {
			"chr1\t100\t200\tDF0001.1\t0\t1",
			"chr1\t300\t400\tDF0001.2\t0\t0",
		},
	})
	assert.NoError(t, Build(testLogger(), root, "annot", BuildOptions{}))

	idx, err := Load(testLogger(), filepath.Join(root, "annot_idx.dat"))
	assert.NoError(t, err)

	f, err := os.Open(filepath.Join(root, "annot_idx.dat"))
	assert.NoError(t, err)
	defer f.Close()

	lines, err := QueryFamily(testLogger(), idx, f, filepath.Join(root, "annot"), "DF0001", true)
	assert.NoError(t, err)
	assert.Equal(t, []string{"chr1\t100\t200\tDF0001.1\t0\t1"}, lines)
}
