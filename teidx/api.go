package teidx

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// indexPathFor and dataDirFor implement the filesystem convention from
// spec.md §6: an index for data kind K under project directory P lives
// at P/K_idx.dat; its data files live in P/K/*.<ext>.
func indexPathFor(projectRoot, dataKind string) string {
	return filepath.Join(projectRoot, dataKind+"_idx.dat")
}

func dataDirFor(projectRoot, dataKind string) string {
	return filepath.Join(projectRoot, dataKind)
}

// Query loads the index for dataKind under projectRoot, runs a range
// query against contig [start, end), and releases every resource it
// opened before returning. Callers that issue many queries against the
// same index should use Load once and call (*Index).Query directly
// instead (see SPEC_FULL.md §4.8).
func Query(logger *log.Logger, projectRoot, dataKind, contig string, start, end uint64, family *string, nrph bool) ([]string, error) {
	idx, err := Load(logger, indexPathFor(projectRoot, dataKind))
	if err != nil {
		return nil, err
	}

	f, err := os.Open(indexPathFor(projectRoot, dataKind))
	if err != nil {
		return nil, fmt.Errorf("teidx: reopening index for range reads: %w", err)
	}
	defer f.Close()

	return idx.Query(logger, f, dataDirFor(projectRoot, dataKind), contig, start, end, family, nrph)
}

// QueryFamilyByKind is the projectRoot/dataKind-oriented counterpart of
// the package-level QueryFamily, following the same load-then-scan
// convention as Query.
func QueryFamilyByKind(logger *log.Logger, projectRoot, dataKind, family string, nrph bool) ([]string, error) {
	idx, err := Load(logger, indexPathFor(projectRoot, dataKind))
	if err != nil {
		return nil, err
	}

	f, err := os.Open(indexPathFor(projectRoot, dataKind))
	if err != nil {
		return nil, fmt.Errorf("teidx: reopening index for range reads: %w", err)
	}
	defer f.Close()

	return QueryFamily(logger, idx, f, dataDirFor(projectRoot, dataKind), family, nrph)
}

// VerifyKind loads the index for dataKind under projectRoot and runs the
// consistency verifier against its data directory (spec §4.7).
func VerifyKind(logger *log.Logger, projectRoot, dataKind string) (int, error) {
	idx, err := Load(logger, indexPathFor(projectRoot, dataKind))
	if err != nil {
		return 0, err
	}
	return Verify(logger, idx, dataDirFor(projectRoot, dataKind))
}
