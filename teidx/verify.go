package teidx

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/RoaringBitmap/roaring/roaring64"
)

// Verify compares the index's persisted file descriptors against the
// filesystem and logs a warning for every mismatch (spec §4.7): missing
// files, resized files, re-timestamped files, and files present on disk
// but absent from the index. Verify never returns an error for these
// conditions; it only warns. It returns a count of warnings emitted so
// callers and tests can assert on it without parsing log output.
func Verify(logger *log.Logger, idx *Index, dataDir string) (int, error) {
	warnings := 0
	seen := make(map[string]bool, len(idx.FileDescriptors))

	for _, d := range idx.FileDescriptors {
		seen[d.Name] = true
		path := filepath.Join(dataDir, d.Name)
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				logger.Printf("warning: %v: %s is missing", ErrConsistencyWarning, d.Name)
				warnings++
				continue
			}
			return warnings, err
		}

		if uint64(info.Size()) != d.ByteLength {
			logger.Printf("warning: %v: %s size changed (index: %d, disk: %d)",
				ErrConsistencyWarning, d.Name, d.ByteLength, info.Size())
			warnings++
		}

		modTime := float64(info.ModTime().UnixNano()) / 1e9
		if modTime != d.ModTime {
			logger.Printf("warning: %v: %s modification time changed (index: %f, disk: %f)",
				ErrConsistencyWarning, d.Name, d.ModTime, modTime)
			warnings++
		}
	}

	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return warnings, err
	}
	for _, e := range entries {
		if e.IsDir() || seen[e.Name()] {
			continue
		}
		logger.Printf("warning: %v: %s present on disk but absent from index", ErrConsistencyWarning, e.Name())
		warnings++
	}

	return warnings, nil
}

// VerifyReplicationCompleteness walks every contig's every tile and
// confirms that each distinct record_pointer is replicated into exactly
// the tiles its [start_bp, end_bp) interval overlaps, using a
// roaring64.Bitmap to track which record_pointer values have been seen
// (property test 1/4 of spec.md §8). It returns the number of distinct
// record_pointer values visited (records of different data files may
// share one) and an error describing the first inconsistency found, if
// any.
func VerifyReplicationCompleteness(idx *Index) (int64, error) {
	seen := roaring64.New()
	// missing counts, per (data file, record_pointer), the overlapping
	// tiles in which the record has not been seen yet.
	missing := make(map[[2]uint64]int)

	for c := range idx.Contigs {
		contig := &idx.Contigs[c]
		for t := range contig.Tiles {
			tileStart := uint64(t) * uint64(idx.TileSize)
			tileEnd := tileStart + uint64(idx.TileSize)
			for _, rng := range contig.Tiles[t].Ranges {
				// A zero-length record occupies one base, as in addContigRange.
				end := rng.EndBp
				if end == rng.StartBp {
					end++
				}
				expectedFirst := uint32(rng.StartBp / uint64(idx.TileSize))
				expectedLast := uint32((end - 1) / uint64(idx.TileSize))
				if uint32(t) < expectedFirst || uint32(t) > expectedLast {
					return int64(seen.GetCardinality()), fmt.Errorf(
						"teidx: record_pointer %d present in tile %d but interval [%d,%d) only overlaps tiles [%d,%d]",
						rng.RecordPointer, t, rng.StartBp, rng.EndBp, expectedFirst, expectedLast)
				}
				if rng.StartBp >= tileEnd || end <= tileStart {
					return int64(seen.GetCardinality()), fmt.Errorf(
						"teidx: record_pointer %d in tile %d does not overlap tile span [%d,%d)",
						rng.RecordPointer, t, tileStart, tileEnd)
				}
				key := [2]uint64{uint64(rng.DataFileIndex), rng.RecordPointer}
				if _, ok := missing[key]; !ok {
					missing[key] = int(expectedLast-expectedFirst) + 1
				}
				missing[key]--
				seen.Add(rng.RecordPointer)
			}
		}
	}

	for key, n := range missing {
		if n != 0 {
			return int64(seen.GetCardinality()), fmt.Errorf(
				"teidx: record_pointer %d of data file %d is not present exactly once in every tile its interval overlaps",
				key[1], key[0])
		}
	}

	return int64(seen.GetCardinality()), nil
}
