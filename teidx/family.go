package teidx

import (
	"fmt"
	"io"
	"log"

	"github.com/RoaringBitmap/roaring/roaring64"
)

// QueryFamily answers the second query class referenced by spec.md §1 but
// left undefined by the data model in §3: "every record belonging to
// family F". Since no family-keyed structure is persisted, this scans
// every contig's every tile and deduplicates by record_pointer with one
// roaring64 bitmap per data file (record pointers are only unique within
// a file), since a record replicated across N overlapping tiles must be
// emitted only once. This is a linear-scan supplement, not a new on-disk
// index.
func QueryFamily(logger *log.Logger, idx *Index, indexFile io.ReaderAt, dataDir, family string, nrph bool) ([]string, error) {
	seen := make(map[uint32]*roaring64.Bitmap)
	var matches []ContigRange

	for c := range idx.Contigs {
		for t := uint32(0); t < idx.TileCounts[c]; t++ {
			ranges, err := idx.readTile(indexFile, uint32(c), t)
			if err != nil {
				return nil, fmt.Errorf("teidx: reading tile %d of contig %d: %w", t, c, err)
			}
			for _, rng := range ranges {
				fileSeen, ok := seen[rng.DataFileIndex]
				if !ok {
					fileSeen = roaring64.New()
					seen[rng.DataFileIndex] = fileSeen
				}
				if fileSeen.Contains(rng.RecordPointer) {
					continue
				}
				fileSeen.Add(rng.RecordPointer)
				matches = append(matches, rng)
			}
		}
	}

	cache := newReaderCache(dataDir, idx.FileDescriptors, defaultReaderCacheSize)
	defer cache.Close()

	results := make([]string, 0, len(matches))
	for _, rng := range matches {
		lr, err := cache.get(rng.DataFileIndex, rng.RecordPointer)
		if err != nil {
			return nil, fmt.Errorf("teidx: opening data file %d: %w", rng.DataFileIndex, err)
		}
		line, err := lr.ReadLine()
		if err != nil {
			return nil, fmt.Errorf("teidx: reading record at virtual position %d in data file %d: %w", rng.RecordPointer, rng.DataFileIndex, err)
		}
		if passesFilter(line, &family, nrph) {
			results = append(results, line)
		}
	}

	logger.Printf("query-family %q: scanned %d distinct records, %d matched", family, len(matches), len(results))
	return results, nil
}
