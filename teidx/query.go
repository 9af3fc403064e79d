package teidx

import (
	"fmt"
	"io"
	"log"
	"sort"
)

// Query resolves contig to its indexed tiles, walks [q_start, q_end) per
// spec §4.5, and returns matching raw record lines (after passesFilter)
// in ascending start_bp order.
func (idx *Index) Query(logger *log.Logger, indexFile io.ReaderAt, dataDir string, contig string, qStart, qEnd uint64, family *string, nrph bool) ([]string, error) {
	c, ok := idx.ContigLookup[contig]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownContig, contig)
	}

	tileCount := idx.TileCounts[c]
	if tileCount == 0 {
		return nil, fmt.Errorf("%w: contig %q has no indexed tiles", ErrOutOfRange, contig)
	}

	firstTile := uint32(qStart / uint64(idx.TileSize))
	lastTile := uint32((qEnd - 1) / uint64(idx.TileSize))

	if firstTile > tileCount-1 {
		return nil, fmt.Errorf("%w: start %d beyond last indexed tile for contig %q", ErrOutOfRange, qStart, contig)
	}
	if lastTile > tileCount-1 {
		lastTile = tileCount - 1
	}

	var matches []ContigRange

	firstRanges, err := idx.readTile(indexFile, c, firstTile)
	if err != nil {
		return nil, fmt.Errorf("teidx: reading tile %d of contig %q: %w", firstTile, contig, err)
	}
	if len(firstRanges) > 0 && firstRanges[0].StartBp < qEnd {
		k := sort.Search(len(firstRanges), func(i int) bool {
			return firstRanges[i].StartBp >= qEnd
		})
		var collected []ContigRange
		for i := k - 1; i >= 0; i-- {
			collected = append(collected, firstRanges[i])
		}
		for i := len(collected) - 1; i >= 0; i-- {
			matches = append(matches, collected[i])
		}
	}

	for t := firstTile + 1; t <= lastTile; t++ {
		tileStartBp := uint64(t) * uint64(idx.TileSize)
		ranges, err := idx.readTile(indexFile, c, t)
		if err != nil {
			return nil, fmt.Errorf("teidx: reading tile %d of contig %q: %w", t, contig, err)
		}
		for _, rng := range ranges {
			if rng.StartBp < tileStartBp {
				continue
			}
			if rng.StartBp >= qEnd {
				break
			}
			matches = append(matches, rng)
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
		if passesFilter(line, family, nrph) {
			results = append(results, line)
		}
	}

	return results, nil
}
