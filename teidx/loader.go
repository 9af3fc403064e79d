package teidx

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
)

// Load reads an index header, tile/range counts, contig names, and file
// descriptors, and builds a tile-addressable offset table -- without
// eagerly loading any range data (spec §4.4). The returned Index's
// RangeDataOffset lets Query seek directly to any tile's range array.
func Load(logger *log.Logger, indexPath string) (*Index, error) {
	f, err := os.Open(indexPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrIndexMissing, indexPath)
		}
		return nil, err
	}
	defer f.Close()

	magic := make([]byte, len(MagicNumber))
	if _, err := io.ReadFull(f, magic); err != nil {
		return nil, fmt.Errorf("teidx: reading magic number: %w", err)
	}
	if string(magic) != MagicNumber {
		logger.Printf("warning: %v (got %q, want %q)", ErrIndexFormatMismatch, magic, MagicNumber)
	}

	version, err := readUint16(f)
	if err != nil {
		return nil, fmt.Errorf("teidx: reading format version: %w", err)
	}
	if version != FormatVersion {
		logger.Printf("warning: %v (got %d, want %d)", ErrIndexVersionMismatch, version, FormatVersion)
	}

	tileSize, err := readUint32(f)
	if err != nil {
		return nil, fmt.Errorf("teidx: reading tile size: %w", err)
	}
	contigCount, err := readUint32(f)
	if err != nil {
		return nil, fmt.Errorf("teidx: reading contig count: %w", err)
	}
	fileCount, err := readUint32(f)
	if err != nil {
		return nil, fmt.Errorf("teidx: reading file count: %w", err)
	}

	idx := &Index{
		TileSize:     tileSize,
		ContigLookup: make(map[string]uint32, contigCount),
	}

	idx.TileCounts = make([]uint32, contigCount)
	if err := readUint32Array(f, idx.TileCounts); err != nil {
		return nil, fmt.Errorf("teidx: reading tile counts: %w", err)
	}

	var sumTileCounts uint64
	idx.RangeCounts = make([][]uint32, contigCount)
	for c := uint32(0); c < contigCount; c++ {
		idx.RangeCounts[c] = make([]uint32, idx.TileCounts[c])
		if idx.TileCounts[c] > 0 {
			if err := readUint32Array(f, idx.RangeCounts[c]); err != nil {
				return nil, fmt.Errorf("teidx: reading range counts for contig %d: %w", c, err)
			}
		}
		sumTileCounts += uint64(idx.TileCounts[c])
	}

	idx.Contigs = make([]Contig, contigCount)
	for c := uint32(0); c < contigCount; c++ {
		name, err := readFixedString(f, ContigNameLenBytes)
		if err != nil {
			return nil, fmt.Errorf("teidx: reading contig name %d: %w", c, err)
		}
		idx.Contigs[c].Name = name
		idx.ContigLookup[name] = c
	}

	idx.FileDescriptors = make([]DataFileDescriptor, fileCount)
	for i := uint32(0); i < fileCount; i++ {
		d, err := readDataFileDescriptor(f)
		if err != nil {
			return nil, fmt.Errorf("teidx: reading file descriptor %d: %w", i, err)
		}
		idx.FileDescriptors[i] = d
	}

	base := headerLayoutLenBytes(contigCount, fileCount, sumTileCounts)
	idx.RangeDataOffset = make([][]uint64, contigCount)
	offset := base
	for c := uint32(0); c < contigCount; c++ {
		idx.RangeDataOffset[c] = make([]uint64, idx.TileCounts[c])
		for t := uint32(0); t < idx.TileCounts[c]; t++ {
			idx.RangeDataOffset[c][t] = offset
			offset += uint64(idx.RangeCounts[c][t]) * ContigRangeLenBytes
		}
	}

	return idx, nil
}

// readTile seeks to tile (c, t)'s persisted range array and reads it in
// full. Called on demand by the query engine; never eagerly by Load.
func (idx *Index) readTile(indexFile io.ReaderAt, c, t uint32) ([]ContigRange, error) {
	count := idx.RangeCounts[c][t]
	if count == 0 {
		return nil, nil
	}
	buf := make([]byte, int(count)*ContigRangeLenBytes)
	if _, err := indexFile.ReadAt(buf, int64(idx.RangeDataOffset[c][t])); err != nil {
		return nil, err
	}
	ranges := make([]ContigRange, count)
	for i := range ranges {
		off := i * ContigRangeLenBytes
		rng, err := readContigRange(bytes.NewReader(buf[off : off+ContigRangeLenBytes]))
		if err != nil {
			return nil, err
		}
		ranges[i] = rng
	}
	return ranges, nil
}
