package teidx

// MagicNumber is the fixed 6-byte index file signature.
const MagicNumber = "#R_IDX"

// FormatVersion is the on-disk format version this package writes and
// expects to read.
const FormatVersion uint16 = 0

// DefaultTileSize is the tile width in base pairs used when a caller does
// not override it at build time.
const DefaultTileSize uint32 = 16384

// headerBaseLenBytes is the fixed portion of the header, before the
// variable-length tile-count / range-count / name / descriptor sections.
const headerBaseLenBytes = 20

// ContigRange is one interval record: a reference into a data file plus
// the half-open base-pair span it covers and the virtual position of the
// full record line within that file.
type ContigRange struct {
	DataFileIndex uint32
	StartBp       uint64
	EndBp         uint64
	RecordPointer uint64
}

// DataFileDescriptor identifies one block-compressed data file referenced
// by the index, captured at build time for later consistency checking.
type DataFileDescriptor struct {
	Name       string
	ModTime    float64
	ByteLength uint64
}

// Tile is a fixed-width slice of a contig's coordinate space, holding
// every range whose interval overlaps it.
type Tile struct {
	Ranges []ContigRange
}

// Contig is a named reference sequence with an ordered sequence of tiles.
type Contig struct {
	Name  string
	Tiles []Tile
}

// Index is the complete in-memory interval index: the collections
// described in spec §4.2, plus an offset table computed at load time.
type Index struct {
	TileSize uint32

	FileDescriptors []DataFileDescriptor
	Contigs         []Contig
	ContigLookup    map[string]uint32

	// TileCounts[c] is len(Contigs[c].Tiles), persisted directly.
	TileCounts []uint32

	// RangeCounts[c][t] is len(Contigs[c].Tiles[t].Ranges), persisted.
	RangeCounts [][]uint32

	// RangeDataOffset[c][t] is the absolute byte offset of tile (c, t)'s
	// range array within the index file. Computed at load time from
	// RangeCounts and the known layout; never persisted.
	RangeDataOffset [][]uint64
}

// newIndex returns an empty Index ready for building.
func newIndex(tileSize uint32) *Index {
	return &Index{
		TileSize:     tileSize,
		ContigLookup: make(map[string]uint32),
	}
}

// getOrInsertContig returns the dense index of contig name, creating it
// (in first-seen order) if it does not yet exist.
func (idx *Index) getOrInsertContig(name string) uint32 {
	if c, ok := idx.ContigLookup[name]; ok {
		return c
	}
	c := uint32(len(idx.Contigs))
	idx.Contigs = append(idx.Contigs, Contig{Name: name})
	idx.ContigLookup[name] = c
	return c
}

// headerLayoutLenBytes returns the byte offset at which range data begins,
// given contig count C, file count F, and the sum of tile counts S:
// 20 (base header) + 4*C (tile counts) + 4*S (range counts)
// + 40*C (contig names) + 56*F (file descriptors).
func headerLayoutLenBytes(c, f uint32, sumTileCounts uint64) uint64 {
	return uint64(headerBaseLenBytes) + uint64(c)*4 + sumTileCounts*4 +
		uint64(c)*ContigNameLenBytes + uint64(f)*DataFileDescriptorLenBytes
}
