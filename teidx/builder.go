package teidx

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// addContigRange replicates one ingested interval into every tile of its
// contig whose coordinate span overlaps [start, end). end == start is
// treated as a one-base interval confined to floor(start/tileSize); end
// must be > 0.
func (idx *Index) addContigRange(contigName string, fileIndex uint32, start, end, recordPointer uint64) error {
	if end == 0 {
		return fmt.Errorf("teidx: invalid record with end == 0 for contig %q", contigName)
	}

	firstTile := int(start / uint64(idx.TileSize))
	lastTile := int((end - 1) / uint64(idx.TileSize))
	if end == start {
		lastTile = firstTile
	}

	c := idx.getOrInsertContig(contigName)
	contig := &idx.Contigs[c]
	for len(contig.Tiles) <= lastTile {
		contig.Tiles = append(contig.Tiles, Tile{})
	}

	rng := ContigRange{
		DataFileIndex: fileIndex,
		StartBp:       start,
		EndBp:         end,
		RecordPointer: recordPointer,
	}
	for t := firstTile; t <= lastTile; t++ {
		contig.Tiles[t].Ranges = append(contig.Tiles[t].Ranges, rng)
	}
	return nil
}

// enumerateDataFiles lists files under dir whose name ends in suffix, in
// sorted order -- deterministic, satisfying spec §4.3 step 1.
func enumerateDataFiles(dir, suffix string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(e.Name(), suffix) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// BuildOptions controls an index build beyond the fixed data-directory
// convention. Zero value selects spec defaults.
type BuildOptions struct {
	// TileSize overrides DefaultTileSize when non-zero.
	TileSize uint32
	// Suffix overrides ".bgz" as the data-file extension to enumerate.
	Suffix string
}

// Build walks every data file of the given kind under projectRoot,
// indexing every record, and writes the resulting binary index to
// projectRoot/dataKind_idx.dat (spec §6's filesystem convention).
func Build(logger *log.Logger, projectRoot, dataKind string, opts BuildOptions) error {
	tileSize := opts.TileSize
	if tileSize == 0 {
		tileSize = DefaultTileSize
	}
	suffix := opts.Suffix
	if suffix == "" {
		suffix = ".bgz"
	}

	dataDir := filepath.Join(projectRoot, dataKind)
	indexPath := filepath.Join(projectRoot, dataKind+"_idx.dat")

	names, err := enumerateDataFiles(dataDir, suffix)
	if err != nil {
		return fmt.Errorf("teidx: enumerating data files in %s: %w", dataDir, err)
	}

	idx := newIndex(tileSize)

	bar := getProgressWriter().NewCountProgress(int64(len(names)), "indexing "+dataKind)
	defer bar.Close()

	for fileIndex, name := range names {
		path := filepath.Join(dataDir, name)
		if err := idx.ingestFile(logger, uint32(fileIndex), path, name); err != nil {
			return fmt.Errorf("teidx: indexing %s: %w", path, err)
		}
		bar.Add(1)
	}

	idx.finalizeCounts()

	f, err := os.OpenFile(indexPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("teidx: creating index file %s: %w", indexPath, err)
	}
	defer f.Close()

	if err := idx.serialize(f); err != nil {
		return fmt.Errorf("teidx: writing index file %s: %w", indexPath, err)
	}

	logger.Printf("built %s: %d contigs, %d files", indexPath, len(idx.Contigs), len(idx.FileDescriptors))
	return nil
}

// ingestFile reads one data file's descriptor and every record line,
// capturing each line's pre-read virtual position (Open Question 2:
// always the position before the read, never after).
func (idx *Index) ingestFile(logger *log.Logger, fileIndex uint32, path, name string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	idx.FileDescriptors = append(idx.FileDescriptors, DataFileDescriptor{
		Name:       name,
		ModTime:    float64(info.ModTime().UnixNano()) / 1e9,
		ByteLength: uint64(info.Size()),
	})

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	bgzfReader, err := newBgzfReader(f)
	if err != nil {
		return fmt.Errorf("opening bgzf stream: %w", err)
	}

	lr := newLineReader(bgzfReader)
	lines := 0
	for {
		pos := lr.Position()
		line, err := lr.ReadLine()
		if err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("line %d: %w", lines+1, err)
		}
		if line == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 3 {
			return fmt.Errorf("line %d: expected at least 3 tab-separated fields, got %d", lines+1, len(fields))
		}
		start, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return fmt.Errorf("line %d: invalid start position %q: %w", lines+1, fields[1], err)
		}
		end, err := strconv.ParseUint(fields[2], 10, 64)
		if err != nil {
			return fmt.Errorf("line %d: invalid end position %q: %w", lines+1, fields[2], err)
		}

		if err := idx.addContigRange(fields[0], fileIndex, start, end, pos); err != nil {
			return fmt.Errorf("line %d: %w", lines+1, err)
		}
		lines++
	}

	logger.Printf("indexed %s (%s, %d records)", name, humanize.Bytes(uint64(info.Size())), lines)
	return nil
}

// finalizeCounts populates TileCounts and RangeCounts from the built
// Contigs, and sorts every tile's ranges by StartBp ascending (stable, so
// ties preserve insertion order) -- Open Question 1: no dedup pass, no
// secondary sort by EndBp.
func (idx *Index) finalizeCounts() {
	idx.TileCounts = make([]uint32, len(idx.Contigs))
	idx.RangeCounts = make([][]uint32, len(idx.Contigs))
	for c := range idx.Contigs {
		contig := &idx.Contigs[c]
		idx.TileCounts[c] = uint32(len(contig.Tiles))
		idx.RangeCounts[c] = make([]uint32, len(contig.Tiles))
		for t := range contig.Tiles {
			tile := &contig.Tiles[t]
			sort.SliceStable(tile.Ranges, func(i, j int) bool {
				return tile.Ranges[i].StartBp < tile.Ranges[j].StartBp
			})
			idx.RangeCounts[c][t] = uint32(len(tile.Ranges))
		}
	}
}
