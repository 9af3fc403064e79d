package teidx

import "io"

// serialize writes the complete on-disk index format (spec §6): magic,
// version, tile size, counts, tile-count array, range-count array,
// contig names, file descriptors, then every tile's range array in
// contig-then-tile order. finalizeCounts must have been called first.
func (idx *Index) serialize(w io.Writer) error {
	if _, err := io.WriteString(w, MagicNumber); err != nil {
		return err
	}
	if err := writeUint16(w, FormatVersion); err != nil {
		return err
	}
	if err := writeUint32(w, idx.TileSize); err != nil {
		return err
	}
	if err := writeUint32(w, uint32(len(idx.Contigs))); err != nil {
		return err
	}
	if err := writeUint32(w, uint32(len(idx.FileDescriptors))); err != nil {
		return err
	}

	for _, t := range idx.TileCounts {
		if err := writeUint32(w, t); err != nil {
			return err
		}
	}

	for c := range idx.Contigs {
		for _, rc := range idx.RangeCounts[c] {
			if err := writeUint32(w, rc); err != nil {
				return err
			}
		}
	}

	for _, contig := range idx.Contigs {
		if err := writeFixedString(w, contig.Name, ContigNameLenBytes); err != nil {
			return err
		}
	}

	for _, d := range idx.FileDescriptors {
		if err := writeDataFileDescriptor(w, d); err != nil {
			return err
		}
	}

	for _, contig := range idx.Contigs {
		for _, tile := range contig.Tiles {
			for _, rng := range tile.Ranges {
				if err := writeContigRange(w, rng); err != nil {
					return err
				}
			}
		}
	}

	return nil
}
