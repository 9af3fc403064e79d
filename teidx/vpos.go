package teidx

import (
	"bytes"
	"io"

	"github.com/biogo/hts/bgzf"
)

// encodeVirtualPosition packs a bgzf.Offset into the uint64 record_pointer
// format persisted on disk: (coffset << 16) | uoffset, matching htslib's
// virtual file offset convention.
func encodeVirtualPosition(off bgzf.Offset) uint64 {
	return uint64(off.File)<<16 | uint64(off.Block)
}

// decodeVirtualPosition unpacks a persisted record_pointer into the
// bgzf.Offset a *bgzf.Reader can Seek to.
func decodeVirtualPosition(v uint64) bgzf.Offset {
	return bgzf.Offset{File: int64(v >> 16), Block: uint16(v & 0xffff)}
}

// lineReader reads newline-terminated records one at a time from a bgzf
// stream, byte at a time, so that Position always reflects the exact
// virtual offset of the next unread byte -- a multi-byte buffered read
// would blur that offset across whatever block boundaries it happened to
// span.
type lineReader struct {
	r   *bgzf.Reader
	buf []byte
	one [1]byte
}

func newLineReader(r *bgzf.Reader) *lineReader {
	return &lineReader{r: r}
}

// Position returns the virtual position of the next byte this lineReader
// will read.
func (lr *lineReader) Position() uint64 {
	return encodeVirtualPosition(lr.r.LastChunk().End)
}

// ReadLine reads up through the next '\n' (exclusive) or EOF, returning
// the trimmed line with any trailing '\r' removed. Returns io.EOF only
// when no bytes were read before end of stream.
func (lr *lineReader) ReadLine() (string, error) {
	lr.buf = lr.buf[:0]
	read := 0
	for {
		n, err := lr.r.Read(lr.one[:])
		if n == 1 {
			read++
			if lr.one[0] == '\n' {
				break
			}
			lr.buf = append(lr.buf, lr.one[0])
		}
		if err != nil {
			if err == io.EOF {
				if read == 0 {
					return "", io.EOF
				}
				break
			}
			return "", err
		}
	}
	return string(bytes.TrimRight(lr.buf, "\r")), nil
}

// newBgzfReader wraps f as a *bgzf.Reader ready to Read from the
// beginning or Seek to a stored virtual position. A parallelism of 0
// decompresses serially, which is all a single record line requires.
func newBgzfReader(f io.Reader) (*bgzf.Reader, error) {
	return bgzf.NewReader(f, 0)
}
