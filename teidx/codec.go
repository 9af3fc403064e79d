package teidx

import (
	"bytes"
	"encoding/binary"
	"io"
)

// ContigRangeLenBytes is the fixed on-disk size of one ContigRange record.
const ContigRangeLenBytes = 28

// DataFileDescriptorLenBytes is the fixed on-disk size of one DataFileDescriptor.
const DataFileDescriptorLenBytes = 56

// ContigNameLenBytes is the zero-padded width of a persisted contig name.
const ContigNameLenBytes = 40

// writeFixedString writes s into a field of exactly n bytes, zero-padding
// or truncating as needed.
func writeFixedString(w io.Writer, s string, n int) error {
	b := make([]byte, n)
	copy(b, s)
	_, err := w.Write(b)
	return err
}

// readFixedString reads a zero-padded fixed-length string field, returning
// the content up to the first zero byte (or the whole field if unpadded).
func readFixedString(r io.Reader, n int) (string, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", err
	}
	if idx := bytes.IndexByte(b, 0); idx >= 0 {
		return string(b[:idx]), nil
	}
	return string(b), nil
}

func writeUint16(w io.Writer, v uint16) error {
	return binary.Write(w, binary.LittleEndian, v)
}

func writeUint32(w io.Writer, v uint32) error {
	return binary.Write(w, binary.LittleEndian, v)
}

func writeUint64(w io.Writer, v uint64) error {
	return binary.Write(w, binary.LittleEndian, v)
}

func writeFloat64(w io.Writer, v float64) error {
	return binary.Write(w, binary.LittleEndian, v)
}

func readUint16(r io.Reader) (uint16, error) {
	var v uint16
	err := binary.Read(r, binary.LittleEndian, &v)
	return v, err
}

func readUint32(r io.Reader) (uint32, error) {
	var v uint32
	err := binary.Read(r, binary.LittleEndian, &v)
	return v, err
}

func readUint64(r io.Reader) (uint64, error) {
	var v uint64
	err := binary.Read(r, binary.LittleEndian, &v)
	return v, err
}

func readFloat64(r io.Reader) (float64, error) {
	var v float64
	err := binary.Read(r, binary.LittleEndian, &v)
	return v, err
}

// readUint32Array bulk-reads n little-endian uint32 values into dst, which
// must already be sized to n.
func readUint32Array(r io.Reader, dst []uint32) error {
	return binary.Read(r, binary.LittleEndian, dst)
}

// writeContigRange writes one 28-byte ContigRange record.
func writeContigRange(w io.Writer, rng ContigRange) error {
	if err := writeUint32(w, rng.DataFileIndex); err != nil {
		return err
	}
	if err := writeUint64(w, rng.StartBp); err != nil {
		return err
	}
	if err := writeUint64(w, rng.EndBp); err != nil {
		return err
	}
	return writeUint64(w, rng.RecordPointer)
}

// readContigRange reads one 28-byte ContigRange record.
func readContigRange(r io.Reader) (ContigRange, error) {
	var rng ContigRange
	var err error
	if rng.DataFileIndex, err = readUint32(r); err != nil {
		return rng, err
	}
	if rng.StartBp, err = readUint64(r); err != nil {
		return rng, err
	}
	if rng.EndBp, err = readUint64(r); err != nil {
		return rng, err
	}
	if rng.RecordPointer, err = readUint64(r); err != nil {
		return rng, err
	}
	return rng, nil
}

// writeDataFileDescriptor writes one 56-byte DataFileDescriptor record.
func writeDataFileDescriptor(w io.Writer, d DataFileDescriptor) error {
	if err := writeFixedString(w, d.Name, ContigNameLenBytes); err != nil {
		return err
	}
	if err := writeFloat64(w, d.ModTime); err != nil {
		return err
	}
	return writeUint64(w, d.ByteLength)
}

// readDataFileDescriptor reads one 56-byte DataFileDescriptor record.
func readDataFileDescriptor(r io.Reader) (DataFileDescriptor, error) {
	var d DataFileDescriptor
	var err error
	if d.Name, err = readFixedString(r, ContigNameLenBytes); err != nil {
		return d, err
	}
	if d.ModTime, err = readFloat64(r); err != nil {
		return d, err
	}
	if d.ByteLength, err = readUint64(r); err != nil {
		return d, err
	}
	return d, nil
}
