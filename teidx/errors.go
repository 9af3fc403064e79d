package teidx

import "errors"

// Sentinel errors returned by Load and Query. Callers compare with
// errors.Is; wrapping call sites add context with fmt.Errorf("...: %w").
var (
	// ErrUnknownContig is returned when a query names a contig absent
	// from the index.
	ErrUnknownContig = errors.New("teidx: unknown contig")

	// ErrOutOfRange is returned when a query's start position is beyond
	// the last tile indexed for its contig.
	ErrOutOfRange = errors.New("teidx: query start beyond indexed range")

	// ErrIndexMissing is returned when no index file exists at the
	// expected path.
	ErrIndexMissing = errors.New("teidx: index file missing")

	// ErrIndexFormatMismatch is logged as a warning (not returned) when
	// the magic bytes of an index file do not match; exported so tests
	// and callers can recognize the condition if they inspect logs.
	ErrIndexFormatMismatch = errors.New("teidx: index magic number mismatch")

	// ErrIndexVersionMismatch is logged as a warning (not returned) when
	// an index file's format version is not one this package knows.
	ErrIndexVersionMismatch = errors.New("teidx: unsupported index format version")

	// ErrConsistencyWarning marks a non-fatal mismatch between the
	// index's recorded file descriptors and the filesystem.
	ErrConsistencyWarning = errors.New("teidx: data directory inconsistent with index")

	// ErrUnknownDataFile is returned when a range record names a
	// data_file_index beyond the index's file descriptor table.
	ErrUnknownDataFile = errors.New("teidx: unknown data file index")
)
