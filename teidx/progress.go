package teidx

import (
	"io"
	"sync"

	"github.com/schollz/progressbar/v3"
)

// ProgressWriter creates count-based progress trackers for long-running
// build passes. Only a count-based tracker is needed: the builder's unit
// of work is "files enumerated", never raw bytes.
type ProgressWriter interface {
	NewCountProgress(total int64, description string) Progress
}

// Progress is an active progress tracker that can be advanced and closed.
type Progress interface {
	io.Writer
	Add(num int)
	Close() error
}

var (
	progressWriterMu sync.RWMutex
	progressWriter   ProgressWriter = &defaultProgressWriter{}
)

// SetProgressWriter installs a custom progress writer for Build. Pass nil
// to suppress progress output entirely (used by tests and embeddings that
// don't want bars printed to stderr).
func SetProgressWriter(pw ProgressWriter) {
	progressWriterMu.Lock()
	defer progressWriterMu.Unlock()
	if pw == nil {
		progressWriter = &quietProgressWriter{}
	} else {
		progressWriter = pw
	}
}

func getProgressWriter() ProgressWriter {
	progressWriterMu.RLock()
	defer progressWriterMu.RUnlock()
	return progressWriter
}

type defaultProgressWriter struct{}

func (d *defaultProgressWriter) NewCountProgress(total int64, description string) Progress {
	bar := progressbar.Default(total, description)
	return &progressBarWrapper{bar: bar}
}

type progressBarWrapper struct {
	bar *progressbar.ProgressBar
}

func (p *progressBarWrapper) Write(data []byte) (int, error) {
	if p.bar == nil {
		return len(data), nil
	}
	return p.bar.Write(data)
}

func (p *progressBarWrapper) Add(num int) {
	if p.bar != nil {
		p.bar.Add(num)
	}
}

func (p *progressBarWrapper) Close() error {
	if p.bar != nil {
		return p.bar.Close()
	}
	return nil
}

// quietProgressWriter implements ProgressWriter with no-op trackers, used
// when progress output is suppressed.
type quietProgressWriter struct{}

func (q *quietProgressWriter) NewCountProgress(total int64, description string) Progress {
	return &quietProgress{}
}

type quietProgress struct{}

func (q *quietProgress) Write(data []byte) (int, error) { return len(data), nil }
func (q *quietProgress) Add(num int)                     {}
func (q *quietProgress) Close() error                    { return nil }
