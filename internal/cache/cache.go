// Package cache provides an in-memory cache of parsed documents for the
// long-lived MCP server. Entries are validated against the backing file's
// mtime and size on every lookup, so an external rewrite invalidates the
// cached document on the next read.
package cache

import (
	"os"
	"time"

	lru "github.com/hashicorp/golang-lru"

	"github.com/Fuabioo/gzjson"
)

// entry pairs a parsed document with the file identity it was read from.
type entry struct {
	doc     any
	modTime time.Time
	size    int64
}

// Store is an LRU cache of parsed documents keyed by file path.
type Store struct {
	codec *gzjson.Codec
	inner *lru.Cache
}

// New creates a Store holding at most entries documents.
func New(codec *gzjson.Codec, entries int) (*Store, error) {
	inner, err := lru.New(entries)
	if err != nil {
		return nil, err
	}

	return &Store{codec: codec, inner: inner}, nil
}

// Read returns the parsed document at path, served from cache when the
// file is unchanged since it was last parsed.
func (s *Store) Read(path string) (any, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.inner.Remove(path)
			return nil, gzjson.FileNotFound(path)
		}
		return nil, gzjson.ReadFailed(path, err)
	}

	if v, ok := s.inner.Get(path); ok {
		e := v.(entry)
		if e.modTime.Equal(info.ModTime()) && e.size == info.Size() {
			return e.doc, nil
		}
		s.inner.Remove(path)
	}

	doc, err := s.codec.Read(path)
	if err != nil {
		return nil, err
	}

	s.inner.Add(path, entry{doc: doc, modTime: info.ModTime(), size: info.Size()})

	return doc, nil
}

// Invalidate drops the entry for path, if any.
func (s *Store) Invalidate(path string) {
	s.inner.Remove(path)
}

// Len returns the number of cached documents.
func (s *Store) Len() int {
	return s.inner.Len()
}
