// Package ioutil provides local file access for cmd/rff. It is plumbing
// external to the core (spec places file I/O wrappers out of scope): the
// trie, flatfile, and rffio packages never import it.
package ioutil

import (
	"io"
	"os"
)

// OpenFile opens path and returns an io.Reader over its contents, the file
// size, and a close function the caller must invoke when done.
func OpenFile(path string) (io.Reader, int64, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, nil, err
	}
	return f, fi.Size(), f.Close, nil
}

// CreateFile creates (or truncates) path for writing and returns the open
// file along with a close function.
func CreateFile(path string) (io.Writer, func() error, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
