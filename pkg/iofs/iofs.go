package iofs

import (
	"context"
	"io"
	"io/fs"
)

// Readable represents an arbitrary readable source.
type Readable interface {
	FS(context.Context) (fs.FS, error)
	Root() string
	Close() error
}

// WriterFunc writes a destination file to the provided writer.
type WriterFunc func(w io.Writer) error

// Writable abstracts the project directory the pipeline writes into.
type Writable interface {
	EnsureRoot() (existed bool, err error)
	Entries() ([]string, error)
	MkdirAll(rel string, perm fs.FileMode) error
	RemoveAll(rel string) error
	Write(rel string, gen WriterFunc) error
}
