package treefs

import (
	"errors"
	"fmt"

	"github.com/jmgilman/go/treefs/internal/pathutil"
)

// Sentinel errors for the distinct failure modes of tree materialization.
// They can be checked with errors.Is on any error returned by this package.
var (
	// ErrCreateRoot indicates the tree root directory could not be created.
	ErrCreateRoot = errors.New("failed to create root directory")

	// ErrCreateDir indicates a directory entry or a parent directory could
	// not be created.
	ErrCreateDir = errors.New("failed to create directory")

	// ErrCreateFile indicates a file could not be opened for creation.
	ErrCreateFile = errors.New("failed to create file")

	// ErrWriteFile indicates a file was created but its content could not
	// be written.
	ErrWriteFile = errors.New("failed to write file")

	// ErrCopyFile indicates the source of a copied-file entry could not be
	// read. The associated path is the source, not the destination.
	ErrCopyFile = errors.New("failed to copy source file")

	// ErrDuplicateEntry indicates two entries in the same tree resolve to
	// the same path while overriding is disabled.
	ErrDuplicateEntry = errors.New("duplicate entry path")

	// ErrReadonlyUnsupported indicates the configured filesystem backend
	// cannot change file permissions, so a readonly setting cannot be
	// honored.
	ErrReadonlyUnsupported = errors.New("filesystem does not support permission changes")

	// ErrDecode indicates a declarative tree document could not be decoded.
	ErrDecode = errors.New("failed to decode tree document")

	// ErrEmptyEntryPath indicates an entry has an empty path.
	ErrEmptyEntryPath = pathutil.ErrEmptyPath

	// ErrEntryOutsideRoot indicates an entry path resolves outside the tree
	// root after lexical normalization.
	ErrEntryOutsideRoot = pathutil.ErrOutsideRoot
)

// TreeError provides context about a failed tree operation. It wraps one of
// the package's sentinel errors (or an underlying filesystem error) with
// the operation, the offending path, and the index of the entry being
// processed.
//
// TreeError supports errors.Is and errors.As through Unwrap.
type TreeError struct {
	// Op is the operation that failed (e.g. "mkdir", "write", "copy").
	Op string

	// Path is the path the operation was acting on. For copy failures this
	// is the source path, not the destination.
	Path string

	// Index is the position of the entry in the tree configuration, or -1
	// when the error is not tied to a specific entry.
	Index int

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *TreeError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *TreeError) Unwrap() error {
	return e.Err
}
