package treefs

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/jmgilman/go/treefs/internal/pathutil"
)

// treeConfig is the immutable snapshot of a Builder that materialization
// works on.
type treeConfig struct {
	root             string
	overrideExisting bool
	autoDelete       bool
	entries          []Entry
	fsys             billy.Filesystem
	local            bool
	logger           *slog.Logger
}

// materialize creates the root directory and then processes entries in
// insertion order. Failure aborts immediately with the specific error;
// entries already created are not rolled back.
func materialize(cfg treeConfig) (*Tree, error) {
	if err := cfg.fsys.MkdirAll(cfg.root, 0o755); err != nil {
		return nil, &TreeError{Op: "create_root", Path: cfg.root, Index: -1, Err: wrap(ErrCreateRoot, err)}
	}

	seen := make(map[string]struct{}, len(cfg.entries))
	for i, entry := range cfg.entries {
		resolved, err := pathutil.Resolve(cfg.root, entry.Path)
		if err != nil {
			return nil, &TreeError{Op: "resolve", Path: entry.Path, Index: i, Err: err}
		}

		if _, dup := seen[resolved]; dup && !cfg.overrideExisting {
			return nil, &TreeError{Op: "resolve", Path: entry.Path, Index: i, Err: ErrDuplicateEntry}
		}
		seen[resolved] = struct{}{}

		if !cfg.overrideExisting && exists(cfg.fsys, resolved) {
			continue
		}

		if err := createEntry(cfg, i, entry, resolved); err != nil {
			return nil, err
		}

		if entry.Settings != nil && entry.Settings.Readonly && entry.Kind != KindDirectory {
			if err := markReadonly(cfg, resolved); err != nil {
				return nil, &TreeError{Op: "chmod", Path: entry.Path, Index: i, Err: err}
			}
		}
	}

	return &Tree{
		root:       cfg.root,
		autoDelete: cfg.autoDelete,
		fsys:       cfg.fsys,
		logger:     cfg.logger,
	}, nil
}

// createEntry ensures the parent directory exists and dispatches on the
// entry kind.
func createEntry(cfg treeConfig, index int, entry Entry, resolved string) error {
	fail := func(op string, sentinel, cause error) error {
		return &TreeError{Op: op, Path: entry.Path, Index: index, Err: wrap(sentinel, cause)}
	}

	if entry.Kind != KindDirectory {
		if parent := filepath.Dir(resolved); parent != cfg.root {
			if err := cfg.fsys.MkdirAll(parent, 0o755); err != nil {
				return fail("mkdir", ErrCreateDir, err)
			}
		}
	}

	switch entry.Kind {
	case KindDirectory:
		if err := cfg.fsys.MkdirAll(resolved, 0o755); err != nil {
			return fail("mkdir", ErrCreateDir, err)
		}

	case KindEmptyFile:
		f, err := cfg.fsys.Create(resolved)
		if err != nil {
			return fail("create", ErrCreateFile, err)
		}
		if err := f.Close(); err != nil {
			return fail("create", ErrCreateFile, err)
		}

	case KindTextFile, KindBinaryFile:
		f, err := cfg.fsys.Create(resolved)
		if err != nil {
			return fail("create", ErrCreateFile, err)
		}
		if _, err := f.Write(entry.Content); err != nil {
			_ = f.Close()
			return fail("write", ErrWriteFile, err)
		}
		if err := f.Close(); err != nil {
			return fail("write", ErrWriteFile, err)
		}

	case KindCopiedFile:
		data, err := readSource(cfg.fsys, entry.Source)
		if err != nil {
			// Copy failures are tagged with the source, not the destination.
			return &TreeError{Op: "copy", Path: entry.Source, Index: index, Err: wrap(ErrCopyFile, err)}
		}
		f, err := cfg.fsys.Create(resolved)
		if err != nil {
			return fail("create", ErrCreateFile, err)
		}
		if _, err := f.Write(data); err != nil {
			_ = f.Close()
			return fail("write", ErrWriteFile, err)
		}
		if err := f.Close(); err != nil {
			return fail("write", ErrWriteFile, err)
		}
	}

	return nil
}

// readSource reads the source of a copied-file entry. The source must be an
// absolute path that exists on the configured backend.
func readSource(fsys billy.Filesystem, source string) ([]byte, error) {
	if !filepath.IsAbs(source) {
		return nil, &fs.PathError{Op: "open", Path: source, Err: fs.ErrInvalid}
	}
	return util.ReadFile(fsys, source)
}

// markReadonly strips the write bits from the resolved path, strictly after
// its content has been written. Backends that implement billy.Change are
// used directly; the default local backend falls back to os.Chmod.
func markReadonly(cfg treeConfig, resolved string) error {
	info, err := cfg.fsys.Stat(resolved)
	if err != nil {
		return err
	}
	mode := info.Mode().Perm() &^ 0o222

	if ch, ok := cfg.fsys.(billy.Change); ok {
		return ch.Chmod(resolved, mode)
	}
	if cfg.local {
		return os.Chmod(resolved, mode)
	}
	return ErrReadonlyUnsupported
}

// exists reports whether the path is present on the backend. A failed stat
// counts as absent so the subsequent create surfaces the real error instead
// of silently skipping the entry.
func exists(fsys billy.Filesystem, path string) bool {
	_, err := fsys.Stat(path)
	return err == nil
}

// wrap pairs a sentinel with its underlying cause so both are visible to
// errors.Is.
func wrap(sentinel, cause error) error {
	if cause == nil {
		return sentinel
	}
	return fmt.Errorf("%w: %w", sentinel, cause)
}
