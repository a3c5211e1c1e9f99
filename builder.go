package treefs

import (
	"log/slog"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// Builder accumulates tree entries and tree-level configuration. It
// performs no I/O and no validation; both are deferred to Create, so an
// invalid Builder can still be inspected or discarded cheaply.
//
// All methods return the receiver so calls can be chained. A Builder is
// reusable: Create works on a snapshot of the configuration, and a Builder
// without an explicit root gets a fresh unique temp root on every Create.
type Builder struct {
	root             string
	overrideExisting bool
	autoDelete       bool
	entries          []Entry
	fsys             billy.Filesystem
	local            bool
	logger           *slog.Logger
}

// New returns a Builder with an empty entry list, auto-delete enabled,
// overriding disabled, and the local filesystem as backend. The root
// defaults to a freshly generated unique path under the system temp
// directory, resolved when Create is called.
func New() *Builder {
	return &Builder{
		autoDelete: true,
		fsys:       osfs.New("/"),
		local:      true,
		logger:     slog.Default(),
	}
}

// RootFolder sets the root folder where the tree will be created,
// overriding the generated temp directory default.
func (b *Builder) RootFolder(dir string) *Builder {
	b.root = dir
	return b
}

// OverrideExisting sets whether entries whose resolved path already exists
// are overwritten. When false (the default), such entries are skipped
// entirely, and two entries in the same tree resolving to the same path
// fail materialization with ErrDuplicateEntry.
func (b *Builder) OverrideExisting(yes bool) *Builder {
	b.overrideExisting = yes
	return b
}

// AutoDelete sets whether the created tree is recursively deleted when the
// Tree handle is closed. Defaults to true.
func (b *Builder) AutoDelete(yes bool) *Builder {
	b.autoDelete = yes
	return b
}

// Filesystem sets the backend the tree is materialized on. The default is
// the local filesystem; an in-memory backend (e.g. memfs) can be injected
// for tests.
func (b *Builder) Filesystem(fsys billy.Filesystem) *Builder {
	b.fsys = fsys
	b.local = false
	return b
}

// Logger sets the logger used for suppressed cleanup failures. Defaults to
// slog.Default.
func (b *Builder) Logger(logger *slog.Logger) *Builder {
	if logger != nil {
		b.logger = logger
	}
	return b
}

// AddFile appends a file entry with text content.
func (b *Builder) AddFile(path, content string) *Builder {
	return b.add(Entry{Path: path, Kind: KindTextFile, Content: []byte(content)})
}

// AddEmptyFile appends a zero-length file entry.
func (b *Builder) AddEmptyFile(path string) *Builder {
	return b.add(Entry{Path: path, Kind: KindEmptyFile})
}

// AddDirectory appends a directory entry.
func (b *Builder) AddDirectory(path string) *Builder {
	return b.add(Entry{Path: path, Kind: KindDirectory})
}

// AddBinaryFile appends a file entry with raw byte content.
func (b *Builder) AddBinaryFile(path string, data []byte) *Builder {
	return b.add(Entry{Path: path, Kind: KindBinaryFile, Content: data})
}

// AddCopiedFile appends a file entry whose content is copied from the
// absolute path source at materialization time.
func (b *Builder) AddCopiedFile(path, source string) *Builder {
	return b.add(Entry{Path: path, Kind: KindCopiedFile, Source: source})
}

// AddFileWithSettings appends a text file entry with per-entry settings.
func (b *Builder) AddFileWithSettings(path, content string, settings Settings) *Builder {
	return b.add(Entry{Path: path, Kind: KindTextFile, Content: []byte(content), Settings: &settings})
}

// AddEmptyFileWithSettings appends a zero-length file entry with per-entry
// settings.
func (b *Builder) AddEmptyFileWithSettings(path string, settings Settings) *Builder {
	return b.add(Entry{Path: path, Kind: KindEmptyFile, Settings: &settings})
}

// AddDirectoryWithSettings appends a directory entry with per-entry
// settings. Settings apply to files only, so they are ignored for
// directories; the method exists for symmetry with the other entry kinds.
func (b *Builder) AddDirectoryWithSettings(path string, settings Settings) *Builder {
	return b.add(Entry{Path: path, Kind: KindDirectory, Settings: &settings})
}

// AddBinaryFileWithSettings appends a binary file entry with per-entry
// settings.
func (b *Builder) AddBinaryFileWithSettings(path string, data []byte, settings Settings) *Builder {
	return b.add(Entry{Path: path, Kind: KindBinaryFile, Content: data, Settings: &settings})
}

// AddCopiedFileWithSettings appends a copied file entry with per-entry
// settings.
func (b *Builder) AddCopiedFileWithSettings(path, source string, settings Settings) *Builder {
	return b.add(Entry{Path: path, Kind: KindCopiedFile, Source: source, Settings: &settings})
}

// AddReadonlyFile appends a text file entry marked read-only.
func (b *Builder) AddReadonlyFile(path, content string) *Builder {
	return b.AddFileWithSettings(path, content, Settings{Readonly: true})
}

// AddReadonlyEmptyFile appends a zero-length file entry marked read-only.
func (b *Builder) AddReadonlyEmptyFile(path string) *Builder {
	return b.AddEmptyFileWithSettings(path, Settings{Readonly: true})
}

func (b *Builder) add(e Entry) *Builder {
	b.entries = append(b.entries, e)
	return b
}

// Create materializes the accumulated entries and returns a Tree handle
// bound to the root. The Builder itself is left untouched and can be
// reused; when no root folder was set, each Create call materializes into
// a distinct generated temp directory.
func (b *Builder) Create() (*Tree, error) {
	return materialize(b.snapshot())
}

// snapshot copies the configuration so later Builder mutations cannot
// affect an in-flight or completed materialization.
func (b *Builder) snapshot() treeConfig {
	root := b.root
	if root == "" {
		root = TempDirPath()
	}
	entries := make([]Entry, len(b.entries))
	copy(entries, b.entries)
	return treeConfig{
		root:             root,
		overrideExisting: b.overrideExisting,
		autoDelete:       b.autoDelete,
		entries:          entries,
		fsys:             b.fsys,
		local:            b.local,
		logger:           b.logger,
	}
}
