package treefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEmptyTreeCreatesOnlyRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "root")

	tree, err := New().RootFolder(root).Create()
	require.NoError(t, err)
	defer tree.Close()

	info, err := os.Stat(root)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCreateNestedTree(t *testing.T) {
	root := filepath.Join(t.TempDir(), "T")

	tree, err := New().
		RootFolder(root).
		AddDirectory("a/b").
		AddFile("a/b/c.txt", "hi").
		AddEmptyFile("a/d.txt").
		Create()
	require.NoError(t, err)
	defer tree.Close()

	info, err := os.Stat(filepath.Join(root, "a", "b"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	data, err := os.ReadFile(filepath.Join(root, "a", "b", "c.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hi", string(data))

	info, err = os.Stat(filepath.Join(root, "a", "d.txt"))
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestCreateImplicitParentDirectories(t *testing.T) {
	root := filepath.Join(t.TempDir(), "T")

	// No directory entry for the parents; they are created on demand.
	tree, err := New().
		RootFolder(root).
		AddFile("deeply/nested/path/file.txt", "content").
		Create()
	require.NoError(t, err)
	defer tree.Close()

	data, err := os.ReadFile(filepath.Join(root, "deeply", "nested", "path", "file.txt"))
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}

func TestBinaryFileRoundTrip(t *testing.T) {
	root := filepath.Join(t.TempDir(), "T")
	payload := []byte{0x00, 0xff, 0x10, 0x80, 0x00}

	tree, err := New().
		RootFolder(root).
		AddBinaryFile("blob.bin", payload).
		Create()
	require.NoError(t, err)
	defer tree.Close()

	data, err := os.ReadFile(filepath.Join(root, "blob.bin"))
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestCopiedFile(t *testing.T) {
	source := filepath.Join(t.TempDir(), "source.txt")
	require.NoError(t, os.WriteFile(source, []byte("copied content"), 0o644))

	root := filepath.Join(t.TempDir(), "T")
	tree, err := New().
		RootFolder(root).
		AddCopiedFile("dst/copy.txt", source).
		Create()
	require.NoError(t, err)
	defer tree.Close()

	data, err := os.ReadFile(filepath.Join(root, "dst", "copy.txt"))
	require.NoError(t, err)
	assert.Equal(t, "copied content", string(data))
}

func TestCopiedFileMissingSourceReportsSourcePath(t *testing.T) {
	source := filepath.Join(t.TempDir(), "nonexistent")
	root := filepath.Join(t.TempDir(), "T")

	_, err := New().
		RootFolder(root).
		AddCopiedFile("copy.txt", source).
		Create()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCopyFile)

	var terr *TreeError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, source, terr.Path, "copy failures are tagged with the source path")
	assert.Equal(t, "copy", terr.Op)

	assert.NoFileExists(t, filepath.Join(root, "copy.txt"))
}

func TestCopiedFileRelativeSourceRejected(t *testing.T) {
	root := filepath.Join(t.TempDir(), "T")

	_, err := New().
		RootFolder(root).
		AddCopiedFile("copy.txt", "relative/source.txt").
		Create()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCopyFile)
}

func TestEntryOutsideRootFailsWithoutArtifact(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "T")

	_, err := New().
		RootFolder(root).
		AddFile("../outside", "escape").
		Create()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEntryOutsideRoot)

	var terr *TreeError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "../outside", terr.Path)

	// Root creation already happened, but nothing escaped it.
	assert.DirExists(t, root)
	assert.NoFileExists(t, filepath.Join(parent, "outside"))
}

func TestEmptyEntryPathCarriesIndex(t *testing.T) {
	root := filepath.Join(t.TempDir(), "T")

	_, err := New().
		RootFolder(root).
		AddFile("ok.txt", "x").
		AddFile("", "bad").
		Create()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyEntryPath)

	var terr *TreeError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, 1, terr.Index)
}

func TestDuplicateEntryRejected(t *testing.T) {
	root := filepath.Join(t.TempDir(), "T")

	_, err := New().
		RootFolder(root).
		AddFile("foo.txt", "first").
		AddFile("foo.txt", "second").
		Create()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateEntry)
}

func TestDuplicateEntryNormalizedPaths(t *testing.T) {
	root := filepath.Join(t.TempDir(), "T")

	// Different spellings of the same resolved path still collide.
	_, err := New().
		RootFolder(root).
		AddFile("a/foo.txt", "first").
		AddFile("a/./b/../foo.txt", "second").
		Create()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateEntry)
}

func TestDuplicateEntryOverrideLastWins(t *testing.T) {
	root := filepath.Join(t.TempDir(), "T")

	tree, err := New().
		RootFolder(root).
		OverrideExisting(true).
		AddFile("foo.txt", "first").
		AddFile("foo.txt", "second").
		Create()
	require.NoError(t, err)
	defer tree.Close()

	data, err := os.ReadFile(filepath.Join(root, "foo.txt"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestExistingFileSkippedWithoutOverride(t *testing.T) {
	root := filepath.Join(t.TempDir(), "T")

	first, err := New().RootFolder(root).AddFile("foo.txt", "first").Create()
	require.NoError(t, err)
	defer first.Close()

	second, err := New().
		RootFolder(root).
		AutoDelete(false).
		AddFile("foo.txt", "second").
		Create()
	require.NoError(t, err)
	defer second.Close()

	data, err := os.ReadFile(filepath.Join(root, "foo.txt"))
	require.NoError(t, err)
	assert.Equal(t, "first", string(data), "existing content is left untouched")
}

func TestExistingFileOverwrittenWithOverride(t *testing.T) {
	root := filepath.Join(t.TempDir(), "T")

	first, err := New().RootFolder(root).AddFile("foo.txt", "first").Create()
	require.NoError(t, err)
	defer first.Close()

	second, err := New().
		RootFolder(root).
		AutoDelete(false).
		OverrideExisting(true).
		AddFile("foo.txt", "second").
		Create()
	require.NoError(t, err)
	defer second.Close()

	data, err := os.ReadFile(filepath.Join(root, "foo.txt"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestReadonlySettingStripsWriteBits(t *testing.T) {
	root := filepath.Join(t.TempDir(), "T")

	tree, err := New().
		RootFolder(root).
		AddReadonlyFile("secrets/api.key", "supersecretkey").
		Create()
	require.NoError(t, err)
	defer tree.Close()

	path := filepath.Join(root, "secrets", "api.key")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "supersecretkey", string(data), "content is written before the file goes readonly")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Mode().Perm()&0o222, "write bits must be stripped")
}

func TestReadonlyIgnoredForDirectories(t *testing.T) {
	root := filepath.Join(t.TempDir(), "T")

	tree, err := New().
		RootFolder(root).
		AddDirectoryWithSettings("data", Settings{Readonly: true}).
		AddFile("data/inside.txt", "still writable").
		Create()
	require.NoError(t, err)
	defer tree.Close()

	info, err := os.Stat(filepath.Join(root, "data"))
	require.NoError(t, err)
	assert.NotZero(t, info.Mode().Perm()&0o200, "directories never go readonly")
	assert.FileExists(t, filepath.Join(root, "data", "inside.txt"))
}

func TestMemoryBackend(t *testing.T) {
	mem := memfs.New()

	tree, err := New().
		Filesystem(mem).
		RootFolder("/fixture").
		AddDirectory("a/b").
		AddFile("a/b/c.txt", "hi").
		AddEmptyFile("a/d.txt").
		Create()
	require.NoError(t, err)
	assert.Equal(t, "/fixture", tree.Root())

	data, err := util.ReadFile(mem, "/fixture/a/b/c.txt")
	require.NoError(t, err)
	assert.Equal(t, "hi", string(data))

	info, err := mem.Stat("/fixture/a/d.txt")
	require.NoError(t, err)
	assert.Zero(t, info.Size())

	require.NoError(t, tree.Close())
	_, err = mem.Stat("/fixture")
	assert.Error(t, err, "auto-delete applies to the injected backend")
}

func TestMemoryBackendCopiedFile(t *testing.T) {
	mem := memfs.New()
	require.NoError(t, util.WriteFile(mem, "/srv/source.txt", []byte("from memfs"), 0o644))

	tree, err := New().
		Filesystem(mem).
		RootFolder("/fixture").
		AddCopiedFile("copy.txt", "/srv/source.txt").
		Create()
	require.NoError(t, err)
	defer tree.Close()

	data, err := util.ReadFile(mem, "/fixture/copy.txt")
	require.NoError(t, err)
	assert.Equal(t, "from memfs", string(data))
}

func TestReadonlyUnsupportedOnMemoryBackend(t *testing.T) {
	mem := memfs.New()

	_, err := New().
		Filesystem(mem).
		RootFolder("/fixture").
		AddReadonlyFile("api.key", "secret").
		Create()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReadonlyUnsupported)
}

func TestTreeErrorFormatting(t *testing.T) {
	err := &TreeError{Op: "copy", Path: "/nonexistent", Index: 2, Err: ErrCopyFile}
	assert.Equal(t, "copy /nonexistent: failed to copy source file", err.Error())
	assert.ErrorIs(t, err, ErrCopyFile)

	bare := &TreeError{Op: "decode", Index: -1, Err: ErrDecode}
	assert.Equal(t, "decode: failed to decode tree document", bare.Error())
}

func TestFailuresWrapSentinelAndCause(t *testing.T) {
	source := filepath.Join(t.TempDir(), "missing")
	_, err := New().
		RootFolder(filepath.Join(t.TempDir(), "T")).
		AddCopiedFile("copy.txt", source).
		Create()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCopyFile)
	assert.ErrorIs(t, err, os.ErrNotExist, "the underlying cause stays inspectable")
}
