package treefs

import (
	"log/slog"
	"sync"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// Tree is the handle to a materialized tree. It owns the root path and is
// the sole entity responsible for deleting it.
//
// A Tree is created only by a successful materialization. Callers should
// close it when the fixture is no longer needed, typically with defer:
//
//	tree, err := treefs.New().AddFile("a.txt", "hi").Create()
//	if err != nil {
//		return err
//	}
//	defer tree.Close()
type Tree struct {
	root       string
	autoDelete bool
	fsys       billy.Filesystem
	logger     *slog.Logger
	once       sync.Once
}

// Root returns the root directory the tree was created under. It is valid
// for the entire lifetime of the handle, including after Close.
func (t *Tree) Root() string {
	return t.root
}

// AutoDelete reports whether closing the handle deletes the tree.
func (t *Tree) AutoDelete() bool {
	return t.autoDelete
}

// Close deletes the root and everything under it when auto-delete is
// enabled. It always returns nil: cleanup must not mask the primary
// outcome of whatever used the tree, so deletion failures are logged at
// debug level and suppressed. Calling Close more than once is a no-op, and
// a root already removed by an external actor is tolerated.
func (t *Tree) Close() error {
	t.once.Do(func() {
		if !t.autoDelete {
			return
		}
		if err := util.RemoveAll(t.fsys, t.root); err != nil {
			t.logger.Debug("tree cleanup failed", "root", t.root, "error", err)
		}
	})
	return nil
}
