// Package treefs materializes declared directory/file trees on disk,
// typically as test fixtures, and guarantees scoped cleanup of what it
// created.
//
// A tree is described either through the fluent Builder API or through a
// YAML document, and is created under a root directory (by default a
// freshly generated path under the system temp directory). The returned
// Tree handle owns the root: closing the handle deletes the whole subtree
// exactly once, unless auto-delete was disabled.
//
// Usage:
//
//	tree, err := treefs.New().
//		AddFile("config/app.conf", "host = localhost").
//		AddEmptyFile("logs/app.log").
//		AddDirectory("data/raw").
//		Create()
//	if err != nil {
//		return err
//	}
//	defer tree.Close()
//
//	// tree.Root() is the directory everything was created under.
//
// The same tree from a YAML document:
//
//	tree, err := treefs.FromYAMLString(`
//	entries:
//	  - path: config/app.conf
//	    type: text_file
//	    content: "host = localhost"
//	  - path: logs/app.log
//	    type: empty_file
//	  - path: data/raw
//	    type: directory
//	`)
//
// # Filesystem Backends
//
// Materialization goes through a billy.Filesystem. The default backend is
// the local filesystem (osfs); an in-memory backend (memfs) can be injected
// for tests via Builder.Filesystem:
//
//	mem := memfs.New()
//	tree, err := treefs.New().
//		Filesystem(mem).
//		RootFolder("/fixture").
//		AddFile("a.txt", "hello").
//		Create()
//
// # Path Containment
//
// Every entry path is resolved against the root and lexically verified to
// stay inside it. The check does not consult the filesystem, so it rejects
// declared escapes (e.g. "../outside") but not escapes introduced by a
// symlinked ancestor already on disk.
//
// # Cleanup
//
// Tree.Close is safe to call more than once and never returns a deletion
// failure: fixture teardown must not overshadow the outcome of whatever
// used the tree. Failures are logged at debug level instead.
package treefs
