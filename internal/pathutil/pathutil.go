// Package pathutil resolves entry paths against a tree root and enforces
// path containment.
package pathutil

import (
	"errors"
	"path/filepath"
	"strings"
)

var (
	// ErrEmptyPath is returned when an entry path is empty.
	ErrEmptyPath = errors.New("entry path is empty")

	// ErrOutsideRoot is returned when an entry path resolves outside the
	// tree root after lexical normalization.
	ErrOutsideRoot = errors.New("entry path escapes the root directory")
)

// Resolve joins root and rel, lexically cleans the result, and verifies
// that it remains a strict descendant of root.
//
// An absolute rel is accepted only when it already lies under root. The
// check never touches the filesystem: it rejects declared escapes such as
// "../outside" but not escapes introduced by a symlinked ancestor that is
// already on disk.
func Resolve(root, rel string) (string, error) {
	if strings.TrimSpace(rel) == "" {
		return "", ErrEmptyPath
	}

	cleanRoot := filepath.Clean(root)

	var resolved string
	if filepath.IsAbs(rel) {
		resolved = filepath.Clean(rel)
	} else {
		// Join cleans the result, collapsing "." and "..".
		resolved = filepath.Join(cleanRoot, rel)
	}

	if !descends(cleanRoot, resolved) {
		return "", ErrOutsideRoot
	}
	return resolved, nil
}

// descends reports whether path is a strict descendant of root. The root
// itself does not count: an entry may never name its own root or an
// ancestor of it.
func descends(root, path string) bool {
	if path == root {
		return false
	}
	return strings.HasPrefix(path, root+string(filepath.Separator))
}
