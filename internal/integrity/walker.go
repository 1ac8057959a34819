// Package integrity implements the scan engine: the filesystem walker, the
// keyed content hash, the fingerprint database, and the builder, comparator,
// and printer that operate on it.
package integrity

import (
	"os"
	"path/filepath"
)

// Visitor receives one event per visited path. The walker classifies every
// entry as exactly one of ignored, symlink, regular file, empty directory,
// or unreadable; non-empty directories produce no event of their own.
type Visitor interface {
	File(path string)
	Symlink(path string)
	EmptyDir(path string)
	Skip(path string)
	DirError(path string, err error)
}

// Walk traverses root depth-first using an explicit LIFO stack, so deep
// trees cannot exhaust the program stack. Symlinks are classified with Lstat
// and never dereferenced or recursed into. Per-entry errors are reported to
// the visitor and never abort the walk. Child visitation order within a
// directory is whatever the OS iterator yields.
func Walk(root string, ignores map[string]struct{}, v Visitor) {
	stack := []string{root}

	for len(stack) > 0 {
		path := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, ok := ignores[path]; ok {
			v.Skip(path)
			continue
		}

		info, err := os.Lstat(path)
		if err != nil {
			v.DirError(path, err)
			continue
		}

		if info.Mode()&os.ModeSymlink != 0 {
			v.Symlink(path)
			continue
		}
		if info.Mode().IsRegular() {
			v.File(path)
			continue
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			v.DirError(path, err)
			continue
		}
		if len(entries) == 0 {
			v.EmptyDir(path)
			continue
		}
		for _, ent := range entries {
			stack = append(stack, filepath.Join(path, ent.Name()))
		}
	}
}
