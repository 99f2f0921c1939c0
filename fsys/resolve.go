package fsys

import (
	"strings"
)

// Resolve walks an absolute path starting from startIno (typically 0,
// the root) and returns the terminal inode number. Mirrors rufs.c's
// get_node_by_path, restructured as an idiomatic segment loop instead
// of C's pointer-arithmetic recursion.
//
// Empty segments from duplicated separators and "." segments resolve
// as ordinary dir_find lookups (the root's own "." entry makes the equivalence hold for
// intermediate components), per spec.md §4.7.
func (m *Mount) Resolve(path string, startIno uint32) (uint32, error) {
	if path == "/" || path == "" {
		return startIno, nil
	}

	segments := strings.Split(strings.TrimPrefix(path, "/"), "/")
	cur := startIno
	for _, seg := range segments {
		d, err := m.DirFind(cur, seg)
		if err != nil {
			return 0, err
		}
		cur = d.Ino
	}
	return cur, nil
}

// SplitPath divides an absolute path into its parent directory path
// and final component, the split mkdir/create need before resolving
// the parent and adding the new entry.
func SplitPath(p string) (dir, base string) {
	p = strings.TrimSuffix(p, "/")
	idx := strings.LastIndex(p, "/")
	if idx <= 0 {
		return "/", p[idx+1:]
	}
	return p[:idx], p[idx+1:]
}
