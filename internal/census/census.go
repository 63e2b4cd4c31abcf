package census

import (
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"filerename/internal/faults"
	"filerename/internal/media"
)

// Census is a count of directories and per-extension files below a root. The
// root directory itself is not counted.
type Census struct {
	Directories int
	Extensions  map[string]int
}

// Take walks root and counts every directory and file beneath it. Extension
// keys are lower-cased; files without an extension are counted under "".
func Take(root string) (Census, error) {
	info, err := os.Stat(root)
	if err != nil {
		return Census{}, faults.Wrap(faults.ErrNotFound, "census", "stat root", root, err)
	}
	if !info.IsDir() {
		return Census{}, faults.Wrap(faults.ErrNotFound, "census", "stat root", root+" is not a directory", nil)
	}

	c := Census{Extensions: make(map[string]int)}
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if path == root {
			return nil
		}
		if d.IsDir() {
			c.Directories++
			return nil
		}
		c.Extensions[extensionKey(d.Name())]++
		return nil
	})
	if err != nil {
		return Census{}, fmt.Errorf("census %s: %w", root, err)
	}
	return c, nil
}

// Files returns the total number of files counted.
func (c Census) Files() int {
	total := 0
	for _, n := range c.Extensions {
		total += n
	}
	return total
}

// Keys returns the extension keys in sorted order.
func (c Census) Keys() []string {
	return slices.Sorted(maps.Keys(c.Extensions))
}

// Credit returns a copy of c with n additional files of extension ext. It is
// used to account for files the run creates intentionally.
func (c Census) Credit(ext string, n int) Census {
	out := Census{Directories: c.Directories, Extensions: maps.Clone(c.Extensions)}
	if out.Extensions == nil {
		out.Extensions = make(map[string]int)
	}
	if n != 0 {
		out.Extensions[media.NormalizeExt(ext)] += n
	}
	return out
}

// Equal reports whether two censuses have identical counts.
func (c Census) Equal(other Census) bool {
	if c.Directories != other.Directories {
		return false
	}
	for _, key := range mergedKeys(c, other) {
		if c.Extensions[key] != other.Extensions[key] {
			return false
		}
	}
	return true
}

// Compare fails with an integrity error when after lost files of any
// extension recorded in before, or when the directory count differs.
func Compare(before, after Census) error {
	var problems []string
	if before.Directories != after.Directories {
		problems = append(problems, fmt.Sprintf("directories %d -> %d", before.Directories, after.Directories))
	}
	for _, key := range before.Keys() {
		if after.Extensions[key] < before.Extensions[key] {
			problems = append(problems, fmt.Sprintf("%s files %d -> %d", displayKey(key), before.Extensions[key], after.Extensions[key]))
		}
	}
	if len(problems) == 0 {
		return nil
	}
	return faults.Wrap(faults.ErrIntegrity, "census", "compare", strings.Join(problems, "; "), nil)
}

func extensionKey(name string) string {
	ext := filepath.Ext(name)
	if ext == name {
		return ""
	}
	return strings.ToLower(ext)
}

func displayKey(key string) string {
	if key == "" {
		return "(no extension)"
	}
	return key
}

func mergedKeys(a, b Census) []string {
	keys := make(map[string]struct{}, len(a.Extensions)+len(b.Extensions))
	for k := range a.Extensions {
		keys[k] = struct{}{}
	}
	for k := range b.Extensions {
		keys[k] = struct{}{}
	}
	return slices.Sorted(maps.Keys(keys))
}
