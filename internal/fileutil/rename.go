package fileutil

import (
	"io/fs"
	"os"
)

// renameChecked is the portable fallback: a stat followed by a rename. It is
// not atomic with respect to concurrent writers.
func renameChecked(src, dst string) error {
	exists, err := Exists(dst)
	if err != nil {
		return err
	}
	if exists {
		return &os.LinkError{Op: "rename", Old: src, New: dst, Err: fs.ErrExist}
	}
	return os.Rename(src, dst)
}
