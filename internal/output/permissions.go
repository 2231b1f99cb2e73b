package output

import (
	"io/fs"
	"os"
	"path/filepath"
)

// ChmodTree applies mode to root and everything below it.
func ChmodTree(root string, mode os.FileMode) error {
	return filepath.WalkDir(root, func(path string, _ fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		return os.Chmod(path, mode)
	})
}
