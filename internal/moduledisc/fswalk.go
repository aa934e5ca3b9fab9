package moduledisc

import (
	"io/fs"
	"path/filepath"
)

// FSLister walks the real filesystem with filepath.WalkDir, grounded on
// the teacher's own directory-walking module loader.
type FSLister struct{}

// ListFiles returns every regular file under root, relative to root and
// slash-separated.
func (FSLister) ListFiles(root string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
