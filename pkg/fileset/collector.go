// pkg/fileset/collector.go
package fileset

import (
	"os"
	"path/filepath"
)

// Collect walks the tree under root, following symlinked directories, and
// returns every file whose name satisfies at least one matcher, as a path
// relative to root. Traversal order is the filesystem's; callers must treat
// the result as an unordered set. A missing root yields an empty result.
func Collect(root string, matchers ...Matcher) ([]string, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, nil
	}

	var files []string
	visited := make(map[string]bool)

	var walk func(dir string) error
	walk = func(dir string) error {
		// Guard against symlink cycles when following links
		if real, err := filepath.EvalSymlinks(dir); err == nil {
			if visited[real] {
				return nil
			}
			visited[real] = true
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			return err
		}

		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())

			isDir := entry.IsDir()
			if entry.Type()&os.ModeSymlink != 0 {
				if info, err := os.Stat(path); err == nil && info.IsDir() {
					isDir = true
				}
			}

			if isDir {
				if err := walk(path); err != nil {
					return err
				}
				continue
			}

			for _, m := range matchers {
				if m.Match(entry.Name()) {
					rel, err := filepath.Rel(root, path)
					if err != nil {
						return err
					}
					files = append(files, rel)
					break
				}
			}
		}
		return nil
	}

	if err := walk(root); err != nil {
		return nil, err
	}
	return files, nil
}
