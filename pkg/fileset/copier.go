// pkg/fileset/copier.go
package fileset

import (
	"io"
	"log"
	"os"
	"path/filepath"
)

// CopyAll copies the given root-relative paths from srcRoot into dstRoot,
// creating parent directories as needed. With keepSrcPath the relative path
// is preserved under dstRoot, otherwise only the base name is used. A file
// that cannot be copied (a dangling symlink alias, for example) is logged
// and skipped; packaging must not abort over a cosmetic support file.
// Returns the number of files actually copied.
func CopyAll(srcRoot, dstRoot string, files []string, keepSrcPath bool, logger *log.Logger) int {
	copied := 0
	for _, rel := range files {
		var dest string
		if keepSrcPath {
			dest = filepath.Join(dstRoot, rel)
		} else {
			dest = filepath.Join(dstRoot, filepath.Base(rel))
		}

		src := filepath.Join(srcRoot, rel)
		if err := copyFile(src, dest); err != nil {
			if logger != nil {
				logger.Printf("could not copy %q, skipping: %v", src, err)
			}
			continue
		}
		copied++
	}
	return copied
}

func copyFile(src, dest string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
