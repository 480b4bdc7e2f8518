// pkg/trim/trimmer.go
package trim

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/mediabuild/rtcpack/pkg/core"
)

// baseLibs is the dependency allow-list every platform keeps
var baseLibs = []string{
	"boringssl",
	"expat",
	"gflags",
	"jsoncpp",
	"libjpeg_turbo",
	"libsrtp",
	"libvpx",
	"libyuv",
	"opus",
	"protobuf",
	"usrsctp",
	"yasm",
}

// buildFile must always survive the trim or gn cannot resolve the tree
const buildFile = "BUILD.gn"

// Trimmer reduces the vendored third_party tree under Root to the
// platform's allow-list. Interruptions are recoverable: the tree moves
// through third_party.old / third_party.new / third_party states such that
// re-running always converges (see Trim). third_party.old is never removed
// automatically; it is the manual-recovery safety net.
type Trimmer struct {
	Root     string // directory containing third_party, normally <source>/src
	Platform core.Platform
	Extra    []string // config-supplied additions to the allow-list
	Logger   *log.Logger
}

// AllowList returns the entries kept for the target platform
func (t *Trimmer) AllowList() []string {
	libs := append([]string(nil), baseLibs...)
	switch t.Platform {
	case core.PlatformOSX:
		libs = append(libs, "llvm-build", "openmax_dl", "ocmock")
	case core.PlatformWin32:
		libs = append(libs, "winsdk_samples")
	}
	return append(libs, t.Extra...)
}

// Trim applies the allow-list. The two steps are ordered so that any
// interruption is safe to resume:
//
//   - no .old and third_party present: fresh run, or a previous run died
//     while copying into .new. Wipe .new, rebuild it from the allow-list,
//     then rename third_party to .old.
//   - .new present (checked unconditionally after the above): the copy
//     completed; rename .new into place. Idempotent on re-run.
func (t *Trimmer) Trim() error {
	dir := filepath.Join(t.Root, "third_party")
	oldDir := dir + ".old"
	newDir := dir + ".new"

	if !isDir(oldDir) && isDir(dir) {
		if err := os.RemoveAll(newDir); err != nil {
			return fmt.Errorf("clearing %s: %w", newDir, err)
		}
		if err := os.MkdirAll(newDir, 0o755); err != nil {
			return err
		}

		if err := copyEntry(filepath.Join(dir, buildFile), newDir); err != nil {
			return fmt.Errorf("copying %s: %w", buildFile, err)
		}
		for _, lib := range t.AllowList() {
			if t.Logger != nil {
				t.Logger.Printf("keeping third_party/%s", lib)
			}
			if err := copyEntry(filepath.Join(dir, lib), newDir); err != nil {
				return fmt.Errorf("copying third_party/%s: %w", lib, err)
			}
		}

		if err := os.Rename(dir, oldDir); err != nil {
			return err
		}
	}

	if isDir(newDir) {
		if err := os.Rename(newDir, dir); err != nil {
			return err
		}
	}
	return nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// copyEntry copies a file or directory tree into destDir under its base
// name. Symlinks are recreated as links rather than followed.
func copyEntry(src, destDir string) error {
	return copyPath(src, filepath.Join(destDir, filepath.Base(src)))
}

func copyPath(src, dest string) error {
	info, err := os.Lstat(src)
	if err != nil {
		return err
	}

	switch {
	case info.Mode()&os.ModeSymlink != 0:
		target, err := os.Readlink(src)
		if err != nil {
			return err
		}
		return os.Symlink(target, dest)

	case info.IsDir():
		if err := os.MkdirAll(dest, info.Mode().Perm()); err != nil {
			return err
		}
		entries, err := os.ReadDir(src)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			if err := copyPath(filepath.Join(src, entry.Name()), filepath.Join(dest, entry.Name())); err != nil {
				return err
			}
		}
		return nil

	default:
		return copyRegular(src, dest, info.Mode().Perm())
	}
}

func copyRegular(src, dest string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
