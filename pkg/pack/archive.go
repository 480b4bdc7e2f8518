// pkg/pack/archive.go
package pack

import (
	"archive/tar"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/pgzip"
	"github.com/ulikunitz/xz"

	"github.com/mediabuild/rtcpack/pkg/run"
)

// writeArchive produces <product>-<versionName>-<platform>.tar.gz (or
// .tar.xz) in the build root, rooted at the package directory name, then
// writes the checksum sidecar. Gzip archives go through the host tar tool
// when available, falling back to the in-process writer.
func (p *Packager) writeArchive(ctx context.Context, versionName string) (string, error) {
	cfg := p.Config

	ext := "tar.gz"
	if cfg.Compression == "xz" {
		ext = "tar.xz"
	}
	name := fmt.Sprintf("%s-%s-%s.%s", cfg.Product, versionName, cfg.Platform, ext)
	archivePath := filepath.Join(cfg.BuildDir, name)

	if p.Logger != nil {
		p.Logger.Printf("archiving %s", name)
	}

	var err error
	switch {
	case cfg.Compression == "xz":
		err = p.writeTarball(archivePath, versionName, newXZWriter)
	case p.UseSystemTar && run.Available("tar"):
		err = p.Runner.Run(ctx, &run.Cmd{
			Path: "tar",
			Args: []string{"-czf", name, versionName},
			Dir:  cfg.BuildDir,
		})
	default:
		err = p.writeTarball(archivePath, versionName, newGzipWriter)
	}
	if err != nil {
		return "", err
	}

	if err := writeChecksum(archivePath); err != nil {
		return "", err
	}
	return archivePath, nil
}

func newGzipWriter(w io.Writer) (io.WriteCloser, error) {
	return pgzip.NewWriter(w), nil
}

func newXZWriter(w io.Writer) (io.WriteCloser, error) {
	return xz.NewWriter(w)
}

// writeTarball is the in-process archiver: it walks the package directory
// under the build root and stores every entry as <topDir>/<rel>.
func (p *Packager) writeTarball(dest, topDir string, compress func(io.Writer) (io.WriteCloser, error)) error {
	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating archive: %w", err)
	}
	defer out.Close()

	zw, err := compress(out)
	if err != nil {
		return fmt.Errorf("creating compressor: %w", err)
	}

	tw := tar.NewWriter(zw)
	root := filepath.Join(p.Config.BuildDir, topDir)

	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		var linkTarget string
		if info.Mode()&os.ModeSymlink != 0 {
			if linkTarget, err = os.Readlink(path); err != nil {
				return fmt.Errorf("readlink %s: %w", path, err)
			}
		}

		hdr, err := tar.FileInfoHeader(info, linkTarget)
		if err != nil {
			return err
		}
		hdr.Name = filepath.ToSlash(filepath.Join(topDir, rel))

		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		if _, err := io.Copy(tw, f); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	})
	if err != nil {
		return fmt.Errorf("writing archive: %w", err)
	}

	if err := tw.Close(); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return err
	}
	return out.Close()
}
