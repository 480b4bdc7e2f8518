// pkg/pack/packager.go
package pack

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/mediabuild/rtcpack/pkg/core"
	"github.com/mediabuild/rtcpack/pkg/fileset"
	"github.com/mediabuild/rtcpack/pkg/merge"
	"github.com/mediabuild/rtcpack/pkg/run"
)

var dllPattern = regexp.MustCompile(`.*\.dll.*`)

// Packager assembles the package directory for one platform and one or
// both configurations, then produces the versioned compressed archive.
// It owns the merged static library name for the duration of one run.
type Packager struct {
	Config *core.Config
	Merger merge.Merger // nil for platforms that only copy libraries
	Runner run.Runner
	Logger *log.Logger

	// UseSystemTar prefers the host tar tool over the in-process writer
	// for gzip archives. xz archives are always written in-process.
	UseSystemTar bool

	mergedLibrary string
}

// MergedLibrary returns the consolidated archive name produced by the last
// BuildPackage call, or "" when the platform only copies libraries.
func (p *Packager) MergedLibrary() string {
	return p.mergedLibrary
}

// BuildPackage assembles the package directory and archives it, returning
// the archive path. Any stale package directory for the version is removed
// first; removing a nonexistent one is a no-op.
func (p *Packager) BuildPackage(ctx context.Context) (string, error) {
	cfg := p.Config

	versionName := cfg.Version
	if cfg.Configuration.Single() {
		versionName = cfg.Version + "-" + string(cfg.Configuration)
	}
	pkgDir := filepath.Join(cfg.BuildDir, versionName)

	if err := os.RemoveAll(pkgDir); err != nil {
		return "", fmt.Errorf("removing stale package dir: %w", err)
	}

	if cfg.Configuration.Single() {
		if err := p.stageLibs(ctx, cfg.Configuration, pkgDir, "lib"); err != nil {
			return "", err
		}
	} else {
		if err := p.stageLibs(ctx, core.ConfigurationRelease, pkgDir, "lib"); err != nil {
			return "", err
		}
		if err := p.stageLibs(ctx, core.ConfigurationDebug, pkgDir, "debug_lib"); err != nil {
			return "", err
		}
	}

	if err := p.stageSupport(pkgDir); err != nil {
		return "", err
	}

	return p.writeArchive(ctx, versionName)
}

// stageLibs merges and copies one configuration's build output into the
// package directory's library subtree.
func (p *Packager) stageLibs(ctx context.Context, configuration core.Configuration, pkgDir, libSubdir string) error {
	cfg := p.Config
	outDir := cfg.OutDir(configuration)
	libDir := filepath.Join(pkgDir, libSubdir)

	if p.Logger != nil {
		p.Logger.Printf("staging %s libraries from %s", configuration, outDir)
	}

	switch cfg.Platform {
	case core.PlatformLinuxX64, core.PlatformAndroidARM:
		if err := p.mergeInto(ctx, outDir, libDir, "webrtc_all.a", ".o", true); err != nil {
			return err
		}
		return p.copyLooseLibs(outDir, libDir, fileset.Suffix(".so"))

	case core.PlatformOSX:
		if err := p.mergeInto(ctx, outDir, libDir, "webrtc_all.a", ".o", true); err != nil {
			return err
		}
		return p.copyLooseLibs(outDir, libDir, fileset.Suffix(".dylib"))

	case core.PlatformWin32:
		if err := p.mergeInto(ctx, outDir, libDir, "webrtc_all.lib", ".lib", false); err != nil {
			return err
		}
		// .dll but also .dll.lib, .dll.pdb and friends
		return p.copyLooseLibs(outDir, libDir, fileset.Pattern(dllPattern), fileset.Suffix(".pdb"))

	default:
		libs, err := fileset.Collect(outDir,
			fileset.Suffix(".a"), fileset.Suffix(".so"), fileset.Suffix(".lib"), fileset.Suffix(".dll"))
		if err != nil {
			return err
		}
		fileset.CopyAll(outDir, libDir, libs, true, p.Logger)
		return nil
	}
}

// mergeInto collects the merge inputs and hands them to the platform
// merger. Inputs whose path contains an example marker are build products
// of sample programs and stay out of the consolidated library.
func (p *Packager) mergeInto(ctx context.Context, outDir, libDir, name, ext string, skipExamples bool) error {
	inputs, err := fileset.Collect(outDir, fileset.Suffix(ext))
	if err != nil {
		return err
	}
	if skipExamples {
		inputs = excludeExamples(inputs)
	}

	if p.Merger == nil {
		return fmt.Errorf("no merge strategy for platform %q", p.Config.Platform)
	}
	if p.Logger != nil {
		p.Logger.Printf("merging %d inputs into %s via %s", len(inputs), name, p.Merger.Name())
	}

	if err := p.Merger.Merge(ctx, outDir, inputs, filepath.Join(libDir, name)); err != nil {
		return err
	}
	p.mergedLibrary = name
	return nil
}

func (p *Packager) copyLooseLibs(outDir, libDir string, matchers ...fileset.Matcher) error {
	libs, err := fileset.Collect(outDir, matchers...)
	if err != nil {
		return err
	}
	fileset.CopyAll(outDir, libDir, libs, false, p.Logger)
	return nil
}

func excludeExamples(paths []string) []string {
	kept := paths[:0]
	for _, path := range paths {
		if !strings.Contains(path, "example") {
			kept = append(kept, path)
		}
	}
	return kept
}

// stageSupport gathers headers and license files from the library and
// dependency trees into include/ and licenses/ subtrees.
func (p *Packager) stageSupport(pkgDir string) error {
	cfg := p.Config

	for _, subdir := range []string{"webrtc", "third_party"} {
		src := filepath.Join(cfg.SrcDir(), subdir)

		headers, err := fileset.Collect(src,
			fileset.Suffix(".h"), fileset.Suffix(".hpp"), fileset.Suffix(".h.def"))
		if err != nil {
			return err
		}
		fileset.CopyAll(src, filepath.Join(pkgDir, "include", subdir), headers, true, p.Logger)

		licenses, err := fileset.Collect(src,
			fileset.Suffix("LICENSE"), fileset.Suffix("COPYING"),
			fileset.Suffix("LICENSE_THIRD_PARTY"), fileset.Suffix("PATENTS"))
		if err != nil {
			return err
		}
		fileset.CopyAll(src, filepath.Join(pkgDir, "licenses", subdir), licenses, true, p.Logger)
	}
	return nil
}
