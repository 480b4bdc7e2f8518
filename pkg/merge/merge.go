// pkg/merge/merge.go
package merge

import (
	"context"

	"github.com/mediabuild/rtcpack/pkg/core"
	"github.com/mediabuild/rtcpack/pkg/run"
)

// Merger combines an ordered list of compiled object or library files into
// one consolidated static archive. Input order is recorded as given: no
// deduplication, no sorting. Callers own the ordering, which matters for
// symbol resolution in size-tiered linking.
type Merger interface {
	// Name returns the underlying tool's name, for logs
	Name() string

	// Merge writes the consolidated archive at dest from the inputs,
	// given relative to srcDir, creating dest's parent directories first.
	// A non-zero exit from the tool surfaces as *run.ExternalError.
	Merge(ctx context.Context, srcDir string, inputs []string, dest string) error
}

// ForPlatform selects the merge strategy for a target platform. Platforms
// without a known strategy get a nil Merger; the packager copies their
// libraries as-is instead of merging.
func ForPlatform(p core.Platform, runner run.Runner) Merger {
	switch p {
	case core.PlatformLinuxX64, core.PlatformAndroidARM:
		return &ARMerger{runner: runner}
	case core.PlatformOSX:
		return &LibtoolMerger{runner: runner}
	case core.PlatformWin32:
		return &MSVCMerger{runner: runner}
	default:
		return nil
	}
}
