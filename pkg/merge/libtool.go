// pkg/merge/libtool.go
package merge

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mediabuild/rtcpack/pkg/run"
)

// LibtoolMerger drives Apple libtool in static mode. The inputs are handed
// over through a response file so the argument list stays bounded. The
// response file is created with a unique name and left for the OS temp
// cleaner, matching the tool's short lifetime.
type LibtoolMerger struct {
	runner run.Runner
}

// Name returns the builder tool name
func (m *LibtoolMerger) Name() string {
	return "libtool"
}

// Merge writes the file list and runs libtool -static -filelist
func (m *LibtoolMerger) Merge(ctx context.Context, srcDir string, inputs []string, dest string) error {
	rsp, err := os.CreateTemp("", "rtcpack-*.rsp")
	if err != nil {
		return fmt.Errorf("creating response file: %w", err)
	}

	paths := make([]string, 0, len(inputs))
	for _, in := range inputs {
		paths = append(paths, filepath.Join(srcDir, in))
	}
	if _, err := rsp.WriteString(strings.Join(paths, "\n")); err != nil {
		rsp.Close()
		return fmt.Errorf("writing response file: %w", err)
	}
	if err := rsp.Close(); err != nil {
		return fmt.Errorf("closing response file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(dest), err)
	}

	return m.runner.Run(ctx, &run.Cmd{
		Path: "libtool",
		Args: []string{"-static", "-o", dest, "-filelist", rsp.Name()},
	})
}
