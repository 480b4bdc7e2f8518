// pkg/merge/msvc.go
package merge

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mediabuild/rtcpack/pkg/run"
)

// MSVCMerger drives the MSVC librarian directly with positional arguments.
// lib.exe accepts large argument lists, so no response file is needed for
// the bounded win32 input set.
type MSVCMerger struct {
	runner run.Runner
}

// Name returns the builder tool name
func (m *MSVCMerger) Name() string {
	return "lib.exe"
}

// Merge runs lib.exe /OUT:dest with every input as an argument
func (m *MSVCMerger) Merge(ctx context.Context, srcDir string, inputs []string, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(dest), err)
	}

	args := make([]string, 0, len(inputs)+1)
	args = append(args, "/OUT:"+dest)
	for _, in := range inputs {
		args = append(args, filepath.Join(srcDir, in))
	}

	return m.runner.Run(ctx, &run.Cmd{Path: "lib.exe", Args: args})
}
