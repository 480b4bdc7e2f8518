// pkg/merge/ar.go
package merge

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mediabuild/rtcpack/pkg/run"
)

// ARMerger drives a scripted GNU ar session: create the destination, add
// each member in list order, save, end. The script form produces a full
// archive even when the inputs are thin archives.
type ARMerger struct {
	runner run.Runner
}

// Name returns the builder tool name
func (m *ARMerger) Name() string {
	return "ar"
}

// Merge runs ar -M with the member script on stdin
func (m *ARMerger) Merge(ctx context.Context, srcDir string, inputs []string, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(dest), err)
	}

	var script bytes.Buffer
	fmt.Fprintf(&script, "create %s\n", dest)
	for _, in := range inputs {
		fmt.Fprintf(&script, "addmod %s\n", filepath.Join(srcDir, in))
	}
	script.WriteString("save\nend\n")

	return m.runner.Run(ctx, &run.Cmd{
		Path:  "ar",
		Args:  []string{"-M"},
		Stdin: &script,
	})
}
