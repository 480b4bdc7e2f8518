// pkg/ninja/manifest.go
package ninja

import (
	"fmt"
	"io"
)

// Manifest is the declarative library/define listing consumed by the
// downstream build configuration. It is emitted once per run and never
// persisted by this tool.
type Manifest struct {
	Product       string   // variable prefix, e.g. "webrtc"
	Libraries     []string // raw library tokens, first-seen order
	MergedLibrary string   // consolidated archive name, when one was built
	UsedDefines   []string // full -D... strings referenced by the source tree
	UnusedDefines []string // candidates with no reference, diagnostics only
}

// WriteCMake emits the manifest in the key/value-list syntax the downstream
// CMake configuration includes directly. The merged library, when present,
// stands in for the full raw library set.
func (m *Manifest) WriteCMake(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "set(%s_LIBS\n", m.Product); err != nil {
		return err
	}
	if m.MergedLibrary != "" {
		fmt.Fprintf(w, "  %s\n", m.MergedLibrary)
	} else {
		for _, lib := range m.Libraries {
			fmt.Fprintf(w, "  %s\n", lib)
		}
	}
	fmt.Fprintln(w, ")")

	fmt.Fprintf(w, "set(%s_DEFS\n", m.Product)
	for _, d := range m.UsedDefines {
		fmt.Fprintf(w, "  %s\n", d)
	}
	_, err := fmt.Fprintln(w, ")")
	return err
}
