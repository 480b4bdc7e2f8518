// pkg/pack/checksum.go
package pack

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"lukechampine.com/blake3"
)

// writeChecksum writes a BLAKE3 sidecar next to the archive, in the
// two-column b3sum format, so uploads can be verified downstream.
func writeChecksum(archivePath string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return err
	}
	defer f.Close()

	h := blake3.New(32, nil)
	if _, err := io.Copy(h, f); err != nil {
		return fmt.Errorf("hashing %s: %w", archivePath, err)
	}

	line := fmt.Sprintf("%x  %s\n", h.Sum(nil), filepath.Base(archivePath))
	return os.WriteFile(archivePath+".b3", []byte(line), 0o644)
}
