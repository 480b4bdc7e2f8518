// pkg/ninja/extractor.go
package ninja

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/mediabuild/rtcpack/pkg/core"
)

// libraryExtensions are the filename suffixes treated as linkable libraries
// when scanning descriptor tokens.
var libraryExtensions = []string{".lib", ".dll", ".a", ".so"}

var (
	definesLine = regexp.MustCompile(`^\s*defines\s*=\s*(.*)`)
	defineName  = regexp.MustCompile(`^-D(\w+)`)
)

// Extractor recovers the linked-library list and the active preprocessor
// defines from one generated ninja build file, then cross-references the
// defines against the source tree to keep only those actually mentioned
// somewhere in it.
type Extractor struct {
	SourceDir     string // checkout root containing src/
	BuildDir      string
	Platform      core.Platform
	Configuration core.Configuration
	Product       string // names the emitted manifest variables
	Logger        *log.Logger
}

// DescriptorPath locates the generated build file to inspect. The file
// differs by platform, and the Release output is inspected when packaging
// both configurations.
func (e *Extractor) DescriptorPath() string {
	rel := filepath.Join("obj", "webrtc", "examples", "peerconnection_client.ninja")
	if e.Platform == core.PlatformOSX {
		rel = filepath.Join("obj", "webrtc", "webrtc_common.ninja")
	}

	configuration := e.Configuration
	if !configuration.Single() {
		configuration = core.ConfigurationRelease
	}
	return filepath.Join(e.BuildDir, string(configuration), rel)
}

// Extract parses the descriptor and produces the manifest. mergedLibrary,
// when non-empty, replaces the raw library list in the manifest since the
// per-object libraries were consolidated into it. A missing descriptor file
// is a fatal error: it means the build never ran.
func (e *Extractor) Extract(mergedLibrary string) (*Manifest, error) {
	path := e.DescriptorPath()
	if e.Logger != nil {
		e.Logger.Printf("reading build descriptor %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading build descriptor: %w", err)
	}
	lines := strings.Split(string(data), "\n")

	// Library names come from the raw physical lines on purpose: tokens
	// inside wrapped ldflags still end in a library extension there.
	libs := extractLibraries(lines)
	defines := extractDefines(JoinContinuations(lines))

	used, unused := e.filterDefines(defines)

	return &Manifest{
		Product:       e.Product,
		Libraries:     libs,
		MergedLibrary: mergedLibrary,
		UsedDefines:   used,
		UnusedDefines: unused,
	}, nil
}

// JoinContinuations reassembles logical lines from physical ones: a line
// ending in the ninja continuation marker $ is joined with every following
// line up to and including the first that does not end in the marker.
func JoinContinuations(lines []string) []string {
	var logical []string
	acc := ""
	mergeNext := false

	for _, line := range lines {
		trimmed := strings.TrimSuffix(line, "$")
		if mergeNext {
			acc += trimmed
		} else {
			logical = append(logical, acc)
			acc = trimmed
		}
		mergeNext = strings.HasSuffix(line, "$")
	}
	return append(logical, acc)
}

// extractLibraries collects every whitespace token ending in a library
// extension, in first-seen order.
func extractLibraries(lines []string) []string {
	seen := make(map[string]bool)
	var libs []string

	for _, line := range lines {
		for _, token := range strings.Fields(line) {
			for _, ext := range libraryExtensions {
				if strings.HasSuffix(token, ext) {
					if !seen[token] {
						seen[token] = true
						libs = append(libs, token)
					}
					break
				}
			}
		}
	}
	return libs
}

// extractDefines collects the tokens of every "defines = ..." logical line,
// in first-seen order.
func extractDefines(logical []string) []string {
	seen := make(map[string]bool)
	var defines []string

	for _, line := range logical {
		m := definesLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		for _, token := range strings.Split(m[1], " ") {
			if strings.TrimSpace(token) == "" {
				continue
			}
			if !seen[token] {
				seen[token] = true
				defines = append(defines, token)
			}
		}
	}
	return defines
}

// filterDefines splits the candidates into used and unused by scanning the
// dependency tree then the library tree for each candidate's bare name.
// Presence in any single file counts as use and ends the search for that
// candidate. This is a deliberate approximation, not reference counting.
func (e *Extractor) filterDefines(defines []string) (used, unused []string) {
	remaining := make(map[string]string, len(defines))
	var order []string
	for _, d := range defines {
		name := bareName(d)
		if _, ok := remaining[name]; !ok {
			order = append(order, name)
		}
		remaining[name] = d
	}

	usedByName := make(map[string]string)
	srcDir := filepath.Join(e.SourceDir, "src")
	markUsed(filepath.Join(srcDir, "third_party"), remaining, usedByName)
	markUsed(filepath.Join(srcDir, "webrtc"), remaining, usedByName)

	for _, name := range order {
		if d, ok := usedByName[name]; ok {
			used = append(used, d)
		} else {
			unused = append(unused, remaining[name])
		}
	}
	return used, unused
}

// bareName strips the -D prefix and any =value suffix from a define token.
// Tokens without the prefix pass through unchanged.
func bareName(define string) string {
	if m := defineName.FindStringSubmatch(define); m != nil {
		return m[1]
	}
	return define
}

// markUsed walks dir, reading every file's full content and moving any
// still-sought define whose bare name appears in it from tofind to used.
// Unreadable files are skipped.
func markUsed(dir string, tofind, used map[string]string) {
	filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if len(tofind) == 0 {
			return filepath.SkipAll
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		content := string(data)

		for name, define := range tofind {
			if strings.Contains(content, name) {
				used[name] = define
				delete(tofind, name)
			}
		}
		return nil
	})
}
