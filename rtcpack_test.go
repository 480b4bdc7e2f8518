package rtcpack

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mediabuild/rtcpack/pkg/core"
	"github.com/mediabuild/rtcpack/pkg/run"
	"github.com/mediabuild/rtcpack/pkg/trim"
)

type recorder struct {
	cmds []*run.Cmd
}

func (r *recorder) Run(ctx context.Context, cmd *run.Cmd) error {
	r.cmds = append(r.cmds, cmd)
	return nil
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestNewPipelineValidation(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(*core.Config)
		wantErr error
	}{
		{
			name:    "missing version",
			mutate:  func(c *core.Config) { c.Version = "" },
			wantErr: ErrVersionRequired,
		},
		{
			name:    "missing platform",
			mutate:  func(c *core.Config) { c.Platform = "" },
			wantErr: ErrPlatformRequired,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := core.DefaultConfig()
			cfg.Version = "v"
			cfg.Platform = core.PlatformLinuxX64
			tc.mutate(cfg)

			_, err := NewPipeline(cfg, nil)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("NewPipeline error = %v, want %v", err, tc.wantErr)
			}
		})
	}

	cfg := core.DefaultConfig()
	cfg.Version = "v"
	cfg.Platform = core.PlatformLinuxX64
	cfg.Configuration = "Profile"
	if _, err := NewPipeline(cfg, nil); err == nil {
		t.Error("expected error for unknown configuration")
	}
}

// Full sequencing over a synthetic checkout: trim, build, package, extract.
// External tools are recorded, never run; the archive is written by the
// in-process writer.
func TestPipelineRun(t *testing.T) {
	sourceDir := t.TempDir()
	buildDir := t.TempDir()

	// A third_party tree carrying the whole linux allow-list plus junk
	tp := filepath.Join(sourceDir, "src", "third_party")
	allowed := (&trim.Trimmer{Platform: core.PlatformLinuxX64}).AllowList()
	for _, lib := range append(allowed, "junk_tool") {
		writeFile(t, filepath.Join(tp, lib, "README"), lib)
	}
	writeFile(t, filepath.Join(tp, "BUILD.gn"), "gn")
	writeFile(t, filepath.Join(sourceDir, "src", "webrtc", "base.cc"), "mentions FOO\n")

	// Build output as ninja would have left it
	out := filepath.Join(buildDir, "Release")
	writeFile(t, filepath.Join(out, "a.o"), "a")
	writeFile(t, filepath.Join(out, "examples", "c.o"), "c")
	writeFile(t, filepath.Join(out,
		"obj", "webrtc", "examples", "peerconnection_client.ninja"),
		"  defines = -DFOO -DGONE\nbuild x: link something.a\n")

	cfg := core.DefaultConfig()
	cfg.SourceDir = sourceDir
	cfg.BuildDir = buildDir
	cfg.Version = "v1"
	cfg.Platform = core.PlatformLinuxX64
	cfg.Configuration = core.ConfigurationRelease
	cfg.SystemTar = false

	rec := &recorder{}
	pipeline, err := NewPipeline(cfg, rec)
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}

	manifest, err := pipeline.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// gn gen, ninja, then ar for the merge
	wantTools := []string{"gn", "ninja", "ar"}
	if len(rec.cmds) != len(wantTools) {
		t.Fatalf("recorded %d invocations (%v), want %v", len(rec.cmds), rec.cmds, wantTools)
	}
	for i, tool := range wantTools {
		if rec.cmds[i].Path != tool {
			t.Errorf("invocation %d = %q, want %q", i, rec.cmds[i].Path, tool)
		}
	}

	// third_party was trimmed
	if _, err := os.Stat(filepath.Join(tp, "junk_tool")); !os.IsNotExist(err) {
		t.Error("junk_tool survived the trim")
	}
	if _, err := os.Stat(tp + ".old"); err != nil {
		t.Errorf("third_party.old missing: %v", err)
	}

	if manifest.MergedLibrary != "webrtc_all.a" {
		t.Errorf("MergedLibrary = %q", manifest.MergedLibrary)
	}
	if len(manifest.UsedDefines) != 1 || manifest.UsedDefines[0] != "-DFOO" {
		t.Errorf("UsedDefines = %v, want [-DFOO]", manifest.UsedDefines)
	}
	if len(manifest.UnusedDefines) != 1 || manifest.UnusedDefines[0] != "-DGONE" {
		t.Errorf("UnusedDefines = %v, want [-DGONE]", manifest.UnusedDefines)
	}

	archive := filepath.Join(buildDir, "webrtc-v1-Release-linux-x64.tar.gz")
	if _, err := os.Stat(archive); err != nil {
		t.Errorf("archive missing: %v", err)
	}
}
