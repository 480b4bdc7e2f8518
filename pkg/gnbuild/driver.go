// pkg/gnbuild/driver.go
package gnbuild

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/mediabuild/rtcpack/pkg/core"
	"github.com/mediabuild/rtcpack/pkg/run"
)

// Driver invokes the build-file generator and the build executor for one
// configuration. Both invocations are hard synchronous barriers; a non-zero
// exit from either surfaces as *run.ExternalError and ends the run.
type Driver struct {
	SourceDir string        // checkout root containing src/
	BuildDir  string        // holds one output directory per configuration
	Platform  core.Platform // target platform, selects the feature-flag set
	Jobs      int           // ninja parallelism hint, 0 means the default
	ExtraArgs []string      // appended to the generated gn argument list
	Runner    run.Runner
	Logger    *log.Logger
}

const defaultJobs = 5

// GNArgs computes the feature-flag list handed to gn for a configuration.
// The osx family disables a few optional codecs and tools of its own; the
// linux/windows family uses the wider reduced set, with a target_cpu
// override on win32.
func (d *Driver) GNArgs(configuration core.Configuration) []string {
	args := []string{
		fmt.Sprintf("is_debug=%t", configuration == core.ConfigurationDebug),
		"rtc_include_tests=false",
		"use_rtti=true",
	}

	if d.Platform == core.PlatformOSX {
		args = append(args,
			"is_component_build=false",
			"libyuv_include_tests=false",
			"rtc_enable_protobuf=false",
		)
	} else {
		args = append(args,
			"rtc_enable_protobuf=false",
			"rtc_use_openmax_dl=false",
			"is_clang=false",
			"use_sysroot=false",
			"rtc_use_gtk=false",
		)
		if d.Platform == core.PlatformWin32 {
			args = append(args, `target_cpu="x86"`)
		}
	}

	return append(args, d.ExtraArgs...)
}

// Build generates build files for the configuration and compiles it
func (d *Driver) Build(ctx context.Context, configuration core.Configuration) error {
	outDir := filepath.Join(d.BuildDir, string(configuration))
	srcDir := filepath.Join(d.SourceDir, "src")

	if d.Logger != nil {
		d.Logger.Printf("generating %s build in %s", configuration, outDir)
	}

	gen := &run.Cmd{
		Path: "gn",
		Args: []string{"gen", outDir, "--args=" + strings.Join(d.GNArgs(configuration), " ")},
		Dir:  srcDir,
	}
	if err := d.Runner.Run(ctx, gen); err != nil {
		return err
	}

	jobs := d.Jobs
	if jobs <= 0 {
		jobs = defaultJobs
	}

	compile := &run.Cmd{
		Path: "ninja",
		Args: []string{fmt.Sprintf("-j%d", jobs), "-C", outDir},
		Dir:  srcDir,
	}
	return d.Runner.Run(ctx, compile)
}
