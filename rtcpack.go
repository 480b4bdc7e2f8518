// rtcpack.go
package rtcpack

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/mediabuild/rtcpack/pkg/core"
	"github.com/mediabuild/rtcpack/pkg/gnbuild"
	"github.com/mediabuild/rtcpack/pkg/merge"
	"github.com/mediabuild/rtcpack/pkg/ninja"
	"github.com/mediabuild/rtcpack/pkg/pack"
	"github.com/mediabuild/rtcpack/pkg/run"
	"github.com/mediabuild/rtcpack/pkg/trim"
)

// Re-export the core types for convenience
type (
	Config        = core.Config
	Platform      = core.Platform
	Configuration = core.Configuration
)

// Pipeline sequences one packaging run: trim the vendored dependencies,
// drive the build for the requested configurations, assemble and archive
// the package, and extract the build-descriptor manifest. Every step is
// synchronous; the first failure stops the run.
type Pipeline struct {
	cfg    *core.Config
	runner run.Runner
	logger *log.Logger
}

// NewPipeline validates the configuration and wires the run. Passing a nil
// runner selects the real external-tool runner.
func NewPipeline(cfg *core.Config, runner run.Runner) (*Pipeline, error) {
	if cfg.Version == "" {
		return nil, ErrVersionRequired
	}
	if cfg.Platform == "" {
		return nil, ErrPlatformRequired
	}
	if _, err := core.ParseConfiguration(string(cfg.Configuration)); err != nil {
		return nil, err
	}

	logger := log.New(io.Discard, "", 0)
	if cfg.Debug {
		logger = log.New(os.Stderr, "[rtcpack] ", log.LstdFlags)
	}

	if runner == nil {
		runner = &run.ExecRunner{Logger: logger}
	}

	return &Pipeline{cfg: cfg, runner: runner, logger: logger}, nil
}

// Run executes the full sequence and returns the extracted manifest. The
// caller decides where the manifest is written; the conventional consumer
// reads it from stdout.
func (p *Pipeline) Run(ctx context.Context) (*ninja.Manifest, error) {
	cfg := p.cfg

	p.logger.Printf("source_dir=%s build_dir=%s version=%s platform=%s configuration=%s",
		cfg.SourceDir, cfg.BuildDir, cfg.Version, cfg.Platform, cfg.Configuration)

	trimmer := &trim.Trimmer{
		Root:     cfg.SrcDir(),
		Platform: cfg.Platform,
		Extra:    cfg.ExtraTrimLibs,
		Logger:   p.logger,
	}
	if err := trimmer.Trim(); err != nil {
		return nil, err
	}

	driver := &gnbuild.Driver{
		SourceDir: cfg.SourceDir,
		BuildDir:  cfg.BuildDir,
		Platform:  cfg.Platform,
		Jobs:      cfg.Jobs,
		ExtraArgs: cfg.ExtraGNArgs,
		Runner:    p.runner,
		Logger:    p.logger,
	}
	if cfg.Configuration.Single() {
		if err := driver.Build(ctx, cfg.Configuration); err != nil {
			return nil, err
		}
	} else {
		if err := driver.Build(ctx, core.ConfigurationDebug); err != nil {
			return nil, err
		}
		if err := driver.Build(ctx, core.ConfigurationRelease); err != nil {
			return nil, err
		}
	}

	packager := &pack.Packager{
		Config:       cfg,
		Merger:       merge.ForPlatform(cfg.Platform, p.runner),
		Runner:       p.runner,
		Logger:       p.logger,
		UseSystemTar: cfg.SystemTar,
	}
	archive, err := packager.BuildPackage(ctx)
	if err != nil {
		return nil, err
	}
	p.logger.Printf("archive: %s", archive)

	extractor := &ninja.Extractor{
		SourceDir:     cfg.SourceDir,
		BuildDir:      cfg.BuildDir,
		Platform:      cfg.Platform,
		Configuration: cfg.Configuration,
		Product:       cfg.Product,
		Logger:        p.logger,
	}
	return extractor.Extract(packager.MergedLibrary())
}
