// internal/cli/root.go
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/mediabuild/rtcpack"
	"github.com/mediabuild/rtcpack/pkg/core"
)

var (
	cfgFile       string
	sourceDir     string
	buildDir      string
	version       string
	platform      string
	configuration string
	debug         bool
	config        *core.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "rtcpack",
	Short: "Build and package the WebRTC native library",
	Long: `rtcpack - WebRTC build and packaging driver

Trims the vendored third_party tree, drives the gn/ninja build, merges the
compiled libraries into one static archive per platform, packages headers
and licenses into a versioned tar.gz, and prints the library/define
manifest for the downstream CMake configuration.

Use the same version string for every platform of one release,
conventionally <date>_<source-revision>.`,
	SilenceUsage: true,
	RunE:         runRoot,
}

// Execute executes the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/rtcpack/config.yaml)")
	rootCmd.Flags().StringVar(&sourceDir, "source_dir", "", "location of the source checkout (containing 'src')")
	rootCmd.Flags().StringVar(&buildDir, "build_dir", "", "location of the build directory (containing 'Debug' and/or 'Release')")
	rootCmd.Flags().StringVar(&version, "version", "", "version label for the build, recommended format <date>_<revision>")
	rootCmd.Flags().StringVar(&platform, "platform", "", "platform to package for (linux-x64, win32, osx, ...; default derived from the host)")
	rootCmd.Flags().StringVarP(&configuration, "configuration", "c", "", "configuration to package (Debug, Release, or Both)")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.MarkFlagRequired("version")

	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	var err error
	config, err = core.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		config = core.DefaultConfig()
	}

	// Override config with flags
	if sourceDir != "" {
		config.SourceDir = sourceDir
	}
	if buildDir != "" {
		config.BuildDir = buildDir
	}
	if version != "" {
		config.Version = version
	}
	if platform != "" {
		config.Platform = core.Platform(platform)
	}
	if configuration != "" {
		config.Configuration = core.Configuration(configuration)
	}
	if debug {
		config.Debug = true
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	pipeline, err := rtcpack.NewPipeline(config, nil)
	if err != nil {
		return err
	}

	color.Info.Printf("Packaging %s %s (%s) from %s\n",
		config.Product, config.Version, config.Configuration, config.SourceDir)

	manifest, err := pipeline.Run(cmd.Context())
	if err != nil {
		return err
	}

	if err := manifest.WriteCMake(os.Stdout); err != nil {
		return err
	}

	if len(manifest.UnusedDefines) > 0 {
		color.Warn.Printf("Unused defines: %s\n", strings.Join(manifest.UnusedDefines, " "))
	}

	color.Success.Printf("✓ Package complete: %s %s (%s)\n",
		config.Product, config.Version, config.Platform)
	return nil
}
