// pkg/core/platform.go
package core

import (
	"fmt"
	"runtime"
)

// Platform identifies the target operating system and architecture the
// library is packaged for. The set is open ended: callers may pass values
// outside the known constants and the packager falls back to a plain
// library copy for them.
type Platform string

const (
	// PlatformLinuxX64 targets 64-bit desktop Linux
	PlatformLinuxX64 Platform = "linux-x64"
	// PlatformWin32 targets 32-bit Windows
	PlatformWin32 Platform = "win32"
	// PlatformOSX targets macOS
	PlatformOSX Platform = "osx"
	// PlatformAndroidARM targets Android armeabi-v7a
	PlatformAndroidARM Platform = "linux-android-armeabi-v7a"
)

// DefaultPlatform returns the platform matching the host OS, or "" when the
// host OS has no conventional target.
func DefaultPlatform() Platform {
	switch runtime.GOOS {
	case "linux":
		return PlatformLinuxX64
	case "windows":
		return PlatformWin32
	case "darwin":
		return PlatformOSX
	default:
		return ""
	}
}

// Configuration is the build variant being packaged
type Configuration string

const (
	// ConfigurationDebug packages an unoptimized build with assertions
	ConfigurationDebug Configuration = "Debug"
	// ConfigurationRelease packages an optimized build
	ConfigurationRelease Configuration = "Release"
	// ConfigurationBoth packages Debug and Release into one archive
	ConfigurationBoth Configuration = "Both"
)

// ParseConfiguration validates a configuration name from the command line
func ParseConfiguration(s string) (Configuration, error) {
	switch Configuration(s) {
	case ConfigurationDebug, ConfigurationRelease, ConfigurationBoth:
		return Configuration(s), nil
	}
	return "", fmt.Errorf("unknown configuration %q (expected Debug, Release or Both)", s)
}

// Single reports whether the configuration names exactly one build variant
func (c Configuration) Single() bool {
	return c == ConfigurationDebug || c == ConfigurationRelease
}
