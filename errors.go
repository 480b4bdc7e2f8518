// errors.go
package rtcpack

import "errors"

var (
	// ErrVersionRequired indicates the version label was not supplied
	ErrVersionRequired = errors.New("version is required")

	// ErrPlatformRequired indicates no platform was given and the host
	// OS has no conventional default
	ErrPlatformRequired = errors.New("platform is required")
)
