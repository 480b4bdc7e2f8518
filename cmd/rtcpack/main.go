// cmd/rtcpack/main.go
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mediabuild/rtcpack/internal/cli"
	"github.com/mediabuild/rtcpack/pkg/run"
)

func main() {
	if err := cli.Execute(); err != nil {
		var external *run.ExternalError
		if errors.As(err, &external) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", external)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
