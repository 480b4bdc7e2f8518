// pkg/run/runner.go
package run

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"strings"
)

// Cmd describes one external tool invocation
type Cmd struct {
	Path  string    // executable name, resolved on PATH
	Args  []string  // arguments, not including the executable
	Dir   string    // working directory, empty for the current one
	Stdin io.Reader // optional stdin, used for scripted tool sessions
}

func (c *Cmd) String() string {
	if len(c.Args) == 0 {
		return c.Path
	}
	return c.Path + " " + strings.Join(c.Args, " ")
}

// Runner executes external tools. The pipeline uses ExecRunner; tests
// substitute a recording fake so no tool is ever spawned.
type Runner interface {
	Run(ctx context.Context, cmd *Cmd) error
}

// ExternalError reports a failed external tool invocation. It is the only
// error the pipeline treats as fatal-by-policy; the top-level handler maps
// it to a non-zero process exit.
type ExternalError struct {
	Tool     string
	Args     []string
	ExitCode int // -1 when the tool could not be started
	Err      error
}

func (e *ExternalError) Error() string {
	if e.ExitCode >= 0 {
		return fmt.Sprintf("%s exited with status %d", e.Tool, e.ExitCode)
	}
	return fmt.Sprintf("%s: %v", e.Tool, e.Err)
}

func (e *ExternalError) Unwrap() error {
	return e.Err
}

// ExecRunner runs tools synchronously through os/exec, inheriting the
// parent's stdout and stderr so build output stays visible.
type ExecRunner struct {
	Logger *log.Logger
}

func (r *ExecRunner) Run(ctx context.Context, c *Cmd) error {
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdin = c.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if r.Logger != nil {
		r.Logger.Printf("exec: %s", c)
	}

	err := cmd.Run()
	if err == nil {
		return nil
	}

	code := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.ExitCode()
	}
	return &ExternalError{Tool: c.Path, Args: c.Args, ExitCode: code, Err: err}
}

// Available reports whether a tool can be found on PATH
func Available(tool string) bool {
	_, err := exec.LookPath(tool)
	return err == nil
}
