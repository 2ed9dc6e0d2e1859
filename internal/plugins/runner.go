package plugins

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// CommandRunner executes the external tools an installation step needs
// (pip, build scripts). Implementations are expected to surface the
// tool's own output so build logs carry the underlying error text.
type CommandRunner interface {
	Run(ctx context.Context, dir string, name string, args ...string) error
}

// OSRunner runs commands on the host, streaming output to the configured
// writers.
type OSRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// NewOSRunner creates a runner wired to the process's stdout and stderr.
func NewOSRunner() *OSRunner {
	return &OSRunner{Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run executes name with args in dir and waits for it to finish.
func (r *OSRunner) Run(ctx context.Context, dir string, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	cmd.Env = os.Environ()

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return nil
}

var _ CommandRunner = (*OSRunner)(nil)
