package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"

	"disview/internal/config"
)

// disasmFlag requests a full disassembly of the executable sections.
const disasmFlag = "-d"

// InvocationError reports that the backend could not be started or run.
// After a successful probe this indicates environment drift (file deleted,
// backend uninstalled, permissions changed) and is surfaced to the user,
// unlike probe rejections.
type InvocationError struct {
	Backend string
	Path    string
	Err     error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("invoking %s on %s: %v", e.Backend, e.Path, e.Err)
}

func (e *InvocationError) Unwrap() error { return e.Err }

// Output is the raw text produced by one backend invocation, tied to the
// identity it was produced from.
type Output struct {
	Identity FileIdentity
	Text     string
}

// Runner invokes the backend's disassembly directive. Callers are expected
// to probe first; the runner does not re-check, so a race between probe and
// run surfaces as an *InvocationError.
type Runner struct {
	cfg config.Config
}

func NewRunner(cfg config.Config) *Runner {
	return &Runner{cfg: cfg}
}

// Disassemble runs the backend against path and captures its standard
// output. The call blocks until the subprocess exits; ctx is the caller's
// timeout and cancellation handle.
func (r *Runner) Disassemble(ctx context.Context, path string) (Output, error) {
	id := Identify(path)

	cmd := exec.CommandContext(ctx, r.cfg.BackendExecutable, disasmFlag, filepath.Base(id.Path))
	cmd.Dir = filepath.Dir(id.Path)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = io.Discard

	if err := cmd.Run(); err != nil {
		return Output{}, &InvocationError{
			Backend: r.cfg.BackendExecutable,
			Path:    id.Path,
			Err:     err,
		}
	}

	return Output{Identity: id, Text: stdout.String()}, nil
}
