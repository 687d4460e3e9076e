// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pandoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os/exec"
)

var (
	// ErrToolNotAvailable reports that the pandoc binary could not be
	// resolved on the execution path.
	ErrToolNotAvailable = errors.New("converter not available")

	// ErrConversionFailed reports a non-zero exit from pandoc. The wrapped
	// message carries pandoc's captured stderr.
	ErrConversionFailed = errors.New("conversion failed")
)

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(name string, args []string, stdout, stderr io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Run(name string, args []string, stdout, stderr io.Writer) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

var defaultExec executor = &osExecutor{}

// Invoker runs the pandoc binary. One invocation per conversion, blocking,
// no retry; failures are surfaced, not masked.
type Invoker struct {
	binary string
	exec   executor
}

// NewInvoker resolves binary on PATH and returns an Invoker for it.
func NewInvoker(binary string) (*Invoker, error) {
	return newInvoker(binary, defaultExec)
}

func newInvoker(binary string, exec executor) (*Invoker, error) {
	if _, err := exec.LookPath(binary); err != nil {
		return nil, fmt.Errorf("%w: %s not found on PATH", ErrToolNotAvailable, binary)
	}
	return &Invoker{binary: binary, exec: exec}, nil
}

// Run invokes pandoc with args and blocks until it exits. Stdout is passed
// through to w; stderr is captured and returned as diagnostics in both the
// success and failure cases.
func (i *Invoker) Run(args []string, w io.Writer) (string, error) {
	var stderr bytes.Buffer
	if err := i.exec.Run(i.binary, args, w, &stderr); err != nil {
		return stderr.String(), fmt.Errorf("%w: %s exited: %v\n%s",
			ErrConversionFailed, i.binary, err, stderr.String())
	}
	return stderr.String(), nil
}
