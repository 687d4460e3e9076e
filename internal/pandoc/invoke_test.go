// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pandoc

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

// mockExecutor records calls and returns configured responses.
type mockExecutor struct {
	availableBins map[string]bool
	runFunc       func(name string, args []string, stdout, stderr io.Writer) error

	gotName string
	gotArgs []string
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.availableBins[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) Run(name string, args []string, stdout, stderr io.Writer) error {
	m.gotName = name
	m.gotArgs = args
	if m.runFunc != nil {
		return m.runFunc(name, args, stdout, stderr)
	}
	return nil
}

func TestNewInvoker(t *testing.T) {
	t.Run("binary on PATH", func(t *testing.T) {
		exec := &mockExecutor{availableBins: map[string]bool{"pandoc": true}}
		inv, err := newInvoker("pandoc", exec)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if inv.binary != "pandoc" {
			t.Errorf("binary = %q, want pandoc", inv.binary)
		}
	})

	t.Run("binary missing", func(t *testing.T) {
		exec := &mockExecutor{availableBins: map[string]bool{}}
		_, err := newInvoker("pandoc", exec)
		if !errors.Is(err, ErrToolNotAvailable) {
			t.Fatalf("error = %v, want ErrToolNotAvailable", err)
		}
		if !strings.Contains(err.Error(), "pandoc") {
			t.Errorf("error should name the binary, got: %v", err)
		}
	})
}

func TestInvokerRun(t *testing.T) {
	t.Run("success passes args and captures stderr", func(t *testing.T) {
		exec := &mockExecutor{
			availableBins: map[string]bool{"pandoc": true},
			runFunc: func(name string, args []string, stdout, stderr io.Writer) error {
				io.WriteString(stdout, "progress\n")
				io.WriteString(stderr, "[WARNING] missing font\n")
				return nil
			},
		}
		inv, err := newInvoker("pandoc", exec)
		if err != nil {
			t.Fatal(err)
		}

		var out bytes.Buffer
		diag, err := inv.Run([]string{"doc.ipynb", "--output=doc.pdf"}, &out)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if exec.gotName != "pandoc" {
			t.Errorf("ran %q, want pandoc", exec.gotName)
		}
		if len(exec.gotArgs) != 2 || exec.gotArgs[0] != "doc.ipynb" {
			t.Errorf("args = %v", exec.gotArgs)
		}
		if out.String() != "progress\n" {
			t.Errorf("stdout = %q", out.String())
		}
		if !strings.Contains(diag, "missing font") {
			t.Errorf("diagnostics = %q", diag)
		}
	})

	t.Run("non-zero exit wraps ErrConversionFailed with diagnostics", func(t *testing.T) {
		exec := &mockExecutor{
			availableBins: map[string]bool{"pandoc": true},
			runFunc: func(name string, args []string, stdout, stderr io.Writer) error {
				io.WriteString(stderr, "! LaTeX Error: something broke\n")
				return errors.New("exit status 43")
			},
		}
		inv, err := newInvoker("pandoc", exec)
		if err != nil {
			t.Fatal(err)
		}

		_, err = inv.Run([]string{"doc.ipynb"}, io.Discard)
		if !errors.Is(err, ErrConversionFailed) {
			t.Fatalf("error = %v, want ErrConversionFailed", err)
		}
		if !strings.Contains(err.Error(), "LaTeX Error") {
			t.Errorf("error should carry captured stderr, got: %v", err)
		}
	})
}
