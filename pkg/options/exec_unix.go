//go:build unix

package options

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"syscall"
)

// ExecWithPassingOptionsToStdin serializes the Options to JSON, sets up a pipe, and replaces the current process.
// The new process reads the options with --stdin, so secrets such as the webhook token do not stay in its environment.
func (o *Options) ExecWithPassingOptionsToStdin() error {
	// Serialize options to JSON
	jsonData, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("failed to serialize options to JSON: %w", err)
	}

	executable, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}

	cmd := os.Args[0]
	args := slices.Insert(os.Args[1:], 0, "--stdin")
	env := os.Environ()

	// Create a pipe for stdin
	r, w, err := os.Pipe()
	if err != nil {
		return fmt.Errorf("failed to create pipe: %w", err)
	}
	// Redirect the pipe's read end to standard input
	if err = dup2(int(r.Fd()), int(os.Stdin.Fd())); err != nil {
		return fmt.Errorf("failed to redirect stdin: %w", err)
	}
	// Write JSON to the pipe
	if _, err = w.Write(jsonData); err != nil {
		return fmt.Errorf("failed to write to pipe: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close pipe: %w", err)
	}

	err = syscall.Exec(executable, append([]string{cmd}, args...), env)
	// If Exec returns, it means there was an error
	return fmt.Errorf("failed to exec process: %w", err)
}
