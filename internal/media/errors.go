package media

import (
	"errors"
	"fmt"
	"strings"
)

// Static errors shared by every command. Callers match them with errors.Is.
var (
	// ErrInvalidArgument is returned for empty paths, non-positive counts and
	// similar caller mistakes. No external tool is invoked.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrProcessLaunch is returned when an external tool cannot be started.
	ErrProcessLaunch = errors.New("process launch failed")
	// ErrProcessExit is returned when an external tool exits nonzero.
	ErrProcessExit = errors.New("process exited with failure")
	// ErrProcessTimeout is returned when an external tool outlives the
	// per-invocation deadline and is killed.
	ErrProcessTimeout = errors.New("process timed out")
	// ErrParse is returned when tool output is not in the expected format.
	ErrParse = errors.New("unexpected tool output")
	// ErrFilesystem is returned for read, write, rename and mkdir failures.
	ErrFilesystem = errors.New("filesystem operation failed")
)

// ProcessError describes a tool run that exited nonzero.
type ProcessError struct {
	Tool     string
	Args     []string
	ExitCode int
	Stderr   string
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("%s exited with code %d: %s", e.Tool, e.ExitCode, strings.TrimSpace(e.Stderr))
}

// Is reports ErrProcessExit so callers need not type-assert.
func (e *ProcessError) Is(target error) bool {
	return target == ErrProcessExit
}
