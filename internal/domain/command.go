package domain

import "errors"

// ExecCommand represents an external command to be executed.
// This type is used to pass command information between layers
// without exposing implementation details.
type ExecCommand struct {
	Program string
	Dir     string
	Args    []string
}

// NewCommand creates an ExecCommand. Each element of args is passed to the
// program as one argument, without shell interpretation.
func NewCommand(program string, args []string, dir string) *ExecCommand {
	return &ExecCommand{
		Program: program,
		Args:    args,
		Dir:     dir,
	}
}

// ExitCode returns the exit status carried by err, or -1 when err does not
// come from a process that ran to completion. A nil err is status 0.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exited interface{ ExitCode() int }
	if errors.As(err, &exited) {
		return exited.ExitCode()
	}
	return -1
}
