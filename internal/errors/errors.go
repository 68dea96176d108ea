// Package errors provides sentinel errors and custom error types for canopyctl.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	// ErrDirtyWorkingTree indicates the working tree has uncommitted changes
	ErrDirtyWorkingTree = errors.New("working tree has uncommitted changes")

	// ErrNoUpstreamRemote indicates no upstream remote could be found
	ErrNoUpstreamRemote = errors.New("no upstream remote configured")

	// ErrNoUpstreamBase indicates the upstream base commit could not be determined
	ErrNoUpstreamBase = errors.New("cannot determine upstream base commit")

	// ErrRebaseInProgress indicates a rebase session already exists
	ErrRebaseInProgress = errors.New("a rebase is already in progress")

	// ErrNoRebaseInProgress indicates no rebase session exists
	ErrNoRebaseInProgress = errors.New("no rebase in progress")

	// ErrConflict indicates a cherry-pick or rebase stopped on a merge conflict
	ErrConflict = errors.New("merge conflict")

	// ErrBackupMismatch indicates a backup ref no longer points at the expected commit
	ErrBackupMismatch = errors.New("backup does not match expected commit")

	// ErrAborted indicates the operator declined to proceed
	ErrAborted = errors.New("operation canceled")
)

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", e.Stdout)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, err error) *GitCommandError {
	return &GitCommandError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}

// BackupMismatchError reports a backup ref whose commit no longer matches the
// commit recorded when the backup was taken. Restoring from such a backup
// would move the branch to the wrong state, so it is always fatal.
type BackupMismatchError struct {
	Name     string
	Expected string
	Actual   string
}

func (e *BackupMismatchError) Error() string {
	return fmt.Sprintf("backup %s points at %s, expected %s", e.Name, e.Actual, e.Expected)
}

// Is returns true if the target error is ErrBackupMismatch
func (e *BackupMismatchError) Is(target error) bool {
	return target == ErrBackupMismatch
}

// NewBackupMismatchError creates a new BackupMismatchError
func NewBackupMismatchError(name, expected, actual string) *BackupMismatchError {
	return &BackupMismatchError{Name: name, Expected: expected, Actual: actual}
}

// PreconditionError reports a failed pre-flight check. Remediation carries
// concrete commands the operator can run to fix the condition.
type PreconditionError struct {
	Err         error
	Remediation string
}

func (e *PreconditionError) Error() string {
	if e.Remediation != "" {
		return fmt.Sprintf("%v\n%s", e.Err, e.Remediation)
	}
	return e.Err.Error()
}

func (e *PreconditionError) Unwrap() error {
	return e.Err
}

// NewPreconditionError creates a new PreconditionError
func NewPreconditionError(err error, remediation string) *PreconditionError {
	return &PreconditionError{Err: err, Remediation: remediation}
}
