// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

const (
	// ExitNotStarted is the exit code recorded when the child process could
	// not be launched at all.
	ExitNotStarted = -1

	// ExitSignaled is the exit code recorded when the child was killed by a
	// signal. The signal is named in Invocation.Error.
	ExitSignaled = -2
)

// Invocation records one converter run.
type Invocation struct {
	// ID is a UUID assigned when the invocation is launched.
	ID string `json:"id" yaml:"id"`

	// Schedule is the name of the schedule the invocation belongs to.
	Schedule string `json:"schedule" yaml:"schedule"`

	// Index is the position in the schedule.
	Index int `json:"index" yaml:"index"`

	InVersion  int `json:"in_version" yaml:"in_version"`
	OutVersion int `json:"out_version" yaml:"out_version"`

	// Args is the full argument vector, program first.
	Args []string `json:"args" yaml:"args"`

	// ExitCode is the child's exit status, ExitNotStarted, or ExitSignaled.
	ExitCode int `json:"exit_code" yaml:"exit_code"`

	// Error holds the launch or wait error text, if any.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at" yaml:"finished_at"`
}

// Succeeded reports whether the child ran and exited zero.
func (i Invocation) Succeeded() bool {
	return i.ExitCode == 0 && i.Error == ""
}

// Duration returns how long the child ran.
func (i Invocation) Duration() time.Duration {
	return i.FinishedAt.Sub(i.StartedAt)
}
