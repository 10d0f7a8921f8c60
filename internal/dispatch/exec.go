// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dispatch

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/pdiddy/cifar-sched/pkg/types"
)

// executor abstracts child process execution for testing.
type executor interface {
	// Run starts argv in dir, waits for it to exit, and returns its exit
	// code. A non-zero exit is not an error. err is set, with
	// types.ExitNotStarted, for children that could not be started, and with
	// types.ExitSignaled for children killed by a signal.
	Run(dir string, argv []string) (exitCode int, err error)
}

// osExecutor is the production executor backed by os/exec. Children inherit
// the parent's environment and standard streams.
type osExecutor struct{}

func (o *osExecutor) Run(dir string, argv []string) (int, error) {
	if len(argv) == 0 || argv[0] == "" {
		return types.ExitNotStarted, errors.New("empty converter command")
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code >= 0 {
			return code, nil
		}
		return types.ExitSignaled, fmt.Errorf("%s terminated: %s", argv[0], exitErr.String())
	}
	return types.ExitNotStarted, fmt.Errorf("launching %s: %w", argv[0], err)
}
