// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dispatch

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/cifar-sched/pkg/types"
)

func TestOSExecutor(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	e := &osExecutor{}

	code, err := e.Run("", []string{"sh", "-c", "exit 0"})
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	code, err = e.Run("", []string{"sh", "-c", "exit 3"})
	require.NoError(t, err, "non-zero exit is not an error")
	assert.Equal(t, 3, code)
}

func TestOSExecutorLaunchFailure(t *testing.T) {
	e := &osExecutor{}

	code, err := e.Run("", []string{"definitely-not-a-converter-binary"})
	require.Error(t, err)
	assert.Equal(t, types.ExitNotStarted, code)

	_, err = e.Run("", nil)
	require.Error(t, err)
}

func TestOSExecutorSignaled(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	e := &osExecutor{}

	code, err := e.Run("", []string{"sh", "-c", "kill -TERM $$"})
	require.Error(t, err)
	assert.Equal(t, types.ExitSignaled, code)
	assert.NotEqual(t, types.ExitNotStarted, code)
	assert.Contains(t, err.Error(), "signal: terminated")
}
