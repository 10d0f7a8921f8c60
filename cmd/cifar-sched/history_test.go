package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/cifar-sched/internal/history"
	"github.com/pdiddy/cifar-sched/pkg/types"
)

func TestListHistoryMissingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "history.db")

	var out bytes.Buffer
	require.NoError(t, listHistory(context.Background(), path, 0, &out))
	assert.Contains(t, out.String(), "No history recorded.")
	assert.NoDirExists(t, filepath.Dir(path), "listing must not create the database")
}

func TestListHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := history.Open(path)
	require.NoError(t, err)
	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Record(context.Background(), types.Invocation{
		ID: "a", Schedule: "low-res", InVersion: 0, OutVersion: 1, ExitCode: 3,
		Args:      []string{"python", "cifar-convert.py", "0", "1"},
		StartedAt: started, FinishedAt: started.Add(time.Second),
	}))
	require.NoError(t, store.Close())

	var out bytes.Buffer
	require.NoError(t, listHistory(context.Background(), path, 0, &out))
	assert.Contains(t, out.String(), "0 -> 1")
	assert.Contains(t, out.String(), "python cifar-convert.py 0 1")
}
