// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package schedule

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/cifar-sched/pkg/types"
)

func TestDefault(t *testing.T) {
	s := Default()
	assert.Equal(t, DefaultName, s.Name)
	assert.Equal(t, []int{0}, s.InVersions)
	assert.Equal(t, []int{1}, s.OutVersions)
	assert.NoError(t, Validate(s))
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    types.Schedule
		errMsg  string
	}{
		{
			name:    "full schedule",
			file:    "hi-res.yaml",
			content: "name: full\nin_versions: [0, 2]\nout_versions: [1, 3]\n",
			want:    types.Schedule{Name: "full", InVersions: []int{0, 2}, OutVersions: []int{1, 3}},
		},
		{
			name:    "name defaults to file name",
			file:    "nightly.yaml",
			content: "in_versions: [0]\nout_versions: [1]\n",
			want:    types.Schedule{Name: "nightly", InVersions: []int{0}, OutVersions: []int{1}},
		},
		{
			name:    "mismatched lengths are kept",
			file:    "short.yaml",
			content: "name: short\nin_versions: [0]\nout_versions: [1, 2]\n",
			want:    types.Schedule{Name: "short", InVersions: []int{0}, OutVersions: []int{1, 2}},
		},
		{
			name:    "invalid yaml",
			file:    "bad.yaml",
			content: "in_versions: [0\n",
			errMsg:  "parsing schedule",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			got, err := Load(path)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading schedule")
}

func TestWriteThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedules", "low-res.yaml")
	require.NoError(t, Write(path, Default()))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), got)
}

func TestPairs(t *testing.T) {
	tests := []struct {
		name string
		s    types.Schedule
		want []types.VersionPair
	}{
		{"empty", types.Schedule{}, []types.VersionPair{}},
		{"aligned", types.Schedule{InVersions: []int{0, 2}, OutVersions: []int{1, 3}},
			[]types.VersionPair{{In: 0, Out: 1}, {In: 2, Out: 3}}},
		{"out longer", types.Schedule{InVersions: []int{0}, OutVersions: []int{1, 2}},
			[]types.VersionPair{{In: 0, Out: 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Pairs(tt.s))
		})
	}
}

func TestValidate(t *testing.T) {
	err := Validate(types.Schedule{Name: "short", InVersions: []int{0}, OutVersions: []int{1, 2}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 in_versions but 2 out_versions")

	assert.NoError(t, Validate(types.Schedule{}))
}
