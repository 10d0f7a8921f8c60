package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/cifar-sched/pkg/types"
)

func TestMismatchWarning(t *testing.T) {
	tests := []struct {
		name     string
		s        types.Schedule
		contains string
		absent   string
	}{
		{
			name: "matched lists",
			s:    types.Schedule{Name: "low-res", InVersions: []int{0}, OutVersions: []int{1}},
		},
		{
			name:     "out_versions longer stops the run",
			s:        types.Schedule{Name: "short", InVersions: []int{0}, OutVersions: []int{1, 2}},
			contains: "run will stop at index 1",
		},
		{
			name:     "in_versions longer is ignored",
			s:        types.Schedule{Name: "long", InVersions: []int{0, 2, 4}, OutVersions: []int{1}},
			contains: "extra in_versions are ignored",
			absent:   "stop",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mismatchWarning(tt.s)
			if tt.contains == "" {
				assert.Empty(t, got)
				return
			}
			assert.Contains(t, got, tt.contains)
			if tt.absent != "" {
				assert.NotContains(t, got, tt.absent)
			}
		})
	}
}
