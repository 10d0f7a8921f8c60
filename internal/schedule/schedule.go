// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package schedule provides the built-in conversion schedule and reads and
// writes schedule files.
package schedule

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/cifar-sched/pkg/types"
)

// DefaultName names the built-in schedule: conversion of the 32x32
// CIFAR-10 dataset.
const DefaultName = "low-res"

// Default returns the built-in low-resolution schedule, converting dataset
// version 0 to version 1.
func Default() types.Schedule {
	return types.Schedule{
		Name:        DefaultName,
		InVersions:  []int{0},
		OutVersions: []int{1},
	}
}

// Load reads a YAML schedule file. List lengths are not checked here; the
// dispatcher decides what a mismatch means. A missing name defaults to the
// file's base name.
func Load(path string) (types.Schedule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Schedule{}, fmt.Errorf("reading schedule %s: %w", path, err)
	}

	var s types.Schedule
	if err := yaml.Unmarshal(data, &s); err != nil {
		return types.Schedule{}, fmt.Errorf("parsing schedule %s: %w", path, err)
	}
	if s.Name == "" {
		base := filepath.Base(path)
		s.Name = base[:len(base)-len(filepath.Ext(base))]
	}
	return s, nil
}

// Write saves s to path as YAML, creating parent directories.
func Write(path string, s types.Schedule) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating schedule directory: %w", err)
	}
	data, err := yaml.Marshal(&s)
	if err != nil {
		return fmt.Errorf("marshaling schedule: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing schedule %s: %w", path, err)
	}
	return nil
}

// Pairs returns the index-aligned version pairs, stopping at the shorter
// list.
func Pairs(s types.Schedule) []types.VersionPair {
	n := min(len(s.InVersions), len(s.OutVersions))
	pairs := make([]types.VersionPair, n)
	for i := range n {
		pairs[i] = types.VersionPair{In: s.InVersions[i], Out: s.OutVersions[i]}
	}
	return pairs
}

// Validate reports whether the two version lists have equal length.
func Validate(s types.Schedule) error {
	if len(s.InVersions) != len(s.OutVersions) {
		return fmt.Errorf("schedule %q has %d in_versions but %d out_versions",
			s.Name, len(s.InVersions), len(s.OutVersions))
	}
	return nil
}
