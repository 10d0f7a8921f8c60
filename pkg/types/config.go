// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ConverterConfig describes how the external converter is launched.
type ConverterConfig struct {
	// Interpreter is the program that runs Script (e.g. "python"). When empty,
	// Script is executed directly.
	Interpreter string `json:"interpreter" yaml:"interpreter" mapstructure:"interpreter"`

	// Script is the converter entry point (e.g. "cifar-convert.py").
	Script string `json:"script" yaml:"script" mapstructure:"script"`

	// Dir is the working directory for the child process. Empty means the
	// current directory.
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty" mapstructure:"dir"`
}

// Argv returns the argument vector for converting in to out.
func (c ConverterConfig) Argv(in, out string) []string {
	if c.Interpreter == "" {
		return []string{c.Script, in, out}
	}
	return []string{c.Interpreter, c.Script, in, out}
}

// DispatchConfig groups the settings for a dispatch run.
type DispatchConfig struct {
	Converter ConverterConfig `json:"converter" yaml:"converter" mapstructure:"converter"`

	// SchedulePath is an optional YAML schedule file. Empty selects the
	// built-in schedule.
	SchedulePath string `json:"schedule" yaml:"schedule" mapstructure:"schedule"`

	// HistoryPath is an optional SQLite database that records invocations.
	HistoryPath string `json:"history" yaml:"history" mapstructure:"history"`
}
