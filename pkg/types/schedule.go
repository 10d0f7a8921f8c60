// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// VersionPair identifies the source and destination dataset versions for a
// single converter invocation.
type VersionPair struct {
	In  int `json:"in" yaml:"in"`
	Out int `json:"out" yaml:"out"`
}

// Schedule is an index-aligned pair of version lists. OutVersions drives the
// dispatch loop; InVersions is indexed in step with it.
type Schedule struct {
	// Name labels the schedule in status output and history (e.g. "low-res").
	Name string `json:"name" yaml:"name"`

	// InVersions lists the source dataset versions.
	InVersions []int `json:"in_versions" yaml:"in_versions"`

	// OutVersions lists the destination dataset versions.
	OutVersions []int `json:"out_versions" yaml:"out_versions"`
}
