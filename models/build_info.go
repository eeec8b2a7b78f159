// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// BuildInfo carries immutable build-time metadata injected by linker flags.
type BuildInfo struct {
	Version string `json:"version"`
	Date    string `json:"date"`
	Commit  string `json:"commit"`
}

// NewBuildInfo replaces empty values with "N/A" so that unset linker
// variables still render sensibly.
func NewBuildInfo(version, date, commit string) BuildInfo {
	return BuildInfo{
		Version: orNA(version),
		Date:    orNA(date),
		Commit:  orNA(commit),
	}
}

// String formats the build metadata as a single line.
func (b BuildInfo) String() string {
	return fmt.Sprintf("version: %s, date: %s, commit: %s", b.Version, b.Date, b.Commit)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
