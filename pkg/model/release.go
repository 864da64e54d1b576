// Copyright © 2018 One Concern

package model

import (
	"fmt"
)

// Snapshot is the comparable state of one release.
//
// Package order and variable order are preserved from the upstream listing,
// so diff output is deterministic for a given pair of releases.
type Snapshot struct {
	Version   string        `json:"version" yaml:"version"`
	Packages  []PackageRef  `json:"packages" yaml:"packages"`
	Variables []Variable    `json:"variables" yaml:"variables"`
	Steps     StepsDocument `json:"steps,omitempty" yaml:"steps,omitempty"`
	_         struct{}
}

// PackageRef is one package attached to a release.
type PackageRef struct {
	ID              string `json:"id" yaml:"id"`
	Version         string `json:"version" yaml:"version"`
	FromBuiltInFeed bool   `json:"fromBuiltInFeed" yaml:"fromBuiltInFeed"`

	// ArchivePath and ExtractedPath are attached by the workspace once the
	// package archive has been downloaded and unzipped. Both are empty for
	// packages that cannot be resolved to local content.
	ArchivePath   string `json:"archivePath,omitempty" yaml:"archivePath,omitempty"`
	ExtractedPath string `json:"extractedPath,omitempty" yaml:"extractedPath,omitempty"`
	_             struct{}
}

func (p PackageRef) String() string {
	return p.ID + "." + p.Version
}

// Validate reports caller contract violations in a snapshot.
//
// A duplicate package id within one release makes identity-based matching
// meaningless, so it is surfaced here rather than silently producing a
// wrong diff downstream.
func (s *Snapshot) Validate() error {
	seen := make(map[string]struct{}, len(s.Packages))
	for _, pkg := range s.Packages {
		if pkg.ID == "" {
			return fmt.Errorf("release %s: %w: package with empty id", s.Version, ErrInvalidSnapshot)
		}
		if _, ok := seen[pkg.ID]; ok {
			return fmt.Errorf("release %s: %w: package %q listed more than once", s.Version, ErrInvalidSnapshot, pkg.ID)
		}
		seen[pkg.ID] = struct{}{}
	}
	return nil
}
