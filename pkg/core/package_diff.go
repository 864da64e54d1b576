// Copyright © 2018 One Concern

package core

import (
	"github.com/oneconcern/reldiff/pkg/model"
)

// PackageMatch pairs a source and a destination package with the same id.
// Only version-changed matches are candidates for content comparison.
type PackageMatch struct {
	Source         model.PackageRef `json:"source" yaml:"source"`
	Destination    model.PackageRef `json:"destination" yaml:"destination"`
	VersionChanged bool             `json:"versionChanged" yaml:"versionChanged"`
}

// PackageDiff is the outcome of reconciling the package lists of two releases.
type PackageDiff struct {
	Added   []model.PackageRef `json:"added,omitempty" yaml:"added,omitempty"`
	Removed []model.PackageRef `json:"removed,omitempty" yaml:"removed,omitempty"`
	Matched []PackageMatch     `json:"matched,omitempty" yaml:"matched,omitempty"`
}

// DiffPackages reconciles two package lists by package id, ignoring
// versions: a package present on both sides is a match, flagged when its
// version changed. Output preserves the input ordering (destination order
// for additions and matches, source order for removals).
func DiffPackages(source, destination []model.PackageRef) PackageDiff {
	sourceByID := make(map[string]model.PackageRef, len(source))
	for _, pkg := range source {
		sourceByID[pkg.ID] = pkg
	}
	destinationByID := make(map[string]model.PackageRef, len(destination))
	for _, pkg := range destination {
		destinationByID[pkg.ID] = pkg
	}

	var diff PackageDiff
	for _, pkg := range destination {
		src, ok := sourceByID[pkg.ID]
		if !ok {
			diff.Added = append(diff.Added, pkg)
			continue
		}
		diff.Matched = append(diff.Matched, PackageMatch{
			Source:         src,
			Destination:    pkg,
			VersionChanged: src.Version != pkg.Version,
		})
	}
	for _, pkg := range source {
		if _, ok := destinationByID[pkg.ID]; !ok {
			diff.Removed = append(diff.Removed, pkg)
		}
	}
	return diff
}
