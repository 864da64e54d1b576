// Copyright © 2018 One Concern

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oneconcern/reldiff/pkg/model"
)

func pkg(id, version string) model.PackageRef {
	return model.PackageRef{ID: id, Version: version, FromBuiltInFeed: true}
}

func TestDiffPackages(t *testing.T) {
	source := []model.PackageRef{pkg("A", "1.0"), pkg("B", "1.0")}
	destination := []model.PackageRef{pkg("A", "1.0"), pkg("C", "1.0")}

	diff := DiffPackages(source, destination)

	require.Len(t, diff.Added, 1)
	assert.Equal(t, "C", diff.Added[0].ID)
	require.Len(t, diff.Removed, 1)
	assert.Equal(t, "B", diff.Removed[0].ID)
	require.Len(t, diff.Matched, 1)
	assert.Equal(t, "A", diff.Matched[0].Destination.ID)
	assert.False(t, diff.Matched[0].VersionChanged)
}

func TestDiffPackagesVersionChanged(t *testing.T) {
	diff := DiffPackages(
		[]model.PackageRef{pkg("A", "1.0"), pkg("B", "2.0")},
		[]model.PackageRef{pkg("A", "1.1"), pkg("B", "2.0")},
	)
	require.Len(t, diff.Matched, 2)
	assert.True(t, diff.Matched[0].VersionChanged)
	assert.Equal(t, "1.0", diff.Matched[0].Source.Version)
	assert.Equal(t, "1.1", diff.Matched[0].Destination.Version)
	assert.False(t, diff.Matched[1].VersionChanged)
	assert.Empty(t, diff.Added)
	assert.Empty(t, diff.Removed)
}

func TestDiffPackagesIdentical(t *testing.T) {
	pkgs := []model.PackageRef{pkg("A", "1.0"), pkg("B", "2.0"), pkg("C", "0.1")}
	diff := DiffPackages(pkgs, pkgs)
	assert.Empty(t, diff.Added)
	assert.Empty(t, diff.Removed)
	require.Len(t, diff.Matched, len(pkgs))
	for _, m := range diff.Matched {
		assert.False(t, m.VersionChanged)
	}
}

func TestDiffPackagesEmptySides(t *testing.T) {
	pkgs := []model.PackageRef{pkg("A", "1.0")}

	diff := DiffPackages(nil, pkgs)
	assert.Len(t, diff.Added, 1)
	assert.Empty(t, diff.Removed)
	assert.Empty(t, diff.Matched)

	diff = DiffPackages(pkgs, nil)
	assert.Empty(t, diff.Added)
	assert.Len(t, diff.Removed, 1)
	assert.Empty(t, diff.Matched)
}

func TestDiffPackagesPreservesOrder(t *testing.T) {
	source := []model.PackageRef{pkg("B", "1.0"), pkg("D", "1.0"), pkg("A", "1.0")}
	destination := []model.PackageRef{pkg("C", "1.0"), pkg("A", "1.0"), pkg("E", "1.0")}

	diff := DiffPackages(source, destination)

	added := make([]string, 0, len(diff.Added))
	for _, p := range diff.Added {
		added = append(added, p.ID)
	}
	removed := make([]string, 0, len(diff.Removed))
	for _, p := range diff.Removed {
		removed = append(removed, p.ID)
	}
	assert.Equal(t, []string{"C", "E"}, added)
	assert.Equal(t, []string{"B", "D"}, removed)
}
