// Copyright © 2018 One Concern

package octopus

import (
	"context"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/oneconcern/reldiff/pkg/model"
)

// DownloadPackage downloads one package archive from the built-in feed into
// dir and returns the archive path. The package metadata is fetched first
// for the file extension of the archive.
func (c *Client) DownloadPackage(ctx context.Context, spaceID, packageID, version, dir string) (string, error) {
	base := "/api/" + spaceID + "/Packages/packages-" + packageID + "." + version
	var meta packageMetadata
	if err := c.getJSON(ctx, base, &meta); err != nil {
		return "", err
	}
	target := filepath.Join(dir, packageID+"."+version+meta.FileExtension)
	if err := c.getFile(ctx, base+"/raw", target); err != nil {
		return "", err
	}
	c.l.Debug("downloaded package",
		zap.String("package", packageID+"."+version),
		zap.String("archive", target),
	)
	return target, nil
}

// DownloadAll downloads the built-in feed packages of both snapshots into
// dir and attaches the archive paths. Destination packages are fetched
// first; a source package pinning the same id and version reuses the
// destination archive instead of downloading it again.
//
// Download failures are per package and non fatal: the affected pair is
// reported later as content unavailable, and the rest of the run proceeds.
func (c *Client) DownloadAll(ctx context.Context, spaceID string, source, destination *model.Snapshot, dir string) {
	downloaded := make(map[string]string, len(destination.Packages))
	for i := range destination.Packages {
		pkg := &destination.Packages[i]
		if !pkg.FromBuiltInFeed {
			continue
		}
		path, err := c.DownloadPackage(ctx, spaceID, pkg.ID, pkg.Version, dir)
		if err != nil {
			c.l.Warn("package download failed", zap.String("package", pkg.String()), zap.Error(err))
			continue
		}
		pkg.ArchivePath = path
		downloaded[pkg.String()] = path
	}
	for i := range source.Packages {
		pkg := &source.Packages[i]
		if !pkg.FromBuiltInFeed {
			continue
		}
		if path, ok := downloaded[pkg.String()]; ok {
			pkg.ArchivePath = path
			continue
		}
		path, err := c.DownloadPackage(ctx, spaceID, pkg.ID, pkg.Version, dir)
		if err != nil {
			c.l.Warn("package download failed", zap.String("package", pkg.String()), zap.Error(err))
			continue
		}
		pkg.ArchivePath = path
	}
}
