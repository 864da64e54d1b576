// Copyright © 2018 One Concern

package octopus

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/oneconcern/reldiff/pkg/errors"
)

// SpaceID resolves a space name to its identifier. The upstream search is
// by partial name, so results are filtered down to an exact match.
func (c *Client) SpaceID(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	var page namedItemsPage
	path := "/api/Spaces?partialName=" + url.QueryEscape(name) + "&take=1000"
	if err := c.getJSON(ctx, path, &page); err != nil {
		return "", err
	}
	for _, item := range page.Items {
		if item.Name == name {
			return item.ID, nil
		}
	}
	return "", errors.ErrSpaceNotFound.WithDetail(fmt.Sprintf("space %q", name))
}

// ProjectID resolves a project name within a space to its identifier.
func (c *Client) ProjectID(ctx context.Context, spaceID, name string) (string, error) {
	name = strings.TrimSpace(name)
	var page namedItemsPage
	path := "/api/" + spaceID + "/Projects?take=1000&partialName=" + url.QueryEscape(name)
	if err := c.getJSON(ctx, path, &page); err != nil {
		return "", err
	}
	for _, item := range page.Items {
		if item.Name == name {
			return item.ID, nil
		}
	}
	return "", errors.ErrProjectNotFound.WithDetail(fmt.Sprintf("project %q", name))
}

// BuiltInFeedID returns the identifier of the space's built-in package
// feed, or an empty string when none is visible. Without a built-in feed no
// package can be content-compared, but the rest of the diff still runs.
func (c *Client) BuiltInFeedID(ctx context.Context, spaceID string) (string, error) {
	var page feedsPage
	if err := c.getJSON(ctx, "/api/"+spaceID+"/Feeds?take=1000", &page); err != nil {
		return "", err
	}
	for _, feed := range page.Items {
		if feed.FeedType == "BuiltIn" {
			return feed.ID, nil
		}
	}
	c.l.Warn("no built-in feed found, package content will not be compared")
	return "", nil
}

// ReleasePair selects the two releases to compare. With explicit versions
// each must match exactly one release; with either version empty the two
// most recent releases are used (the upstream listing is newest first).
func (c *Client) ReleasePair(ctx context.Context, spaceID, projectID, oldVersion, newVersion string) (ReleasePair, error) {
	var page releasesPage
	path := "/api/" + spaceID + "/Projects/" + projectID + "/Releases"
	if err := c.getJSON(ctx, path, &page); err != nil {
		return ReleasePair{}, err
	}
	if len(page.Items) < 2 {
		return ReleasePair{}, errors.ErrNotEnoughReleases.WithDetail(fmt.Sprintf("found %d", len(page.Items)))
	}
	if oldVersion == "" || newVersion == "" {
		return ReleasePair{Source: page.Items[1], Destination: page.Items[0]}, nil
	}

	var pair ReleasePair
	sourceFound, destinationFound := false, false
	for _, release := range page.Items {
		if release.Version == oldVersion && !sourceFound {
			pair.Source, sourceFound = release, true
		}
		if release.Version == newVersion && !destinationFound {
			pair.Destination, destinationFound = release, true
		}
	}
	if !sourceFound {
		return ReleasePair{}, errors.ErrReleaseNotFound.WithDetail(fmt.Sprintf("old release %q", oldVersion))
	}
	if !destinationFound {
		return ReleasePair{}, errors.ErrReleaseNotFound.WithDetail(fmt.Sprintf("new release %q", newVersion))
	}
	return pair, nil
}
