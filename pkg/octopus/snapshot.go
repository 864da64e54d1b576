// Copyright © 2018 One Concern

package octopus

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/oneconcern/reldiff/pkg/model"
)

// Snapshot fetches the deployment process and variable set snapshotted with
// a release and flattens everything into the model the reconcilers work on.
//
// A package counts as resolvable to local content when the action that
// consumes it sources it from the built-in feed.
func (c *Client) Snapshot(ctx context.Context, spaceID, builtInFeedID string, release Release) (model.Snapshot, error) {
	var process deploymentProcess
	if release.DeploymentProcessSnapshotID != "" {
		path := "/api/" + spaceID + "/DeploymentProcesses/" + release.DeploymentProcessSnapshotID
		if err := c.getJSON(ctx, path, &process); err != nil {
			return model.Snapshot{}, err
		}
	}
	var varset variableSet
	if release.VariableSetSnapshotID != "" {
		path := "/api/" + spaceID + "/Variables/" + release.VariableSetSnapshotID
		if err := c.getJSON(ctx, path, &varset); err != nil {
			return model.Snapshot{}, err
		}
	}

	var steps []processStep
	if len(process.Steps) > 0 {
		if err := json.Unmarshal(process.Steps, &steps); err != nil {
			return model.Snapshot{}, fmt.Errorf("decode deployment steps for release %s: %w", release.Version, err)
		}
	}

	snap := model.Snapshot{
		Version: release.Version,
		Steps:   model.StepsDocument(process.Steps),
	}
	for _, sp := range release.SelectedPackages {
		snap.Packages = append(snap.Packages, model.PackageRef{
			ID:              sp.PackageReferenceName,
			Version:         sp.Version,
			FromBuiltInFeed: fromBuiltInFeed(steps, builtInFeedID, sp),
		})
	}
	for _, v := range varset.Variables {
		snap.Variables = append(snap.Variables, model.Variable{
			ID:          v.ID,
			Name:        v.Name,
			Value:       v.Value,
			IsSensitive: v.IsSensitive,
			Scope: model.VariableScope{
				Environments: v.Scope.Environment,
				Machines:     v.Scope.Machines,
				Actions:      v.Scope.Actions,
				Roles:        v.Scope.Roles,
				Channels:     v.Scope.Channels,
				TenantTags:   v.Scope.TenantTags,
				Processes:    v.Scope.Processes,
			},
		})
	}
	if err := snap.Validate(); err != nil {
		return model.Snapshot{}, err
	}
	c.l.Debug("flattened release",
		zap.String("release", release.Version),
		zap.Int("packages", len(snap.Packages)),
		zap.Int("variables", len(snap.Variables)),
	)
	return snap, nil
}

func fromBuiltInFeed(steps []processStep, builtInFeedID string, sp SelectedPackage) bool {
	if builtInFeedID == "" {
		return false
	}
	for _, step := range steps {
		if step.Name != sp.StepName {
			continue
		}
		for _, action := range step.Actions {
			if action.Name != sp.ActionName {
				continue
			}
			for _, pkg := range action.Packages {
				if pkg.Name == sp.PackageReferenceName {
					return pkg.FeedID == builtInFeedID
				}
			}
		}
	}
	return false
}
