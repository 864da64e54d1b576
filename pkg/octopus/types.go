// Copyright © 2018 One Concern

package octopus

import (
	"encoding/json"
)

// Release is one release of a project as listed by the upstream API,
// reduced to the fields release reconciliation needs.
type Release struct {
	ID                          string            `json:"Id"`
	Version                     string            `json:"Version"`
	DeploymentProcessSnapshotID string            `json:"ProjectDeploymentProcessSnapshotId"`
	VariableSetSnapshotID       string            `json:"ProjectVariableSetSnapshotId"`
	SelectedPackages            []SelectedPackage `json:"SelectedPackages"`
}

// SelectedPackage names one package pinned by a release, located by the
// step and action that consume it.
type SelectedPackage struct {
	StepName             string `json:"StepName"`
	ActionName           string `json:"ActionName"`
	PackageReferenceName string `json:"PackageReferenceName"`
	Version              string `json:"Version"`
}

// ReleasePair is the two releases a run compares. Destination is the newer
// release whose promotion is being decided.
type ReleasePair struct {
	Source      Release
	Destination Release
}

type namedItem struct {
	ID   string `json:"Id"`
	Name string `json:"Name"`
}

type namedItemsPage struct {
	Items []namedItem `json:"Items"`
}

type releasesPage struct {
	Items []Release `json:"Items"`
}

type feedItem struct {
	ID       string `json:"Id"`
	FeedType string `json:"FeedType"`
}

type feedsPage struct {
	Items []feedItem `json:"Items"`
}

// deploymentProcess keeps the step list raw: reconciliation treats it as an
// opaque document, and only built-in feed detection needs the structure.
type deploymentProcess struct {
	ID    string          `json:"Id"`
	Steps json.RawMessage `json:"Steps"`
}

type processStep struct {
	Name    string          `json:"Name"`
	Actions []processAction `json:"Actions"`
}

type processAction struct {
	Name     string          `json:"Name"`
	Packages []actionPackage `json:"Packages"`
}

type actionPackage struct {
	Name   string `json:"Name"`
	FeedID string `json:"FeedId"`
}

type variableSet struct {
	Variables []apiVariable `json:"Variables"`
}

type apiVariable struct {
	ID          string   `json:"Id"`
	Name        string   `json:"Name"`
	Value       string   `json:"Value"`
	IsSensitive bool     `json:"IsSensitive"`
	Scope       apiScope `json:"Scope"`
}

type apiScope struct {
	Environment []string `json:"Environment"`
	Machines    []string `json:"Machines"`
	Actions     []string `json:"Actions"`
	Roles       []string `json:"Roles"`
	Channels    []string `json:"Channels"`
	TenantTags  []string `json:"TenantTags"`
	Processes   []string `json:"Processes"`
}

type packageMetadata struct {
	FileExtension string `json:"FileExtension"`
}
