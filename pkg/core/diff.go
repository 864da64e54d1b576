// Copyright © 2018 One Concern

package core

import (
	"fmt"
	"sync"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/oneconcern/reldiff/pkg/model"
)

// PackageContentDiff is the content comparison outcome for one matched,
// version-changed package pair. Unavailable pairs carry the reason the
// content could not be compared instead of a diff.
type PackageContentDiff struct {
	PackageID          string      `json:"packageId" yaml:"packageId"`
	SourceVersion      string      `json:"sourceVersion" yaml:"sourceVersion"`
	DestinationVersion string      `json:"destinationVersion" yaml:"destinationVersion"`
	Unavailable        bool        `json:"unavailable,omitempty" yaml:"unavailable,omitempty"`
	Reason             string      `json:"reason,omitempty" yaml:"reason,omitempty"`
	Content            ContentDiff `json:"content" yaml:"content"`
}

// ReleaseDiff aggregates every reconciliation outcome for a pair of releases.
type ReleaseDiff struct {
	SourceVersion      string               `json:"sourceVersion" yaml:"sourceVersion"`
	DestinationVersion string               `json:"destinationVersion" yaml:"destinationVersion"`
	Packages           PackageDiff          `json:"packages" yaml:"packages"`
	Contents           []PackageContentDiff `json:"contents,omitempty" yaml:"contents,omitempty"`
	Variables          VariableDiff         `json:"variables" yaml:"variables"`
	Steps              StepDiff             `json:"steps" yaml:"steps"`
}

// Diff reconciles two release snapshots and aggregates the results.
//
// Package, variable and step reconciliation are pure in-memory
// computations. Content comparison reads the extracted trees attached to
// version-changed matched pairs and degrades per pair: a pair whose content
// cannot be compared is reported as unavailable without failing the run.
//
// Snapshots violating the model contract (duplicate package ids) are
// rejected up front rather than silently mis-diffed.
func Diff(source, destination model.Snapshot, opts ...DiffOption) (ReleaseDiff, error) {
	d := newDiffer(opts...)

	if err := source.Validate(); err != nil {
		return ReleaseDiff{}, err
	}
	if err := destination.Validate(); err != nil {
		return ReleaseDiff{}, err
	}

	result := ReleaseDiff{
		SourceVersion:      source.Version,
		DestinationVersion: destination.Version,
	}
	result.Packages = DiffPackages(source.Packages, destination.Packages)
	result.Contents = d.contentDiffs(result.Packages.Matched)
	result.Variables = DiffVariables(source.Variables, destination.Variables)

	steps, err := DiffSteps(source.Steps, destination.Steps)
	if err != nil {
		return ReleaseDiff{}, fmt.Errorf("canonicalize step documents: %w", err)
	}
	result.Steps = steps
	return result, nil
}

// contentDiffs compares extracted trees for every version-changed match.
// Pairs are independent (disjoint trees, no shared mutable state), so they
// are fanned out over a bounded number of goroutines. Result order follows
// the match order regardless of completion order.
func (d *differ) contentDiffs(matched []PackageMatch) []PackageContentDiff {
	jobs := make([]PackageMatch, 0, len(matched))
	for _, m := range matched {
		if m.VersionChanged {
			jobs = append(jobs, m)
		}
	}
	if len(jobs) == 0 {
		return nil
	}

	results := make([]PackageContentDiff, len(jobs))
	var wg sync.WaitGroup
	sem := make(chan struct{}, d.concurrent)
	for i, job := range jobs {
		wg.Add(1)
		go func(i int, job PackageMatch) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i] = d.contentDiff(job)
		}(i, job)
	}
	wg.Wait()
	return results
}

func (d *differ) contentDiff(m PackageMatch) PackageContentDiff {
	result := PackageContentDiff{
		PackageID:          m.Destination.ID,
		SourceVersion:      m.Source.Version,
		DestinationVersion: m.Destination.Version,
	}
	switch {
	case !m.Source.FromBuiltInFeed || !m.Destination.FromBuiltInFeed:
		result.Unavailable = true
		result.Reason = "package is not sourced from the built-in feed"
	case m.Source.ExtractedPath == "" || m.Destination.ExtractedPath == "":
		result.Unavailable = true
		result.Reason = "package archive was not downloaded and extracted"
	default:
		content, err := DiffContents(
			afero.NewBasePathFs(d.baseFs, m.Source.ExtractedPath),
			afero.NewBasePathFs(d.baseFs, m.Destination.ExtractedPath),
		)
		if err != nil {
			d.l.Warn("content comparison failed",
				zap.String("package", m.Destination.ID),
				zap.Error(err),
			)
			result.Unavailable = true
			result.Reason = err.Error()
			break
		}
		result.Content = content
	}
	if result.Unavailable {
		d.l.Debug("package content not compared",
			zap.String("package", m.Destination.ID),
			zap.String("reason", result.Reason),
		)
	}
	return result
}
