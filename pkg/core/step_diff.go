// Copyright © 2018 One Concern

package core

import (
	"github.com/pmezard/go-difflib/difflib"

	"github.com/oneconcern/reldiff/pkg/model"
)

// StepDiff is the outcome of comparing the deployment process documents of
// two releases. The comparison is deliberately coarse: the canonical forms
// of the whole documents are diffed as text, with no attempt to attribute
// the change to an individual step or field.
type StepDiff struct {
	Changed bool   `json:"changed" yaml:"changed"`
	Diff    string `json:"diff,omitempty" yaml:"diff,omitempty"`
}

// DiffSteps canonicalizes both step documents and compares them for byte
// equality. On inequality the result carries a unified diff of the two
// canonical texts with three lines of context.
func DiffSteps(source, destination model.StepsDocument) (StepDiff, error) {
	src, err := source.Canonical()
	if err != nil {
		return StepDiff{}, err
	}
	dst, err := destination.Canonical()
	if err != nil {
		return StepDiff{}, err
	}
	if src == dst {
		return StepDiff{}, nil
	}
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(src),
		B:        difflib.SplitLines(dst),
		FromFile: "a/steps",
		ToFile:   "b/steps",
		Context:  3,
	})
	if err != nil {
		return StepDiff{}, err
	}
	return StepDiff{Changed: true, Diff: text}, nil
}
