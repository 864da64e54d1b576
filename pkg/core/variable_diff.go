// Copyright © 2018 One Concern

package core

import (
	"github.com/oneconcern/reldiff/pkg/model"
)

// VariableChange reports a variable whose value changed between releases.
// Old and new values travel together so callers can render the transition
// without a second lookup.
type VariableChange struct {
	ID       string              `json:"id" yaml:"id"`
	Name     string              `json:"name" yaml:"name"`
	Value    string              `json:"value" yaml:"value"`
	OldValue string              `json:"oldValue" yaml:"oldValue"`
	Scope    model.VariableScope `json:"scope" yaml:"scope"`
}

// ScopeChange reports a variable whose applicability scope changed.
type ScopeChange struct {
	ID       string              `json:"id" yaml:"id"`
	Name     string              `json:"name" yaml:"name"`
	Scope    model.VariableScope `json:"scope" yaml:"scope"`
	OldScope model.VariableScope `json:"oldScope" yaml:"oldScope"`
}

// VariableDiff is the outcome of reconciling the variable sets of two releases.
type VariableDiff struct {
	Added        []model.Variable `json:"added,omitempty" yaml:"added,omitempty"`
	Removed      []model.Variable `json:"removed,omitempty" yaml:"removed,omitempty"`
	Changed      []VariableChange `json:"changed,omitempty" yaml:"changed,omitempty"`
	ScopeChanged []ScopeChange    `json:"scopeChanged,omitempty" yaml:"scopeChanged,omitempty"`
}

// DiffVariables reconciles two variable sets.
//
// Existence is keyed on Name while value and scope changes are keyed on ID.
// The asymmetry is deliberate: the upstream system instantiates one name per
// scope with independent ids, so a name can exist on both sides while a
// particular scoped instance was re-keyed. A variable under a fresh id with
// a preexisting name is therefore neither added nor changed.
//
// Variables sensitive on either side never enter Changed: their values are
// not to be surfaced, not even as "changed".
func DiffVariables(source, destination []model.Variable) VariableDiff {
	sourceNames := make(map[string]struct{}, len(source))
	sourceByID := make(map[string]model.Variable, len(source))
	for _, v := range source {
		sourceNames[v.Name] = struct{}{}
		if _, ok := sourceByID[v.ID]; !ok {
			sourceByID[v.ID] = v
		}
	}
	destinationNames := make(map[string]struct{}, len(destination))
	for _, v := range destination {
		destinationNames[v.Name] = struct{}{}
	}

	var diff VariableDiff
	for _, v := range destination {
		if _, ok := sourceNames[v.Name]; !ok {
			diff.Added = append(diff.Added, v)
		}
	}
	for _, v := range source {
		if _, ok := destinationNames[v.Name]; !ok {
			diff.Removed = append(diff.Removed, v)
		}
	}
	for _, v := range destination {
		src, ok := sourceByID[v.ID]
		if !ok {
			continue
		}
		if src.Value != v.Value && !src.IsSensitive && !v.IsSensitive {
			diff.Changed = append(diff.Changed, VariableChange{
				ID:       v.ID,
				Name:     v.Name,
				Value:    v.Value,
				OldValue: src.Value,
				Scope:    v.Scope,
			})
		}
		if !src.Scope.Equal(v.Scope) {
			diff.ScopeChanged = append(diff.ScopeChanged, ScopeChange{
				ID:       v.ID,
				Name:     v.Name,
				Scope:    v.Scope,
				OldScope: src.Scope,
			})
		}
	}
	return diff
}
