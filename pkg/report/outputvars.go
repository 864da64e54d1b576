// Copyright © 2018 One Concern

package report

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/oneconcern/reldiff/pkg/core"
	"github.com/oneconcern/reldiff/pkg/model"
)

// OutputVariables writes one service message per reconciliation category,
// in the format the pipeline's variable store ingests:
//
//	##octopus[setVariable name='<base64>' value='<base64>']
//
// Keys involving packages or files are namespaced by package id and path so
// multiple packages in one run do not collide.
func OutputVariables(w io.Writer, d core.ReleaseDiff) {
	setVariable(w, "Packages.Added", strings.Join(packageIDs(d.Packages.Added), ","))
	setVariable(w, "Packages.Removed", strings.Join(packageIDs(d.Packages.Removed), ","))

	for _, content := range d.Contents {
		if content.Unavailable {
			continue
		}
		prefix := "Files[" + content.PackageID + "]"
		setVariable(w, prefix+".Added", strings.Join(content.Content.AddedFiles, ","))
		setVariable(w, prefix+".Removed", strings.Join(content.Content.RemovedFiles, ","))

		paths := make([]string, 0, len(content.Content.ChangedFiles))
		for _, change := range content.Content.ChangedFiles {
			paths = append(paths, change.Path)
		}
		setVariable(w, prefix+".Changed", strings.Join(paths, ","))

		for _, change := range content.Content.ChangedFiles {
			if change.Binary || change.Diff == "" {
				continue
			}
			setVariable(w, "FileDiff["+content.PackageID+"].Files["+change.Path+"].Diff", change.Diff)
		}
	}

	setVariable(w, "Variables.Added", strings.Join(variableNames(d.Variables.Added), ","))
	setVariable(w, "Variables.Removed", strings.Join(variableNames(d.Variables.Removed), ","))

	changedNames := make([]string, 0, len(d.Variables.Changed))
	for _, change := range d.Variables.Changed {
		changedNames = append(changedNames, change.Name)
	}
	setVariable(w, "Variables.Changed", strings.Join(changedNames, ","))
	for name, changes := range changesByName(d.Variables.Changed) {
		for i, change := range changes {
			if payload, err := json.Marshal(change); err == nil {
				setVariable(w, fmt.Sprintf("Variables[%s %d].Changed", name, i), string(payload))
			}
		}
	}

	scopeChangedNames := make([]string, 0, len(d.Variables.ScopeChanged))
	for _, change := range d.Variables.ScopeChanged {
		scopeChangedNames = append(scopeChangedNames, change.Name)
	}
	setVariable(w, "Variables.ScopeChanged", strings.Join(scopeChangedNames, ","))
	for name, changes := range scopeChangesByName(d.Variables.ScopeChanged) {
		for i, change := range changes {
			if payload, err := json.Marshal(change); err == nil {
				setVariable(w, fmt.Sprintf("Variables[%s %d].ScopeChanged", name, i), string(payload))
			}
		}
	}

	if d.Steps.Changed {
		setVariable(w, "Steps.Changed", d.Steps.Diff)
	}
}

func setVariable(w io.Writer, name, value string) {
	fmt.Fprintf(w, "##octopus[setVariable name='%s' value='%s']\n",
		base64.StdEncoding.EncodeToString([]byte(name)),
		base64.StdEncoding.EncodeToString([]byte(value)))
}

func packageIDs(pkgs []model.PackageRef) []string {
	ids := make([]string, 0, len(pkgs))
	for _, pkg := range pkgs {
		ids = append(ids, pkg.ID)
	}
	return ids
}

func variableNames(vars []model.Variable) []string {
	names := make([]string, 0, len(vars))
	for _, v := range vars {
		names = append(names, v.Name)
	}
	return names
}

func changesByName(changes []core.VariableChange) map[string][]core.VariableChange {
	byName := make(map[string][]core.VariableChange)
	for _, change := range changes {
		byName[change.Name] = append(byName[change.Name], change)
	}
	return byName
}

func scopeChangesByName(changes []core.ScopeChange) map[string][]core.ScopeChange {
	byName := make(map[string][]core.ScopeChange)
	for _, change := range changes {
		byName[change.Name] = append(byName[change.Name], change)
	}
	return byName
}
