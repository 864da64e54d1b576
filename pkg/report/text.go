// Copyright © 2018 One Concern

// Package report renders a reconciliation result, either as the plain-text
// inventory an operator reads or as the machine-readable output variables a
// pipeline consumes. It only formats: all comparison happens in core.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/oneconcern/reldiff/pkg/core"
)

const bannerRule = "======================================================================================="

var bannerColor = color.New(color.FgCyan)

// Text writes the operator-facing inventory of changes.
func Text(w io.Writer, d core.ReleaseDiff) {
	fmt.Fprintf(w, "Inventory of changes in release %s compared to release %s.\n",
		d.DestinationVersion, d.SourceVersion)

	banner(w, "Added and removed packages and changes to package content")
	packagesText(w, d)

	banner(w, "Changes between the steps")
	if d.Steps.Changed {
		fmt.Fprintln(w, d.Steps.Diff)
	}

	banner(w, "Added and removed variables, changes to variable values, and changes to variable scopes")
	variablesText(w, d)
}

func banner(w io.Writer, title string) {
	fmt.Fprintln(w)
	bannerColor.Fprintln(w, bannerRule)
	bannerColor.Fprintln(w, title)
	bannerColor.Fprintln(w, bannerRule)
}

func packagesText(w io.Writer, d core.ReleaseDiff) {
	for _, pkg := range d.Packages.Added {
		fmt.Fprintf(w, "Release %s added the package: %s\n", d.DestinationVersion, pkg.ID)
	}
	for _, pkg := range d.Packages.Removed {
		fmt.Fprintf(w, "Release %s removed the package: %s\n", d.DestinationVersion, pkg.ID)
	}
	for _, content := range d.Contents {
		contentText(w, d, content)
	}
}

func contentText(w io.Writer, d core.ReleaseDiff, c core.PackageContentDiff) {
	destination := c.PackageID + "." + c.DestinationVersion
	source := c.PackageID + "." + c.SourceVersion

	if c.Unavailable {
		fmt.Fprintf(w, "Package %s changed from %s, content unavailable (%s)\n",
			destination, source, c.Reason)
		return
	}
	if len(c.Content.AddedFiles) != 0 {
		fmt.Fprintf(w, "Release %s added the following files in %s compared to release %s with package %s:\n\t%s\n",
			d.DestinationVersion, destination, d.SourceVersion, source,
			strings.Join(c.Content.AddedFiles, "\n\t"))
	}
	if len(c.Content.RemovedFiles) != 0 {
		fmt.Fprintf(w, "Release %s removed the following files from %s compared to release %s with package %s:\n\t%s\n",
			d.DestinationVersion, destination, d.SourceVersion, source,
			strings.Join(c.Content.RemovedFiles, "\n\t"))
	}
	if len(c.Content.ChangedFiles) != 0 {
		paths := make([]string, 0, len(c.Content.ChangedFiles))
		for _, change := range c.Content.ChangedFiles {
			paths = append(paths, change.Path)
		}
		fmt.Fprintf(w, "Release %s changed the following files in package %s compared to release %s with package %s:\n\t%s\n",
			d.DestinationVersion, destination, d.SourceVersion, source,
			strings.Join(paths, "\n\t"))
		fmt.Fprintln(w)
		for _, change := range c.Content.ChangedFiles {
			switch {
			case change.Binary:
				fmt.Fprintf(w, "Binary file %s differs\n", change.Path)
			case change.Diff != "":
				fmt.Fprintf(w, "Diff of %s:\n%s", change.Path, change.Diff)
			}
		}
	}
}

func variablesText(w io.Writer, d core.ReleaseDiff) {
	for _, v := range d.Variables.Added {
		fmt.Fprintf(w, "Release %s added the variable: %s\n", d.DestinationVersion, v.Name)
	}
	for _, v := range d.Variables.Removed {
		fmt.Fprintf(w, "Release %s removed the variable: %s\n", d.DestinationVersion, v.Name)
	}
	for _, change := range d.Variables.Changed {
		fmt.Fprintf(w, "Release %s changed the value of the variable %q from %q to %q\n",
			d.DestinationVersion, change.Name, change.OldValue, change.Value)
	}
	for _, change := range d.Variables.ScopeChanged {
		// scope is structured, not textual: name-only notice
		fmt.Fprintf(w, "Release %s changed the scope of the variable %q\n",
			d.DestinationVersion, change.Name)
	}
}
