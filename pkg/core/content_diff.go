// Copyright © 2018 One Concern

package core

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/afero"
)

// binarySniffLen bounds how much of a file is inspected for a NUL byte when
// deciding whether it is binary, following the usual diff-tool convention.
const binarySniffLen = 8000

// FileChange reports one path present in both trees with differing content.
// Diff is empty for binary files and for paths whose type flipped between
// file and directory.
type FileChange struct {
	Path   string `json:"path" yaml:"path"`
	Binary bool   `json:"binary,omitempty" yaml:"binary,omitempty"`
	Diff   string `json:"diff,omitempty" yaml:"diff,omitempty"`
}

// ContentDiff is the outcome of comparing two extracted package trees.
// Paths are relative to the tree roots, slash-separated, sorted.
type ContentDiff struct {
	AddedFiles   []string     `json:"addedFiles,omitempty" yaml:"addedFiles,omitempty"`
	RemovedFiles []string     `json:"removedFiles,omitempty" yaml:"removedFiles,omitempty"`
	ChangedFiles []FileChange `json:"changedFiles,omitempty" yaml:"changedFiles,omitempty"`
}

// IsEmpty reports whether the two trees were identical.
func (c ContentDiff) IsEmpty() bool {
	return len(c.AddedFiles) == 0 && len(c.RemovedFiles) == 0 && len(c.ChangedFiles) == 0
}

// DiffContents compares two extracted package trees recursively.
//
// Files only in the destination tree are added, files only in the source
// tree are removed, and files present in both with different content are
// changed. A path that is a file on one side and a directory on the other
// counts as changed. Changed text pairs carry a unified diff; a pair with a
// binary member is reported by path only.
func DiffContents(source, destination afero.Fs) (ContentDiff, error) {
	sourceEntries, err := collectEntries(source)
	if err != nil {
		return ContentDiff{}, err
	}
	destinationEntries, err := collectEntries(destination)
	if err != nil {
		return ContentDiff{}, err
	}

	var diff ContentDiff
	for path, isDir := range destinationEntries {
		if _, ok := sourceEntries[path]; !ok && !isDir {
			diff.AddedFiles = append(diff.AddedFiles, path)
		}
	}
	for path, isDir := range sourceEntries {
		if _, ok := destinationEntries[path]; !ok && !isDir {
			diff.RemovedFiles = append(diff.RemovedFiles, path)
		}
	}
	sort.Strings(diff.AddedFiles)
	sort.Strings(diff.RemovedFiles)

	common := make([]string, 0, len(destinationEntries))
	for path := range destinationEntries {
		if _, ok := sourceEntries[path]; ok {
			common = append(common, path)
		}
	}
	sort.Strings(common)

	for _, path := range common {
		srcIsDir, dstIsDir := sourceEntries[path], destinationEntries[path]
		if srcIsDir != dstIsDir {
			// file became directory or the reverse
			diff.ChangedFiles = append(diff.ChangedFiles, FileChange{Path: path})
			continue
		}
		if srcIsDir {
			continue
		}
		change, changed, cmpErr := compareFiles(source, destination, path)
		if cmpErr != nil {
			return ContentDiff{}, cmpErr
		}
		if changed {
			diff.ChangedFiles = append(diff.ChangedFiles, change)
		}
	}
	return diff, nil
}

func compareFiles(source, destination afero.Fs, path string) (FileChange, bool, error) {
	srcContent, err := afero.ReadFile(source, "/"+path)
	if err != nil {
		return FileChange{}, false, err
	}
	dstContent, err := afero.ReadFile(destination, "/"+path)
	if err != nil {
		return FileChange{}, false, err
	}
	if bytes.Equal(srcContent, dstContent) {
		return FileChange{}, false, nil
	}
	if isBinary(srcContent) || isBinary(dstContent) {
		return FileChange{Path: path, Binary: true}, true, nil
	}
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(srcContent)),
		B:        difflib.SplitLines(string(dstContent)),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  3,
	})
	if err != nil {
		return FileChange{}, false, err
	}
	return FileChange{Path: path, Diff: text}, true, nil
}

func collectEntries(fs afero.Fs) (map[string]bool, error) {
	entries := make(map[string]bool)
	err := afero.Walk(fs, "/", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel := strings.TrimPrefix(filepath.ToSlash(path), "/")
		if rel == "" || rel == "." {
			return nil
		}
		entries[rel] = info.IsDir()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func isBinary(content []byte) bool {
	if len(content) > binarySniffLen {
		content = content[:binarySniffLen]
	}
	return bytes.IndexByte(content, 0) >= 0
}
