// Copyright © 2018 One Concern

// Package workspace owns the run-scoped temporary directory a comparison
// works in: downloaded package archives and the trees extracted from them.
// Everything is removed when the workspace closes, on every exit path.
package workspace

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Workspace is the scratch area of one comparison run.
type Workspace struct {
	root      string
	l         *zap.Logger
	extracted map[string]string
}

// Option is a functor to build a workspace with some options
type Option func(*Workspace)

// WithLogger sets a logger on the workspace (default is no logging)
func WithLogger(l *zap.Logger) Option {
	return func(w *Workspace) {
		if l != nil {
			w.l = l
		}
	}
}

// New creates the run-scoped temporary directory.
func New(opts ...Option) (*Workspace, error) {
	root, err := os.MkdirTemp("", "reldiff-")
	if err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	w := &Workspace{
		root:      root,
		l:         zap.NewNop(),
		extracted: make(map[string]string),
	}
	for _, apply := range opts {
		apply(w)
	}
	return w, nil
}

// Dir is where package archives are downloaded to.
func (w *Workspace) Dir() string {
	return w.root
}

// Extract unzips archive into the workspace and returns the extraction
// directory. Extracting the same archive again reuses the earlier tree, so
// a package shared by both releases is only unpacked once.
func (w *Workspace) Extract(archive string) (string, error) {
	if dir, ok := w.extracted[archive]; ok {
		return dir, nil
	}
	stem := strings.TrimSuffix(filepath.Base(archive), filepath.Ext(archive))
	dir := filepath.Join(w.root, stem)
	if err := unzip(archive, dir); err != nil {
		return "", fmt.Errorf("extract %s: %w", archive, err)
	}
	w.l.Debug("extracted archive", zap.String("archive", archive), zap.String("dir", dir))
	w.extracted[archive] = dir
	return dir, nil
}

// Close removes the workspace and everything in it.
func (w *Workspace) Close() error {
	return os.RemoveAll(w.root)
}

func unzip(archive, dir string) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer func() { _ = r.Close() }()

	for _, f := range r.File {
		target, err := sanitizeExtractPath(dir, f.Name)
		if err != nil {
			return err
		}
		if f.FileInfo().IsDir() {
			if err = os.MkdirAll(target, 0700); err != nil {
				return err
			}
			continue
		}
		if err = os.MkdirAll(filepath.Dir(target), 0700); err != nil {
			return err
		}
		if err = extractFile(f, target); err != nil {
			return err
		}
	}
	return nil
}

func extractFile(f *zip.File, target string) error {
	in, err := f.Open()
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	if _, err = io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// sanitizeExtractPath rejects archive members that would escape the
// extraction directory (zip slip).
func sanitizeExtractPath(dir, name string) (string, error) {
	target := filepath.Join(dir, filepath.FromSlash(name))
	if target != dir && !strings.HasPrefix(target, dir+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive member %q escapes extraction directory", name)
	}
	return target, nil
}
