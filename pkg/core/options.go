// Copyright © 2018 One Concern

package core

import (
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const defaultConcurrentContentDiffs = 4

// DiffOption is a functor to configure a release diff run
type DiffOption func(*differ)

type differ struct {
	l          *zap.Logger
	baseFs     afero.Fs
	concurrent int
}

// Logger sets a logger on the diff run (default is no logging)
func Logger(l *zap.Logger) DiffOption {
	return func(d *differ) {
		if l != nil {
			d.l = l
		}
	}
}

// ContentBase sets the filesystem the extracted package trees live on.
// The default is the OS filesystem; tests pass a memory backed one.
func ContentBase(fs afero.Fs) DiffOption {
	return func(d *differ) {
		if fs != nil {
			d.baseFs = fs
		}
	}
}

// ConcurrentContentDiffs caps how many package content comparisons run in
// parallel. Values below 1 disable parallelism.
func ConcurrentContentDiffs(n int) DiffOption {
	return func(d *differ) {
		if n < 1 {
			n = 1
		}
		d.concurrent = n
	}
}

func newDiffer(opts ...DiffOption) *differ {
	d := &differ{
		l:          zap.NewNop(),
		baseFs:     afero.NewOsFs(),
		concurrent: defaultConcurrentContentDiffs,
	}
	for _, apply := range opts {
		apply(d)
	}
	return d
}
