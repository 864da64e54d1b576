// Copyright © 2018 One Concern

// Package model describes the comparable state of a release:
// the packages it references, the variables snapshotted with it
// and its deployment process document.
//
// Types in this package are pure data. They are populated once by the
// upstream client, after which reconcilers only read them. The single
// exception is the archive and extraction paths on PackageRef, which the
// workspace attaches before content reconciliation runs.
package model
