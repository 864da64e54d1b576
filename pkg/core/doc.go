// Copyright © 2018 One Concern

// Package core implements the release reconciliation engine: set diffs over
// packages and variables, a whole-document diff over the deployment process,
// file tree diffs over extracted package content, and the driver that runs
// them over a pair of release snapshots.
//
// Every reconciler is a pure function over already materialized data and
// returns a structured result. Rendering is left to callers.
package core
