// Copyright © 2018 One Concern

// Package octopus talks to an Octopus Deploy style REST API: it resolves
// space and project names to identifiers, selects the pair of releases to
// compare, fetches the deployment process and variable set snapshotted with
// each release, flattens them into model snapshots, and downloads package
// archives from the built-in feed.
//
// Every request is retried a bounded number of times with a fixed backoff,
// since release data is only eventually consistent right after a deployment
// pipeline event.
package octopus
