/*
Package reldiff provides CLI tooling to compare two releases of a
deployment project.

The primary goal of reldiff is to produce, ahead of a promotion, a complete
inventory of what changed between two releases: the packages a release
pins, the files inside those packages, the deployment steps, and the
project variables with their scopes.
*/
package reldiff
