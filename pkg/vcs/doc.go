// Package vcs wraps the version control system that records the archive's
// history. Git shells out to the git binary; Fake records calls for tests.
package vcs
