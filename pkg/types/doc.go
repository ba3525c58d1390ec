// Package types holds the seams shared across dotstash (the filesystem and
// clock interfaces) and the result structures returned by every command.
package types
