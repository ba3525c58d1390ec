// Package filesystem provides filesystem implementations for dotstash.
//
// This package contains the OS implementation of the types.FS interface
// and helpers built on top of it (Move, Exists, IsSymlink) that every
// command shares.
package filesystem
