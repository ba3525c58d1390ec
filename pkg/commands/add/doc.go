// Package add implements the add command: it moves a home file or directory
// into the archive, resolving symlinked sources and archive name clashes,
// and keeps already tracked entries consistent when a directory that
// contains them is added later.
package add
