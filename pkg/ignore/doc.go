// Package ignore maintains the gitignore rule files that keep a tracked
// directory's contents out of version control unless an entry is carved out
// of it.
//
// A directory added to the archive is seeded with
//
//	*
//	!.gitignore
//
// and every nested entry later placed below it re-includes its own path one
// directory level at a time with anchored negations such as "!/nvim/" and
// "!/init.vim".
package ignore
