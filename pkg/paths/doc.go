// Package paths models the two roots dotstash works between and the path
// references expressed relative to them.
//
// A Roots value is resolved once per invocation from an explicit lookup
// function; nothing in this package reads the process environment on its
// own.
//
// A Ref is a location plus the root variable it is expressed against. It has
// two concrete variants:
//
//   - HomeRef, rooted at the home directory (the link-bearing side)
//   - ArchiveRef, rooted at the archive directory (the versioned side)
//
// They differ only in their root and in one naming rule: a dotfile is stored
// "undotted" in the archive, so resolving a raw string on the archive side
// strips a single leading dot from its final path component.
//
// Every Ref has a canonical representation, "$VAR/relative/path", used as
// the registry key or value:
//
//	roots, _ := paths.NewRoots(lookup, "HOME", "DOTFILES")
//	home, _ := paths.Resolve("~/.bashrc", paths.HomeSide, roots)
//	home.Repr()    // $HOME/.bashrc
//	archive, _ := paths.Resolve(".bashrc", paths.ArchiveSide, roots)
//	archive.Repr() // $DOTFILES/bashrc
package paths
