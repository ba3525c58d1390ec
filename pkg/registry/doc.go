// Package registry keeps the ordered list of managed pairings, keyed by the
// canonical home-side reference and persisted as an INI file in the archive
// root:
//
//	$HOME/.bashrc = $DOTFILES/bashrc
//	$HOME/.config = $DOTFILES/config
//	$HOME/.gvimrc = $HOME/.vimrc
//
// Every mutation is written through to the Store before it returns.
package registry
