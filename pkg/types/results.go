package types

// Relocation is one archive copy moved by a command.
type Relocation struct {
	Key  string `json:"key" yaml:"key"`
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// AddResult holds the result of the 'add' command.
type AddResult struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
	// Source is the home path that was archived. It differs from Key's path
	// when the given file was a symlink.
	Source    string `json:"source" yaml:"source"`
	Directory bool   `json:"directory" yaml:"directory"`
	// Backup is where a clashing archive entry was moved to.
	Backup string `json:"backup,omitempty" yaml:"backup,omitempty"`
	// Adopted lists the entries that moved below the new directory.
	Adopted []Relocation `json:"adopted,omitempty" yaml:"adopted,omitempty"`
	// Placed is set when the file was missing and was registered below an
	// already tracked directory instead of being moved.
	Placed bool   `json:"placed" yaml:"placed"`
	Commit string `json:"commit,omitempty" yaml:"commit,omitempty"`
}

// BackedUp is a home path moved aside before installing a link.
type BackedUp struct {
	Path   string `json:"path" yaml:"path"`
	Backup string `json:"backup" yaml:"backup"`
}

// InstallResult holds the result of the 'install' command.
type InstallResult struct {
	Installed []string   `json:"installed" yaml:"installed"`
	Unchanged []string   `json:"unchanged" yaml:"unchanged"`
	BackedUp  []BackedUp `json:"backedUp,omitempty" yaml:"backed_up,omitempty"`
}

// LinkResult holds the result of the 'link' command.
type LinkResult struct {
	Key    string `json:"key" yaml:"key"`
	Value  string `json:"value" yaml:"value"`
	Commit string `json:"commit,omitempty" yaml:"commit,omitempty"`
}

// UninstallResult holds the result of the 'uninstall' command.
type UninstallResult struct {
	Removed []string `json:"removed" yaml:"removed"`
}

// RemoveResult holds the result of the 'remove' command.
type RemoveResult struct {
	Key string `json:"key" yaml:"key"`
	// Restored is the home path the archive copy was moved back to.
	Restored string `json:"restored,omitempty" yaml:"restored,omitempty"`
	// Backup is where a file found at the home path was moved aside.
	Backup string `json:"backup,omitempty" yaml:"backup,omitempty"`
	// Unlinked lists the links and nested entries dropped along with the
	// entry.
	Unlinked  []string `json:"unlinked,omitempty" yaml:"unlinked,omitempty"`
	RuleFiles []string `json:"ruleFiles,omitempty" yaml:"rule_files,omitempty"`
	Commit    string   `json:"commit,omitempty" yaml:"commit,omitempty"`
}

// ListEntry is one registered pairing.
type ListEntry struct {
	Home   string `json:"home" yaml:"home"`
	Target string `json:"target" yaml:"target"`
	// Link marks custom links onto another home path.
	Link bool `json:"link" yaml:"link"`
}

// ListResult holds the result of the 'list' command.
type ListResult struct {
	Entries []ListEntry `json:"entries" yaml:"entries"`
}

// StatusChange is a pending change translated back to its home path.
type StatusChange struct {
	Code    string `json:"code" yaml:"code"`
	Home    string `json:"home" yaml:"home"`
	Archive string `json:"archive" yaml:"archive"`
}

// StatusResult holds the result of the 'status' command.
type StatusResult struct {
	// Scope is the home path asked about, empty for the whole archive.
	Scope   string         `json:"scope,omitempty" yaml:"scope,omitempty"`
	Changes []StatusChange `json:"changes" yaml:"changes"`
}

// CommitResult holds the result of the 'commit' command.
type CommitResult struct {
	Path    string `json:"path" yaml:"path"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
	Commit  string `json:"commit,omitempty" yaml:"commit,omitempty"`
	// NothingToCommit is set when the archive copy matches HEAD.
	NothingToCommit bool `json:"nothingToCommit" yaml:"nothing_to_commit"`
}

// UndoResult holds the result of the 'undo' command.
type UndoResult struct {
	Reverted string       `json:"reverted" yaml:"reverted"`
	Revision string       `json:"revision" yaml:"revision"`
	Moves    []Relocation `json:"moves,omitempty" yaml:"moves,omitempty"`
	Commit   string       `json:"commit,omitempty" yaml:"commit,omitempty"`
}

// CloneResult holds the result of the 'clone' command.
type CloneResult struct {
	URL    string `json:"url" yaml:"url"`
	Branch string `json:"branch,omitempty" yaml:"branch,omitempty"`
	Dir    string `json:"dir" yaml:"dir"`
}

// PushResult holds the result of the 'push' command.
type PushResult struct {
	Remote string `json:"remote" yaml:"remote"`
	Branch string `json:"branch" yaml:"branch"`
	// Pushed is false when there was nothing to push.
	Pushed bool `json:"pushed" yaml:"pushed"`
}
