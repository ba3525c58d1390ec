package vcs

// Change is one line of a porcelain status: a two letter code and a path
// relative to the repository root.
type Change struct {
	Code string
	Path string
}

// Repository is everything the commands need from version control.
type Repository interface {
	// Dir is the working tree root.
	Dir() string
	IsRepo() bool
	Init() error

	// Commit stages paths (additions, modifications and deletions) and
	// commits them. With nothing staged it returns the current head and no
	// error.
	Commit(message string, paths ...string) (string, error)
	// Head is the short id of HEAD.
	Head() (string, error)
	// Revision is the short id of an arbitrary revision such as "HEAD^".
	Revision(rev string) (string, error)
	HeadMessage() (string, error)
	CheckoutFile(rev, path string) error
	// Added lists the files HEAD tracks and rev does not, as absolute paths.
	Added(rev string) ([]string, error)
	// Untrack drops paths from the index and leaves them on disk.
	Untrack(paths ...string) error
	// Changed reports whether path differs from HEAD.
	Changed(path string) (bool, error)
	Status(path string) ([]Change, error)

	Clone(url, branch string) error
	SetRemote(name, url string) error
	RemoteURL(name string) (string, error)
	CurrentBranch() (string, error)
	// UpToDate reports whether the current branch has nothing to push.
	UpToDate() (bool, error)
	Push(remote, branch string) error
}
