package config

// Config is the effective dotstash configuration.
type Config struct {
	Roots    RootsConfig    `koanf:"roots" toml:"roots"`
	Registry RegistryConfig `koanf:"registry" toml:"registry"`
	Ignore   IgnoreConfig   `koanf:"ignore" toml:"ignore"`
	VCS      VCSConfig      `koanf:"vcs" toml:"vcs"`
	History  HistoryConfig  `koanf:"history" toml:"history"`
	Backup   BackupConfig   `koanf:"backup" toml:"backup"`
	Install  InstallConfig  `koanf:"install" toml:"install"`
}

// RootsConfig names the environment variables that define the two roots.
type RootsConfig struct {
	HomeVar    string `koanf:"home_var" toml:"home_var"`
	ArchiveVar string `koanf:"archive_var" toml:"archive_var"`
}

// RegistryConfig locates the registry file inside the archive root.
type RegistryConfig struct {
	File string `koanf:"file" toml:"file"`
}

// IgnoreConfig names the per-directory ignore rule file.
type IgnoreConfig struct {
	File string `koanf:"file" toml:"file"`
}

// VCSConfig configures the version-control collaborator.
type VCSConfig struct {
	Binary string `koanf:"binary" toml:"binary"`
	Commit bool   `koanf:"commit" toml:"commit"`
	Remote string `koanf:"remote" toml:"remote"`
	Branch string `koanf:"branch" toml:"branch"`
}

// HistoryConfig locates the action journal inside the archive root.
type HistoryConfig struct {
	File string `koanf:"file" toml:"file"`
}

// BackupConfig controls backup naming.
type BackupConfig struct {
	TimeFormat string `koanf:"time_format" toml:"time_format"`
}

// InstallConfig bounds the symlink retry loop.
type InstallConfig struct {
	MaxAttempts int `koanf:"max_attempts" toml:"max_attempts"`
}
