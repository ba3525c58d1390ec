// Package config loads dotstash configuration.
//
// Configuration is layered with koanf, later layers overriding earlier ones:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user config file, $XDG_CONFIG_HOME/dotstash/config.toml
//  3. DOTSTASH_* environment variables, sections separated by a double
//     underscore (DOTSTASH_VCS__COMMIT=false sets vcs.commit)
//
// The config directory itself can be moved with DOTSTASH_CONFIG_DIR.
//
// An optional dotenv file, $XDG_CONFIG_HOME/dotstash/env, contributes
// variables to root resolution (see Lookup). It never touches the process
// environment.
package config
