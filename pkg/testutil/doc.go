// Package testutil provides the fixtures shared by dotstash's command tests.
//
// Key components:
//   - TestEnvironment: a home directory and an archive root under t.TempDir(),
//     wired into a Workspace with a fake repository and a pinned clock
//   - FaultFS: wraps a types.FS and fails chosen operations on chosen paths
//   - assertions for links, files and registry contents
//
// Each test gets its own directories; nothing reads the real HOME.
package testutil
