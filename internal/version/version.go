// Package version provides build and version information.
package version

// Version is the current application version.
// Update this at logical milestones.
const Version = "0.2.0"

// Milestones:
// 0.1.0 - Version bump form with patch notes, unity settings backend
// 0.2.0 - TOML/INI backends, settings watcher, history and bump commands
// 1.0.0 - (planned) Feature-complete public release
