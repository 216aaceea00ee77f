// Package config provides user configuration management for diskmgr.
//
// Settings live in a YAML file: the display width cap, the color palette,
// the lsblk column set, badblocks scan parameters and the timeout applied to
// external commands. Every setting has a default, so the file is optional
// and may list only what it overrides.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/diskmgr/config.yaml or $HOME/.config/diskmgr/config.yaml
//   - macOS: $HOME/.config/diskmgr/config.yaml
//   - Windows: %LOCALAPPDATA%\diskmgr\config.yaml
//
// SetPath replaces the location, which is how --config is implemented.
//
// # Example
//
//	version: 1
//	display:
//	  max_width: 100
//	badblocks:
//	  block_size: 4096
//	  passes: 2
//	commands:
//	  timeout: 45s
//
// # Thread Safety
//
// The global config uses sync.Once for safe initialization across goroutines.
// File operations are protected by a mutex to ensure atomic writes.
package config
