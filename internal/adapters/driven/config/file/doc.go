// Package file provides a file-based implementation of the ConfigStore
// driven port. Configuration is persisted as TOML in the retriva config
// directory and flattened to dot-notation keys for lookup.
package file
