// Package confloader loads layered configuration through koanf.
//
// Sources merge in priority order, later overriding earlier:
//
//  1. Defaults carried by the target struct
//  2. YAML configuration file
//  3. KEYMESH_ environment variables
//
// The package also provides an fsnotify-backed Watcher so settings
// that can change at runtime are re-read when the file is rewritten.
package confloader
