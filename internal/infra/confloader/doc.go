// Package confloader loads layered configuration with koanf and watches
// configuration files with fsnotify.
//
// Priority (highest to lowest):
//
//  1. Explicit overrides (LoadMap, typically from command-line flags)
//  2. Environment variables (YGGAUTH_ prefix, "__" separates sections)
//  3. Configuration file (YAML)
//  4. Defaults already present in the target struct
package confloader
