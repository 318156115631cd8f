// Package config loads settings for bloco.
//
// Sources, lowest priority first:
//  1. Built-in defaults
//  2. Config file: --config, $BLOCO_CONFIG, ./bloco.toml, or the user
//     config dir ($XDG_CONFIG_HOME/bloco/bloco.toml, ~/.config/bloco/bloco.toml)
//  3. Environment variables (BLOCO_*)
//  4. CLI flags
package config
