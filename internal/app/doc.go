// Package app wires application dependencies for the CLI.
//
// It loads Config from YAML and the environment, builds the keystore
// context and the high-level services from it, and exposes them via the
// Wire struct for commands to use.
package app
