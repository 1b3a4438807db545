// Package app wires application dependencies for the CLI.
//
// It loads Config from an optional YAML file and builds the logger, the
// key/value service and store options from it, exposing them via Wire.
package app
