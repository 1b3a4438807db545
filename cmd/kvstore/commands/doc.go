// Package commands defines the kvstore CLI and wires dependencies for subcommands.
//
// Commands
//
//   - get          Print the value stored under a key
//   - set          Store a key/value pair (--force replaces)
//   - remove       Delete a key/value pair
//   - init         Truncate the database to empty
//   - list         Print every entry
//   - import       Load KEY<TAB>VALUE lines from a file or stdin
//   - fingerprint  Print a digest of the database contents
//   - serve        Serve the database over HTTP
//
// # Implementation
//
// The root command loads the optional YAML config, applies flag overrides and
// builds an app.Wire before any subcommand runs. Every subcommand except serve
// is one open/operate/flush cycle on the backing file.
package commands
