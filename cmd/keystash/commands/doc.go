// Package commands defines the keystash CLI and wires dependencies for subcommands.
//
// Commands
//
//   - init              Create the keystore, or check its password
//   - list              List stored aliases
//   - delete            Remove an entry
//   - secret put|get    Store or read a symmetric secret
//   - cert issue        Generate a key pair and a self-signed certificate
//   - cert show         Print certificate details
//   - cert keys         Print the base64 DER keys of a stored key pair
//   - cert export       Write a certificate text file
//   - cert p12|jks      Export a stored key pair
//   - cert truststore   Write a JKS trust store for a certificate
//   - sign, verify      Sign with a stored key, verify with its certificate
//   - encrypt, decrypt  RSA with base64 DER keys
//
// # Implementation
//
// The root command loads the YAML config, applies flag and environment
// overrides and builds the dependency graph before any subcommand runs.
// Commands that touch the keystore bind it on first use. Binary values
// (signatures, keys, ciphertexts) are read and printed as base64.
package commands
