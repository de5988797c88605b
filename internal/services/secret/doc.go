// Package secret stores and retrieves opaque symmetric secrets in the bound keystore.
package secret
