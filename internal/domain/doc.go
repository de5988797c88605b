// Package domain defines core data models and interfaces shared across the app.
// It contains plain types (entries, identities, results) and contracts
// (interfaces) only, plus the error sentinels every layer wraps.
package domain
