// Package entity defines the domain models for the settings feature.
package entity

// KeySource names where the active API key was found.
type KeySource string

const (
	KeySourceNone   KeySource = "none"
	KeySourceStore  KeySource = "store"
	KeySourceConfig KeySource = "config"
	KeySourceSSM    KeySource = "ssm"
)

// Settings is a read-only view of the live-data settings. The key is never exposed in full.
type Settings struct {
	APIKeyMasked string    // "****" followed by the last four characters, empty when unset
	KeySource    KeySource // Where the key came from
	DemoMode     bool      // Live fetching disabled by the user
	Live         bool      // A key is configured and demo mode is off
}
