// Package batch reads wordlist files and validates their entries.
package batch
