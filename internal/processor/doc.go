// Package processor contains the work behind each bgrhyme subcommand. It
// ties transcription, rhyme and anagram builds, export, archiving, the
// reference check, wiki pages and the HTTP API to the parsed flags.
package processor
