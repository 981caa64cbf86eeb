// Package rhyme extracts rhyme keys from transcriptions and groups a
// wordlist into rhyme classes.
package rhyme
