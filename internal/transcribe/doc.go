// Package transcribe converts Bulgarian orthography into a phonemic IPA
// string. A word is normalized into a token buffer, its stress mark is moved
// to the onset of the stressed syllable, unstressed vowels are reduced and
// consonant assimilation rules are applied.
package transcribe
