// Package phonetic asks a remote language model for a reference IPA
// transcription of a Bulgarian word, so that rule-based output can be
// checked against it. OpenAI and Gemini are supported; every remote call goes
// through a circuit breaker.
package phonetic
