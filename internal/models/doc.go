// Package models lists the OpenAI and Gemini chat models that can serve as
// reference transcription providers.
package models
