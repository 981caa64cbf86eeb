package transcribe

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Options selects the optional normalization modes.
type Options struct {
	// EndSchwa turns a stressed word-final "а" (optionally followed by "т")
	// into a schwa, as in verbal and definite-article endings.
	EndSchwa bool

	// SchwaSignal rewrites an under-dotted "а"/"я" into its schwa counterpart.
	SchwaSignal bool
}

// DefaultOptions returns the options used for dictionary headwords.
func DefaultOptions() Options {
	return Options{SchwaSignal: true}
}

// Rule is a named rewrite step over a Buffer.
type Rule struct {
	Name  string
	Apply func(Buffer) Buffer
}

// Transcriber runs the transcription pipeline. It is safe for concurrent use.
type Transcriber struct {
	tables      *Tables
	opts        Options
	stressRules []Rule
	reduced     map[string]bool
}

// NewTranscriber creates a transcriber over the given tables. A nil tables
// value selects DefaultTables.
func NewTranscriber(tables *Tables, opts Options) *Transcriber {
	if tables == nil {
		tables = DefaultTables()
	}
	tr := &Transcriber{
		tables:  tables,
		opts:    opts,
		reduced: make(map[string]bool),
	}
	for _, v := range tables.Reduction {
		tr.reduced[v] = true
	}
	tr.stressRules = tr.buildStressRules()
	return tr
}

// Tables returns the tables the transcriber was built with.
func (tr *Transcriber) Tables() *Tables {
	return tr.tables
}

// Stages holds the buffer after every pipeline stage.
type Stages struct {
	Normalized  string
	Stressed    string
	Reduced     string
	Assimilated string
	Output      string
}

// Transcribe converts one orthographic word (or space separated phrase) into
// its phonemic form.
func (tr *Transcriber) Transcribe(word string) (string, error) {
	st, err := tr.Trace(word)
	if err != nil {
		return "", err
	}
	return st.Output, nil
}

// Trace runs the pipeline and records every intermediate buffer.
func (tr *Transcriber) Trace(word string) (*Stages, error) {
	buf, err := tr.Normalize(word)
	if err != nil {
		return nil, fmt.Errorf("transcribe %q: %w", word, err)
	}
	st := &Stages{Normalized: buf.String()}

	buf = tr.ResolveStress(buf)
	st.Stressed = buf.String()

	buf = tr.Reduce(buf, tr.tables.CountVowelLetters(Fold(word)))
	st.Reduced = buf.String()

	buf = tr.Assimilate(buf)
	st.Assimilated = buf.String()
	st.Output = buf.Render()
	return st, nil
}

// Fold lower-cases and composes a word.
func Fold(word string) string {
	return norm.NFC.String(cases.Lower(language.Bulgarian).String(word))
}
