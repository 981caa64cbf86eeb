package transcribe

import "strings"

// Kind classifies a token in a phonemic buffer.
type Kind int

const (
	KindOther Kind = iota
	KindVowel
	KindConsonant
	KindGlide // j and the palatalization mark ʲ
	KindTie
	KindPrimary
	KindSecondary
	KindBoundary
	KindSyllableBreak
	KindSeparator
)

// IPA symbols used by the rule set.
const (
	Primary     = "\u02c8"
	Secondary   = "\u02cc"
	Tie         = "\u0361"
	FrontedMark = "\u031f"
	Palatal     = "\u02b2"
	Boundary    = "#"
)

// Token is one element of a Buffer.
type Token struct {
	Sym     string
	Kind    Kind
	Fronted bool
}

// IsStress reports whether the token is a primary or secondary stress marker.
func (t Token) IsStress() bool {
	return t.Kind == KindPrimary || t.Kind == KindSecondary
}

// IsConsonantal matches the consonant class used by the stress rules, which
// also covers glides and the tie bar.
func (t Token) IsConsonantal() bool {
	return t.Kind == KindConsonant || t.Kind == KindGlide || t.Kind == KindTie
}

// In reports whether the token symbol is one of the runes in set.
func (t Token) In(set string) bool {
	if t.Sym == "" || t.Kind == KindBoundary || t.Kind == KindSeparator || t.Kind == KindOther {
		return false
	}
	return len([]rune(t.Sym)) == 1 && strings.Contains(set, t.Sym)
}

// Buffer is the working representation of a word during transcription.
type Buffer []Token

// Clone returns an independent copy of b.
func (b Buffer) Clone() Buffer {
	out := make(Buffer, len(b))
	copy(out, b)
	return out
}

// at returns the token at i, or a zero Token when i is out of range.
func (b Buffer) at(i int) Token {
	if i < 0 || i >= len(b) {
		return Token{}
	}
	return b[i]
}

// Count returns the number of tokens of the given kind.
func (b Buffer) Count(kind Kind) int {
	n := 0
	for _, t := range b {
		if t.Kind == kind {
			n++
		}
	}
	return n
}

// String renders the buffer, including sentinels, in IPA.
func (b Buffer) String() string {
	var sb strings.Builder
	for _, t := range b {
		sb.WriteString(t.Sym)
		if t.Fronted {
			sb.WriteString(FrontedMark)
		}
	}
	return sb.String()
}

// Render returns the final phonemic string: sentinels and syllable breaks are
// dropped.
func (b Buffer) Render() string {
	var sb strings.Builder
	for _, t := range b {
		if t.Kind == KindBoundary || t.Kind == KindSyllableBreak {
			continue
		}
		sb.WriteString(t.Sym)
		if t.Fronted {
			sb.WriteString(FrontedMark)
		}
	}
	return sb.String()
}

// without returns b with every token of the given kind removed.
func (b Buffer) without(kind Kind) Buffer {
	out := make(Buffer, 0, len(b))
	for _, t := range b {
		if t.Kind != kind {
			out = append(out, t)
		}
	}
	return out
}

// move relocates the token at from so that it ends up immediately before the
// token currently at to (to may equal len(b)).
func (b Buffer) move(from, to int) Buffer {
	if from == to || from+1 == to {
		return b
	}
	t := b[from]
	if from < to {
		copy(b[from:to-1], b[from+1:to])
		b[to-1] = t
		return b
	}
	copy(b[to+1:from+1], b[to:from])
	b[to] = t
	return b
}
