package transcribe

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Normalize maps an orthographic word onto a phonemic buffer framed by
// boundary sentinels. Stress marks stay where they were written, right after
// the stressed vowel.
func (tr *Transcriber) Normalize(word string) (Buffer, error) {
	word = strings.TrimSpace(word)
	// ѝ is the letter и; decomposed it would read as a grave accent.
	word = strings.ReplaceAll(cases.Lower(language.Bulgarian).String(word), "ѝ", "и")
	runes := []rune(norm.NFD.String(word))
	runes = recompose(runes)

	if containsRune(runes, combGrave) && !containsRune(runes, combAcute) {
		return nil, ErrFormat
	}

	buf := Buffer{{Sym: Boundary, Kind: KindBoundary}}
	for i := 0; i < len(runes); i++ {
		r := runes[i]

		switch {
		case isSeparator(r):
			j := i
			buf = append(buf, Token{Sym: Boundary, Kind: KindBoundary})
			for j < len(runes) && isSeparator(runes[j]) {
				buf = append(buf, Token{Sym: string(runes[j]), Kind: KindSeparator})
				j++
			}
			buf = append(buf, Token{Sym: Boundary, Kind: KindBoundary})
			i = j - 1
			continue
		case isSyllableBreak(r):
			buf = append(buf, Token{Sym: string(r), Kind: KindSyllableBreak})
			continue
		case r == combDotBelow:
			// Only meaningful after а/я in schwa-signal mode.
			continue
		}

		if tr.opts.SchwaSignal && (r == 'а' || r == 'я') {
			if end, ok := dottedCluster(runes, i+1); ok {
				if r == 'я' {
					buf = append(buf, tr.tables.token(Palatal))
				}
				buf = append(buf, tr.tables.token("ɤ"))
				for _, m := range runes[i+1 : end] {
					if m != combDotBelow {
						buf = tr.appendLetter(buf, m)
					}
				}
				i = end - 1
				continue
			}
		}

		buf = tr.appendLetter(buf, r)
	}
	buf = append(buf, Token{Sym: Boundary, Kind: KindBoundary})

	if tr.opts.EndSchwa {
		buf = endSchwa(buf)
	}
	return palatalGlides(buf), nil
}

// appendLetter appends the phonemes of r, or r itself as an opaque token when
// the letter table has no entry for it.
func (tr *Transcriber) appendLetter(buf Buffer, r rune) Buffer {
	syms, ok := tr.tables.Letters[r]
	if !ok {
		return append(buf, Token{Sym: string(r), Kind: KindOther})
	}
	for _, s := range syms {
		buf = append(buf, tr.tables.token(s))
	}
	return buf
}

// recompose folds the breve back into ў and й after decomposition.
func recompose(runes []rune) []rune {
	out := make([]rune, 0, len(runes))
	for i := 0; i < len(runes); i++ {
		if i+1 < len(runes) && runes[i+1] == combBreve {
			switch runes[i] {
			case 'у':
				out = append(out, 'ў')
				i++
				continue
			case 'и':
				out = append(out, 'й')
				i++
				continue
			}
		}
		out = append(out, runes[i])
	}
	return out
}

// dottedCluster reports whether the run of combining marks starting at from
// contains an under-dot, and returns the index just past the run.
func dottedCluster(runes []rune, from int) (int, bool) {
	end := from
	dotted := false
	for end < len(runes) {
		switch runes[end] {
		case combDotBelow:
			dotted = true
		case combAcute, combGrave:
		default:
			return end, dotted
		}
		end++
	}
	return end, dotted
}

// endSchwa rewrites a ˈ(t)# ending into ɤˈ(t)#.
func endSchwa(b Buffer) Buffer {
	for i := 0; i+2 < len(b); i++ {
		if b[i].Sym != "a" || b[i+1].Kind != KindPrimary {
			continue
		}
		k := i + 2
		if b[k].Sym == "t" {
			k++
		}
		if b.at(k).Kind == KindBoundary {
			b[i].Sym = "ɤ"
		}
	}
	return b
}

// palatalGlides turns ʲ into j when it follows a vowel or a word edge,
// optionally with a stress mark in between.
func palatalGlides(b Buffer) Buffer {
	for i, t := range b {
		if t.Sym != Palatal {
			continue
		}
		prev := b.at(i - 1)
		if prev.IsStress() {
			prev = b.at(i - 2)
		}
		if prev.Kind == KindVowel || prev.Kind == KindBoundary {
			b[i].Sym = "j"
		}
	}
	return b
}

func isSeparator(r rune) bool {
	return unicode.IsSpace(r) || r == '-'
}

func isSyllableBreak(r rune) bool {
	return r == '.' || r == '·' || r == '‧'
}

func containsRune(runes []rune, r rune) bool {
	for _, x := range runes {
		if x == r {
			return true
		}
	}
	return false
}
