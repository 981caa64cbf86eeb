package transcribe

// span is a word unit: the indexes of its opening and closing boundaries.
type span struct {
	start, end int
}

// units splits a buffer into boundary-delimited word units.
func units(b Buffer) []span {
	var out []span
	for i := 0; i < len(b); i++ {
		if b[i].Kind != KindBoundary {
			continue
		}
		for j := i + 1; j < len(b); j++ {
			if b[j].Kind == KindBoundary {
				out = append(out, span{start: i, end: j})
				i = j
				break
			}
		}
	}
	return out
}

// Reduce weakens unstressed vowels. vowelLetters is the number of vowel
// letters in the written word; a word with at most one keeps its
// pretonic material intact.
func (tr *Transcriber) Reduce(b Buffer, vowelLetters int) Buffer {
	b = b.Clone()
	for _, u := range units(b) {
		stop := u.end
		for k := u.start + 1; k < u.end; k++ {
			if b[k].IsStress() {
				stop = k
				break
			}
		}
		if vowelLetters > 1 {
			for k := u.start + 1; k < stop; k++ {
				tr.reduce(&b[k])
			}
		}

		for k := u.start + 1; k < u.end; k++ {
			if !b[k].IsStress() {
				continue
			}
			nucleus := k + 1
			for nucleus < u.end && !tr.isFullVowel(b[nucleus]) {
				nucleus++
			}
			for m := nucleus + 1; m < u.end && !b[m].IsStress(); m++ {
				tr.reduce(&b[m])
			}
		}
	}
	return b
}

func (tr *Transcriber) isFullVowel(t Token) bool {
	return t.Kind == KindVowel && !tr.reduced[t.Sym]
}

func (tr *Transcriber) reduce(t *Token) {
	if t.Kind != KindVowel {
		return
	}
	if r, ok := tr.tables.Reduction[t.Sym]; ok {
		t.Sym = r
	}
}
