package transcribe

// ResolveStress moves every stress marker from behind its vowel to the front
// of the stressed syllable's onset. Rules run in a fixed order; each rule is a
// single left-to-right sweep in which a marker moves at most once.
func (tr *Transcriber) ResolveStress(b Buffer) Buffer {
	b = b.Clone()
	for _, rule := range tr.stressRules {
		b = rule.Apply(b)
	}
	return b
}

// StressRules returns the ordered stress migration rules.
func (tr *Transcriber) StressRules() []Rule {
	out := make([]Rule, len(tr.stressRules))
	copy(out, tr.stressRules)
	return out
}

func (tr *Transcriber) buildStressRules() []Rule {
	isVowel := func(t Token) bool { return t.Kind == KindVowel }
	isGlide := func(t Token) bool { return t.Kind == KindGlide }
	isConsonantal := func(t Token) bool { return t.IsConsonantal() }
	in := func(set string) func(Token) bool {
		return func(t Token) bool { return t.In(set) }
	}

	return []Rule{
		{Name: "vowel", Apply: swapLeft(isVowel)},
		{Name: "glide", Apply: swapLeft(isGlide)},
		{Name: "consonant", Apply: swapLeft(isConsonantal)},
		{Name: "obstruent-liquid", Apply: swapOnset(in("bdɡptkxfv"), in("rl"))},
		{Name: "velar-v", Apply: swapOnset(in("kɡ"), in("v"))},
		{Name: "s-cluster", Apply: swapOnset(in("sz"), in("bdɡptkvlrmn"))},
		{Name: "affricate", Apply: affricateOnset},
		{Name: "split-affricate", Apply: splitAffricate},
		{Name: "word-onset", Apply: wordOnset},
		{Name: "prefix", Apply: tr.prefixCorrection},
		{Name: "syllable-break", Apply: syllableBreaks},
	}
}

// swapLeft moves a marker over the single token before it when that token
// matches pred.
func swapLeft(pred func(Token) bool) func(Buffer) Buffer {
	return func(b Buffer) Buffer {
		for i := 0; i+1 < len(b); i++ {
			if pred(b[i]) && b[i+1].IsStress() {
				b[i], b[i+1] = b[i+1], b[i]
				i++
			}
		}
		return b
	}
}

// swapOnset moves a marker sitting between first and next to the front of
// first, keeping the two consonants together as one onset.
func swapOnset(first, next func(Token) bool) func(Buffer) Buffer {
	return func(b Buffer) Buffer {
		for i := 0; i+2 < len(b); i++ {
			if first(b[i]) && b[i+1].IsStress() && next(b[i+2]) {
				b[i], b[i+1] = b[i+1], b[i]
				i += 2
			}
		}
		return b
	}
}

// affricateOnset moves a marker over t͡/d͡ when a sibilant and a vowel or
// palatalization follow it.
func affricateOnset(b Buffer) Buffer {
	for i := 0; i < len(b); i++ {
		if !b[i].In("td") {
			continue
		}
		m := i + 1
		if b.at(m).Kind == KindTie {
			m++
		}
		if !b.at(m).IsStress() || !b.at(m+1).In("szʃʒ") {
			continue
		}
		after := b.at(m + 2)
		if after.Kind != KindVowel && after.Sym != Palatal {
			continue
		}
		b = b.move(m, i)
		i = m + 2
	}
	return b
}

// splitAffricate pushes a marker that ended up inside an affricate to its
// right edge.
func splitAffricate(b Buffer) Buffer {
	for i := 0; i+2 < len(b); i++ {
		if b[i].Kind == KindTie && b[i+1].IsStress() && b[i+2].IsConsonantal() {
			b[i+1], b[i+2] = b[i+2], b[i+1]
			i += 2
		}
	}
	return b
}

// wordOnset moves a marker preceded only by consonants to the word start.
func wordOnset(b Buffer) Buffer {
	for i := 0; i < len(b); i++ {
		if b[i].Kind != KindBoundary {
			continue
		}
		j := i + 1
		for j < len(b) && b[j].IsConsonantal() {
			j++
		}
		if j < len(b) && b[j].IsStress() {
			b = b.move(j, i+1)
			i = j
		}
	}
	return b
}

// prefixCorrection undoes word-onset migration that pulled a marker into a
// known prefix, placing it on the prefix boundary instead.
func (tr *Transcriber) prefixCorrection(b Buffer) Buffer {
	for _, prefix := range tr.tables.Prefixes {
		head, tail := tr.splitPrefix(prefix)
		if len(tail) == 0 {
			continue
		}
		for i := 0; i < len(b); i++ {
			if b[i].Kind != KindBoundary {
				continue
			}
			m := i + 1 + len(head)
			if !symsAt(b, i+1, head) || !b.at(m).IsStress() || !symsAt(b, m+1, tail) {
				continue
			}
			end := m + 1 + len(tail)
			b = b.move(m, end)
			i = end - 1
		}
	}
	return b
}

// splitPrefix separates a prefix into its leading part and its final
// consonant run.
func (tr *Transcriber) splitPrefix(prefix string) (head, tail []string) {
	var syms []string
	for _, r := range prefix {
		syms = append(syms, string(r))
	}
	cut := len(syms)
	for cut > 0 && tr.tables.token(syms[cut-1]).IsConsonantal() {
		cut--
	}
	return syms[:cut], syms[cut:]
}

// symsAt reports whether the tokens starting at i spell syms.
func symsAt(b Buffer, i int, syms []string) bool {
	if i < 0 || i+len(syms) > len(b) {
		return false
	}
	for k, s := range syms {
		if b[i+k].Sym != s {
			return false
		}
	}
	return true
}

// syllableBreaks lets an explicit syllable break inside a consonant run decide
// where the marker goes, then removes every break.
func syllableBreaks(b Buffer) Buffer {
	for i := 0; i < len(b); i++ {
		if b[i].Kind != KindSyllableBreak {
			continue
		}
		j := i + 1
		for j < len(b) && b[j].IsConsonantal() {
			j++
		}
		if j < len(b) && b[j].IsStress() {
			b[i] = b[j]
			b = append(b[:j], b[j+1:]...)
		}
	}
	for i := 0; i < len(b); i++ {
		if b[i].Kind != KindSyllableBreak {
			continue
		}
		j := i - 1
		for j >= 0 && b[j].IsConsonantal() {
			j--
		}
		if j >= 0 && b[j].IsStress() {
			b[i] = b[j]
			b = append(b[:j], b[j+1:]...)
			i--
		}
	}
	return b.without(KindSyllableBreak)
}
