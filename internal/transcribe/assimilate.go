package transcribe

// Assimilate applies fronting, dark-l formation, voicing and place
// assimilation and cluster simplification, in that order.
func (tr *Transcriber) Assimilate(b Buffer) Buffer {
	b = b.Clone()
	b = front(b)
	b = darkL(b)
	b = assimilateVoicing(b, "bdɡzʒv", "ptksʃfx", true, tr.tables.Devoicing)
	b = assimilateVoicing(b, "ptksʃfx", "bdɡzʒ", false, tr.tables.Voicing)
	b = assimilateNasals(b)
	b = assimilateSibilants(b)
	return simplifyClusters(b)
}

// front marks back vowels after palatal consonants and glides.
func front(b Buffer) Buffer {
	for i := 0; i+1 < len(b); i++ {
		if b[i].In("ʃʒj"+Palatal) && b[i+1].Kind == KindVowel && b[i+1].In("aouɤ") {
			b[i+1].Fronted = true
			i++
		}
	}
	return b
}

// darkL velarizes l outside front contexts, repeating until nothing changes.
// A pass skips the token after each converted l, so it converts every other
// l of a run; the pass count is capped at the buffer length.
func darkL(b Buffer) Buffer {
	for pass := 0; pass <= len(b); pass++ {
		changed := false
		for i := 0; i+1 < len(b); i++ {
			if b[i].Sym == "l" && !b[i+1].In("ɛi"+Palatal) {
				b[i].Sym = "ɫ"
				changed = true
				i++
			}
		}
		if !changed {
			break
		}
	}
	return b
}

// assimilateVoicing rewrites every run of run-set obstruents (tie bars
// included) through table when it is followed by an optional stress marker
// and a trigger consonant, or a boundary when atBoundary is set.
func assimilateVoicing(b Buffer, run, trigger string, atBoundary bool, table map[string]string) Buffer {
	i := 0
	for i < len(b) {
		j := i
		for j < len(b) && (b[j].In(run) || b[j].Kind == KindTie) {
			j++
		}
		k := j
		if b.at(k).IsStress() {
			k++
		}
		if k < len(b) && (b[k].In(trigger) || (atBoundary && b[k].Kind == KindBoundary)) {
			for m := i; m < j; m++ {
				if s, ok := table[b[m].Sym]; ok {
					b[m].Sym = s
				}
			}
			i = k + 1
			continue
		}
		if j > i {
			i = j
		} else {
			i++
		}
	}
	return b
}

// assimilateNasals turns n into ŋ before velar stops and m into ɱ before
// labiodentals.
func assimilateNasals(b Buffer) Buffer {
	for i := range b {
		next := b.at(i + 1)
		if next.IsStress() {
			next = b.at(i + 2)
		}
		switch {
		case b[i].Sym == "n" && next.In("ɡk"):
			b[i].Sym = "ŋ"
		case b[i].Sym == "m" && next.In("fv"):
			b[i].Sym = "ɱ"
		}
	}
	return b
}

// assimilateSibilants makes s/z copy a following post-alveolar, which may sit
// behind a stop or an affricate tie.
func assimilateSibilants(b Buffer) Buffer {
	for i := 0; i < len(b); i++ {
		if !b[i].In("sz") {
			continue
		}
		k := i + 1
		if b.at(k).IsStress() {
			k++
		}
		if b.at(k).In("td") {
			k++
		}
		if b.at(k).Kind == KindTie {
			k++
		}
		if b.at(k).In("ʃʒ") {
			b[i].Sym = b[k].Sym
			i = k
		}
	}
	return b
}

// simplifyClusters drops the stop from sibilant+stop+consonant runs. A stress
// marker behind the stop moves in front of the sibilant.
func simplifyClusters(b Buffer) Buffer {
	out := make(Buffer, 0, len(b))
	for i := 0; i < len(b); i++ {
		if b[i].In("szʃʒ") && b.at(i+1).In("td") {
			k := i + 2
			stressed := b.at(k).IsStress()
			if stressed {
				k++
			}
			if b.at(k).In("tdknml") {
				if stressed {
					out = append(out, b[i+2])
				}
				out = append(out, b[i], b[k])
				i = k
				continue
			}
		}
		out = append(out, b[i])
	}
	return out
}
