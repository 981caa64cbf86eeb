package transcribe

// Combining marks recognised in orthographic input (after NFD).
const (
	combGrave    = '\u0300'
	combAcute    = '\u0301'
	combBreve    = '\u0306'
	combDotBelow = '\u0323'
)

// Tables holds the static data driving the rule engine. A Tables value is
// treated as read-only once handed to NewTranscriber.
type Tables struct {
	// Letters maps a lower-case letter (or stress mark) to its phoneme symbols.
	Letters map[rune][]string

	// Vowels lists every vowel symbol, full and reduced.
	Vowels string

	// Reduction maps a full vowel to its unstressed allophone.
	Reduction map[string]string

	Devoicing map[string]string
	Voicing   map[string]string

	// Prefixes are derivational prefixes, in phonemic form, that stress must
	// not split.
	Prefixes []string

	// VowelLetters are the orthographic vowels used to count syllables.
	VowelLetters string
}

// DefaultTables returns the Bulgarian rule tables.
func DefaultTables() *Tables {
	return &Tables{
		Letters: map[rune][]string{
			'а': {"a"},
			'б': {"b"},
			'в': {"v"},
			'г': {"ɡ"},
			'д': {"d"},
			'е': {"ɛ"},
			'ж': {"ʒ"},
			'з': {"z"},
			'и': {"i"},
			'й': {"j"},
			'к': {"k"},
			'л': {"l"},
			'м': {"m"},
			'н': {"n"},
			'о': {"ɔ"},
			'п': {"p"},
			'р': {"r"},
			'с': {"s"},
			'т': {"t"},
			'у': {"u"},
			'ў': {"w"},
			'ф': {"f"},
			'х': {"x"},
			'ц': {"t", Tie, "s"},
			'ч': {"t", Tie, "ʃ"},
			'ш': {"ʃ"},
			'щ': {"ʃ", "t"},
			'ъ': {"ɤ"},
			'ь': {Palatal},
			'ю': {Palatal, "u"},
			'я': {Palatal, "a"},

			combGrave: {Secondary},
			combAcute: {Primary},
		},
		Vowels: "aɤɔuɛiɐo",
		Reduction: map[string]string{
			"a": "ɐ",
			"ɔ": "o",
			"ɤ": "ɐ",
			"u": "o",
		},
		Devoicing: map[string]string{
			"b": "p", "d": "t", "ɡ": "k",
			"z": "s", "ʒ": "ʃ",
			"v": "f",
		},
		Voicing: map[string]string{
			"p": "b", "t": "d", "k": "ɡ",
			"s": "z", "ʃ": "ʒ", "x": "ɣ",
			"f": "v",
		},
		Prefixes:     []string{"bɛz", "vɤz", "vɤzprɔiz", "iz", "naiz", "pɔiz", "prɛvɤz", "prɔiz", "raz"},
		VowelLetters: "аъоуеияѝю",
	}
}

// kindOf classifies a phoneme symbol produced by the letter table.
func (tb *Tables) kindOf(sym string) Kind {
	switch sym {
	case Primary:
		return KindPrimary
	case Secondary:
		return KindSecondary
	case Tie:
		return KindTie
	case "j", Palatal:
		return KindGlide
	}
	if tb.isVowel(sym) {
		return KindVowel
	}
	return KindConsonant
}

func (tb *Tables) isVowel(sym string) bool {
	for _, v := range tb.Vowels {
		if string(v) == sym {
			return true
		}
	}
	return false
}

// token builds a classified token for sym.
func (tb *Tables) token(sym string) Token {
	return Token{Sym: sym, Kind: tb.kindOf(sym)}
}

// CountVowelLetters returns the number of orthographic vowel letters in a
// lower-cased, composed word.
func (tb *Tables) CountVowelLetters(word string) int {
	n := 0
	for _, r := range word {
		for _, v := range tb.VowelLetters {
			if r == v {
				n++
				break
			}
		}
	}
	return n
}
