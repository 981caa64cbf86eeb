package wiki

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// ErrNoLanguage is returned when a page has no section for the language.
	ErrNoLanguage = errors.New("no language section")

	headingPattern = regexp.MustCompile(`^(=+)\s*(.*?)\s*(=+)\s*$`)
	linkPattern    = regexp.MustCompile(`\[\[(.+?)(?:\|(.*?))?\]\]`)
)

// Section is a heading and the text under it, up to the next heading of the
// same or a higher level.
type Section struct {
	Level int
	Name  string
	// Start and End are byte offsets of the section (heading included)
	// within the text it was found in.
	Start, End int
	Text       string
}

type heading struct {
	level      int
	name       string
	start, end int
}

func headings(text string) []heading {
	var out []heading
	offset := 0
	for _, line := range strings.SplitAfter(text, "\n") {
		m := headingPattern.FindStringSubmatch(strings.TrimRight(line, "\r\n"))
		if m != nil && len(m[1]) == len(m[3]) {
			out = append(out, heading{level: len(m[1]), name: m[2], start: offset, end: offset + len(line)})
		}
		offset += len(line)
	}
	return out
}

// Sections returns every section named name at one of the given levels.
func Sections(text, name string, levels ...int) []Section {
	hs := headings(text)
	var out []Section
	for i, h := range hs {
		if h.name != name || !containsInt(levels, h.level) {
			continue
		}
		end := len(text)
		for _, next := range hs[i+1:] {
			if next.level <= h.level {
				end = next.start
				break
			}
		}
		out = append(out, Section{Level: h.level, Name: h.name, Start: h.start, End: end, Text: text[h.start:end]})
	}
	return out
}

// Template is a parsed template call.
type Template struct {
	Name   string
	Params []string
	Named  map[string]string
}

// Templates returns the calls of the named template in text. Nested
// templates and links inside parameters are kept verbatim.
func Templates(text, name string) []Template {
	var out []Template
	for i := 0; i < len(text); {
		start := strings.Index(text[i:], "{{")
		if start < 0 {
			break
		}
		start += i
		end := matchBraces(text, start)
		if end < 0 {
			break
		}
		if t := parseTemplate(text[start+2 : end-2]); t.Name == name {
			out = append(out, t)
		}
		i = end
	}
	return out
}

// matchBraces returns the offset just past the "}}" closing the template
// opened at start, or -1.
func matchBraces(text string, start int) int {
	depth := 0
	for i := start; i+1 < len(text); {
		switch text[i : i+2] {
		case "{{":
			depth++
			i += 2
		case "}}":
			depth--
			i += 2
			if depth == 0 {
				return i
			}
		default:
			i++
		}
	}
	return -1
}

func parseTemplate(body string) Template {
	parts := splitTopLevel(body)
	t := Template{Name: strings.TrimSpace(parts[0]), Named: make(map[string]string)}
	for _, p := range parts[1:] {
		if k, v, ok := strings.Cut(p, "="); ok && !strings.ContainsAny(k, "[{") {
			t.Named[strings.TrimSpace(k)] = strings.TrimSpace(v)
			continue
		}
		t.Params = append(t.Params, strings.TrimSpace(p))
	}
	return t
}

// splitTopLevel splits on pipes that are not inside links or nested
// templates.
func splitTopLevel(body string) []string {
	var (
		parts []string
		depth int
		last  int
	)
	for i := 0; i < len(body); i++ {
		switch {
		case strings.HasPrefix(body[i:], "{{"), strings.HasPrefix(body[i:], "[["):
			depth++
			i++
		case strings.HasPrefix(body[i:], "}}"), strings.HasPrefix(body[i:], "]]"):
			depth--
			i++
		case body[i] == '|' && depth == 0:
			parts = append(parts, body[last:i])
			last = i + 1
		}
	}
	return append(parts, body[last:])
}

// LinksToPlaintext replaces every [[target|label]] link by its label, or by
// its target when the label is missing or empty.
func LinksToPlaintext(text string) string {
	return linkPattern.ReplaceAllStringFunc(text, func(link string) string {
		m := linkPattern.FindStringSubmatch(link)
		if m[2] != "" {
			return m[2]
		}
		return m[1]
	})
}

// PronunciationTerms returns the plain-text terms of every bg-IPA template in
// the Pronunciation subsections of the Bulgarian section. A template without
// a term stands for the page title.
func PronunciationTerms(text, title string) ([]string, error) {
	langs := Sections(text, "Bulgarian", 2)
	if len(langs) == 0 {
		return nil, ErrNoLanguage
	}

	var terms []string
	for _, pron := range Sections(langs[0].Text, "Pronunciation", 3, 4) {
		for _, t := range Templates(pron.Text, "bg-IPA") {
			term := title
			if len(t.Params) > 0 && t.Params[0] != "" {
				term = LinksToPlaintext(t.Params[0])
			}
			terms = append(terms, term)
		}
	}
	return terms, nil
}

// AddPronunciation inserts a Pronunciation section with a bg-IPA template for
// term into the Bulgarian section: after its Etymology or Alternative forms
// section when there is one, otherwise before its first subsection. Pages that
// already have a Pronunciation section are returned unchanged with added set
// to false.
func AddPronunciation(text, term string) (out string, added bool, err error) {
	langs := Sections(text, "Bulgarian", 2)
	if len(langs) == 0 {
		return text, false, ErrNoLanguage
	}
	lang := langs[0]
	if len(Sections(lang.Text, "Pronunciation", 3, 4)) > 0 {
		return text, false, nil
	}

	at := lang.End
	if s := Sections(lang.Text, "Etymology", 3); len(s) > 0 {
		at = lang.Start + s[0].End
	} else if s := Sections(lang.Text, "Alternative forms", 3); len(s) > 0 {
		at = lang.Start + s[0].End
	} else if hs := headings(lang.Text); len(hs) > 1 {
		at = lang.Start + hs[1].start
	}

	head := strings.TrimRight(text[:at], "\n")
	content := "\n\n===Pronunciation===\n* {{bg-IPA|" + LinksToPlaintext(term) + "}}\n"
	tail := text[at:]
	if tail != "" {
		content += "\n"
	}
	return head + content + tail, true, nil
}

func containsInt(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
