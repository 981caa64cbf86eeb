package processor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/snonux/bgrhyme/internal/anagram"
	"codeberg.org/snonux/bgrhyme/internal/archive"
	"codeberg.org/snonux/bgrhyme/internal/batch"
	"codeberg.org/snonux/bgrhyme/internal/classify"
	"codeberg.org/snonux/bgrhyme/internal/cli"
	"codeberg.org/snonux/bgrhyme/internal/export"
	"codeberg.org/snonux/bgrhyme/internal/phonetic"
	"codeberg.org/snonux/bgrhyme/internal/rhyme"
	"codeberg.org/snonux/bgrhyme/internal/transcribe"
	"codeberg.org/snonux/bgrhyme/internal/wiki"
)

const (
	KindRhymes   = "rhymes"
	KindAnagrams = "anagrams"
)

// PageStore reads and writes wiki pages.
type PageStore interface {
	wiki.Fetcher
	wiki.Saver
}

// Processor handles the work behind each subcommand
type Processor struct {
	flags *cli.Flags
	out   io.Writer

	// fetcher and pages are built from flags when nil.
	fetcher phonetic.Fetcher
	pages   PageStore
}

// NewProcessor creates a new processor writing results to stdout
func NewProcessor(flags *cli.Flags) *Processor {
	return &Processor{flags: flags, out: os.Stdout}
}

func (p *Processor) logger() *slog.Logger {
	return slog.Default()
}

// transcriber honours the transcription flags.
func (p *Processor) transcriber() *transcribe.Transcriber {
	return transcribe.NewTranscriber(nil, transcribe.Options{
		EndSchwa:    p.flags.EndSchwa,
		SchwaSignal: p.flags.SchwaSignal,
	})
}

// rhymeBuilder never uses end-schwa so keys stay comparable across builds.
func (p *Processor) rhymeBuilder() *rhyme.Builder {
	tr := transcribe.NewTranscriber(nil, transcribe.Options{SchwaSignal: p.flags.SchwaSignal})
	b := rhyme.NewBuilder(tr)
	if p.flags.MinClassSize > 0 {
		b.MinClassSize = p.flags.MinClassSize
	}
	b.Workers = p.flags.Workers
	b.StandIn = p.flags.StandIn
	b.Logger = p.logger()
	return b
}

func (p *Processor) anagramBuilder() *anagram.Builder {
	b := anagram.NewBuilder()
	if p.flags.MinClassSize > 0 {
		b.MinClassSize = p.flags.MinClassSize
	}
	b.Workers = p.flags.Workers
	b.Logger = p.logger()
	return b
}

// Transcribe prints the phonemic form of each word, or every pipeline stage
// when tracing.
func (p *Processor) Transcribe(ctx context.Context, words []string) error {
	tr := p.transcriber()
	for _, word := range words {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := batch.ValidateBulgarianText(word); err != nil {
			return fmt.Errorf("invalid word '%s': %w", word, err)
		}

		if !p.flags.Trace {
			ipa, err := tr.Transcribe(word)
			if err != nil {
				return err
			}
			fmt.Fprintf(p.out, "%s\t%s\n", word, ipa)
			continue
		}

		st, err := tr.Trace(word)
		if err != nil {
			return err
		}
		fmt.Fprintf(p.out, "%s\n", word)
		fmt.Fprintf(p.out, "  normalized:  %s\n", st.Normalized)
		fmt.Fprintf(p.out, "  stressed:    %s\n", st.Stressed)
		fmt.Fprintf(p.out, "  reduced:     %s\n", st.Reduced)
		fmt.Fprintf(p.out, "  assimilated: %s\n", st.Assimilated)
		fmt.Fprintf(p.out, "  output:      %s\n", st.Output)
	}
	return nil
}

// Key prints the rhyme key of each word. Stand-ins are converted and
// single-vowel words are accented automatically.
func (p *Processor) Key(ctx context.Context, words []string) error {
	b := p.rhymeBuilder()
	for _, entry := range words {
		if err := ctx.Err(); err != nil {
			return err
		}
		key, word, err := b.WordKey(entry)
		if err != nil {
			return err
		}
		fmt.Fprintf(p.out, "%s\t%s\n", word, key)
	}
	return nil
}

// Rhymes builds rhyme classes from the wordlist.
func (p *Processor) Rhymes(ctx context.Context) error {
	_, err := p.buildClasses(ctx, KindRhymes, p.rhymeBuilder().Build)
	return err
}

// Anagrams builds anagram classes from the wordlist, optionally printing the
// wiki template of every class.
func (p *Processor) Anagrams(ctx context.Context) error {
	classes, err := p.buildClasses(ctx, KindAnagrams, p.anagramBuilder().Build)
	if err != nil || classes == nil || !p.flags.Templates {
		return err
	}
	fmt.Fprintln(p.out)
	for _, key := range classes.Keys() {
		fmt.Fprintln(p.out, anagram.Template(key, classes.Buckets[key]))
	}
	return nil
}

type buildFunc func(ctx context.Context, words []string) (*classify.Classes, error)

func (p *Processor) outputPath(kind string, format export.Format) string {
	if p.flags.OutputPath != "" {
		return p.flags.OutputPath
	}
	return kind + format.Extension()
}

// buildClasses runs one build and saves it. It returns nil classes when the
// stored build is already up to date.
func (p *Processor) buildClasses(ctx context.Context, kind string, build buildFunc) (*classify.Classes, error) {
	format, err := export.ParseFormat(p.flags.Format)
	if err != nil {
		return nil, err
	}
	if p.flags.Wordlist == "" {
		return nil, errors.New("no wordlist given")
	}

	list, content, err := batch.ReadWordlistFile(p.flags.Wordlist)
	if err != nil {
		return nil, err
	}
	for _, inv := range list.Invalid {
		p.logger().Warn("skipping wordlist line", "line", inv.Line, "text", inv.Text, "error", inv.Err)
	}

	path := p.outputPath(kind, format)
	digest := export.Digest(content, p.buildSettings(kind)...)
	if !p.flags.Force {
		stored, err := export.StoredDigest(path, format, kind)
		if err != nil {
			return nil, fmt.Errorf("failed to read stored digest: %w", err)
		}
		if stored == digest {
			fmt.Fprintf(p.out, "✓ Skipping %s - %s is up to date (use --force to rebuild)\n", kind, path)
			return nil, nil
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	fmt.Fprintf(p.out, "Building %s from %d words...\n", kind, len(list.Words))
	classes, err := build(ctx, list.Words)
	if err != nil {
		return nil, fmt.Errorf("%s build failed: %w", kind, err)
	}

	if p.flags.Archive {
		if err := p.archiveOutput(path); err != nil {
			return nil, err
		}
	}

	b := export.NewBuild(kind, digest, classes)
	if err := export.Save(path, format, b); err != nil {
		return nil, fmt.Errorf("failed to save %s: %w", kind, err)
	}
	p.logger().Info("build saved", "kind", kind, "id", b.ID, "path", path, "classes", classes.Len())

	title := strings.ToUpper(kind[:1]) + kind[1:]
	fmt.Fprintf(p.out, "\n=== %s Summary ===\n", title)
	fmt.Fprintf(p.out, "Words: %d\n", len(list.Words))
	fmt.Fprintf(p.out, "Classes: %d\n", classes.Len())
	if len(classes.Skipped) > 0 {
		fmt.Fprintf(p.out, "Skipped: %d\n", len(classes.Skipped))
	}
	if len(list.Invalid) > 0 {
		fmt.Fprintf(p.out, "Invalid lines: %d\n", len(list.Invalid))
	}
	fmt.Fprintf(p.out, "Output: %s\n", path)
	fmt.Fprintf(p.out, "%s\n", strings.Repeat("=", len(title)+16))
	return classes, nil
}

// buildSettings lists the flags that change the output of a build.
func (p *Processor) buildSettings(kind string) []string {
	settings := []string{"kind=" + kind, fmt.Sprintf("min=%d", p.flags.MinClassSize)}
	if kind == KindRhymes {
		settings = append(settings,
			"standin="+p.flags.StandIn,
			fmt.Sprintf("schwa_signal=%t", p.flags.SchwaSignal))
	}
	return settings
}

// archiveOutput moves an existing output and its digest sidecar aside.
func (p *Processor) archiveOutput(path string) error {
	for _, f := range []string{path, path + ".blake3"} {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			continue
		}
		archived, err := archive.Archive(f)
		if err != nil {
			return err
		}
		fmt.Fprintf(p.out, "Archived %s to %s\n", f, archived)
	}
	return nil
}
