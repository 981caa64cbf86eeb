package processor

import (
	"context"
	"fmt"
	"os"
	"strings"

	"codeberg.org/snonux/bgrhyme/internal/batch"
	"codeberg.org/snonux/bgrhyme/internal/classify"
	"codeberg.org/snonux/bgrhyme/internal/cli"
	"codeberg.org/snonux/bgrhyme/internal/export"
	"codeberg.org/snonux/bgrhyme/internal/models"
	"codeberg.org/snonux/bgrhyme/internal/phonetic"
	"codeberg.org/snonux/bgrhyme/internal/rhyme"
	"codeberg.org/snonux/bgrhyme/internal/server"
	"codeberg.org/snonux/bgrhyme/internal/wiki"
)

// Check transcribes word and compares the result with the reference
// transcription of the configured provider.
func (p *Processor) Check(ctx context.Context, word string) error {
	if err := batch.ValidateBulgarianText(word); err != nil {
		return fmt.Errorf("invalid word '%s': %w", word, err)
	}

	tr := p.transcriber()
	word = rhyme.ReplaceStandIn(word, p.flags.StandIn)
	if accented, err := rhyme.Accent(tr.Tables(), word); err == nil {
		word = accented
	}
	ipa, err := tr.Transcribe(word)
	if err != nil {
		return err
	}

	fetcher := p.fetcher
	if fetcher == nil {
		fetcher, err = phonetic.New(p.flags.Provider, cli.GetAPIKey(p.flags.Provider), p.flags.Model)
		if err != nil {
			return err
		}
	}

	fmt.Fprintf(p.out, "Word:        %s\n", word)
	fmt.Fprintf(p.out, "Transcribed: %s\n", ipa)

	var ref string
	if p.flags.SaveDir != "" {
		if err := os.MkdirAll(p.flags.SaveDir, 0755); err != nil {
			return fmt.Errorf("failed to create save directory: %w", err)
		}
		ref, err = phonetic.FetchAndSave(ctx, fetcher, word, p.flags.SaveDir)
	} else {
		ref, err = fetcher.Fetch(ctx, word)
	}
	if err != nil {
		return fmt.Errorf("reference lookup failed: %w", err)
	}

	fmt.Fprintf(p.out, "Reference:   %s\n", ref)
	if sameTranscription(ipa, ref) {
		fmt.Fprintf(p.out, "Match:       yes\n")
	} else {
		fmt.Fprintf(p.out, "Match:       no\n")
	}
	return nil
}

// sameTranscription compares two transcriptions ignoring syllable dots.
func sameTranscription(a, b string) bool {
	strip := strings.NewReplacer(".", "", " ", "")
	return strip.Replace(a) == strip.Replace(b)
}

func (p *Processor) pageStore() (PageStore, error) {
	if p.pages != nil {
		return p.pages, nil
	}
	if p.flags.WikiDir == "" {
		return nil, fmt.Errorf("no wiki directory given (use --wiki-dir)")
	}
	return &wiki.DirStore{Dir: p.flags.WikiDir}, nil
}

// Pron transcribes the bg-IPA terms of a stored page, first adding a
// Pronunciation section for AddTerm when requested.
func (p *Processor) Pron(ctx context.Context, title string) error {
	store, err := p.pageStore()
	if err != nil {
		return err
	}
	text, err := store.Fetch(ctx, title)
	if err != nil {
		return err
	}

	if p.flags.AddTerm != "" {
		updated, added, err := wiki.AddPronunciation(text, p.flags.AddTerm)
		if err != nil {
			return err
		}
		if added {
			if err := store.Save(ctx, title, updated, "Add Bulgarian pronunciation"); err != nil {
				return err
			}
			text = updated
			fmt.Fprintf(p.out, "Added pronunciation to %s\n", title)
		} else {
			fmt.Fprintf(p.out, "%s already has a pronunciation section\n", title)
		}
	}

	terms, err := wiki.PronunciationTerms(text, title)
	if err != nil {
		return err
	}
	tr := p.transcriber()
	for _, term := range terms {
		ipa, err := tr.Transcribe(term)
		if err != nil {
			p.logger().Warn("skipping pronunciation term", "title", title, "term", term, "error", err)
			continue
		}
		fmt.Fprintf(p.out, "%s\t%s\n", term, ipa)
	}
	return nil
}

// Serve runs the HTTP API until ctx is cancelled.
func (p *Processor) Serve(ctx context.Context) error {
	b := p.rhymeBuilder()
	var classes *classify.Classes
	if p.flags.Classes != "" {
		var err error
		classes, err = export.Load(p.flags.Classes, KindRhymes)
		if err != nil {
			return err
		}
		p.logger().Info("loaded rhyme classes", "path", p.flags.Classes, "classes", classes.Len())
	}
	srv := server.New(p.transcriber(), b, classes, p.logger())
	srv.AllowOrigins(p.flags.Origins...)
	return srv.ListenAndServe(ctx, p.flags.Addr)
}

// Models lists the models of every provider with a configured key.
func (p *Processor) Models(ctx context.Context) error {
	return models.NewLister(cli.GetOpenAIKey(), cli.GetGeminiKey()).ListAvailableModels(ctx, p.out)
}
