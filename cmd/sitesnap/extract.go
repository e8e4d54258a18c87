package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fwojciec/sitesnap"
	"github.com/fwojciec/sitesnap/crawl"
	"github.com/fwojciec/sitesnap/fs"
	"github.com/fwojciec/sitesnap/goquery"
	snapslog "github.com/fwojciec/sitesnap/slog"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	structure, err := fs.ReadStructure(c.Structure)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitesnap.ErrorMessage(err))
		return err
	}

	var probe string
	if urls := structure.URLs(); len(urls) > 0 {
		probe = urls[0]
	}
	profile, err := resolveProfile(deps, c.Profile, probe)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitesnap.ErrorMessage(err))
		return err
	}

	extractor, err := goquery.NewExtractor(profile)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitesnap.ErrorMessage(err))
		return err
	}

	out := filepath.Clean(c.Output)
	store := snapslog.NewLoggingStore(fs.NewFileStore(filepath.Dir(out), filepath.Base(out)), deps.Logger)

	w := &crawl.Walker{
		Fetcher:     deps.Fetcher,
		Extractor:   snapslog.NewLoggingExtractor(extractor, deps.Logger),
		Store:       store,
		Concurrency: c.Concurrency,
	}

	begin := time.Now()
	result, err := w.Walk(deps.Ctx, structure, extractProgress(deps))
	if err != nil {
		_ = store.Abort()
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitesnap.ErrorMessage(err))
		return err
	}

	if err := store.Commit(); err != nil {
		_ = store.Abort()
		fmt.Fprintf(deps.Stderr, "error: failed to write %s: %v\n", out, err)
		return err
	}

	fmt.Fprintln(deps.Stdout, crawl.FormatSummary(result, time.Since(begin)))
	fmt.Fprintf(deps.Stdout, "Snapshot written to %s\n", out)
	return nil
}

func extractProgress(deps *Dependencies) crawl.ProgressFunc {
	return func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Snapshotting %d pages\n", event.Total)
		case crawl.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s\n", event.Completed, event.Total, crawl.DisplayPath(event.URL, 60))
		case crawl.ProgressSkipped:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] - %s: no content\n", event.Completed, event.Total, crawl.DisplayPath(event.URL, 60))
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] ✗ %s: %s\n",
				event.Completed, event.Total, crawl.DisplayPath(event.URL, 60), sitesnap.ErrorMessage(event.Error))
		}
	}
}
