package crawl

import (
	"context"

	"github.com/fwojciec/sitesnap"
	"golang.org/x/sync/errgroup"
)

// Walker snapshots every page of a site structure. Each URL is fetched,
// extracted, and saved at most once.
type Walker struct {
	Fetcher   sitesnap.Fetcher
	Extractor sitesnap.Extractor
	Store     sitesnap.ContentStore

	// Concurrency is the number of pages processed at once.
	// Values below 2 walk the structure sequentially.
	Concurrency int
}

type walkResult struct {
	url  string
	page *sitesnap.Page
	err  error
}

// Walk visits s in pre-order and saves each page to the store. A page that
// fails to fetch or extract is counted and skipped; only cancellation of ctx
// stops the walk early. The store is not committed.
func (w *Walker) Walk(ctx context.Context, s sitesnap.Structure, progress ProgressFunc) (*Result, error) {
	urls := uniqueURLs(s)
	total := len(urls)

	concurrency := w.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	progress.emit(ProgressEvent{Type: ProgressStarted, Total: total})

	resultCh := make(chan walkResult, concurrency)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, u := range urls {
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				resultCh <- w.process(gctx, u)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	var result Result
	completed := 0
	for res := range resultCh {
		completed++
		event := ProgressEvent{Completed: completed, Total: total, URL: res.url}

		err := res.err
		if err == nil {
			err = w.Store.Save(ctx, res.page)
		}

		switch {
		case err == nil:
			result.Saved++
			result.Bytes += len(res.page.HTML) + len(res.page.Text)
			event.Type = ProgressCompleted
		case sitesnap.ErrorCode(err) == sitesnap.ENOCONTENT:
			result.Skipped++
			event.Type = ProgressSkipped
			event.Error = err
		default:
			result.Failed++
			event.Type = ProgressFailed
			event.Error = err
		}
		progress.emit(event)
	}

	if err := ctx.Err(); err != nil {
		return &result, err
	}

	progress.emit(ProgressEvent{
		Type:      ProgressFinished,
		Completed: completed,
		Total:     total,
	})
	return &result, nil
}

func (w *Walker) process(ctx context.Context, url string) walkResult {
	res := walkResult{url: url}
	html, err := w.Fetcher.Fetch(ctx, url)
	if err != nil {
		res.err = err
		return res
	}
	extracted, err := w.Extractor.Extract(html, url)
	if err != nil {
		res.err = err
		return res
	}
	res.page = sitesnap.NewPage(url, extracted)
	return res
}

// uniqueURLs returns the URLs of s in pre-order, first occurrence only.
func uniqueURLs(s sitesnap.Structure) []string {
	seen := make(map[string]bool)
	var urls []string
	for _, u := range s.URLs() {
		if seen[u] {
			continue
		}
		seen[u] = true
		urls = append(urls, u)
	}
	return urls
}
