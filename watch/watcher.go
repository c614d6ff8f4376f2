// Package watch orchestrates a watch run: scanning venue pages for new
// links, storing the linked pages as candidates, and analyzing candidates
// against the knowledge base.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/fwojciec/cfpwatch"
	"github.com/fwojciec/cfpwatch/bloom"
	"golang.org/x/sync/errgroup"
)

// Link filter sizing for per-run deduplication.
const (
	linkFilterCapacity = 10000
	linkFilterFPRate   = 0.001
)

// DefaultConcurrency is the number of venues scanned at once.
const DefaultConcurrency = 4

// Watcher scans venues for links added since the previous run.
type Watcher struct {
	Pages       *PageFetcher
	Snapshots   cfpwatch.SnapshotService
	Detector    cfpwatch.ChangeDetector
	Candidates  cfpwatch.CandidateStore
	Concurrency int
	Logger      *slog.Logger
}

// ScanResult summarizes a scan.
type ScanResult struct {
	Venues []VenueResult

	// Venue-level totals.
	Scanned  int
	FirstRun int
	Changed  int
	Failed   int

	// Link-level totals.
	Links      int
	Duplicates int
	Saved      int
	LinkErrors int
}

// VenueResult is the outcome of scanning one venue.
type VenueResult struct {
	Venue      string
	FirstRun   bool
	Unchanged  bool
	Links      int
	Duplicates int
	Saved      int
	LinkErrors int
	Err        error
}

// ProgressEvent reports progress during a scan.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Venue     string
	Links     int
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting scan progress.
type ProgressFunc func(event ProgressEvent)

// Scan checks every venue concurrently. A venue seen for the first time
// only has its snapshot stored. Otherwise the new links on the page are
// fetched and saved as candidates, each distinct link at most once per
// scan, and the snapshot is replaced. A failing venue or link is recorded
// in the result and does not stop the scan.
func (w *Watcher) Scan(ctx context.Context, venues []*cfpwatch.Venue, progress ProgressFunc) (*ScanResult, error) {
	concurrency := w.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	seen := bloom.NewFilter(linkFilterCapacity, linkFilterFPRate)

	total := len(venues)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	results := make([]VenueResult, total)
	var completed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, v := range venues {
		g.Go(func() error {
			r := w.scanVenue(gctx, v, seen)
			results[i] = r

			n := int(completed.Add(1))
			if progress != nil {
				ev := ProgressEvent{
					Type:      ProgressCompleted,
					Completed: n,
					Total:     total,
					Venue:     v.Name,
					Links:     r.Saved,
				}
				if r.Err != nil {
					ev.Type = ProgressFailed
					ev.Error = r.Err
				}
				progress(ev)
			}
			return nil
		})
	}
	_ = g.Wait()

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &ScanResult{Venues: results}
	for _, r := range results {
		res.Links += r.Links
		res.Duplicates += r.Duplicates
		res.Saved += r.Saved
		res.LinkErrors += r.LinkErrors
		switch {
		case r.Err != nil:
			res.Failed++
			continue
		case r.FirstRun:
			res.FirstRun++
		case r.Links > 0:
			res.Changed++
		}
		res.Scanned++
	}
	return res, nil
}

// scanVenue runs one venue through fetch, compare, link processing and
// snapshot storage.
func (w *Watcher) scanVenue(ctx context.Context, v *cfpwatch.Venue, seen *bloom.Filter) VenueResult {
	r := VenueResult{Venue: v.Name}
	logger := w.logger().With("venue", v.Name)

	body, err := w.Pages.Fetch(ctx, v.URL)
	if err != nil {
		r.Err = fmt.Errorf("fetch %s: %w", v.URL, err)
		logger.Error("venue fetch failed", "url", v.URL, "error", err)
		return r
	}

	prev, err := w.Snapshots.FindSnapshot(ctx, v.Name)
	switch {
	case cfpwatch.ErrorCode(err) == cfpwatch.ENOTFOUND:
		r.FirstRun = true
		logger.Info("no previous snapshot, storing baseline")
	case err != nil:
		r.Err = fmt.Errorf("load snapshot: %w", err)
		logger.Error("snapshot load failed", "error", err)
		return r
	}

	hash := ComputeHash(body)
	if !r.FirstRun && prev.ContentHash == hash {
		r.Unchanged = true
		logger.Debug("page unchanged", "hash", hash)
	}

	if !r.FirstRun && !r.Unchanged {
		links, err := w.Detector.DetectLinks(prev.Body, body, v.BaseURL(), v.Element)
		switch {
		case cfpwatch.ErrorCode(err) == cfpwatch.ECONFLICT:
			logger.Warn("page structure changed, links not compared", "reason", cfpwatch.ErrorMessage(err))
		case err != nil:
			r.Err = fmt.Errorf("detect links: %w", err)
			logger.Error("change detection failed", "error", err)
			return r
		}
		w.processLinks(ctx, v, links, seen, &r, logger)
	}

	if err := w.Snapshots.SaveSnapshot(ctx, &cfpwatch.Snapshot{
		Venue:       v.Name,
		URL:         v.URL,
		Body:        body,
		ContentHash: hash,
	}); err != nil {
		r.Err = fmt.Errorf("save snapshot: %w", err)
		logger.Error("snapshot save failed", "error", err)
	}
	return r
}

// processLinks stores a candidate for every link with an href.
func (w *Watcher) processLinks(ctx context.Context, v *cfpwatch.Venue, links []cfpwatch.Link, seen *bloom.Filter, r *VenueResult, logger *slog.Logger) {
	for _, l := range links {
		if l.Href == nil {
			continue
		}
		href := *l.Href
		r.Links++

		if seen.Seen(href) {
			r.Duplicates++
			continue
		}
		if ctx.Err() != nil {
			r.LinkErrors++
			continue
		}

		c, err := w.Pages.FetchCandidate(ctx, v, href)
		if err == nil {
			if c.Title == "" {
				c.Title = l.Text
			}
			err = w.Candidates.SaveCandidate(ctx, c)
		}
		if err != nil {
			r.LinkErrors++
			if !errors.Is(err, context.Canceled) {
				logger.Warn("link failed", "link", href, "error", err)
			}
			continue
		}
		r.Saved++
		logger.Info("new link", "link", href, "title", c.Title)
	}
}

func (w *Watcher) logger() *slog.Logger {
	if w.Logger != nil {
		return w.Logger
	}
	return slog.New(slog.DiscardHandler)
}
