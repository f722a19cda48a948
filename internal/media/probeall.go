package media

import (
	"context"
	"errors"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/cblegare/md2pptx/internal/deck"
)

// DefaultWorkers bounds concurrent probes when no limit is given.
const DefaultWorkers = 4

// Sizes maps a media source to its natural size.
type Sizes map[string]Size

// NaturalSize implements the layout engine's size lookup.
func (s Sizes) NaturalSize(ref *deck.MediaRef) (int, int, bool) {
	if ref == nil {
		return 0, 0, false
	}
	size, ok := s[ref.Source]
	if !ok || size.Width <= 0 || size.Height <= 0 {
		return 0, 0, false
	}
	return size.Width, size.Height, true
}

// use is one distinct media reference and the first slide showing it.
type use struct {
	ref   *deck.MediaRef
	slide int
}

// References returns every distinct media reference of doc in slide order.
func References(doc *deck.Document) []*deck.MediaRef {
	var out []*deck.MediaRef
	for _, u := range collect(doc) {
		out = append(out, u.ref)
	}
	return out
}

func collect(doc *deck.Document) []use {
	seen := make(map[string]bool)
	var uses []use
	add := func(ref *deck.MediaRef, slide int) {
		if ref == nil || ref.Source == "" || seen[ref.Source] {
			return
		}
		seen[ref.Source] = true
		uses = append(uses, use{ref: ref, slide: slide})
	}

	for _, s := range doc.Slides {
		for _, c := range s.Cards {
			add(c.Graphic, s.Number)
		}
		for _, g := range s.Tables {
			for _, row := range g.Media {
				for _, ref := range row {
					add(ref, s.Number)
				}
			}
		}
	}
	return uses
}

// ProbeAll probes every distinct reference of doc with at most workers
// concurrent probes. A failed probe becomes a media warning and its source
// is left out of the result. Only cancellation is returned as an error.
func ProbeAll(ctx context.Context, p Prober, doc *deck.Document, workers int) (Sizes, deck.Diagnostics, error) {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	uses := collect(doc)
	sizes := make(Sizes, len(uses))
	failures := make(map[int]error)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var mu sync.Mutex
	for i, u := range uses {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			size, err := p.Probe(gctx, u.ref)
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures[i] = err
				return nil
			}
			sizes[u.ref.Source] = size
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, deck.Diagnostics{}, err
	}

	var diags deck.Diagnostics
	order := make([]int, 0, len(failures))
	for i := range failures {
		order = append(order, i)
	}
	sort.Ints(order)
	for _, i := range order {
		diags.Warn(deck.WarnMedia, 0, uses[i].slide, "%v; block skipped", failures[i])
	}
	return sizes, diags, nil
}
