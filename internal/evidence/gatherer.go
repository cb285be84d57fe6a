// File path: internal/evidence/gatherer.go
package evidence

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/bioailab/zotero-agent/internal/citation"
	"github.com/bioailab/zotero-agent/internal/common"
	"github.com/bioailab/zotero-agent/internal/zotero"
)

const (
	// childListLimit caps how many child records are fetched per item.
	childListLimit = 200
	// maxInFlightFetches bounds concurrent full-text requests so one item
	// with many attachments does not hammer the library.
	maxInFlightFetches = 4
)

// Gatherer composes the evidence pipeline: resolve item, list attachments,
// fetch indexed text, extract snippets, aggregate coverage.
type Gatherer struct {
	store zotero.Store
}

func NewGatherer(store zotero.Store) *Gatherer {
	return &Gatherer{store: store}
}

// attachmentResult carries one attachment's outcome back to the
// order-stable aggregation step.
type attachmentResult struct {
	hasText  bool
	snippets []Snippet
}

// Gather runs the pipeline for one item and query. Parent-item and
// child-listing failures are terminal; a single attachment failing to
// yield text is downgraded to "no full text" so partial results survive.
func (g *Gatherer) Gather(ctx context.Context, itemKey, query string, maxSnippets, contextChars int) (*Report, error) {
	logger := common.Logger()

	item, err := g.store.Item(ctx, itemKey)
	if err != nil {
		return nil, err
	}
	article, ok := citation.FromItem(item)
	if !ok {
		return nil, zotero.ErrNotFound
	}

	children, err := g.store.Children(ctx, itemKey, childListLimit)
	if err != nil {
		return nil, fmt.Errorf("list children of %s: %w", itemKey, err)
	}
	attachments := make([]zotero.Item, 0, len(children))
	for _, child := range children {
		if child.IsAttachment() {
			attachments = append(attachments, child)
		}
	}
	logger.Info("evidence: gathering", "item", itemKey, "attachments", len(attachments), "query", query)

	results := make([]attachmentResult, len(attachments))
	grp, grpCtx := errgroup.WithContext(ctx)
	grp.SetLimit(maxInFlightFetches)
	for i := range attachments {
		i := i
		att := attachments[i]
		grp.Go(func() error {
			text, err := g.store.FullText(grpCtx, att.Key)
			if err != nil {
				// One bad attachment must not fail its siblings.
				logger.Warn("evidence: full text fetch failed, treating as unindexed", "attachment", att.Key, "error", err)
				return nil
			}
			if text == nil {
				return nil
			}
			results[i] = attachmentResult{
				hasText:  true,
				snippets: Extract(text.Content, query, maxSnippets, contextChars),
			}
			return nil
		})
	}
	// Workers never return errors; Wait only observes context cancellation.
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	report := &Report{
		Article: article,
		ItemKey: itemKey,
		Query:   query,
		Coverage: Coverage{
			AnexosTotal: len(attachments),
		},
	}
	for i, res := range results {
		if !res.hasText {
			continue
		}
		report.Coverage.AnexosComFulltext++
		if len(res.snippets) == 0 {
			continue
		}
		report.Coverage.AnexosComHits++
		report.Evidence = append(report.Evidence, AttachmentEvidence{
			AttachmentKey: attachments[i].Key,
			Filename:      attachments[i].Data.Filename,
			Snippets:      res.snippets,
		})
	}
	logger.Info(
		"evidence: gathered",
		"item", itemKey,
		"with_fulltext", report.Coverage.AnexosComFulltext,
		"with_hits", report.Coverage.AnexosComHits,
	)
	return report, nil
}
