package fetch

import (
	"context"

	"github.com/bookhive/bookhive/internal/log"
	"github.com/bookhive/bookhive/internal/model"
	"github.com/bookhive/bookhive/internal/store"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Orchestrator drives paginated retrieval from the upstream providers into
// the store. It owns the Progress state; both are created at process start
// and discarded at shutdown.
type Orchestrator struct {
	store    *store.Store
	progress *Progress
	sources  map[model.Provider]Source
}

func NewOrchestrator(st *store.Store, progress *Progress, sources ...Source) *Orchestrator {
	byProvider := make(map[model.Provider]Source, len(sources))
	for _, src := range sources {
		byProvider[src.Name()] = src
	}
	return &Orchestrator{
		store:    st,
		progress: progress,
		sources:  byProvider,
	}
}

// RunFetch ingests one subject from one provider, resuming at the recorded
// offset, until the subject is exhausted or target items have been paged
// through. It returns how many books were newly inserted.
//
// An upstream page failure aborts the remaining pages of this call but is
// not propagated: the count so far comes back and the last good offset stays
// recorded for the next invocation to resume from. Store failures do
// propagate.
func (o *Orchestrator) RunFetch(ctx context.Context, provider model.Provider, subject string, target int) (int, error) {
	source, ok := o.sources[provider]
	if !ok {
		return 0, errors.Errorf("unknown provider %q", provider)
	}

	key := Key{Provider: provider, Subject: subject}
	offset := o.progress.Offset(key)
	inserted := 0

	for offset < target {
		limit := source.PageCap()
		if remaining := target - offset; remaining < limit {
			limit = remaining
		}

		items, err := source.FetchPage(ctx, subject, offset, limit)
		if err != nil {
			log.Warn("Upstream page fetch failed, aborting remaining pages",
				zap.String("provider", provider.String()),
				zap.String("subject", subject),
				zap.Int("offset", offset),
				zap.Error(err))
			return inserted, nil
		}
		if len(items) == 0 {
			// Subject exhausted.
			break
		}

		n, err := o.ingestPage(subject, items)
		if err != nil {
			return inserted, err
		}
		inserted += n

		offset += len(items)
		o.progress.SetOffset(key, offset)

		log.Debug("Page ingested",
			zap.String("provider", provider.String()),
			zap.String("subject", subject),
			zap.Int("page_items", len(items)),
			zap.Int("next_offset", offset),
			zap.Int("inserted_so_far", inserted))
	}

	log.Info("Fetch finished",
		zap.String("provider", provider.String()),
		zap.String("subject", subject),
		zap.Int("inserted", inserted))
	return inserted, nil
}

// ingestPage writes one page atomically. Malformed items and items whose
// author cannot be resolved are skipped inside the transaction; a store
// failure rolls back the whole page.
func (o *Orchestrator) ingestPage(subject string, items []Item) (int, error) {
	inserted := 0
	err := o.store.WithTx(func(tx *store.Tx) error {
		for _, item := range items {
			rec, err := item.Normalize(subject)
			if err != nil {
				log.Debug("Skipping malformed upstream item",
					zap.String("subject", subject),
					zap.Error(err))
				continue
			}

			authorID, err := tx.UpsertAuthor(rec.AuthorName)
			if err != nil {
				log.Warn("Skipping item, author resolution failed",
					zap.String("title", rec.Title),
					zap.String("author", rec.AuthorName),
					zap.Error(err))
				continue
			}

			newlyInserted, _, err := tx.InsertBookIfAbsent(rec, &authorID)
			if err != nil {
				return err
			}
			if newlyInserted {
				inserted++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

// RunSweep runs one sequential fetch per subject. A failed task is logged
// and never aborts the other tasks in the sweep.
func (o *Orchestrator) RunSweep(ctx context.Context, provider model.Provider, subjects []string, perSubjectTarget int) int {
	total := 0
	for _, subject := range subjects {
		inserted, err := o.RunFetch(ctx, provider, subject, perSubjectTarget)
		if err != nil {
			log.Error("Fetch task failed",
				zap.String("provider", provider.String()),
				zap.String("subject", subject),
				zap.Error(err))
			continue
		}
		total += inserted
	}

	if count, err := o.store.CountBooks(); err == nil {
		log.Info("Sweep finished", zap.Int("inserted", total), zap.Int("total_books", count))
	}
	return total
}

// SeedIfEmpty populates an empty store with a single subjects-API pull so a
// fresh install has rows to serve before the first scheduled sweep lands.
func (o *Orchestrator) SeedIfEmpty(ctx context.Context, limit int) error {
	count, err := o.store.CountBooks()
	if err != nil {
		return err
	}
	if count > 0 {
		log.Debug("Store already has books, skipping seed", zap.Int("count", count))
		return nil
	}

	inserted, err := o.RunFetch(ctx, model.ProviderOpenLibrary, "fiction", limit)
	if err != nil {
		return err
	}
	log.Info("Seeded store from library-subjects API", zap.Int("inserted", inserted))
	return nil
}
