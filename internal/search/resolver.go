// Package search answers free-text queries from a TTL cache, then the
// store, then a live commercial-catalog lookup.
package search

import (
	"context"
	"strings"
	"time"

	"github.com/bookhive/bookhive/internal/log"
	"github.com/bookhive/bookhive/internal/model"
	"github.com/bookhive/bookhive/internal/normalize"
	"github.com/bookhive/bookhive/internal/store"
	"github.com/bookhive/bookhive/internal/upstream"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrInvalidQuery rejects an empty search query.
var ErrInvalidQuery = errors.New("search query is required")

type cacheEntry struct {
	at      time.Time
	results []*model.Book
}

// Resolver owns its cache; the cache is created at process start, never
// persisted, and discarded at shutdown.
type Resolver struct {
	store      *store.Store
	catalog    *upstream.GoogleBooks
	cache      *lru.Cache[string, cacheEntry]
	ttl        time.Duration
	maxResults int
	now        func() time.Time
}

func NewResolver(st *store.Store, catalog *upstream.GoogleBooks, cacheSize int, ttl time.Duration, maxResults int) (*Resolver, error) {
	cache, err := lru.New[string, cacheEntry](cacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create search cache")
	}
	return &Resolver{
		store:      st,
		catalog:    catalog,
		cache:      cache,
		ttl:        ttl,
		maxResults: maxResults,
		now:        time.Now,
	}, nil
}

// Search resolves a free-text query. A fresh cache entry answers without
// touching the store or the network. Upstream failures come back wrapped as
// upstream.ErrUpstream, distinct from a valid empty answer.
func (r *Resolver) Search(ctx context.Context, query string) ([]*model.Book, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, ErrInvalidQuery
	}

	if entry, ok := r.cache.Get(query); ok {
		if r.now().Sub(entry.at) < r.ttl {
			log.Debug("Search cache hit", zap.String("query", query))
			return entry.results, nil
		}
		// Stale entries are dropped on read, not swept proactively.
		r.cache.Remove(query)
	}

	books, err := r.store.FindBooksByTitleSubstring(query)
	if err != nil {
		return nil, err
	}
	if len(books) > 0 {
		log.Debug("Search store hit", zap.String("query", query), zap.Int("rows", len(books)))
		r.cacheResults(query, books)
		return books, nil
	}

	return r.resolveUpstream(ctx, query)
}

// resolveUpstream is the fallback path: query the commercial catalog with
// the raw query, persist every titled result, then re-read the rows so the
// response carries assigned ids. Search-driven inserts are lighter-weight
// than genre ingestion: no author row is resolved.
func (r *Resolver) resolveUpstream(ctx context.Context, query string) ([]*model.Book, error) {
	volumes, err := r.catalog.Search(ctx, query, r.maxResults)
	if err != nil {
		return nil, err
	}

	records := make([]*model.Record, 0, len(volumes))
	for i := range volumes {
		rec, err := normalize.FromVolume(&volumes[i], "")
		if err != nil {
			continue
		}
		records = append(records, rec)
	}

	if len(records) > 0 {
		// One transaction covers the bulk insert: every title lands or none.
		err := r.store.WithTx(func(tx *store.Tx) error {
			for _, rec := range records {
				if _, _, err := tx.InsertBookByTitleIfAbsent(rec); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	titles := make([]string, len(records))
	for i, rec := range records {
		titles[i] = rec.Title
	}

	results, err := r.store.ListBooksByTitles(titles)
	if err != nil {
		return nil, err
	}

	log.Debug("Search resolved upstream",
		zap.String("query", query),
		zap.Int("upstream_items", len(volumes)),
		zap.Int("rows", len(results)))
	r.cacheResults(query, results)
	return results, nil
}

func (r *Resolver) cacheResults(query string, results []*model.Book) {
	r.cache.Add(query, cacheEntry{at: r.now(), results: results})
}
