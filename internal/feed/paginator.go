// Package feed serves the shuffled post feed in pages.
//
// All requests within one calendar day see the same permutation of the
// current post set. Pages are slices of that permutation, so walking skip
// forward never repeats an item while the set does not shrink. Posts created
// or deleted mid-walk can shift the permutation; callers accept that drift.
package feed

import (
	"context"
	"math/rand/v2"
	"sort"
	"time"

	"go.uber.org/zap"

	"zentra/internal/common"
	"zentra/internal/config"
)

type Item struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"authorId"`
	Content   string    `json:"content"`
	Likes     int       `json:"likes"`
	CreatedAt time.Time `json:"createdAt"`
}

type PostSource interface {
	ListIDs(ctx context.Context) ([]string, error)
	ByIDs(ctx context.Context, ids []string) ([]Item, error)
}

type Page struct {
	Items   []Item `json:"items"`
	HasMore bool   `json:"hasMore"`
	Total   int    `json:"total"`
}

type Paginator struct {
	source   PostSource
	loc      *time.Location
	maxLimit int
	logger   *zap.Logger
	now      func() time.Time
}

func NewPaginator(source PostSource, cfg config.FeedConfig, loc *time.Location, logger *zap.Logger) *Paginator {
	return &Paginator{
		source:   source,
		loc:      loc,
		maxLimit: cfg.MaxLimit,
		logger:   logger,
		now:      time.Now,
	}
}

// Page returns the window [skip, skip+limit) of today's permutation.
func (p *Paginator) Page(ctx context.Context, skip, limit int) (Page, error) {
	if skip < 0 {
		return Page{}, common.BadRequest("skip must not be negative")
	}
	if limit <= 0 {
		return Page{}, common.BadRequest("limit must be positive")
	}
	if p.maxLimit > 0 && limit > p.maxLimit {
		return Page{}, common.BadRequest("limit is too large")
	}

	ids, err := p.source.ListIDs(ctx)
	if err != nil {
		return Page{}, err
	}
	order := Permute(ids, DaySeed(p.now(), p.loc))
	total := len(order)

	page := Page{Items: []Item{}, Total: total}
	if skip >= total {
		return page, nil
	}
	end := min(skip+limit, total)
	window := dedup(order[skip:end])

	items, err := p.source.ByIDs(ctx, window)
	if err != nil {
		return Page{}, err
	}
	byID := make(map[string]Item, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}
	for _, id := range window {
		it, ok := byID[id]
		if !ok {
			// deleted between the two reads
			p.logger.Debug("feed item vanished", zap.String("post_id", id))
			continue
		}
		page.Items = append(page.Items, it)
	}
	page.HasMore = skip+limit < total && len(page.Items) == limit
	return page, nil
}

// Permute returns a copy of ids sorted and then shuffled by seed. The result
// depends only on the set of ids and the seed.
func Permute(ids []string, seed int64) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	sort.Strings(out)
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

func dedup(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
