package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/Bey1222/yonk-backend/models"
)

// InlineResultLimit is how many results the consuming screen shows before
// the explicit "see more" action.
const InlineResultLimit = 10

// ErrStaleSearch marks a search superseded by a newer one in the same
// session. Callers drop the result instead of rendering it.
var ErrStaleSearch = errors.New("search superseded by a newer query")

// SearchService matches free-text queries against the product corpus and
// enriches matches with the owning shop's display fields and destination
// screen. The corpus is a lazily-loaded snapshot: the first search fetches
// each category's products once and later searches reuse it.
type SearchService struct {
	api CatalogAPI
	dir *DirectoryCache
	log *zap.Logger

	mu      sync.RWMutex
	corpus  []models.Product
	loaded  bool
	results map[string][]models.SearchResult
	group   singleflight.Group
}

// searchCacheLimit bounds the per-query result cache. Past it the cache is
// reset wholesale rather than evicted entry by entry.
const searchCacheLimit = 256

func NewSearchService(api CatalogAPI, dir *DirectoryCache, log *zap.Logger) *SearchService {
	return &SearchService{api: api, dir: dir, log: log}
}

// Search returns results ordered by name-prefix matches first, then
// substring matches, ties broken by product name then id. The same query
// against the same corpus always yields the same order. A blank query
// yields no results and no error.
func (s *SearchService) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []models.SearchResult{}, nil
	}

	s.mu.RLock()
	cached, ok := s.results[q]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	corpus, err := s.loadCorpus(ctx)
	if err != nil {
		return nil, err
	}

	type match struct {
		product models.Product
		prefix  bool
	}
	var matches []match
	for _, p := range corpus {
		name := strings.ToLower(p.Name)
		if !strings.Contains(name, q) {
			continue
		}
		matches = append(matches, match{product: p, prefix: strings.HasPrefix(name, q)})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].prefix != matches[j].prefix {
			return matches[i].prefix
		}
		if matches[i].product.Name != matches[j].product.Name {
			return matches[i].product.Name < matches[j].product.Name
		}
		return matches[i].product.ID < matches[j].product.ID
	})

	results := make([]models.SearchResult, 0, len(matches))
	for _, m := range matches {
		result, ok := s.resolve(ctx, m.product)
		if !ok {
			continue
		}
		results = append(results, result)
	}

	// Pin the resolved sequence so later offset windows of the same query
	// page over identical results. A cancelled search may have resolved
	// only part of its matches, so it must not pin anything.
	if ctx.Err() == nil {
		s.mu.Lock()
		if len(s.results) >= searchCacheLimit {
			s.results = nil
		}
		if s.results == nil {
			s.results = make(map[string][]models.SearchResult)
		}
		s.results[q] = results
		s.mu.Unlock()
	}
	return results, nil
}

// resolve denormalizes the owning shop and destination screen onto the
// result. Products whose shop or category cannot be resolved are dropped:
// the screen cannot navigate anywhere with them.
func (s *SearchService) resolve(ctx context.Context, p models.Product) (models.SearchResult, bool) {
	dest, err := ResolveCategoryTag(p.Category)
	if err != nil {
		s.log.Error("unroutable product category",
			zap.String("product_id", p.ID),
			zap.String("category", string(p.Category)),
		)
		return models.SearchResult{}, false
	}

	record, err := s.dir.GetShop(ctx, p.ShopID)
	if err != nil {
		s.log.Warn("could not resolve owning shop",
			zap.String("product_id", p.ID),
			zap.String("shop_id", p.ShopID),
			zap.Error(err),
		)
		return models.SearchResult{}, false
	}

	return models.SearchResult{
		ProductID:     p.ID,
		Name:          p.Name,
		Price:         p.Price,
		DiscountPrice: p.DiscountPrice,
		Image:         p.FirstImage(),
		Category:      p.Category.Lower(),
		Screen:        dest.Screen,
		Shop:          record.Shop.Summary(),
	}, true
}

func (s *SearchService) loadCorpus(ctx context.Context) ([]models.Product, error) {
	s.mu.RLock()
	if s.loaded {
		corpus := s.corpus
		s.mu.RUnlock()
		return corpus, nil
	}
	s.mu.RUnlock()

	result, err, _ := s.group.Do("corpus", func() (any, error) {
		s.mu.RLock()
		if s.loaded {
			corpus := s.corpus
			s.mu.RUnlock()
			return corpus, nil
		}
		s.mu.RUnlock()

		var corpus []models.Product
		for _, tag := range models.AllCategories() {
			products, err := s.api.FetchProductsByCategory(ctx, tag, "")
			if err != nil {
				return nil, err
			}
			corpus = append(corpus, products...)
		}

		s.mu.Lock()
		s.corpus = corpus
		s.loaded = true
		s.mu.Unlock()
		return corpus, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]models.Product), nil
}

// Searcher matches free-text queries against the catalog.
type Searcher interface {
	Search(ctx context.Context, query string) ([]models.SearchResult, error)
}

// SearchSession serializes keystroke-triggered searches. Each new query
// cancels the previous in-flight search and bumps a sequence number; any
// result that lands after a newer query was issued comes back as
// ErrStaleSearch so it can never overwrite fresher results.
type SearchSession struct {
	svc Searcher
	seq atomic.Uint64

	mu        sync.Mutex
	cancelSeq uint64
	cancel    context.CancelFunc
}

func NewSearchSession(svc Searcher) *SearchSession {
	return &SearchSession{svc: svc}
}

// supersede registers cancel as the in-flight search if id is the newest
// seen, cancelling the previous one. An id that lost the race to a newer
// registration gets its own context cancelled instead, so an older call
// can never cancel a newer one no matter how the lock is acquired.
func (s *SearchSession) supersede(id uint64, cancel context.CancelFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id <= s.cancelSeq {
		cancel()
		return
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.cancelSeq = id
	s.cancel = cancel
}

func (s *SearchSession) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	id := s.seq.Add(1)

	ctx, cancel := context.WithCancel(ctx)
	s.supersede(id, cancel)

	results, err := s.svc.Search(ctx, query)
	if s.seq.Load() != id {
		return nil, ErrStaleSearch
	}
	if err != nil {
		return nil, err
	}
	return results, nil
}
