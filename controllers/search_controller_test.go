package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/Bey1222/yonk-backend/models"
	"github.com/Bey1222/yonk-backend/services"
)

// stubCatalogAPI serves a fixed food shop with numbered rice dishes.
type stubCatalogAPI struct {
	productCount int
}

func (s *stubCatalogAPI) shop() models.Shop {
	return models.Shop{
		ID:       "s1",
		Name:     "Mama Ngozi Kitchen",
		Address:  models.Address{City: "Ikeja", State: "Lagos"},
		Category: models.CategoryFood,
		Rating:   4.5,
		Tier:     models.TierPremium,
	}
}

func (s *stubCatalogAPI) FetchShop(_ context.Context, shopID string) (*models.Shop, error) {
	shop := s.shop()
	return &shop, nil
}

func (s *stubCatalogAPI) FetchShopProducts(_ context.Context, _ string) ([]models.Product, error) {
	return nil, nil
}

func (s *stubCatalogAPI) FetchShopsByCategory(_ context.Context, _ models.CategoryTag) ([]models.Shop, error) {
	return []models.Shop{s.shop()}, nil
}

func (s *stubCatalogAPI) FetchProductsByCategory(_ context.Context, tag models.CategoryTag, _ string) ([]models.Product, error) {
	if tag != models.CategoryFood {
		return nil, nil
	}
	products := make([]models.Product, 0, s.productCount)
	for i := 0; i < s.productCount; i++ {
		products = append(products, models.Product{
			ID:       fmt.Sprintf("p%02d", i),
			Name:     fmt.Sprintf("Rice Dish %02d", i),
			Price:    1000,
			Category: models.CategoryFood,
			ShopID:   "s1",
		})
	}
	return products, nil
}

func (s *stubCatalogAPI) AddToCart(_ context.Context, _ services.UpstreamCartRequest) (json.RawMessage, error) {
	return json.RawMessage(`{}`), nil
}

func (s *stubCatalogAPI) ReduceQuantity(_ context.Context, _ services.UpstreamCartRequest) (json.RawMessage, error) {
	return json.RawMessage(`{}`), nil
}

type searchResponse struct {
	Results []models.SearchResult `json:"results"`
	Total   int                   `json:"total"`
	Offset  int                   `json:"offset"`
	Limit   int                   `json:"limit"`
}

func searchTestRouter(api services.CatalogAPI) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := zap.NewNop()
	dir := services.NewDirectoryCache(api, log)
	svc := services.NewSearchService(api, dir, log)
	sc := NewSearchController(svc, log)

	r := gin.New()
	r.GET("/search", asUser("u1"), sc.Search)
	return r
}

func doSearch(t *testing.T, r *gin.Engine, path string) (*httptest.ResponseRecorder, searchResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var parsed searchResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &parsed)
	return rec, parsed
}

func TestSearchControllerEmptyQuery(t *testing.T) {
	r := searchTestRouter(&stubCatalogAPI{productCount: 25})

	rec, parsed := doSearch(t, r, "/search?q=")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, parsed.Results)
	assert.Equal(t, 0, parsed.Total)
}

func TestSearchControllerInlineWindowIsTen(t *testing.T) {
	r := searchTestRouter(&stubCatalogAPI{productCount: 25})

	rec, parsed := doSearch(t, r, "/search?q=rice")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, parsed.Results, services.InlineResultLimit)
	assert.Equal(t, 25, parsed.Total)
}

func TestSearchControllerSeeMoreWindow(t *testing.T) {
	r := searchTestRouter(&stubCatalogAPI{productCount: 25})

	rec, parsed := doSearch(t, r, "/search?q=rice&offset=10&limit=100")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, parsed.Results, 15)
	assert.Equal(t, 25, parsed.Total)

	// The "see more" window continues the inline ordering.
	assert.Equal(t, "p10", parsed.Results[0].ProductID)
}

func TestSearchControllerOffsetPastEnd(t *testing.T) {
	r := searchTestRouter(&stubCatalogAPI{productCount: 3})

	rec, parsed := doSearch(t, r, "/search?q=rice&offset=50")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, parsed.Results)
	assert.Equal(t, 3, parsed.Total)
}

func TestSearchControllerRequiresUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sc := NewSearchController(&gateSearcher{}, zap.NewNop())

	r := gin.New()
	r.GET("/search", sc.Search)

	rec, _ := doSearch(t, r, "/search?q=rice")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// gateSearcher parks queries named "slow" until released, so a test can
// issue a newer request while an older one is still in flight.
type gateSearcher struct {
	entered chan struct{}
	release chan struct{}
}

func (g *gateSearcher) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	if query == "slow" {
		g.entered <- struct{}{}
		select {
		case <-g.release:
		case <-ctx.Done():
		}
	}
	return []models.SearchResult{{ProductID: "r-" + query, Name: query}}, nil
}

func TestSearchControllerSupersededRequestConflicts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gate := &gateSearcher{entered: make(chan struct{}, 1), release: make(chan struct{})}
	sc := NewSearchController(gate, zap.NewNop())

	r := gin.New()
	r.GET("/search", asUser("u1"), sc.Search)

	slowDone := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		req := httptest.NewRequest(http.MethodGet, "/search?q=slow", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		slowDone <- rec
	}()
	<-gate.entered

	rec, parsed := doSearch(t, r, "/search?q=fresh")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "r-fresh", parsed.Results[0].ProductID)

	close(gate.release)
	slow := <-slowDone
	assert.Equal(t, http.StatusConflict, slow.Code, "the superseded request is never rendered")
}

func TestSearchControllerSessionsArePerUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gate := &gateSearcher{entered: make(chan struct{}, 1), release: make(chan struct{})}
	sc := NewSearchController(gate, zap.NewNop())

	r := gin.New()
	r.GET("/a/search", asUser("u1"), sc.Search)
	r.GET("/b/search", asUser("u2"), sc.Search)

	slowDone := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		req := httptest.NewRequest(http.MethodGet, "/a/search?q=slow", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		slowDone <- rec
	}()
	<-gate.entered

	rec, _ := doSearch(t, r, "/b/search?q=fresh")
	assert.Equal(t, http.StatusOK, rec.Code)

	close(gate.release)
	slow := <-slowDone
	assert.Equal(t, http.StatusOK, slow.Code, "another user's query must not supersede this one")
}
