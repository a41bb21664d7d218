package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/Bey1222/yonk-backend/models"
	"github.com/Bey1222/yonk-backend/pkg/authtoken"
)

func authedCtx() context.Context {
	return authtoken.WithToken(context.Background(), "test-token")
}

func TestCatalogClientFailsFastWithoutToken(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	client := NewCatalogClient(server.URL, zap.NewNop())

	_, err := client.FetchShop(context.Background(), "s1")
	assert.ErrorIs(t, err, ErrNoToken)
	assert.Equal(t, int32(0), hits.Load(), "no request may leave without a token")
}

func TestCatalogClientAttachesBearerHeader(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"shop":{"id":"s1","name":"Mama Ngozi Kitchen","rating":4.5}}`))
	}))
	defer server.Close()

	client := NewCatalogClient(server.URL, zap.NewNop())

	shop, err := client.FetchShop(authedCtx(), "s1")
	assert.NoError(t, err)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "s1", shop.ID)
}

func TestCatalogClientRetriesGetOnce(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"shop":{"id":"s1","name":"Mama Ngozi Kitchen","rating":4.5}}`))
	}))
	defer server.Close()

	client := NewCatalogClient(server.URL, zap.NewNop())

	shop, err := client.FetchShop(authedCtx(), "s1")
	assert.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
	assert.Equal(t, "s1", shop.ID)
}

func TestCatalogClientGivesUpAfterOneRetry(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewCatalogClient(server.URL, zap.NewNop())

	_, err := client.FetchShop(authedCtx(), "s1")
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
	assert.Equal(t, int32(2), hits.Load())
}

func TestCatalogClientNeverRetriesCartMutations(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewCatalogClient(server.URL, zap.NewNop())

	_, err := client.AddToCart(authedCtx(), UpstreamCartRequest{ProductID: "p1", Quantity: 1})
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
	assert.Equal(t, int32(1), hits.Load(), "a retried POST could create a duplicate cart line")
}

func TestCatalogClientNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewCatalogClient(server.URL, zap.NewNop())

	_, err := client.FetchShop(authedCtx(), "ghost")
	assert.ErrorIs(t, err, ErrShopNotFound)
}

func TestCatalogClientMalformedResponsesAreNoData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/products":
			w.Write([]byte(`{"unexpected":true}`))
		default:
			w.Write([]byte(`not json at all`))
		}
	}))
	defer server.Close()

	client := NewCatalogClient(server.URL, zap.NewNop())

	products, err := client.FetchProductsByCategory(authedCtx(), models.CategoryFood, "")
	assert.NoError(t, err)
	assert.Nil(t, products)

	_, err = client.FetchShop(authedCtx(), "s1")
	assert.ErrorIs(t, err, ErrShopNotFound)
}
