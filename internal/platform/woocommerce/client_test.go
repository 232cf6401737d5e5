package woocommerce_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rarebeats-player/internal/platform/woocommerce"
	"github.com/rarebeats-player/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const productsJSON = `[
  {"id": 11, "name": "Dark Trap Beat", "slug": "dark-trap-beat", "price": "29.99", "type": "variable", "status": "publish",
   "images": [{"src": "https://shop.example.com/dark.jpg"}], "variations": [101, 102],
   "meta_data": [{"key": "genre", "value": "Trap"}, {"key": "bpm", "value": 140}, {"key": "mood", "value": "Dark"}, {"key": "key", "value": "Am"}, {"key": "audio_url", "value": "https://cdn.example.com/1.mp3"}]},
  {"id": 12, "name": "Chill Lo-Fi Beat", "slug": "chill-lo-fi-beat", "price": "29.99", "type": "simple", "status": "publish",
   "images": [], "variations": [],
   "meta_data": [{"key": "genre", "value": "Lo-Fi"}, {"key": "bpm", "value": "85"}, {"key": "mood", "value": "Chill"}]}
]`

const variationsJSON = `[
  {"id": 101, "price": "9.99", "regular_price": "9.99", "attributes": [{"name": "License Type", "option": "Basic"}]},
  {"id": 102, "price": "19.99", "regular_price": "24.99", "attributes": [{"name": "License Type", "option": "Premium"}]}
]`

func newWooServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/wp-json/wc/v3/products", func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "ck_test" || pass != "cs_test" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		assert.Equal(t, "publish", r.URL.Query().Get("status"))
		_, _ = w.Write([]byte(productsJSON))
	})
	mux.HandleFunc("/wp-json/wc/v3/products/11", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": 11, "name": "Dark Trap Beat", "type": "variable", "status": "publish", "variations": [101, 102],
		  "meta_data": [{"key": "genre", "value": "Trap"}]}`))
	})
	mux.HandleFunc("/wp-json/wc/v3/products/11/variations", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(variationsJSON))
	})
	mux.HandleFunc("/wp-json/wc/v3/products/99", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code":"woocommerce_rest_product_invalid_id"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestQueryMapsMetaAndFiltersCaseInsensitively(t *testing.T) {
	srv := newWooServer(t)
	client := woocommerce.NewClient(srv.Client(), srv.URL+"/", "ck_test", "cs_test")

	all, err := client.Query(context.Background(), repository.ProductQuery{PerPage: 100})
	require.NoError(t, err)
	require.Len(t, all, 2)

	first := all[0]
	assert.Equal(t, "Trap", first.Genre)
	assert.Equal(t, "140", first.BPM)
	assert.Equal(t, "Am", first.Key)
	assert.Equal(t, "https://shop.example.com/dark.jpg", first.ImageURL)
	assert.Equal(t, []uint{101, 102}, first.VariationIDs)
	assert.Empty(t, first.Variations)
	assert.Equal(t, "", all[1].ImageURL)

	trap, err := client.Query(context.Background(), repository.ProductQuery{Genre: "TRAP"})
	require.NoError(t, err)
	require.Len(t, trap, 1)
	assert.Equal(t, uint(11), trap[0].ID)

	none, err := client.Query(context.Background(), repository.ProductQuery{Genre: "tra"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestQueryWithVariations(t *testing.T) {
	srv := newWooServer(t)
	client := woocommerce.NewClient(srv.Client(), srv.URL, "ck_test", "cs_test")

	items, err := client.Query(context.Background(), repository.ProductQuery{Genre: "trap", WithVariations: true})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Len(t, items[0].Variations, 2)
	assert.Equal(t, "24.99", items[0].Variations[1].RegularPrice.String())
}

func TestGetByID(t *testing.T) {
	srv := newWooServer(t)
	client := woocommerce.NewClient(srv.Client(), srv.URL, "ck_test", "cs_test")

	product, err := client.GetByID(context.Background(), 11)
	require.NoError(t, err)
	require.NotNil(t, product)
	require.Len(t, product.Variations, 2)
	assert.Equal(t, "Basic", product.Variations[0].Attributes[0].Option)
	assert.Equal(t, "9.99", product.Variations[0].Price.String())

	missing, err := client.GetByID(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestQueryPropagatesAuthFailure(t *testing.T) {
	srv := newWooServer(t)
	client := woocommerce.NewClient(srv.Client(), srv.URL, "wrong", "creds")

	_, err := client.Query(context.Background(), repository.ProductQuery{})
	require.Error(t, err)

	var statusErr *woocommerce.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
}
