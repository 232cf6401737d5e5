package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rarebeats-player/internal/config"
	"github.com/rarebeats-player/internal/constants"
	"github.com/rarebeats-player/internal/models"
	"github.com/rarebeats-player/internal/provider"
	"github.com/rarebeats-player/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

const testNamespace = "/wp-json/rarebeats/v1"

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Server: config.ServerConfig{Mode: "debug"},
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", constants.DefaultNonceHeader},
			MaxAge:         600,
		},
		Storefront: config.StorefrontConfig{
			Namespace:      testNamespace,
			PublicURL:      "http://beats.test",
			AssetDir:       t.TempDir(),
			AssetURLPrefix: "/player",
			EmbedHeight:    "800px",
			MountRetryMS:   250,
		},
		Nonce: config.NonceConfig{
			Secret:   "router-test-secret",
			TTLHours: 1,
			Header:   constants.DefaultNonceHeader,
		},
		Catalog: config.CatalogConfig{
			Source:         constants.CatalogSourceDatabase,
			DefaultPerPage: 50,
			MaxPerPage:     100,
		},
		Checkout: config.CheckoutConfig{
			NativeCart: constants.NativeCartDatabase,
			CartPath:   "/cart/",
		},
	}
}

func setupRouterTest(t *testing.T, mutate func(*config.Config)) (*gin.Engine, *provider.Container) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	oldDB := models.DB
	models.DB = db
	t.Cleanup(func() {
		models.DB = oldDB
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := models.AutoMigrate(); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	cfg := newTestConfig(t)
	if mutate != nil {
		mutate(cfg)
	}
	container := provider.NewContainer(cfg)
	return SetupRouter(cfg, container), container
}

func seedBeat(t *testing.T, slug, genre, bpm string) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:        strings.ToUpper(slug),
		Slug:        slug,
		PriceAmount: models.MustMoney("29.99"),
		Type:        constants.ProductTypeVariable,
		Status:      constants.ProductStatusPublish,
	}
	product.SetMeta(constants.MetaGenre, genre)
	product.SetMeta(constants.MetaBPM, bpm)
	product.SetMeta(constants.MetaAudioURL, "https://cdn.example.com/"+slug+".mp3")
	variation := models.ProductVariation{
		PriceAmount:        models.MustMoney("29.99"),
		RegularPriceAmount: models.MustMoney("29.99"),
		Status:             constants.ProductStatusPublish,
	}
	if err := variation.SetAttributes([]models.VariationAttribute{{Name: "pa_license-type", Option: "Basic"}}); err != nil {
		t.Fatalf("set attributes failed: %v", err)
	}
	product.Variations = []models.ProductVariation{variation}
	if err := repository.NewProductStore(models.DB).Save(context.Background(), product); err != nil {
		t.Fatalf("save product failed: %v", err)
	}
	return product
}

func doRequest(r http.Handler, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body failed: %v body=%s", err, w.Body.String())
	}
	return body
}

func assertErrorBody(t *testing.T, w *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	if w.Code != status {
		t.Fatalf("status want %d got %d body=%s", status, w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["code"] != code {
		t.Fatalf("code want %s got %v", code, body["code"])
	}
	data, ok := body["data"].(map[string]interface{})
	if !ok || int(data["status"].(float64)) != status {
		t.Fatalf("data.status want %d got %v", status, body["data"])
	}
}

func cartItemPayload(productID uint) map[string]interface{} {
	return map[string]interface{}{
		"product_id":   productID,
		"variation_id": productID*10 + 1,
		"name":         "Midnight Drive",
		"license_type": "Basic",
		"price":        29.99,
		"audio_url":    "https://cdn.example.com/midnight.mp3",
	}
}

func TestNamespaceIndex(t *testing.T) {
	r, _ := setupRouterTest(t, nil)
	w := doRequest(r, http.MethodGet, testNamespace, nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if body := decodeBody(t, w); body["message"] != "RareBeats API" {
		t.Fatalf("unexpected index body: %v", body)
	}
}

func TestProductsEndpoints(t *testing.T) {
	r, _ := setupRouterTest(t, nil)
	trap := seedBeat(t, "dark-trap", "Trap", "140")
	seedBeat(t, "lofi", "Lo-Fi", "85")

	w := doRequest(r, http.MethodGet, testNamespace+"/products?genre=trap", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status want 200 got %d body=%s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	products := body["products"].([]interface{})
	if len(products) != 1 || int(body["total"].(float64)) != 1 || int(body["page"].(float64)) != 1 {
		t.Fatalf("unexpected list body: %v", body)
	}
	first := products[0].(map[string]interface{})
	if first["slug"] != "dark-trap" || first["bpm"].(float64) != 140 {
		t.Fatalf("unexpected product: %v", first)
	}

	w = doRequest(r, http.MethodGet, fmt.Sprintf("%s/products/%d", testNamespace, trap.ID), nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("detail status want 200 got %d", w.Code)
	}
	detail := decodeBody(t, w)
	variations := detail["variations_data"].([]interface{})
	if len(variations) != 1 {
		t.Fatalf("want 1 resolved variation got %v", detail["variations_data"])
	}
	attrs := variations[0].(map[string]interface{})["attributes"].([]interface{})
	if attrs[0].(map[string]interface{})["name"] != "License Type" {
		t.Fatalf("attribute name should be display cased, got %v", attrs)
	}

	assertErrorBody(t, doRequest(r, http.MethodGet, testNamespace+"/products/9999", nil, nil), http.StatusNotFound, "not_found")
	assertErrorBody(t, doRequest(r, http.MethodGet, testNamespace+"/products?bpm_min=fast", nil, nil), http.StatusBadRequest, "rest_invalid_param")
	assertErrorBody(t, doRequest(r, http.MethodGet, testNamespace+"/products?bpm_min=150&bpm_max=100", nil, nil), http.StatusBadRequest, "rest_invalid_param")
}

func TestProductsPageBeyondRangeIsEmpty(t *testing.T) {
	r, _ := setupRouterTest(t, nil)
	seedBeat(t, "dark-trap", "Trap", "140")

	w := doRequest(r, http.MethodGet, testNamespace+"/products?page=9223372036854775807", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d body=%s", w.Code, w.Body.String())
	}
	if products := decodeBody(t, w)["products"].([]interface{}); len(products) != 0 {
		t.Fatalf("huge page should be empty, got %v", products)
	}
}

func TestFiltersEndpoint(t *testing.T) {
	r, _ := setupRouterTest(t, nil)
	seedBeat(t, "dark-trap", "Trap", "140")
	seedBeat(t, "lofi", "Lo-Fi", "85")

	w := doRequest(r, http.MethodGet, testNamespace+"/filters", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	body := decodeBody(t, w)
	genres := body["genres"].([]interface{})
	if len(genres) != 2 || genres[0] != "Lo-Fi" || genres[1] != "Trap" {
		t.Fatalf("unexpected genres: %v", genres)
	}
	bpmRange := body["bpm_range"].(map[string]interface{})
	if bpmRange["min"].(float64) != 85 || bpmRange["max"].(float64) != 140 {
		t.Fatalf("unexpected bpm range: %v", bpmRange)
	}
}

func TestCartLifecycle(t *testing.T) {
	r, _ := setupRouterTest(t, nil)

	assertErrorBody(t, doRequest(r, http.MethodPost, testNamespace+"/cart", map[string]interface{}{"product_id": 1}, nil),
		http.StatusBadRequest, "invalid_cart_item")

	bad := cartItemPayload(1)
	bad["audio_url"] = "javascript:alert(1)"
	assertErrorBody(t, doRequest(r, http.MethodPost, testNamespace+"/cart", bad, nil), http.StatusBadRequest, "invalid_cart_item")
	for _, price := range []interface{}{19.999, 100000000, "123456789.99"} {
		bad = cartItemPayload(1)
		bad["price"] = price
		assertErrorBody(t, doRequest(r, http.MethodPost, testNamespace+"/cart", bad, nil), http.StatusBadRequest, "invalid_cart_item")
	}

	w := doRequest(r, http.MethodPost, testNamespace+"/cart", cartItemPayload(1), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("add status want 200 got %d body=%s", w.Code, w.Body.String())
	}
	added := decodeBody(t, w)
	itemID, _ := added["id"].(string)
	if itemID == "" || added["license_type"] != "Basic" {
		t.Fatalf("unexpected added item: %v", added)
	}
	if w := doRequest(r, http.MethodPost, testNamespace+"/cart", cartItemPayload(1), nil); w.Code != http.StatusOK {
		t.Fatalf("second add status want 200 got %d", w.Code)
	}

	cart := decodeBody(t, doRequest(r, http.MethodGet, testNamespace+"/cart", nil, nil))
	if len(cart["items"].([]interface{})) != 2 || cart["total"].(float64) != 59.98 {
		t.Fatalf("unexpected cart: %v", cart)
	}

	assertErrorBody(t, doRequest(r, http.MethodDelete, testNamespace+"/cart/not-a-real-id", nil, nil), http.StatusNotFound, "not_found")
	assertErrorBody(t, doRequest(r, http.MethodDelete, testNamespace+"/cart/bad%21id", nil, nil), http.StatusNotFound, "not_found")

	w = doRequest(r, http.MethodDelete, testNamespace+"/cart/"+itemID, nil, nil)
	if w.Code != http.StatusOK || decodeBody(t, w)["message"] != "Item removed from cart" {
		t.Fatalf("unexpected remove response %d %s", w.Code, w.Body.String())
	}

	w = doRequest(r, http.MethodDelete, testNamespace+"/cart", nil, nil)
	if w.Code != http.StatusOK || decodeBody(t, w)["message"] != "Cart cleared" {
		t.Fatalf("unexpected clear response %d %s", w.Code, w.Body.String())
	}
	cart = decodeBody(t, doRequest(r, http.MethodGet, testNamespace+"/cart", nil, nil))
	if len(cart["items"].([]interface{})) != 0 || cart["total"].(float64) != 0 {
		t.Fatalf("cart should be empty: %v", cart)
	}
}

func TestCheckoutEndpoint(t *testing.T) {
	r, c := setupRouterTest(t, nil)

	assertErrorBody(t, doRequest(r, http.MethodPost, testNamespace+"/checkout", nil, nil), http.StatusBadRequest, "empty_cart")
	lines, err := c.NativeCartRepo.Lines(context.Background())
	if err != nil || len(lines) != 0 {
		t.Fatalf("empty checkout must not touch native cart, lines=%v err=%v", lines, err)
	}

	doRequest(r, http.MethodPost, testNamespace+"/cart", cartItemPayload(7), nil)
	doRequest(r, http.MethodPost, testNamespace+"/cart", cartItemPayload(8), nil)

	w := doRequest(r, http.MethodPost, testNamespace+"/checkout", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("checkout status want 200 got %d body=%s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["checkout_url"] != "http://beats.test/cart/" || int(body["total_items"].(float64)) != 2 {
		t.Fatalf("unexpected checkout body: %v", body)
	}
	lines, err = c.NativeCartRepo.Lines(context.Background())
	if err != nil || len(lines) != 2 {
		t.Fatalf("native cart want 2 lines got %v err=%v", lines, err)
	}

	cart := decodeBody(t, doRequest(r, http.MethodGet, testNamespace+"/cart", nil, nil))
	if len(cart["items"].([]interface{})) != 2 {
		t.Fatalf("staging cart should persist after checkout: %v", cart)
	}
}

func TestNonceRequiredRestrictsWrites(t *testing.T) {
	r, c := setupRouterTest(t, func(cfg *config.Config) {
		cfg.Nonce.Required = true
	})

	if w := doRequest(r, http.MethodGet, testNamespace+"/cart", nil, nil); w.Code != http.StatusOK {
		t.Fatalf("visitor read want 200 got %d", w.Code)
	}
	assertErrorBody(t, doRequest(r, http.MethodPost, testNamespace+"/cart", cartItemPayload(1), nil), http.StatusForbidden, "rest_forbidden")
	assertErrorBody(t, doRequest(r, http.MethodPost, testNamespace+"/cart", cartItemPayload(1), map[string]string{
		constants.DefaultNonceHeader: "forged",
	}), http.StatusForbidden, "rest_cookie_invalid_nonce")

	nonce, err := c.NonceService.Issue()
	if err != nil {
		t.Fatalf("issue nonce failed: %v", err)
	}
	w := doRequest(r, http.MethodPost, testNamespace+"/cart", cartItemPayload(1), map[string]string{
		constants.DefaultNonceHeader: nonce,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("embedded write want 200 got %d body=%s", w.Code, w.Body.String())
	}
	w = doRequest(r, http.MethodPost, testNamespace+"/checkout?_wpnonce="+nonce, nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("query nonce checkout want 200 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestUnknownRoute(t *testing.T) {
	r, _ := setupRouterTest(t, nil)
	assertErrorBody(t, doRequest(r, http.MethodGet, testNamespace+"/orders", nil, nil), http.StatusNotFound, "rest_no_route")
}

func TestEmbedRendersConfigWithNonce(t *testing.T) {
	r, c := setupRouterTest(t, nil)

	w := doRequest(r, http.MethodGet, "/embed?height=100vh", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("embed status want 200 got %d", w.Code)
	}
	if !strings.HasPrefix(w.Header().Get("Content-Type"), "text/html") {
		t.Fatalf("unexpected content type %s", w.Header().Get("Content-Type"))
	}
	html := w.Body.String()
	if !strings.Contains(html, `id="rarebeats-player-root"`) || !strings.Contains(html, "height: 100vh") {
		t.Fatalf("marker missing or height not applied: %s", html)
	}
	if !strings.Contains(html, "window.rarebeatsConfig") || !strings.Contains(html, "http://beats.test/wp-json/rarebeats/v1") {
		t.Fatalf("client config missing: %s", html)
	}
	if c.EmbedRenderer.Assets().Empty() && strings.Contains(html, "<script src=") {
		t.Fatalf("no bundle should render no script tag: %s", html)
	}

	w = doRequest(r, http.MethodGet, "/embed/page", nil, nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "<!DOCTYPE html>") {
		t.Fatalf("embed page should render full document, got %d", w.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	r, _ := setupRouterTest(t, nil)
	req := httptest.NewRequest(http.MethodOptions, testNamespace+"/cart", nil)
	req.Header.Set("Origin", "https://host.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight want 204 got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("allow origin want * got %s", got)
	}
}
