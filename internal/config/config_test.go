package config

import "testing"

func TestNormalizeNamespace(t *testing.T) {
	cases := map[string]string{
		"":                       "/wp-json/rarebeats/v1",
		"   ":                    "/wp-json/rarebeats/v1",
		"rarebeats/v1":           "/rarebeats/v1",
		"/wp-json/rarebeats/v1/": "/wp-json/rarebeats/v1",
		" /api/store ":           "/api/store",
	}
	for input, want := range cases {
		if got := NormalizeNamespace(input); got != want {
			t.Fatalf("namespace %q want %s got %s", input, want, got)
		}
	}
}

func TestStorefrontAPIURL(t *testing.T) {
	cfg := StorefrontConfig{PublicURL: "https://beats.example.com/", Namespace: "wp-json/rarebeats/v1"}
	if got := cfg.APIURL(); got != "https://beats.example.com/wp-json/rarebeats/v1" {
		t.Fatalf("unexpected api url: %s", got)
	}
}

func TestCartURLFallsBackToPublicURL(t *testing.T) {
	cfg := Config{
		Storefront: StorefrontConfig{PublicURL: "http://localhost:8080"},
		Checkout:   CheckoutConfig{CartPath: "basket/"},
	}
	if got := cfg.CartURL(); got != "http://localhost:8080/basket/" {
		t.Fatalf("unexpected cart url: %s", got)
	}

	cfg.WooCommerce.BaseURL = "https://shop.example.com/"
	cfg.Checkout.CartPath = ""
	if got := cfg.CartURL(); got != "https://shop.example.com/cart/" {
		t.Fatalf("unexpected cart url with store base: %s", got)
	}
}
