//go:build integration
// +build integration

package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"testing"
	"time"
)

var baseURL = getenv("E2E_BASE_URL", "http://localhost:8000")

func TestStorefront_E2E(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	waitReady(t, ctx, baseURL+"/readyz")

	categoryKey, productKey := firstProduct(t)

	postForm(t, baseURL+"/instock", url.Values{
		"category": {categoryKey},
		"product":  {productKey},
	}, 200, "Stock Updated!")

	var product map[string]any
	getJSON(t, fmt.Sprintf("%s/products/category/%s/product/%s", baseURL, categoryKey, productKey), &product, 200)
	if inStock, _ := product["in-stock"].(bool); inStock {
		t.Fatalf("product %s/%s still in stock after /instock", categoryKey, productKey)
	}

	stamp := time.Now().UnixNano()
	postForm(t, baseURL+"/comments", url.Values{
		"name":     {fmt.Sprintf("e2e_%d", stamp)},
		"comments": {"integration run"},
	}, 200, "Comment received!")

	postForm(t, baseURL+"/customer", url.Values{
		"firstname": {"E2e"},
		"lastname":  {fmt.Sprintf("Run%d", stamp)},
		"email":     {fmt.Sprintf("e2e_%d@example.com", stamp)},
		"phone":     {"555-0100"},
	}, 200, "New Customer Received!")

	if os.Getenv("E2E_RESTART") == "1" {
		restartStorefrontContainer(t, ctx)
		waitReady(t, ctx, baseURL+"/readyz")

		// Durability: the stock change survives the restart.
		getJSON(t, fmt.Sprintf("%s/products/category/%s/product/%s", baseURL, categoryKey, productKey), &product, 200)
		if inStock, _ := product["in-stock"].(bool); inStock {
			t.Fatalf("stock change lost across restart for %s/%s", categoryKey, productKey)
		}
	}
}

func TestStorefront_E2E_ClientErrors(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	waitReady(t, ctx, baseURL+"/readyz")

	getJSON(t, baseURL+"/products/category/no-such-category", nil, 404)

	postForm(t, baseURL+"/instock", url.Values{"category": {"x"}}, 400, "")
	postForm(t, baseURL+"/comments", url.Values{"name": {"x"}}, 400, "")
}

// firstProduct picks any (category, product) pair from the live catalog.
func firstProduct(t *testing.T) (string, string) {
	t.Helper()

	var doc struct {
		Categories map[string]map[string]json.RawMessage `json:"categories"`
	}
	getJSON(t, baseURL+"/products", &doc, 200)

	for ck, products := range doc.Categories {
		for pk := range products {
			return ck, pk
		}
	}
	t.Fatalf("catalog is empty")
	return "", ""
}

func waitReady(t *testing.T, ctx context.Context, url string) {
	t.Helper()
	client := &http.Client{Timeout: 2 * time.Second}

	deadline := time.Now().Add(60 * time.Second)
	for time.Now().Before(deadline) {
		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		resp, err := client.Do(req)
		if err == nil && resp != nil && resp.StatusCode == 200 {
			_ = resp.Body.Close()
			return
		}
		if resp != nil {
			_ = resp.Body.Close()
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("service not ready: %s", url)
}

func getJSON(t *testing.T, url string, out any, want int) {
	t.Helper()

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		t.Fatalf("get %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		t.Fatalf("GET %s: status=%d want=%d", url, resp.StatusCode, want)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
}

func postForm(t *testing.T, u string, form url.Values, want int, wantBody string) {
	t.Helper()

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.PostForm(u, form)
	if err != nil {
		t.Fatalf("post %s: %v", u, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body %s: %v", u, err)
	}

	if resp.StatusCode != want {
		t.Fatalf("POST %s: status=%d want=%d body=%s", u, resp.StatusCode, want, raw)
	}
	if wantBody != "" && string(raw) != wantBody {
		t.Fatalf("POST %s: body=%q want=%q", u, raw, wantBody)
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
