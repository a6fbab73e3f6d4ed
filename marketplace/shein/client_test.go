package shein

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSign(t *testing.T) {
	c := NewClient("key-1", "secret-1")

	sig := c.Sign(1717243200000, "abcde12345")
	if !strings.HasPrefix(sig, "abcde12345") {
		t.Fatalf("signature %q must start with the random key", sig)
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(sig, "abcde12345"))
	if err != nil {
		t.Fatalf("signature tail is not base64: %v", err)
	}
	if _, err := hex.DecodeString(string(raw)); err != nil || len(raw) != 64 {
		t.Errorf("decoded tail = %q, want 64 hex chars of an hmac-sha256 digest", raw)
	}

	if again := c.Sign(1717243200000, "abcde12345"); again != sig {
		t.Error("signing is not deterministic for fixed inputs")
	}
	if other := NewClient("key-2", "secret-1").Sign(1717243200000, "abcde12345"); other == sig {
		t.Error("different open key ids must produce different signatures")
	}
	if other := c.Sign(1717243200001, "abcde12345"); other == sig {
		t.Error("different timestamps must produce different signatures")
	}
}

func TestFetchCategoryTree(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/open-api/goods/category-tree" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("x-lt-openKeyId") != "key-1" {
			t.Errorf("x-lt-openKeyId = %q", r.Header.Get("x-lt-openKeyId"))
		}
		if r.Header.Get("x-lt-timestamp") == "" || r.Header.Get("x-lt-signature") == "" {
			t.Error("missing timestamp or signature header")
		}
		w.Write([]byte(`{
			"info": {
				"category": [
					{"category_name": "Women", "children": [
						{"category_name": "Dresses"},
						{"category_name": "Tops"}
					]},
					{"category_name": "Men", "children": []}
				]
			}
		}`))
	}))
	defer srv.Close()

	c := NewClient("key-1", "secret-1")
	c.BaseURL = srv.URL
	tree, err := c.FetchCategoryTree(context.Background())
	if err != nil {
		t.Fatalf("FetchCategoryTree: %v", err)
	}
	if len(tree) != 2 || tree[0].Name != "Women" || tree[1].Name != "Men" {
		t.Fatalf("tree = %+v", tree)
	}
	if len(tree[0].Children) != 2 || tree[0].Children[1].Name != "Tops" {
		t.Errorf("children = %+v", tree[0].Children)
	}
}

func TestFetchCategoryTreeHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient("key-1", "secret-1")
	c.BaseURL = srv.URL
	if _, err := c.FetchCategoryTree(context.Background()); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}
