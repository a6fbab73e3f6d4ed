package service

import (
	"context"
	"testing"
)

func TestSuggestServiceDisabled(t *testing.T) {
	var nilSvc *SuggestService
	if nilSvc.Enabled() {
		t.Error("nil service reports enabled")
	}
	svc := NewSuggestService(nil, "storefront")
	if svc.Enabled() {
		t.Error("service without client reports enabled")
	}
	if _, err := svc.Suggest(context.Background(), "dress", 5); err == nil {
		t.Error("Suggest on a disabled service must error")
	}
}

func TestDecodeSource(t *testing.T) {
	src := map[string]interface{}{
		"id":         float64(12),
		"title":      "Red Maxi Dress",
		"sku":        "DRESS-1",
		"brand_name": "Acme",
		"sale_price": 19.99,
	}
	var sug Suggestion
	if err := decodeSource(src, &sug); err != nil {
		t.Fatalf("decodeSource: %v", err)
	}
	if sug.ID != 12 || sug.Title != "Red Maxi Dress" || sug.Brand != "Acme" || sug.Price != 19.99 {
		t.Errorf("suggestion = %+v", sug)
	}
}
