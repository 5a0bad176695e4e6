package currency

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func newRateServer(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		switch r.URL.Path {
		case "/latest/USD":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"base":"USD","rates":{"USD":1,"EUR":0.92,"JPY":151.3}}`))
		case "/latest/XXX":
			http.Error(w, "unsupported code", http.StatusNotFound)
		default:
			w.Write([]byte(`{"base":"?","rates":{}}`))
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestClient_Rate(t *testing.T) {
	var hits int32
	server := newRateServer(t, &hits)
	client := NewClient(server.URL+"/", 5*time.Second)
	ctx := context.Background()

	rate, err := client.Rate(ctx, "USD", "EUR")
	if err != nil {
		t.Fatalf("Rate failed: %v", err)
	}
	if !rate.Equal(decimal.RequireFromString("0.92")) {
		t.Errorf("rate = %s, want 0.92", rate)
	}

	if _, err := client.Rate(ctx, "USD", "GBP"); !errors.Is(err, ErrRateNotFound) {
		t.Errorf("expected ErrRateNotFound, got %v", err)
	}

	if _, err := client.Rate(ctx, "XXX", "EUR"); err == nil {
		t.Error("expected error for non-200 response")
	}
}

func TestRateCache_Expiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	cache := NewRateCache(time.Hour)
	cache.now = func() time.Time { return now }

	cache.Put("USD", "EUR", decimal.RequireFromString("0.92"))

	if rate, ok := cache.Get("USD", "EUR"); !ok || !rate.Equal(decimal.RequireFromString("0.92")) {
		t.Fatalf("Get() = %s, %v; want 0.92, true", rate, ok)
	}
	if _, ok := cache.Get("EUR", "USD"); ok {
		t.Error("reverse pair should not be cached")
	}

	now = now.Add(59 * time.Minute)
	if _, ok := cache.Get("USD", "EUR"); !ok {
		t.Error("entry expired early")
	}

	now = now.Add(time.Minute)
	if _, ok := cache.Get("USD", "EUR"); ok {
		t.Error("entry should have expired")
	}
	if cache.Len() != 0 {
		t.Errorf("expired entry not evicted, len = %d", cache.Len())
	}
}

func TestRateCache_Disabled(t *testing.T) {
	cache := NewRateCache(0)
	cache.Put("USD", "EUR", decimal.NewFromInt(1))
	if _, ok := cache.Get("USD", "EUR"); ok {
		t.Error("zero TTL cache should never hit")
	}
}

func TestConverter_Convert(t *testing.T) {
	var hits int32
	server := newRateServer(t, &hits)
	converter := NewConverter(NewClient(server.URL, 5*time.Second), NewRateCache(time.Hour))
	ctx := context.Background()

	conv, err := converter.Convert(ctx, decimal.RequireFromString("100"), "usd", "EUR")
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if !conv.Amount.Equal(decimal.RequireFromString("92")) {
		t.Errorf("Amount = %s, want 92", conv.Amount)
	}
	if conv.OriginalCurrency != "USD" || !conv.OriginalAmount.Equal(decimal.NewFromInt(100)) {
		t.Errorf("unexpected original: %+v", conv)
	}

	// Second conversion is served from the cache
	if _, err := converter.Convert(ctx, decimal.RequireFromString("50"), "USD", "EUR"); err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Errorf("rate fetched %d times, want 1", got)
	}
}

func TestConverter_SameCurrency(t *testing.T) {
	var hits int32
	server := newRateServer(t, &hits)
	converter := NewConverter(NewClient(server.URL, 5*time.Second), NewRateCache(time.Hour))

	conv, err := converter.Convert(context.Background(), decimal.RequireFromString("12.34"), "EUR", "eur")
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if !conv.Amount.Equal(decimal.RequireFromString("12.34")) || !conv.Rate.Equal(decimal.NewFromInt(1)) {
		t.Errorf("unexpected conversion: %+v", conv)
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Error("same-currency conversion should not hit the rate service")
	}
}

func TestConverter_SourceError(t *testing.T) {
	var hits int32
	server := newRateServer(t, &hits)
	converter := NewConverter(NewClient(server.URL, 5*time.Second), NewRateCache(time.Hour))

	_, err := converter.Convert(context.Background(), decimal.NewFromInt(1), "USD", "GBP")
	if !errors.Is(err, ErrRateNotFound) {
		t.Errorf("expected ErrRateNotFound, got %v", err)
	}
}
