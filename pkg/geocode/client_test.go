package geocode_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"voicetask/pkg/geocode"
)

func TestLookup(t *testing.T) {
	var calls atomic.Int64
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.Header.Get("User-Agent") != "voicetask-test" {
			t.Errorf("missing user agent, got %q", r.Header.Get("User-Agent"))
		}
		switch r.URL.Query().Get("q") {
		case "ленина 15":
			w.Write([]byte(`[{"lat": "55.7558", "lon": "37.6173"}]`))
		case "broken":
			w.Write([]byte(`[{"lat": "not-a-number", "lon": "37.6173"}]`))
		default:
			w.Write([]byte(`[]`))
		}
	}))
	defer ts.Close()

	client := geocode.NewClient("voicetask-test", 16, time.Minute)
	client.SetBaseURL(ts.URL)
	ctx := context.Background()

	t.Run("known address", func(t *testing.T) {
		coord, found, err := client.Lookup(ctx, "Ленина 15")
		if err != nil {
			t.Fatalf("Lookup: %v", err)
		}
		if !found {
			t.Fatal("expected a result")
		}
		if coord.Lat != 55.7558 || coord.Lon != 37.6173 {
			t.Errorf("unexpected coordinate: %+v", coord)
		}
	})

	t.Run("repeat lookup is served from cache", func(t *testing.T) {
		before := calls.Load()
		if _, found, err := client.Lookup(ctx, "  ленина 15 "); err != nil || !found {
			t.Fatalf("cached Lookup: found=%v err=%v", found, err)
		}
		if calls.Load() != before {
			t.Error("expected no extra HTTP call for a cached address")
		}
	})

	t.Run("unknown address", func(t *testing.T) {
		_, found, err := client.Lookup(ctx, "nowhere at all")
		if err != nil {
			t.Fatalf("Lookup: %v", err)
		}
		if found {
			t.Error("expected no result")
		}
	})

	t.Run("empty address short-circuits", func(t *testing.T) {
		before := calls.Load()
		if _, found, err := client.Lookup(ctx, "   "); err != nil || found {
			t.Fatalf("empty Lookup: found=%v err=%v", found, err)
		}
		if calls.Load() != before {
			t.Error("expected no HTTP call for an empty address")
		}
	})

	t.Run("malformed coordinates", func(t *testing.T) {
		if _, _, err := client.Lookup(ctx, "broken"); err == nil {
			t.Error("expected error for malformed coordinates")
		}
	})
}
