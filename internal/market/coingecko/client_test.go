package coingecko

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL, Timeout: 2})
}

func TestSearch(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("query"); got != "bit coin" {
			t.Errorf("query param = %q", got)
		}
		w.Write([]byte(`{"coins":[{"id":"bitcoin","name":"Bitcoin","symbol":"btc"},{"id":"bitcoin-cash","name":"Bitcoin Cash","symbol":"bch"}]}`))
	})

	refs, err := c.Search(context.Background(), "bit coin")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("expected 2 results, got %d", len(refs))
	}
	if refs[0].ID != "bitcoin" || refs[0].Symbol != "btc" {
		t.Errorf("first result = %+v", refs[0])
	}
}

func TestAssetDetail(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/coins/bitcoin" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{
			"name": "Bitcoin",
			"symbol": "btc",
			"market_data": {
				"current_price": {"usd": 65000.1234},
				"market_cap": {"usd": 1280000000000},
				"price_change_percentage_24h": 2.5,
				"price_change_percentage_7d": -1.2,
				"price_change_percentage_30d": 10.0
			}
		}`))
	})

	snap, err := c.AssetDetail(context.Background(), "bitcoin")
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if snap.Name != "Bitcoin" || snap.PriceUSD != 65000.1234 {
		t.Errorf("snapshot = %+v", snap)
	}
	if snap.Change7d != -1.2 || snap.Change30d != 10.0 {
		t.Errorf("change fields = %+v", snap)
	}
}

func TestAssetDetailMissingPrice(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name":"Bitcoin","symbol":"btc","market_data":{"current_price":{}}}`))
	})

	if _, err := c.AssetDetail(context.Background(), "bitcoin"); err == nil {
		t.Fatal("expected error for missing usd price")
	}
}

func TestGlobalData(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/global" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"data":{
			"total_market_cap": {"usd": 2000000000000},
			"total_volume": {"usd": 90000000000},
			"market_cap_change_percentage_24h_usd": 1.15,
			"active_cryptocurrencies": 17234,
			"markets": 1092
		}}`))
	})

	snap, err := c.GlobalData(context.Background())
	if err != nil {
		t.Fatalf("global: %v", err)
	}
	if snap.TotalMarketCapUSD != 2000000000000 || snap.ActiveAssets != 17234 || snap.Markets != 1092 {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestNon200IsError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"status":{"error_code":429}}`, http.StatusTooManyRequests)
	})

	if _, err := c.GlobalData(context.Background()); err == nil {
		t.Fatal("expected error for 429 response")
	}
}

func TestMalformedBodyIsError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"coins": [`))
	})

	if _, err := c.Search(context.Background(), "btc"); err == nil {
		t.Fatal("expected error for malformed body")
	}
}
