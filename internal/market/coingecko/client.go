package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/crypgene/advisor/internal/market"
)

// Config holds the CoinGecko endpoint settings, sourced from environment
// variables like the rest of the app config.
type Config struct {
	BaseURL string `envconfig:"COINGECKO_BASE_URL" default:"https://api.coingecko.com/api/v3"`
	Timeout int    `envconfig:"COINGECKO_TIMEOUT" default:"10"`
}

// Client talks to the CoinGecko REST API. Plain request/response, no retries;
// the cache layer above converts failures into "no data".
type Client struct {
	baseURL string
	http    *http.Client
}

func New(cfg Config) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: time.Duration(cfg.Timeout) * time.Second},
	}
}

type searchResponse struct {
	Coins []market.AssetRef `json:"coins"`
}

func (c *Client) Search(ctx context.Context, query string) ([]market.AssetRef, error) {
	var out searchResponse
	if err := c.get(ctx, "/search?query="+url.QueryEscape(query), &out); err != nil {
		return nil, err
	}
	return out.Coins, nil
}

type coinDetailResponse struct {
	Name       string `json:"name"`
	Symbol     string `json:"symbol"`
	MarketData struct {
		CurrentPrice map[string]float64 `json:"current_price"`
		MarketCap    map[string]float64 `json:"market_cap"`
		Change24h    float64            `json:"price_change_percentage_24h"`
		Change7d     float64            `json:"price_change_percentage_7d"`
		Change30d    float64            `json:"price_change_percentage_30d"`
	} `json:"market_data"`
}

func (c *Client) AssetDetail(ctx context.Context, id string) (*market.AssetSnapshot, error) {
	path := fmt.Sprintf("/coins/%s?localization=false&tickers=false&market_data=true&community_data=false&developer_data=false", url.PathEscape(id))
	var out coinDetailResponse
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}

	price, ok := out.MarketData.CurrentPrice["usd"]
	if !ok {
		return nil, fmt.Errorf("coin %s: response missing usd price", id)
	}

	return &market.AssetSnapshot{
		Name:         out.Name,
		Symbol:       out.Symbol,
		PriceUSD:     price,
		MarketCapUSD: out.MarketData.MarketCap["usd"],
		Change24h:    out.MarketData.Change24h,
		Change7d:     out.MarketData.Change7d,
		Change30d:    out.MarketData.Change30d,
	}, nil
}

type globalResponse struct {
	Data struct {
		TotalMarketCap map[string]float64 `json:"total_market_cap"`
		TotalVolume    map[string]float64 `json:"total_volume"`
		Change24h      float64            `json:"market_cap_change_percentage_24h_usd"`
		ActiveAssets   int                `json:"active_cryptocurrencies"`
		Markets        int                `json:"markets"`
	} `json:"data"`
}

func (c *Client) GlobalData(ctx context.Context) (*market.GlobalSnapshot, error) {
	var out globalResponse
	if err := c.get(ctx, "/global", &out); err != nil {
		return nil, err
	}

	totalCap, ok := out.Data.TotalMarketCap["usd"]
	if !ok {
		return nil, fmt.Errorf("global: response missing usd market cap")
	}

	return &market.GlobalSnapshot{
		TotalMarketCapUSD:  totalCap,
		TotalVolumeUSD:     out.Data.TotalVolume["usd"],
		MarketCapChange24h: out.Data.Change24h,
		ActiveAssets:       out.Data.ActiveAssets,
		Markets:            out.Data.Markets,
	}, nil
}

func (c *Client) get(ctx context.Context, path string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request [%s]: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed [%s]: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("API error [%s]: %s - %s", path, resp.Status, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("JSON parse error [%s]: %w", path, err)
	}
	return nil
}

var _ market.Provider = (*Client)(nil)
