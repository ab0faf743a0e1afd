package market

import "context"

// AssetRef is one entry of the provider's ranked search result.
type AssetRef struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// AssetSnapshot is point-in-time market data for one cryptocurrency (USD).
type AssetSnapshot struct {
	Name         string  `json:"name"`
	Symbol       string  `json:"symbol"`
	PriceUSD     float64 `json:"current_price"`
	MarketCapUSD float64 `json:"market_cap"`
	Change24h    float64 `json:"price_change_24h"`
	Change7d     float64 `json:"price_change_7d"`
	Change30d    float64 `json:"price_change_30d"`
}

// GlobalSnapshot is point-in-time aggregate data across all tracked assets (USD).
type GlobalSnapshot struct {
	TotalMarketCapUSD  float64 `json:"total_market_cap"`
	TotalVolumeUSD     float64 `json:"total_volume"`
	MarketCapChange24h float64 `json:"market_cap_change_percentage_24h"`
	ActiveAssets       int     `json:"active_cryptocurrencies"`
	Markets            int     `json:"markets"`
}

// Snapshot is a tagged union: exactly one of Asset or Global is set.
type Snapshot struct {
	Asset  *AssetSnapshot
	Global *GlobalSnapshot
}

// Provider is the market-data boundary. Implementations perform plain
// request/response network calls with no retry policy; callers degrade on
// failure.
type Provider interface {
	// Search resolves free text to a ranked list of assets; the first entry
	// is the canonical match.
	Search(ctx context.Context, query string) ([]AssetRef, error)

	// AssetDetail fetches full market data for a canonical asset id.
	AssetDetail(ctx context.Context, id string) (*AssetSnapshot, error)

	// GlobalData fetches provider-wide aggregate statistics.
	GlobalData(ctx context.Context) (*GlobalSnapshot, error)
}
