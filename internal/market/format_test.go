package market

import (
	"strings"
	"testing"
)

func TestFormatAssetBlock(t *testing.T) {
	snap := &AssetSnapshot{
		Name:         "Bitcoin",
		Symbol:       "btc",
		PriceUSD:     65000.1234,
		MarketCapUSD: 1280000000000,
		Change24h:    2.5,
		Change7d:     -1.2,
		Change30d:    10,
	}
	block := FormatAssetBlock(snap)

	for _, want := range []string{
		"Latest market data:",
		"Bitcoin (BTC)",
		"$65,000.12",
		"up 2.50%",
		"down 1.20%",
		"up 10.00%",
		"$1,280,000,000,000",
	} {
		if !strings.Contains(block, want) {
			t.Errorf("asset block missing %q:\n%s", want, block)
		}
	}
}

func TestFormatGlobalBlock(t *testing.T) {
	snap := &GlobalSnapshot{
		TotalMarketCapUSD:  2345678901235,
		TotalVolumeUSD:     98765432100,
		MarketCapChange24h: -0.42,
		ActiveAssets:       17234,
		Markets:            1092,
	}
	block := FormatGlobalBlock(snap)

	for _, want := range []string{
		"Latest market data:",
		"$2,345,678,901,235",
		"$98,765,432,100",
		"down 0.42%",
		"17,234",
		"1,092",
	} {
		if !strings.Contains(block, want) {
			t.Errorf("global block missing %q:\n%s", want, block)
		}
	}
}

func TestFormatPricePadsDecimals(t *testing.T) {
	if got := formatPrice(65000.1); got != "$65,000.10" {
		t.Errorf("formatPrice = %q, want $65,000.10", got)
	}
}

func TestFormatChangeZero(t *testing.T) {
	if got := formatChange(0); got != "up 0.00%" {
		t.Errorf("formatChange(0) = %q", got)
	}
}
