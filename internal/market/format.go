package market

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// blockHeader delimits enrichment data from the user's own words so the
// model can tell them apart.
const blockHeader = "Latest market data:"

func formatPrice(v float64) string {
	return "$" + humanize.FormatFloat("#,###.##", v)
}

func formatWhole(v float64) string {
	return "$" + humanize.FormatFloat("#,###.", v)
}

func formatChange(pct float64) string {
	direction := "up"
	if pct < 0 {
		direction = "down"
		pct = -pct
	}
	return fmt.Sprintf("%s %.2f%%", direction, pct)
}

// FormatAssetBlock renders an asset snapshot as a short human-readable block:
// a header line plus key:value lines.
func FormatAssetBlock(s *AssetSnapshot) string {
	var b strings.Builder
	b.WriteString(blockHeader)
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s (%s)\n", s.Name, strings.ToUpper(s.Symbol))
	fmt.Fprintf(&b, "Price: %s\n", formatPrice(s.PriceUSD))
	fmt.Fprintf(&b, "24h change: %s\n", formatChange(s.Change24h))
	fmt.Fprintf(&b, "7d change: %s\n", formatChange(s.Change7d))
	fmt.Fprintf(&b, "30d change: %s\n", formatChange(s.Change30d))
	fmt.Fprintf(&b, "Market cap: %s", formatWhole(s.MarketCapUSD))
	return b.String()
}

// FormatGlobalBlock renders a global snapshot in the same shape.
func FormatGlobalBlock(s *GlobalSnapshot) string {
	var b strings.Builder
	b.WriteString(blockHeader)
	b.WriteString("\n")
	b.WriteString("Overall crypto market\n")
	fmt.Fprintf(&b, "Total market cap: %s\n", formatWhole(s.TotalMarketCapUSD))
	fmt.Fprintf(&b, "Total 24h volume: %s\n", formatWhole(s.TotalVolumeUSD))
	fmt.Fprintf(&b, "Market cap change (24h): %s\n", formatChange(s.MarketCapChange24h))
	fmt.Fprintf(&b, "Active cryptocurrencies: %s\n", humanize.Comma(int64(s.ActiveAssets)))
	fmt.Fprintf(&b, "Markets: %s", humanize.Comma(int64(s.Markets)))
	return b.String()
}
