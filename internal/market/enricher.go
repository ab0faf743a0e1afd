package market

import (
	"context"

	logx "github.com/crypgene/advisor/pkg/logger"
)

// SnapshotSource is what the enricher needs from the cache layer.
type SnapshotSource interface {
	AssetSnapshot(ctx context.Context, identifier string) (*AssetSnapshot, error)
	GlobalSnapshot(ctx context.Context) (*GlobalSnapshot, error)
}

// Enricher decides per query whether to fetch market data and splices the
// formatted result into the text forwarded to the LLM.
type Enricher struct {
	source SnapshotSource
}

func NewEnricher(source SnapshotSource) *Enricher {
	return &Enricher{source: source}
}

// Enrich returns the query with a delimited market-data block appended, or
// the query unchanged when nothing was classified or the data layer failed.
// It never returns an error: any fetch failure degrades to "no enrichment".
func (e *Enricher) Enrich(ctx context.Context, query string) string {
	intent := Classify(query)

	switch intent.Kind {
	case IntentAsset:
		snap, err := e.source.AssetSnapshot(ctx, intent.Asset)
		if err != nil {
			logx.Debug().Err(err).Str("identifier", intent.Asset).Msg("asset lookup failed, skipping enrichment")
			return query
		}
		return query + "\n\n" + FormatAssetBlock(snap)

	case IntentGlobal:
		snap, err := e.source.GlobalSnapshot(ctx)
		if err != nil {
			logx.Debug().Err(err).Msg("global lookup failed, skipping enrichment")
			return query
		}
		return query + "\n\n" + FormatGlobalBlock(snap)

	default:
		return query
	}
}
