package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetID is the provider-side identifier of a tracked asset (e.g. "bitcoin").
type AssetID string

// AssetSnapshot holds one asset's market fields at a single point in time.
// Pointer fields are nullable: the provider omits them for assets without
// reliable data, and the difference between zero and absent matters for
// rendering. A snapshot is never mutated after it is fetched.
type AssetSnapshot struct {
	ID                AssetID          `json:"id"`
	Symbol            string           `json:"symbol"`
	Name              string           `json:"name"`
	CurrentPrice      *decimal.Decimal `json:"current_price"`
	PriceChange24h    *decimal.Decimal `json:"price_change_24h"`
	PriceChangePct24h *decimal.Decimal `json:"price_change_percentage_24h"`
	High24h           *decimal.Decimal `json:"high_24h"`
	Low24h            *decimal.Decimal `json:"low_24h"`
	MarketCap         *decimal.Decimal `json:"market_cap"`
	MarketCapRank     int              `json:"market_cap_rank"`
	TotalVolume       *decimal.Decimal `json:"total_volume"`
	CirculatingSupply *decimal.Decimal `json:"circulating_supply"`
	TotalSupply       *decimal.Decimal `json:"total_supply"`
	MaxSupply         *decimal.Decimal `json:"max_supply"`
}

// MarketSnapshot is one atomically fetched batch of asset snapshots.
// Order preserves the sequence the provider returned the assets in, so
// downstream ranking stays deterministic for a fixed snapshot.
type MarketSnapshot struct {
	Assets    map[AssetID]AssetSnapshot
	Order     []AssetID
	FetchedAt time.Time
}

// Lookup returns the snapshot for the given asset id, if present.
func (s MarketSnapshot) Lookup(id AssetID) (AssetSnapshot, bool) {
	a, ok := s.Assets[id]
	return a, ok
}
