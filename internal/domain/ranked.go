package domain

import "github.com/shopspring/decimal"

// ChangeKind classifies the direction of an asset's 24h price move.
type ChangeKind int

const (
	// ChangeUnknown means the current price is known but the 24h change is not.
	ChangeUnknown ChangeKind = iota
	// ChangeIncrease means the price went up over the last 24h.
	ChangeIncrease
	// ChangeDecrease means the price went down over the last 24h.
	ChangeDecrease
	// ChangeNone means the price did not move.
	ChangeNone
	// PriceUnavailable means the provider returned no current price at all.
	PriceUnavailable
)

// ChangeStatus is the classified 24h move: a kind plus the absolute move
// amount for the Increase and Decrease kinds. Amount is zero otherwise.
type ChangeStatus struct {
	Kind   ChangeKind
	Amount decimal.Decimal
}

// RankedEntry is one row of the ranked overview, derived from a
// MarketSnapshot and recomputed on every render.
type RankedEntry struct {
	ID     AssetID
	Name   string
	Price  *decimal.Decimal
	Status ChangeStatus
}
