package ranking

import (
	"sort"

	"coinwatch/internal/domain"
)

// Rank derives display entries from a snapshot and orders them by current
// price, highest first. Assets without a price sort after every priced asset.
// Pure and deterministic: ties keep the snapshot's own order (stable sort),
// and the output carries a nil price, never a sort sentinel.
func Rank(snapshot domain.MarketSnapshot) []domain.RankedEntry {
	entries := make([]domain.RankedEntry, 0, len(snapshot.Order))
	for _, id := range snapshot.Order {
		asset, ok := snapshot.Lookup(id)
		if !ok {
			continue
		}

		entries = append(entries, domain.RankedEntry{
			ID:     asset.ID,
			Name:   displayName(asset),
			Price:  asset.CurrentPrice,
			Status: Classify(asset),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].Price, entries[j].Price
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.GreaterThan(*b)
		}
	})

	return entries
}

// Classify derives the 24h change status for one asset. Yesterday's reference
// price is reconstructed from the absolute 24h change; the provider's own
// percentage field is shown only in the detail view.
func Classify(asset domain.AssetSnapshot) domain.ChangeStatus {
	if asset.CurrentPrice == nil {
		return domain.ChangeStatus{Kind: domain.PriceUnavailable}
	}
	if asset.PriceChange24h == nil {
		return domain.ChangeStatus{Kind: domain.ChangeUnknown}
	}

	reference := asset.CurrentPrice.Sub(*asset.PriceChange24h)
	change := asset.CurrentPrice.Sub(reference)

	switch {
	case change.IsPositive():
		return domain.ChangeStatus{Kind: domain.ChangeIncrease, Amount: change}
	case change.IsNegative():
		return domain.ChangeStatus{Kind: domain.ChangeDecrease, Amount: change.Abs()}
	default:
		return domain.ChangeStatus{Kind: domain.ChangeNone}
	}
}

func displayName(asset domain.AssetSnapshot) string {
	if asset.Name != "" {
		return asset.Name
	}

	return string(asset.ID)
}
