// Package render turns ranked entries and asset snapshots into chat replies.
// All functions are pure: same input, same reply. Text uses the Telegram
// Markdown bold/italic subset only.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"coinwatch/internal/domain"
)

const (
	timeLayout   = "2006-01-02 15:04:05"
	unknownToken = "unknown"
)

// Overview renders the ranked price list. An empty entry list yields the
// error variant: a no-data notice and no controls.
func Overview(entries []domain.RankedEntry, at time.Time) domain.Reply {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 *Crypto prices (source: CoinGecko)* (%s):\n\n", at.Format(timeLayout))

	if len(entries) == 0 {
		b.WriteString("⚠️ Could not retrieve prices, or there is no data to show.")
		return domain.Reply{Text: b.String()}
	}

	controls := make([]domain.Control, 0, len(entries))
	for i, entry := range entries {
		fmt.Fprintf(&b, "%d. *%s*: %s (%s %s)\n",
			i+1, entry.Name, money(entry.Price), statusGlyph(entry.Status.Kind), statusText(entry.Status))
		controls = append(controls, domain.Control{Label: entry.Name, Token: string(entry.ID)})
	}

	b.WriteString("\n👇 Tap an asset for details:")

	return domain.Reply{Text: b.String(), Controls: controls}
}

// Detail renders the full field set for one asset, with a single back
// control. Max supply distinguishes "unlimited" (no cap, but total supply
// known) from "unknown" (no data at all).
func Detail(asset domain.AssetSnapshot, at time.Time) domain.Reply {
	symbol := strings.ToUpper(asset.Symbol)

	var b strings.Builder
	fmt.Fprintf(&b, "💎 *%s (%s)* 💎\n\n", asset.Name, symbol)
	fmt.Fprintf(&b, "💰 *Price:* %s\n", money(asset.CurrentPrice))
	fmt.Fprintf(&b, "📈 *24h change:* %s %s\n", percentGlyph(asset.PriceChangePct24h), percent(asset.PriceChangePct24h))
	fmt.Fprintf(&b, "⬆️ *24h high:* %s\n", money(asset.High24h))
	fmt.Fprintf(&b, "⬇️ *24h low:* %s\n\n", money(asset.Low24h))
	fmt.Fprintf(&b, "📊 *Market cap:* %s (rank #%d)\n", wholeMoney(asset.MarketCap), asset.MarketCapRank)
	fmt.Fprintf(&b, "🔄 *24h volume:* %s\n\n", wholeMoney(asset.TotalVolume))
	fmt.Fprintf(&b, "🪙 *Circulating supply:* %s\n", supply(asset.CirculatingSupply, symbol))
	fmt.Fprintf(&b, "📦 *Total supply:* %s\n", supply(asset.TotalSupply, symbol))
	fmt.Fprintf(&b, "🔒 *Max supply:* %s\n\n", maxSupply(asset, symbol))
	fmt.Fprintf(&b, "_Source: CoinGecko | %s_", at.Format(timeLayout))

	return domain.Reply{
		Text:     b.String(),
		Controls: []domain.Control{{Label: "🔙 Back to list", Token: domain.BackToListToken}},
	}
}

// Greeting renders the /start reply.
func Greeting(name string) domain.Reply {
	salute := "Hi"
	if name != "" {
		salute = fmt.Sprintf("Hi %s", name)
	}

	return domain.Reply{Text: fmt.Sprintf("%s!\n\nSend /price to get the latest crypto prices.", salute)}
}

// UnknownCommand renders the guidance reply for unrecognized commands.
func UnknownCommand() domain.Reply {
	return domain.Reply{Text: "Sorry, I don't understand that command. Please use /price."}
}

// StaleSession renders the cache-miss reply for control activations.
func StaleSession() domain.Reply {
	return domain.Reply{Text: "❌ Price data has expired or was not found. Please run /price again."}
}

// AssetNotFound renders the bad-token reply, echoing the token for
// diagnosability.
func AssetNotFound(id domain.AssetID) domain.Reply {
	return domain.Reply{Text: fmt.Sprintf("❌ No data found for '%s'.", id)}
}

func statusGlyph(kind domain.ChangeKind) string {
	switch kind {
	case domain.ChangeIncrease:
		return "🔼"
	case domain.ChangeDecrease:
		return "🔽"
	case domain.ChangeNone:
		return "➖"
	default:
		return "❓"
	}
}

func statusText(status domain.ChangeStatus) string {
	switch status.Kind {
	case domain.ChangeIncrease:
		return "up " + amount(status.Amount)
	case domain.ChangeDecrease:
		return "down " + amount(status.Amount)
	case domain.ChangeNone:
		return "no change"
	case domain.PriceUnavailable:
		return "price unavailable"
	default:
		return "24h change unknown"
	}
}

func percentGlyph(pct *decimal.Decimal) string {
	switch {
	case pct != nil && pct.IsPositive():
		return "🔼"
	case pct != nil && pct.IsNegative():
		return "🔽"
	default:
		return "➖"
	}
}

func percent(pct *decimal.Decimal) string {
	if pct == nil {
		return unknownToken
	}

	return fmt.Sprintf("%+.2f%%", pct.InexactFloat64())
}

func money(d *decimal.Decimal) string {
	if d == nil {
		return unknownToken
	}

	return "$" + amount(*d)
}

func amount(d decimal.Decimal) string {
	return humanize.FormatFloat("#,###.##", d.InexactFloat64())
}

func wholeMoney(d *decimal.Decimal) string {
	if d == nil {
		return unknownToken
	}

	return "$" + humanize.FormatFloat("#,###.", d.InexactFloat64())
}

func supply(d *decimal.Decimal, symbol string) string {
	if d == nil {
		return unknownToken
	}

	return fmt.Sprintf("%s %s", humanize.FormatFloat("#,###.", d.InexactFloat64()), symbol)
}

func maxSupply(asset domain.AssetSnapshot, symbol string) string {
	if asset.MaxSupply != nil {
		return supply(asset.MaxSupply, symbol)
	}
	if asset.TotalSupply != nil {
		return "unlimited"
	}

	return unknownToken
}
