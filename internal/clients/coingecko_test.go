package clients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"coinwatch/internal/domain"
)

const sampleBody = `[
	{"id":"bitcoin","symbol":"btc","name":"Bitcoin","current_price":50000.12,"price_change_24h":1200.5,
	 "price_change_percentage_24h":2.46,"high_24h":51000,"low_24h":48000,"market_cap":900000000,
	 "market_cap_rank":1,"total_volume":30000000,"circulating_supply":19000000,"total_supply":21000000,"max_supply":21000000},
	{"id":"cardano","symbol":"ada","name":"Cardano","current_price":null,"price_change_24h":null,
	 "price_change_percentage_24h":null,"high_24h":null,"low_24h":null,"market_cap":null,
	 "market_cap_rank":9,"total_volume":null,"circulating_supply":null,"total_supply":45000000000,"max_supply":null}
]`

func TestFetch_SingleBatchedRequest(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string
	requests := 0

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleBody))
	}))
	defer srv.Close()

	client := NewCoinGeckoClient(srv.URL, time.Second)
	snapshot, err := client.Fetch(context.Background(), []domain.AssetID{"bitcoin", "cardano"}, "usd")

	require.NoError(t, err)
	require.Equal(t, 1, requests, "all ids must go into one call")
	require.Equal(t, "/coins/markets", gotPath)
	require.Equal(t, []string{"usd"}, gotQuery["vs_currency"])
	require.Equal(t, []string{"bitcoin,cardano"}, gotQuery["ids"])
	require.Equal(t, []string{"market_cap_desc"}, gotQuery["order"])
	require.Equal(t, []string{"2"}, gotQuery["per_page"])
	require.Equal(t, []string{"1"}, gotQuery["page"])
	require.Equal(t, []string{"false"}, gotQuery["sparkline"])
	require.Equal(t, []string{"24h"}, gotQuery["price_change_percentage"])

	require.Len(t, snapshot.Assets, 2)
	require.Equal(t, []domain.AssetID{"bitcoin", "cardano"}, snapshot.Order)
	require.False(t, snapshot.FetchedAt.IsZero())
}

func TestFetch_DecodesNullableFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(sampleBody))
	}))
	defer srv.Close()

	client := NewCoinGeckoClient(srv.URL, time.Second)
	snapshot, err := client.Fetch(context.Background(), []domain.AssetID{"bitcoin", "cardano"}, "usd")
	require.NoError(t, err)

	btc, ok := snapshot.Lookup("bitcoin")
	require.True(t, ok)
	require.NotNil(t, btc.CurrentPrice)
	require.True(t, btc.CurrentPrice.Equal(decimal.NewFromFloat(50000.12)))
	require.Equal(t, 1, btc.MarketCapRank)

	ada, ok := snapshot.Lookup("cardano")
	require.True(t, ok)
	require.Nil(t, ada.CurrentPrice)
	require.Nil(t, ada.PriceChange24h)
	require.Nil(t, ada.MaxSupply)
	require.NotNil(t, ada.TotalSupply)
}

func TestFetch_ProviderRejectedOnStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewCoinGeckoClient(srv.URL, time.Second)
	_, err := client.Fetch(context.Background(), []domain.AssetID{"bitcoin"}, "usd")

	require.ErrorIs(t, err, domain.ErrProviderRejected)
}

func TestFetch_ProviderRejectedOnMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"not":"a list"`))
	}))
	defer srv.Close()

	client := NewCoinGeckoClient(srv.URL, time.Second)
	_, err := client.Fetch(context.Background(), []domain.AssetID{"bitcoin"}, "usd")

	require.ErrorIs(t, err, domain.ErrProviderRejected)
}

func TestFetch_UnreachableOnTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // nothing is listening anymore

	client := NewCoinGeckoClient(srv.URL, time.Second)
	_, err := client.Fetch(context.Background(), []domain.AssetID{"bitcoin"}, "usd")

	require.ErrorIs(t, err, domain.ErrUnreachable)
}

func TestFetch_UnreachableOnTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(sampleBody))
	}))
	defer srv.Close()

	client := NewCoinGeckoClient(srv.URL, 20*time.Millisecond)
	_, err := client.Fetch(context.Background(), []domain.AssetID{"bitcoin"}, "usd")

	require.ErrorIs(t, err, domain.ErrUnreachable)
}

func TestFetch_RejectsEmptyIDSet(t *testing.T) {
	client := NewCoinGeckoClient("", time.Second)

	_, err := client.Fetch(context.Background(), nil, "usd")

	require.Error(t, err)
	require.False(t, errors.Is(err, domain.ErrUnreachable))
}
