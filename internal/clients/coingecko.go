package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"coinwatch/internal/domain"
)

const (
	defaultBaseURL = "https://api.coingecko.com/api/v3"
	defaultTimeout = 15 * time.Second
)

// CoinGeckoClient fetches market snapshots from the CoinGecko REST API.
// It is stateless: every call is a single batched request and either yields a
// complete snapshot or an error, never a partial result.
type CoinGeckoClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewCoinGeckoClient creates a client for the CoinGecko markets endpoint.
// Empty baseURL and non-positive timeout fall back to the public API and 15s.
func NewCoinGeckoClient(baseURL string, timeout time.Duration) *CoinGeckoClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &CoinGeckoClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch requests market data for all ids in one call and indexes the result
// by asset id. The 24h percentage field must be requested explicitly, the
// endpoint does not return it by default. No retries: a failed call surfaces
// immediately as domain.ErrUnreachable or domain.ErrProviderRejected.
func (c *CoinGeckoClient) Fetch(ctx context.Context, ids []domain.AssetID, currency string) (domain.MarketSnapshot, error) {
	if len(ids) == 0 {
		return domain.MarketSnapshot{}, errors.New("no asset ids requested")
	}

	idStrs := make([]string, len(ids))
	for i, id := range ids {
		idStrs[i] = string(id)
	}

	params := url.Values{}
	params.Set("vs_currency", currency)
	params.Set("ids", strings.Join(idStrs, ","))
	params.Set("order", "market_cap_desc")
	params.Set("per_page", strconv.Itoa(len(ids)))
	params.Set("page", "1")
	params.Set("sparkline", "false")
	params.Set("price_change_percentage", "24h")

	endpoint := fmt.Sprintf("%s/coins/markets?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.MarketSnapshot{}, errors.Wrap(err, "failed to create HTTP request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.MarketSnapshot{}, errors.Wrap(domain.ErrUnreachable, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.MarketSnapshot{}, errors.Wrap(domain.ErrUnreachable, err.Error())
	}

	if resp.StatusCode != http.StatusOK {
		return domain.MarketSnapshot{}, errors.Wrapf(domain.ErrProviderRejected, "status %d: %s", resp.StatusCode, string(body))
	}

	var items []domain.AssetSnapshot
	if err := json.Unmarshal(body, &items); err != nil {
		return domain.MarketSnapshot{}, errors.Wrap(domain.ErrProviderRejected, err.Error())
	}

	snapshot := domain.MarketSnapshot{
		Assets:    make(map[domain.AssetID]domain.AssetSnapshot, len(items)),
		Order:     make([]domain.AssetID, 0, len(items)),
		FetchedAt: time.Now(),
	}
	for _, item := range items {
		snapshot.Assets[item.ID] = item
		snapshot.Order = append(snapshot.Order, item.ID)
	}

	return snapshot, nil
}
