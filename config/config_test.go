package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"coinwatch/internal/domain"
)

func TestReadYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	payload := []byte("assets:\n  - bitcoin\n  - ethereum\ncurrency: eur\nfetch_timeout: 5s\n")
	require.NoError(t, os.WriteFile(path, payload, 0o644))

	fc, err := readYaml(path)

	require.NoError(t, err)
	require.Equal(t, []string{"bitcoin", "ethereum"}, fc.Assets)
	require.Equal(t, "eur", fc.Currency)
	require.Equal(t, "5s", fc.FetchTimeout)
}

func TestReadYaml_MissingFile(t *testing.T) {
	_, err := readYaml(filepath.Join(t.TempDir(), "nope.yaml"))

	require.Error(t, err)
}

func TestValidate_EmptyAssetSet(t *testing.T) {
	err := validate(Config{Currency: "usd", FetchTimeout: time.Second})

	require.Error(t, err)
}

func TestValidate_ReservedTokenCollision(t *testing.T) {
	err := validate(Config{
		Assets:       []domain.AssetID{"bitcoin", domain.BackToListToken},
		Currency:     "usd",
		FetchTimeout: time.Second,
	})

	require.Error(t, err)
	require.Contains(t, err.Error(), "reserved control token")
}

func TestValidate_NonPositiveTimeout(t *testing.T) {
	err := validate(Config{Assets: defaultAssets, Currency: "usd"})

	require.Error(t, err)
}

func TestValidate_Defaults(t *testing.T) {
	err := validate(Config{Assets: defaultAssets, Currency: defaultCurrency, FetchTimeout: defaultFetchTimeout})

	require.NoError(t, err)
}
