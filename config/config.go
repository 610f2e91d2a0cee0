package config

import (
	"flag"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"coinwatch/internal/domain"
)

const (
	defaultCurrency     = "usd"
	defaultFetchTimeout = 15 * time.Second
)

// defaultAssets is the tracked set used when the yaml config names none.
// Order matters: it is the tie-break order of the ranked overview.
var defaultAssets = []domain.AssetID{
	"bitcoin", "ethereum", "dogecoin", "cardano", "solana", "ripple", "litecoin",
}

// Config is the full runtime configuration: the tracked asset set and
// provider settings from yaml, credentials from the environment.
type Config struct {
	Assets        []domain.AssetID
	Currency      string
	ProviderURL   string
	FetchTimeout  time.Duration
	TelegramToken string
}

type fileConfig struct {
	Assets       []string `yaml:"assets"`
	Currency     string   `yaml:"currency"`
	ProviderURL  string   `yaml:"provider_url"`
	FetchTimeout string   `yaml:"fetch_timeout"`
}

type envCredentials struct {
	TelegramToken string `envconfig:"TELEGRAM_TOKEN" required:"true"`
}

// Get reads the optional --config yaml file, applies defaults, and pulls
// credentials from the environment.
func Get() (Config, error) {
	path := flag.String("config", "", "path to yaml config")
	flag.Parse()

	conf := Config{
		Assets:       defaultAssets,
		Currency:     defaultCurrency,
		FetchTimeout: defaultFetchTimeout,
	}

	if *path != "" {
		fc, err := readYaml(*path)
		if err != nil {
			return Config{}, err
		}

		if len(fc.Assets) > 0 {
			assets := make([]domain.AssetID, 0, len(fc.Assets))
			for _, id := range fc.Assets {
				assets = append(assets, domain.AssetID(id))
			}
			conf.Assets = assets
		}
		if fc.Currency != "" {
			conf.Currency = fc.Currency
		}
		if fc.ProviderURL != "" {
			conf.ProviderURL = fc.ProviderURL
		}
		if fc.FetchTimeout != "" {
			timeout, err := time.ParseDuration(fc.FetchTimeout)
			if err != nil {
				return Config{}, errors.Wrapf(err, "incorrect 'fetch_timeout' param in yaml config: %s", fc.FetchTimeout)
			}
			conf.FetchTimeout = timeout
		}
	}

	var creds envCredentials
	if err := envconfig.Process("", &creds); err != nil {
		return Config{}, errors.Wrap(err, "read credentials from environment")
	}
	conf.TelegramToken = creds.TelegramToken

	if err := validate(conf); err != nil {
		return Config{}, err
	}

	return conf, nil
}

func readYaml(path string) (fileConfig, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fileConfig{}, errors.Wrap(err, "read config file")
	}

	var fc fileConfig
	if err := yaml.Unmarshal(payload, &fc); err != nil {
		return fileConfig{}, errors.Wrap(err, "decode yaml config")
	}

	return fc, nil
}

func validate(conf Config) error {
	if len(conf.Assets) == 0 {
		return errors.New("tracked asset set is empty")
	}
	for _, id := range conf.Assets {
		if id == "" {
			return errors.New("empty asset id in tracked set")
		}
		if string(id) == domain.BackToListToken {
			return errors.Errorf("asset id %q collides with the reserved control token", id)
		}
	}
	if conf.FetchTimeout <= 0 {
		return errors.Errorf("fetch_timeout must be positive, got %s", conf.FetchTimeout)
	}

	return nil
}
