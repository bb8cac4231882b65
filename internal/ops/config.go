package ops

import (
	"os"
	"strconv"
	"strings"

	"main/pkg/exception"

	"github.com/joho/godotenv"
	"github.com/yanun0323/errors"
)

const (
	envCanary = "CANARY"
	envProd   = "PROD"

	canaryAPIBaseURL  = "https://app.canary.ithacanoemon.tech/api/v1"
	canaryWSURL       = "wss://app.canary.ithacanoemon.tech/api/socket"
	canaryCalcBaseURL = "https://app.canary.ithacanoemon.tech/api/calc"

	prodAPIBaseURL  = "https://app.ithacanoemon.tech/api/v1"
	prodWSURL       = "wss://app.ithacanoemon.tech/api/socket"
	prodCalcBaseURL = "https://app.ithacanoemon.tech/api/calc"
)

// defaultHouseClientIDs are the exchange accounts running this desk's own
// quoters; their resting orders are never customer flow.
var defaultHouseClientIDs = []int64{
	1751722211735553,
	1753074655467521,
	1758482201168897,
}

// Config is the resolved runtime configuration.
type Config struct {
	EthAddress     string
	RSAKey         string
	EnvName        string
	APIBaseURL     string
	WSURL          string
	CalcBaseURL    string
	HouseClientIDs []int64
	JournalDSN     string
	PyroscopeAddr  string
}

// Load reads .env (optional, current directory when path is empty) and
// then environment variables. Env vars win over the file.
func Load(envPath string) (Config, error) {
	if envPath != "" {
		_ = godotenv.Load(envPath)
	} else {
		_ = godotenv.Load()
	}

	cfg := Config{
		EnvName:        envCanary,
		HouseClientIDs: defaultHouseClientIDs,
	}
	if v := os.Getenv("ENV_NAME"); v != "" {
		cfg.EnvName = strings.ToUpper(v)
	}
	applyEnvDefaults(&cfg)

	if v := os.Getenv("API_BASE_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("WS_URL"); v != "" {
		cfg.WSURL = v
	}
	if v := os.Getenv("CALC_BASE_URL"); v != "" {
		cfg.CalcBaseURL = v
	}

	cfg.EthAddress = os.Getenv("ETH_ADDRESS")
	if cfg.EthAddress == "" {
		return Config{}, exception.ErrConfigMissingAddress
	}

	rawKey := os.Getenv("RSA_KEY")
	if rawKey == "" {
		return Config{}, exception.ErrConfigMissingKey
	}
	cfg.RSAKey = strings.ReplaceAll(rawKey, `\n`, "\n")

	if v := os.Getenv("HOUSE_CLIENT_IDS"); v != "" {
		ids, err := parseClientIDs(v)
		if err != nil {
			return Config{}, err
		}
		cfg.HouseClientIDs = ids
	}

	cfg.JournalDSN = os.Getenv("JOURNAL_DSN")
	cfg.PyroscopeAddr = os.Getenv("PYROSCOPE_ADDR")

	return cfg, nil
}

// HouseFilter builds the acquisition-time exclusion predicate for the
// orderbook fetch boundary.
func (c Config) HouseFilter() func(clientID int64) bool {
	set := make(map[int64]struct{}, len(c.HouseClientIDs))
	for _, id := range c.HouseClientIDs {
		set[id] = struct{}{}
	}
	return func(clientID int64) bool {
		_, ok := set[clientID]
		return ok
	}
}

func applyEnvDefaults(cfg *Config) {
	switch cfg.EnvName {
	case envProd:
		cfg.APIBaseURL = prodAPIBaseURL
		cfg.WSURL = prodWSURL
		cfg.CalcBaseURL = prodCalcBaseURL
	default:
		cfg.APIBaseURL = canaryAPIBaseURL
		cfg.WSURL = canaryWSURL
		cfg.CalcBaseURL = canaryCalcBaseURL
	}
}

func parseClientIDs(raw string) ([]int64, error) {
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(exception.ErrConfigBadHouseIDs, "value: %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
