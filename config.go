package chainalysis

import (
	"fmt"
	"strings"
	"time"

	"github.com/0xsequence/ethkit/ethcoder"
	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

// envPrefix is the prefix of every environment override, ie. CHAINALYSIS_EXPLORER_URL.
const envPrefix = "chainalysis"

// Config holds everything the two workflows need. Credentials are only set by
// the caller, never read from the environment.
type Config struct {
	ExplorerURL    string `envconfig:"EXPLORER_URL" default:"https://api.etherscan.io/api" validate:"required,url"`
	ExplorerAPIKey string `ignored:"true" validate:"required"`

	// ProviderURL is joined with ProviderAPIKey, ie. https://mainnet.infura.io/v3/<key>
	ProviderURL    string `envconfig:"PROVIDER_URL" default:"https://mainnet.infura.io/v3/" validate:"required,url"`
	ProviderAPIKey string `ignored:"true" validate:"required"`

	HackerAddress string `envconfig:"HACKER_ADDRESS" default:"0x0a5984f86200415894821bfefc1c1de036dbf9e7" validate:"required,eth_addr"`
	OracleAddress string `envconfig:"ORACLE_ADDRESS" default:"0x40C57923924B5c5c5455c48D93317139ADDaC8fb" validate:"required,eth_addr"`
	OracleChainID uint64 `envconfig:"ORACLE_CHAIN_ID" default:"1" validate:"required"`

	// AddedTopic is derived from the event signature when empty.
	AddedTopic string `envconfig:"ADDED_TOPIC" validate:"omitempty,hexadecimal,len=66"`

	StartBlock uint64 `envconfig:"START_BLOCK" default:"0"`
	EndBlock   uint64 `envconfig:"END_BLOCK" default:"99999999" validate:"gtefield=StartBlock"`

	TransactionsFile string `envconfig:"TRANSACTIONS_FILE" default:"hacker_investigation.csv" validate:"required"`
	SanctionsFile    string `envconfig:"SANCTIONS_FILE" default:"sanctioned_addresses.csv" validate:"required"`

	SanctionSource string        `envconfig:"SANCTION_SOURCE" default:"rpc" validate:"oneof=rpc explorer"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s" validate:"gt=0"`

	// RPCRetries is the number of extra attempts on the node provider, 0 disables the breaker.
	RPCRetries      int           `envconfig:"RPC_RETRIES" default:"0" validate:"min=0"`
	RPCRetryBackoff time.Duration `envconfig:"RPC_RETRY_BACKOFF" default:"2s"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=trace debug info warn error"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoadConfig returns the default configuration with any CHAINALYSIS_* environment
// overrides applied. Credentials are left empty.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, wrapKind(ErrConfiguration, err, "failed to process environment")
	}
	return cfg, nil
}

// Validate checks the config and fills derived fields.
func (c *Config) Validate() error {
	if c.AddedTopic == "" {
		topicHash, _, err := ethcoder.EventTopicHash(SanctionedAddressesAddedEvent + "(address[])")
		if err != nil {
			return wrapKind(ErrConfiguration, err, "failed to hash added event")
		}
		c.AddedTopic = topicHash.String()
	}

	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return wrapKind(ErrConfiguration, err, "invalid config")
	}

	msgs := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		msgs = append(msgs, formatFieldError(fieldErr))
	}
	return wrapKind(ErrConfiguration, nil, strings.Join(msgs, "; "))
}

func formatFieldError(fieldErr validator.FieldError) string {
	// never echo credentials back
	if strings.HasSuffix(fieldErr.Field(), "APIKey") {
		return fmt.Sprintf("'%s' does not meet the requirements for the '%s' validation", fieldErr.Field(), fieldErr.Tag())
	}
	return fmt.Sprintf("'%s': value '%v' does not meet the requirements for the '%s' validation", fieldErr.Field(), fieldErr.Value(), fieldErr.Tag())
}

// ProviderEndpoint is the node provider URL templated with the credential.
func (c Config) ProviderEndpoint() string {
	if strings.HasSuffix(c.ProviderURL, "/") {
		return c.ProviderURL + c.ProviderAPIKey
	}
	return c.ProviderURL + "/" + c.ProviderAPIKey
}
