package chainalysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "https://api.etherscan.io/api", cfg.ExplorerURL)
		assert.Equal(t, "https://mainnet.infura.io/v3/", cfg.ProviderURL)
		assert.Equal(t, "0x0a5984f86200415894821bfefc1c1de036dbf9e7", cfg.HackerAddress)
		assert.Equal(t, OracleAddress, cfg.OracleAddress)
		assert.EqualValues(t, OracleChainID, cfg.OracleChainID)
		assert.EqualValues(t, 0, cfg.StartBlock)
		assert.EqualValues(t, 99999999, cfg.EndBlock)
		assert.Equal(t, "hacker_investigation.csv", cfg.TransactionsFile)
		assert.Equal(t, "sanctioned_addresses.csv", cfg.SanctionsFile)
		assert.Equal(t, SourceRPC, cfg.SanctionSource)
		assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
		assert.Equal(t, 0, cfg.RPCRetries)
		assert.Empty(t, cfg.ExplorerAPIKey)
		assert.Empty(t, cfg.ProviderAPIKey)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("CHAINALYSIS_SANCTION_SOURCE", "explorer")
		t.Setenv("CHAINALYSIS_SANCTIONS_FILE", "out.csv")
		t.Setenv("CHAINALYSIS_REQUEST_TIMEOUT", "5s")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, SourceExplorer, cfg.SanctionSource)
		assert.Equal(t, "out.csv", cfg.SanctionsFile)
		assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	})

	t.Run("credentials are not read from the environment", func(t *testing.T) {
		t.Setenv("CHAINALYSIS_EXPLORERAPIKEY", "leaked")
		t.Setenv("CHAINALYSIS_EXPLORER_API_KEY", "leaked")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Empty(t, cfg.ExplorerAPIKey)
	})

	t.Run("invalid environment value", func(t *testing.T) {
		t.Setenv("CHAINALYSIS_START_BLOCK", "not-a-number")

		_, err := LoadConfig()
		assert.ErrorIs(t, err, ErrConfiguration)
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := func(t *testing.T) Config {
		cfg, err := LoadConfig()
		require.NoError(t, err)
		cfg.ExplorerAPIKey = "explorer-secret"
		cfg.ProviderAPIKey = "provider-secret"
		return cfg
	}

	t.Run("derives the added topic", func(t *testing.T) {
		cfg := valid(t)
		require.NoError(t, cfg.Validate())
		assert.Equal(t, SanctionedAddressesAddedTopic, cfg.AddedTopic)
	})

	t.Run("missing credentials", func(t *testing.T) {
		cfg := valid(t)
		cfg.ExplorerAPIKey = ""

		err := cfg.Validate()
		require.ErrorIs(t, err, ErrConfiguration)
		assert.Contains(t, err.Error(), "ExplorerAPIKey")
	})

	t.Run("does not echo credentials", func(t *testing.T) {
		cfg := valid(t)
		cfg.OracleAddress = "nope"

		err := cfg.Validate()
		require.ErrorIs(t, err, ErrConfiguration)
		assert.Contains(t, err.Error(), "OracleAddress")
		assert.NotContains(t, err.Error(), "provider-secret")
	})

	t.Run("invalid address", func(t *testing.T) {
		cfg := valid(t)
		cfg.HackerAddress = "0x1234"
		assert.ErrorIs(t, cfg.Validate(), ErrConfiguration)
	})

	t.Run("end block before start block", func(t *testing.T) {
		cfg := valid(t)
		cfg.StartBlock = 10
		cfg.EndBlock = 5
		assert.ErrorIs(t, cfg.Validate(), ErrConfiguration)
	})

	t.Run("unknown sanction source", func(t *testing.T) {
		cfg := valid(t)
		cfg.SanctionSource = "web"
		assert.ErrorIs(t, cfg.Validate(), ErrConfiguration)
	})

	t.Run("malformed topic", func(t *testing.T) {
		cfg := valid(t)
		cfg.AddedTopic = "0x2596"
		assert.ErrorIs(t, cfg.Validate(), ErrConfiguration)
	})
}

func TestConfig_ProviderEndpoint(t *testing.T) {
	cfg := Config{ProviderURL: "https://mainnet.infura.io/v3/", ProviderAPIKey: "abc"}
	assert.Equal(t, "https://mainnet.infura.io/v3/abc", cfg.ProviderEndpoint())

	cfg.ProviderURL = "https://mainnet.infura.io/v3"
	assert.Equal(t, "https://mainnet.infura.io/v3/abc", cfg.ProviderEndpoint())
}
