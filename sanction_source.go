package chainalysis

import (
	"context"

	"github.com/0xsequence/ethkit/ethrpc"
	"github.com/rs/zerolog/log"
)

// SanctionSource produces the current set of sanctioned addresses.
type SanctionSource interface {
	Fetch(ctx context.Context) (AddressSet, error)
}

// NewSanctionSource returns the source selected by cfg.SanctionSource.
func NewSanctionSource(cfg Config, api *ExplorerClient) (SanctionSource, error) {
	switch cfg.SanctionSource {
	case SourceRPC:
		provider, err := ethrpc.NewProvider(cfg.ProviderEndpoint())
		if err != nil {
			return nil, wrapKind(ErrConfiguration, err, "invalid provider url")
		}
		return NewRPCSource(cfg, api, provider), nil
	case SourceExplorer:
		return NewExplorerLogSource(cfg, api), nil
	default:
		return nil, wrapKindf(ErrConfiguration, nil, "unknown sanction source %q", cfg.SanctionSource)
	}
}

// ExtractSanctionedAddresses fetches the set from src and writes it to cfg.SanctionsFile.
// It returns the number of addresses written.
func ExtractSanctionedAddresses(ctx context.Context, cfg Config, src SanctionSource) (int, error) {
	log.Info().Str("source", cfg.SanctionSource).Str("oracle", cfg.OracleAddress).Msg("fetching sanctioned addresses")

	set, err := src.Fetch(ctx)
	if err != nil {
		return 0, err
	}

	if err := WriteSanctionedAddressesToCSV(cfg.SanctionsFile, set); err != nil {
		return 0, err
	}

	log.Info().Str("file", cfg.SanctionsFile).Int("rows", len(set)).Msg("wrote sanctioned addresses")
	return len(set), nil
}
