package chainalysis

import (
	"context"

	"github.com/rs/zerolog/log"
)

// LogLister lists explorer logs of a contract filtered by their first topic.
type LogLister interface {
	Logs(ctx context.Context, address string, topic0 string) ([]ExplorerLog, error)
}

// ExplorerLogSource decodes the added addresses straight from the explorer's raw logs.
//
// It only sees SanctionedAddressesAdded logs: addresses that were later removed
// are still reported. Use RPCSource for a reconciled set.
type ExplorerLogSource struct {
	api      LogLister
	contract string
	topic    string
}

func NewExplorerLogSource(cfg Config, api LogLister) *ExplorerLogSource {
	return &ExplorerLogSource{
		api:      api,
		contract: cfg.OracleAddress,
		topic:    cfg.AddedTopic,
	}
}

func (s *ExplorerLogSource) Fetch(ctx context.Context) (AddressSet, error) {
	logs, err := s.api.Logs(ctx, s.contract, s.topic)
	if err != nil {
		return nil, err
	}
	log.Debug().Msgf("explorer returned %d added logs for %s", len(logs), s.contract)

	return DecodeAddressesFromLogData(logs)
}
