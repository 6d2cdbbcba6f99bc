package chainalysis

import (
	"context"
	"strings"

	"github.com/0xsequence/ethkit/go-ethereum/accounts/abi"
	"github.com/0xsequence/ethkit/go-ethereum/common"
	"github.com/0xsequence/ethkit/go-ethereum/core/types"
	"github.com/0xsequence/go-sequence/lib/prototyp"
	"github.com/rs/zerolog/log"
)

// ABIFetcher resolves the ABI of a verified contract.
type ABIFetcher interface {
	ContractABI(ctx context.Context, address string) (string, error)
}

// RPCSource replays the oracle's added and removed events from a node provider.
type RPCSource struct {
	abis       ABIFetcher
	fetcher    *logFetcher
	contract   string
	chainID    uint64
	startBlock uint64
}

func NewRPCSource(cfg Config, abis ABIFetcher, provider LogProvider) *RPCSource {
	return &RPCSource{
		abis: abis,
		fetcher: &logFetcher{
			provider: provider,
			timeout:  cfg.RequestTimeout,
			retries:  cfg.RPCRetries,
			backoff:  cfg.RPCRetryBackoff,
		},
		contract:   cfg.OracleAddress,
		chainID:    cfg.OracleChainID,
		startBlock: cfg.StartBlock,
	}
}

func (s *RPCSource) Fetch(ctx context.Context) (AddressSet, error) {
	events, err := s.FetchEvents(ctx)
	if err != nil {
		return nil, err
	}
	return Reconcile(events), nil
}

// FetchEvents returns every added and removed event of the oracle in the order
// the node returned them.
func (s *RPCSource) FetchEvents(ctx context.Context) ([]SanctionEvent, error) {
	abiJSON, err := s.abis.ContractABI(ctx, s.contract)
	if err != nil {
		return nil, err
	}

	contractABI, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		return nil, wrapKind(ErrDataUnavailable, err, "malformed contract ABI")
	}

	added, ok := contractABI.Events[SanctionedAddressesAddedEvent]
	if !ok {
		return nil, wrapKindf(ErrDataUnavailable, nil, "contract ABI has no %s event", SanctionedAddressesAddedEvent)
	}
	removed, ok := contractABI.Events[SanctionedAddressesRemovedEvent]
	if !ok {
		return nil, wrapKindf(ErrDataUnavailable, nil, "contract ABI has no %s event", SanctionedAddressesRemovedEvent)
	}

	if err := s.fetcher.checkChainID(ctx, s.chainID); err != nil {
		return nil, err
	}

	logs, err := s.fetcher.fetchEthereumLogs(ctx, s.startBlock, common.HexToAddress(s.contract), added.ID, removed.ID)
	if err != nil {
		return nil, err
	}

	events := make([]SanctionEvent, 0, len(logs))
	for _, l := range logs {
		if l.Removed || len(l.Topics) == 0 {
			continue
		}

		var event SanctionEvent
		var addrs []common.Address
		switch l.Topics[0] {
		case added.ID:
			event.Kind = SanctionAdded
			addrs, err = unpackAddrs(added, l)
		case removed.ID:
			event.Kind = SanctionRemoved
			addrs, err = unpackAddrs(removed, l)
		default:
			continue
		}
		if err != nil {
			return nil, err
		}

		event.BlockNum = l.BlockNumber
		event.BlockHash = l.BlockHash.Hex()
		event.LogIndex = l.Index
		event.Addrs = make([]prototyp.Hash, 0, len(addrs))
		for _, address := range addrs {
			event.Addrs = append(event.Addrs, prototyp.HashFromString(address.Hex()))
		}
		events = append(events, event)
	}

	log.Debug().Msgf("decoded %d oracle events from %d logs", len(events), len(logs))

	return events, nil
}

func unpackAddrs(event abi.Event, l types.Log) ([]common.Address, error) {
	values, err := event.Inputs.Unpack(l.Data)
	if err != nil {
		return nil, wrapKindf(ErrMalformedData, err, "failed to decode %s in tx %s", event.Name, l.TxHash.Hex())
	}
	if len(values) != 1 {
		return nil, wrapKindf(ErrMalformedData, nil, "%s has %d arguments, expecting 1", event.Name, len(values))
	}
	addrs, ok := values[0].([]common.Address)
	if !ok {
		return nil, wrapKindf(ErrMalformedData, nil, "%s argument is %T, expecting address[]", event.Name, values[0])
	}
	return addrs, nil
}
