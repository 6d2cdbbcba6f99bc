package chainalysis

import (
	"context"
	"math/big"
	"time"

	"github.com/0xsequence/ethkit/go-ethereum"
	"github.com/0xsequence/ethkit/go-ethereum/common"
	"github.com/0xsequence/ethkit/go-ethereum/core/types"
	"github.com/goware/breaker"
	"github.com/goware/logadapter-zerolog"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// LogProvider is the subset of ethrpc.Interface we need from a node.
type LogProvider interface {
	ChainID(ctx context.Context) (*big.Int, error)
	FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]types.Log, error)
}

type logFetcher struct {
	provider LogProvider
	timeout  time.Duration
	retries  int
	backoff  time.Duration
}

func (f *logFetcher) checkChainID(ctx context.Context, expected uint64) error {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	chainID, err := f.provider.ChainID(ctx)
	if err != nil {
		return wrapKind(ErrDataUnavailable, err, "failed to reach node provider")
	}
	if chainID.Cmp(new(big.Int).SetUint64(expected)) != 0 {
		return wrapKindf(ErrConfiguration, nil, "invalid chainID, expecting %d, got %d", expected, chainID)
	}
	return nil
}

// fetchEthereumLogs runs one eth_getLogs query from fromBlock to the latest block for
// contract, matching any of topicIDs in the first topic position.
func (f *logFetcher) fetchEthereumLogs(ctx context.Context, fromBlock uint64, contract common.Address, topicIDs ...common.Hash) ([]types.Log, error) {
	query := ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(fromBlock),
		Addresses: []common.Address{contract},
		Topics:    [][]common.Hash{topicIDs},
	}

	var logs []types.Log
	filterLogs := func() error {
		ctx, cancel := context.WithTimeout(ctx, f.timeout)
		defer cancel()

		var err error
		logs, err = f.provider.FilterLogs(ctx, query)
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Warn().Err(err).Msgf("fetchEthereumLogs failed")
		}
		return err
	}

	var err error
	if f.retries > 0 {
		br := breaker.New(logadapter.LogAdapter(log.Logger), f.backoff, 2, f.retries)
		var lastErr error
		err = br.Do(ctx, func() error {
			lastErr = filterLogs()
			return lastErr
		})
		if err != nil && lastErr != nil {
			err = lastErr
		}
	} else {
		err = filterLogs()
	}
	if err != nil {
		return nil, wrapKind(ErrDataUnavailable, err, "eth_getLogs")
	}

	log.Debug().Msgf("fetchEthereumLogs from block %d retrieved %d logs", fromBlock, len(logs))

	return logs, nil
}
