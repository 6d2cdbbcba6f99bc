package chainalysis

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Transaction is a (hash, from, to) triple as reported by the explorer.
type Transaction struct {
	Hash string
	From string
	To   string
}

// TxLister lists the transactions of an address.
type TxLister interface {
	TxList(ctx context.Context, address string) ([]ExplorerTx, error)
}

var transactionsHeader = []string{"Attack Transaction Hashes", "Victim Addresses", "Attacker Addresses"}

// FetchTransactions returns the transactions of address in the order the explorer
// returned them.
func FetchTransactions(ctx context.Context, api TxLister, address string) ([]Transaction, error) {
	items, err := api.TxList(ctx, address)
	if err != nil {
		return nil, err
	}

	txs := make([]Transaction, 0, len(items))
	for _, item := range items {
		txs = append(txs, Transaction{
			Hash: item.Hash,
			From: item.From,
			To:   item.To,
		})
	}
	return txs, nil
}

// WriteTransactionsToCSV overwrites path with a header row and one row per transaction.
// The column labels are fixed by the investigation report, the values are the
// explorer's hash, from and to in that order.
func WriteTransactionsToCSV(path string, txs []Transaction) error {
	rows := make([][]string, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, []string{tx.Hash, tx.From, tx.To})
	}
	return writeCSV(path, transactionsHeader, rows)
}

// InvestigateTransactions fetches the transactions of cfg.HackerAddress and writes
// them to cfg.TransactionsFile. It returns the number of rows written.
func InvestigateTransactions(ctx context.Context, cfg Config, api TxLister) (int, error) {
	log.Info().Str("address", cfg.HackerAddress).Msg("fetching transactions")

	txs, err := FetchTransactions(ctx, api, cfg.HackerAddress)
	if err != nil {
		return 0, errors.WithMessage(err, "investigate transactions")
	}

	if err := WriteTransactionsToCSV(cfg.TransactionsFile, txs); err != nil {
		return 0, errors.WithMessage(err, "investigate transactions")
	}

	log.Info().Str("file", cfg.TransactionsFile).Int("rows", len(txs)).Msg("wrote transactions")
	return len(txs), nil
}
