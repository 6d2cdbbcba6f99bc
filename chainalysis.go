// Package chainalysis exports data about the Chainalysis sanctions oracle and
// the transactions of an investigated address to CSV files.
//
// Sanctioned addresses come from a SanctionSource: RPCSource replays the oracle's
// added and removed events from a node provider, ExplorerLogSource decodes the
// added events from the block explorer's raw logs.
package chainalysis

// OracleAddress is the address of the Chainalysis Oracle
// https://go.chainalysis.com/chainalysis-oracle-docs.html
const (
	OracleAddress = "0x40C57923924B5c5c5455c48D93317139ADDaC8fb"
	OracleChainID = 1

	// SanctionedAddressesAddedTopic is keccak256("SanctionedAddressesAdded(address[])").
	SanctionedAddressesAddedTopic = "0x2596d7dd6966c5673f9c06ddb0564c4f0e6d8d206ea075b83ad9ddd71a4fb927"

	SanctionedAddressesAddedEvent   = "SanctionedAddressesAdded"
	SanctionedAddressesRemovedEvent = "SanctionedAddressesRemoved"
)

const (
	SourceRPC      = "rpc"
	SourceExplorer = "explorer"
)
