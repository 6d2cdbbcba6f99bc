package chainalysis

import (
	"strings"

	"github.com/0xsequence/ethkit/go-ethereum/common"
	"github.com/pkg/errors"
)

const (
	// logDataPrefixLen covers "0x" plus the offset and length words of the
	// ABI encoded address[] payload.
	logDataPrefixLen = 130

	// abiWordLen is one 32 byte ABI word in hex characters. The address is
	// right aligned after 24 characters of zero padding.
	abiWordLen        = 64
	abiAddressPadding = 24
)

// DecodeAddressesFromLogData extracts the addresses of SanctionedAddressesAdded
// logs straight from their raw data field.
func DecodeAddressesFromLogData(logs []ExplorerLog) (AddressSet, error) {
	set := AddressSet{}
	for _, l := range logs {
		addrs, err := decodeLogData(l.Data)
		if err != nil {
			return nil, wrapKindf(ErrMalformedData, err, "log %s", l.TransactionHash)
		}
		set.Add(addrs...)
	}
	return set, nil
}

func decodeLogData(data string) ([]string, error) {
	if !strings.HasPrefix(data, "0x") && !strings.HasPrefix(data, "0X") {
		return nil, errors.New("data is not 0x prefixed")
	}
	if len(data) < logDataPrefixLen || (len(data)-logDataPrefixLen)%abiWordLen != 0 {
		return nil, errors.Errorf("data length %d is not %d+%d*k", len(data), logDataPrefixLen, abiWordLen)
	}

	words := data[logDataPrefixLen:]
	addrs := make([]string, 0, len(words)/abiWordLen)
	for i := 0; i < len(words); i += abiWordLen {
		addr := "0x" + words[i+abiAddressPadding:i+abiWordLen]
		if !common.IsHexAddress(addr) {
			return nil, errors.Errorf("word %d is not an address", i/abiWordLen)
		}
		addrs = append(addrs, addr)
	}
	return addrs, nil
}
