package chainalysis

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExplorerLogSource_Fetch(t *testing.T) {
	ctx := context.Background()
	addrA := "0x" + strings.Repeat("a", 40)
	addrB := "0x" + strings.Repeat("b", 40)

	t.Run("decodes every added log", func(t *testing.T) {
		var got url.Values
		srv := newExplorerServer(t, func(q url.Values) any {
			got = q
			return explorerOK([]map[string]any{
				{"data": logData(addrA, addrB), "transactionHash": "0xt1"},
				{"data": logData(addrA), "transactionHash": "0xt2"},
			})
		})
		cfg := testConfig(t, srv.URL)

		set, err := NewExplorerLogSource(cfg, NewExplorerClient(cfg)).Fetch(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{addrA, addrB}, hashStrings(set.Sorted()))
		assert.Equal(t, cfg.AddedTopic, got.Get("topic0"))
		assert.Equal(t, cfg.OracleAddress, got.Get("address"))
	})

	t.Run("malformed log data", func(t *testing.T) {
		srv := newExplorerServer(t, func(url.Values) any {
			return explorerOK([]map[string]any{
				{"data": logData(addrA) + "ff", "transactionHash": "0xbad"},
			})
		})
		cfg := testConfig(t, srv.URL)

		_, err := NewExplorerLogSource(cfg, NewExplorerClient(cfg)).Fetch(ctx)
		require.ErrorIs(t, err, ErrMalformedData)
		assert.Contains(t, err.Error(), "0xbad")
	})

	t.Run("explorer failure", func(t *testing.T) {
		srv := newExplorerServer(t, func(url.Values) any {
			return map[string]any{"status": "0", "message": "NOTOK", "result": "Max rate limit reached"}
		})
		cfg := testConfig(t, srv.URL)

		_, err := NewExplorerLogSource(cfg, NewExplorerClient(cfg)).Fetch(ctx)
		assert.ErrorIs(t, err, ErrDataUnavailable)
	})
}
