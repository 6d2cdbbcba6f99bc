package chainalysis

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, explorerURL string) Config {
	t.Helper()

	cfg, err := LoadConfig()
	require.NoError(t, err)

	dir := t.TempDir()
	if explorerURL != "" {
		cfg.ExplorerURL = explorerURL
	}
	cfg.ExplorerAPIKey = "explorer-key"
	cfg.ProviderAPIKey = "provider-key"
	cfg.RequestTimeout = 5 * time.Second
	cfg.RPCRetryBackoff = time.Millisecond
	cfg.TransactionsFile = filepath.Join(dir, "hacker_investigation.csv")
	cfg.SanctionsFile = filepath.Join(dir, "sanctioned_addresses.csv")

	require.NoError(t, cfg.Validate())
	return cfg
}

// newExplorerServer serves respond(query) as the JSON body of every request.
func newExplorerServer(t *testing.T, respond func(q url.Values) any) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(respond(r.URL.Query())))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func explorerOK(result any) map[string]any {
	return map[string]any{"status": "1", "message": "OK", "result": result}
}
