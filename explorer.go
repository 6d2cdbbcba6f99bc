package chainalysis

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

// ExplorerClient talks to an Etherscan-compatible block-explorer API.
type ExplorerClient struct {
	client     *resty.Client
	apiKey     string
	startBlock uint64
	endBlock   uint64
}

// ExplorerTx is one item of the txlist action. Only the fields we project are kept.
type ExplorerTx struct {
	Hash string `json:"hash"`
	From string `json:"from"`
	To   string `json:"to"`
}

// ExplorerLog is one item of the getLogs action.
type ExplorerLog struct {
	Address         string   `json:"address"`
	Topics          []string `json:"topics"`
	Data            string   `json:"data"`
	BlockNumber     string   `json:"blockNumber"`
	TransactionHash string   `json:"transactionHash"`
	LogIndex        string   `json:"logIndex"`
}

type explorerResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

func NewExplorerClient(cfg Config) *ExplorerClient {
	client := resty.New().
		SetBaseURL(cfg.ExplorerURL).
		SetHeader("Accept", "application/json").
		SetTimeout(cfg.RequestTimeout)

	return &ExplorerClient{
		client:     client,
		apiKey:     cfg.ExplorerAPIKey,
		startBlock: cfg.StartBlock,
		endBlock:   cfg.EndBlock,
	}
}

// TxList returns every transaction of address over the configured block range, ascending.
func (e *ExplorerClient) TxList(ctx context.Context, address string) ([]ExplorerTx, error) {
	txs := []ExplorerTx{}
	err := e.getList(ctx, "txlist", map[string]string{
		"module":     "account",
		"action":     "txlist",
		"address":    address,
		"startblock": strconv.FormatUint(e.startBlock, 10),
		"endblock":   strconv.FormatUint(e.endBlock, 10),
		"sort":       "asc",
	}, &txs)
	if err != nil {
		return nil, err
	}
	return txs, nil
}

// Logs returns every log emitted by address whose first topic is topic0.
func (e *ExplorerClient) Logs(ctx context.Context, address string, topic0 string) ([]ExplorerLog, error) {
	logs := []ExplorerLog{}
	err := e.getList(ctx, "getLogs", map[string]string{
		"module":     "logs",
		"action":     "getLogs",
		"address":    address,
		"topic0":     topic0,
		"startblock": strconv.FormatUint(e.startBlock, 10),
		"endblock":   strconv.FormatUint(e.endBlock, 10),
		"sort":       "asc",
	}, &logs)
	if err != nil {
		return nil, err
	}
	return logs, nil
}

// ContractABI returns the verified ABI of a contract as a JSON string.
func (e *ExplorerClient) ContractABI(ctx context.Context, address string) (string, error) {
	res, err := e.get(ctx, "getabi", map[string]string{
		"module":  "contract",
		"action":  "getabi",
		"address": address,
	})
	if err != nil {
		return "", err
	}

	var abiJSON string
	if err := json.Unmarshal(res.Result, &abiJSON); err != nil {
		return "", wrapKindf(ErrDataUnavailable, err, "explorer getabi: unexpected result")
	}
	if res.Status != "1" {
		return "", wrapKindf(ErrDataUnavailable, nil, "explorer getabi: %s: %s", res.Message, abiJSON)
	}
	return abiJSON, nil
}

// getList decodes an array result into out. A string result is the explorer's
// way of reporting an error, ie. "Invalid API Key".
func (e *ExplorerClient) getList(ctx context.Context, action string, params map[string]string, out interface{}) error {
	res, err := e.get(ctx, action, params)
	if err != nil {
		return err
	}

	if raw := bytes.TrimSpace(res.Result); len(raw) > 0 && raw[0] == '"' {
		var reason string
		_ = json.Unmarshal(raw, &reason)
		return wrapKindf(ErrDataUnavailable, nil, "explorer %s: %s: %s", action, res.Message, reason)
	}

	if err := json.Unmarshal(res.Result, out); err != nil {
		return wrapKindf(ErrMalformedData, err, "explorer %s: unexpected result", action)
	}
	return nil
}

func (e *ExplorerClient) get(ctx context.Context, action string, params map[string]string) (*explorerResponse, error) {
	var res explorerResponse

	resp, err := e.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetQueryParam("apikey", e.apiKey).
		SetResult(&res).
		ForceContentType("application/json").
		Get("")
	if err != nil {
		return nil, wrapKindf(ErrDataUnavailable, err, "explorer %s", action)
	}
	if resp.IsError() {
		return nil, wrapKindf(ErrDataUnavailable, nil, "explorer %s: http status %s", action, resp.Status())
	}
	if len(res.Result) == 0 || string(res.Result) == "null" {
		return nil, wrapKindf(ErrDataUnavailable, nil, "explorer %s: response has no result field", action)
	}

	log.Debug().Msgf("explorer %s status=%s message=%q", action, res.Status, res.Message)

	return &res, nil
}
