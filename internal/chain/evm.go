package chain

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strings"
	"time"
)

// EVMClient is a minimal JSON-RPC client for EVM chains.
type EVMClient struct {
	url    string
	client *http.Client
}

// NewEVMClient creates a new EVM JSON-RPC client pointed at url.
func NewEVMClient(url string) *EVMClient {
	return &EVMClient{
		url: url,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// URL returns the RPC endpoint this client talks to.
func (c *EVMClient) URL() string { return c.url }

// GetBlockNumber returns the latest block number.
func (c *EVMClient) GetBlockNumber() (uint64, error) {
	result, err := c.call("eth_blockNumber")
	if err != nil {
		return 0, err
	}

	hexStr, ok := result.(string)
	if !ok {
		return 0, fmt.Errorf("unexpected result: %T", result)
	}

	n, ok := new(big.Int).SetString(strings.TrimPrefix(hexStr, "0x"), 16)
	if !ok {
		return 0, fmt.Errorf("could not parse block number: %s", hexStr)
	}

	return n.Uint64(), nil
}

// ChainID returns the chain's ID.
func (c *EVMClient) ChainID() (int64, error) {
	result, err := c.call("eth_chainId")
	if err != nil {
		return 0, err
	}
	hexStr, ok := result.(string)
	if !ok {
		return 0, fmt.Errorf("unexpected result: %T", result)
	}
	id, ok := new(big.Int).SetString(strings.TrimPrefix(hexStr, "0x"), 16)
	if !ok {
		return 0, fmt.Errorf("could not parse chain id: %s", hexStr)
	}
	return id.Int64(), nil
}

// GetNonce returns the transaction count (nonce) for an address.
func (c *EVMClient) GetNonce(address string) (uint64, error) {
	result, err := c.call("eth_getTransactionCount", address, "latest")
	if err != nil {
		return 0, err
	}
	hexStr, ok := result.(string)
	if !ok {
		return 0, fmt.Errorf("unexpected result: %T", result)
	}
	n, ok := new(big.Int).SetString(strings.TrimPrefix(hexStr, "0x"), 16)
	if !ok {
		return 0, fmt.Errorf("could not parse nonce: %s", hexStr)
	}
	return n.Uint64(), nil
}

// GasPrice returns the current gas price.
func (c *EVMClient) GasPrice() (*big.Int, error) {
	result, err := c.call("eth_gasPrice")
	if err != nil {
		return nil, err
	}
	hexStr, ok := result.(string)
	if !ok {
		return nil, fmt.Errorf("unexpected result: %T", result)
	}
	gp, ok := new(big.Int).SetString(strings.TrimPrefix(hexStr, "0x"), 16)
	if !ok {
		return nil, fmt.Errorf("could not parse gas price: %s", hexStr)
	}
	return gp, nil
}

// EstimateGas estimates gas for a transaction.
func (c *EVMClient) EstimateGas(from, to, data string, value *big.Int) (uint64, error) {
	params := map[string]string{
		"from": from,
		"to":   to,
	}
	if data != "" {
		params["data"] = data
	}
	if value != nil && value.Sign() > 0 {
		params["value"] = "0x" + value.Text(16)
	}

	result, err := c.call("eth_estimateGas", params, "latest")
	if err != nil {
		return 0, err
	}

	hexStr, ok := result.(string)
	if !ok {
		return 21000, nil
	}
	n, ok := new(big.Int).SetString(strings.TrimPrefix(hexStr, "0x"), 16)
	if !ok {
		return 21000, nil
	}
	return n.Uint64(), nil
}

// CallContract calls a smart contract read function with the given calldata.
// When the node reports "execution reverted", the returned error is a
// *RevertError carrying the decoded Error(string) reason if present.
func (c *EVMClient) CallContract(toAddr, calldata string) (string, error) {
	result, err := c.call("eth_call", map[string]string{
		"to":   toAddr,
		"data": calldata,
	}, "latest")
	if err != nil {
		return "", err
	}
	s, ok := result.(string)
	if !ok {
		return "", fmt.Errorf("unexpected result: %T", result)
	}
	return s, nil
}

// SendRawTransaction broadcasts a signed raw transaction.
func (c *EVMClient) SendRawTransaction(rawTx string) (string, error) {
	result, err := c.call("eth_sendRawTransaction", rawTx)
	if err != nil {
		return "", err
	}
	hash, ok := result.(string)
	if !ok {
		return "", fmt.Errorf("unexpected result: %T", result)
	}
	return hash, nil
}

// TxReceipt holds the on-chain receipt of a mined transaction.
type TxReceipt struct {
	Hash        string
	Status      uint64 // 1 = success, 0 = reverted
	BlockNumber uint64
	GasUsed     uint64
	Logs        []LogEntry
}

// GetTransactionReceipt fetches the receipt for hash.
// Returns nil, nil if the transaction is still pending.
func (c *EVMClient) GetTransactionReceipt(hash string) (*TxReceipt, error) {
	result, err := c.call("eth_getTransactionReceipt", hash)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil // still pending
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}

	var r struct {
		Status      string     `json:"status"`
		BlockNumber string     `json:"blockNumber"`
		GasUsed     string     `json:"gasUsed"`
		Logs        []LogEntry `json:"logs"`
	}
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, err
	}

	receipt := &TxReceipt{Hash: hash, Logs: r.Logs}
	if s, ok := parseBigHex(r.Status); ok {
		receipt.Status = s.Uint64()
	}
	if bn, ok := parseBigHex(r.BlockNumber); ok {
		receipt.BlockNumber = bn.Uint64()
	}
	if gu, ok := parseBigHex(r.GasUsed); ok {
		receipt.GasUsed = gu.Uint64()
	}
	return receipt, nil
}

// WaitForReceipt polls every 2 s until the transaction is mined or timeout
// expires. Returns an error if the transaction reverted (Status == 0).
func (c *EVMClient) WaitForReceipt(hash string, timeout time.Duration) (*TxReceipt, error) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		receipt, err := c.GetTransactionReceipt(hash)
		if err != nil {
			return nil, err
		}
		if receipt != nil {
			if receipt.Status == 0 {
				return receipt, fmt.Errorf("transaction reverted (hash: %s)", hash)
			}
			return receipt, nil
		}
		time.Sleep(2 * time.Second)
	}
	return nil, fmt.Errorf("transaction %s not mined within %s", hash, timeout)
}

// LogEntry holds one event log.
type LogEntry struct {
	Address     string   `json:"address"`
	Topics      []string `json:"topics"`
	Data        string   `json:"data"`
	BlockNumber string   `json:"blockNumber"`
	TxHash      string   `json:"transactionHash"`
}

// GetLogs queries event logs matching the given filter.
func (c *EVMClient) GetLogs(address string, topics []string, fromBlock, toBlock string) ([]LogEntry, error) {
	filter := map[string]interface{}{
		"address":   address,
		"fromBlock": fromBlock,
		"toBlock":   toBlock,
	}
	if len(topics) > 0 {
		// An empty string is a wildcard position; the node wants null there.
		list := make([]interface{}, len(topics))
		for i, t := range topics {
			if t == "" {
				list[i] = nil
			} else {
				list[i] = t
			}
		}
		filter["topics"] = list
	}

	result, err := c.call("eth_getLogs", filter)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}

	var logs []LogEntry
	if err := json.Unmarshal(raw, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// --- internal JSON-RPC plumbing ---

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
	ID      int           `json:"id"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcError       `json:"error"`
}

type rpcError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *EVMClient) call(method string, params ...interface{}) (interface{}, error) {
	reqBody, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      1,
	})
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Post(c.url, "application/json", strings.NewReader(string(reqBody)))
	if err != nil {
		return nil, fmt.Errorf("RPC request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(body, &rpcResp); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	if rpcResp.Error != nil {
		if rev := asRevertError(rpcResp.Error); rev != nil {
			return nil, rev
		}
		return nil, fmt.Errorf("RPC error %d: %s", rpcResp.Error.Code, rpcResp.Error.Message)
	}

	var result interface{}
	if err := json.Unmarshal(rpcResp.Result, &result); err != nil {
		return nil, fmt.Errorf("parsing result: %w", err)
	}

	return result, nil
}

func parseBigHex(s string) (*big.Int, bool) {
	n, ok := new(big.Int).SetString(strings.TrimPrefix(s, "0x"), 16)
	return n, ok
}

// --- revert decoding ---

// RevertError is an eth_call / estimateGas failure caused by a contract
// revert. Reason is the decoded Error(string) payload, empty if the revert
// carried no reason string.
type RevertError struct {
	Code    int
	Message string
	Reason  string
}

func (e *RevertError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("execution reverted: %s", e.Reason)
	}
	return e.Message
}

// errorStringSelector is the 4-byte selector of Error(string), the payload
// solc emits for require(..., "reason").
const errorStringSelector = "08c379a0"

func asRevertError(rpcErr *rpcError) *RevertError {
	if !strings.Contains(strings.ToLower(rpcErr.Message), "revert") {
		return nil
	}

	rev := &RevertError{Code: rpcErr.Code, Message: rpcErr.Message}

	// Geth and anvil put the raw revert data in error.data, either as a
	// bare hex string or wrapped in an object. Try the bare form first.
	var dataHex string
	if len(rpcErr.Data) > 0 {
		if err := json.Unmarshal(rpcErr.Data, &dataHex); err != nil {
			var wrapped struct {
				Data string `json:"data"`
			}
			if json.Unmarshal(rpcErr.Data, &wrapped) == nil {
				dataHex = wrapped.Data
			}
		}
	}

	if reason, ok := decodeRevertReason(dataHex); ok {
		rev.Reason = reason
	} else if i := strings.Index(rpcErr.Message, "reverted: "); i >= 0 {
		// Some nodes inline the reason into the message instead.
		rev.Reason = rpcErr.Message[i+len("reverted: "):]
	}
	return rev
}

// decodeRevertReason decodes an Error(string) payload:
// selector ++ abi.encode(offset, length, bytes).
func decodeRevertReason(dataHex string) (string, bool) {
	dataHex = strings.TrimPrefix(dataHex, "0x")
	if !strings.HasPrefix(dataHex, errorStringSelector) {
		return "", false
	}
	data, err := hex.DecodeString(dataHex[len(errorStringSelector):])
	if err != nil || len(data) < 64 {
		return "", false
	}
	offset := new(big.Int).SetBytes(data[:32]).Uint64()
	if offset+32 > uint64(len(data)) {
		return "", false
	}
	length := new(big.Int).SetBytes(data[offset : offset+32]).Uint64()
	start := offset + 32
	if start+length > uint64(len(data)) {
		return "", false
	}
	return string(data[start : start+length]), true
}
