package chain

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rpcMock creates a test HTTP server that serves a fixed JSON-RPC response
// per method. Pass method→result pairs; any unknown method returns an RPC error.
func rpcMock(t *testing.T, responses map[string]interface{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Method string `json:"method"`
			ID     int    `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if result, ok := responses[req.Method]; ok {
			json.NewEncoder(w).Encode(map[string]interface{}{ //nolint:errcheck
				"jsonrpc": "2.0",
				"id":      req.ID,
				"result":  result,
			})
		} else {
			json.NewEncoder(w).Encode(map[string]interface{}{ //nolint:errcheck
				"jsonrpc": "2.0",
				"id":      req.ID,
				"error":   map[string]interface{}{"code": -32601, "message": "method not found"},
			})
		}
	}))
}

// rpcErrorServer creates a test HTTP server that always returns the given
// JSON-RPC error object.
func rpcErrorServer(t *testing.T, errObj map[string]interface{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID int `json:"id"`
		}
		json.NewDecoder(r.Body).Decode(&req) //nolint:errcheck
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{ //nolint:errcheck
			"jsonrpc": "2.0",
			"id":      req.ID,
			"error":   errObj,
		})
	}))
}

// noUserRevertData is the Error(string) payload for require(..., "No user"):
// selector ++ offset ++ length ++ padded bytes.
const noUserRevertData = "0x08c379a0" +
	"0000000000000000000000000000000000000000000000000000000000000020" +
	"0000000000000000000000000000000000000000000000000000000000000007" +
	"4e6f207573657200000000000000000000000000000000000000000000000000"

func TestGetBlockNumber(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{"eth_blockNumber": "0x10"})
	defer srv.Close()

	n, err := NewEVMClient(srv.URL).GetBlockNumber()
	require.NoError(t, err)
	assert.Equal(t, uint64(16), n)
}

func TestChainID(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{"eth_chainId": "0x7a69"})
	defer srv.Close()

	id, err := NewEVMClient(srv.URL).ChainID()
	require.NoError(t, err)
	assert.Equal(t, int64(31337), id)
}

func TestCallContract(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{
		"eth_call": "0x0000000000000000000000000000000000000000000000000000000000000001",
	})
	defer srv.Close()

	out, err := NewEVMClient(srv.URL).CallContract("0xdead", "0xbeef")
	require.NoError(t, err)
	assert.Equal(t, "0x0000000000000000000000000000000000000000000000000000000000000001", out)
}

func TestCallContractRevertWithReason(t *testing.T) {
	srv := rpcErrorServer(t, map[string]interface{}{
		"code":    3,
		"message": "execution reverted: No user",
		"data":    noUserRevertData,
	})
	defer srv.Close()

	_, err := NewEVMClient(srv.URL).CallContract("0xdead", "0xbeef")
	require.Error(t, err)

	rev, ok := err.(*RevertError)
	require.True(t, ok, "expected *RevertError, got %T", err)
	assert.Equal(t, "No user", rev.Reason)
	assert.Contains(t, rev.Error(), "No user")
}

func TestCallContractRevertWrappedData(t *testing.T) {
	srv := rpcErrorServer(t, map[string]interface{}{
		"code":    -32000,
		"message": "execution reverted",
		"data":    map[string]interface{}{"data": noUserRevertData},
	})
	defer srv.Close()

	_, err := NewEVMClient(srv.URL).CallContract("0xdead", "0xbeef")
	require.Error(t, err)

	rev, ok := err.(*RevertError)
	require.True(t, ok)
	assert.Equal(t, "No user", rev.Reason)
}

func TestCallContractRevertReasonFromMessage(t *testing.T) {
	srv := rpcErrorServer(t, map[string]interface{}{
		"code":    3,
		"message": "execution reverted: Not admin",
	})
	defer srv.Close()

	_, err := NewEVMClient(srv.URL).CallContract("0xdead", "0xbeef")
	require.Error(t, err)

	rev, ok := err.(*RevertError)
	require.True(t, ok)
	assert.Equal(t, "Not admin", rev.Reason)
}

func TestCallContractPlainRPCErrorIsNotRevert(t *testing.T) {
	srv := rpcErrorServer(t, map[string]interface{}{
		"code":    -32601,
		"message": "method not found",
	})
	defer srv.Close()

	_, err := NewEVMClient(srv.URL).CallContract("0xdead", "0xbeef")
	require.Error(t, err)
	_, ok := err.(*RevertError)
	assert.False(t, ok)
}

func TestGetTransactionReceiptPending(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{"eth_getTransactionReceipt": nil})
	defer srv.Close()

	receipt, err := NewEVMClient(srv.URL).GetTransactionReceipt("0xabc")
	require.NoError(t, err)
	assert.Nil(t, receipt)
}

func TestGetTransactionReceiptParsed(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{
		"eth_getTransactionReceipt": map[string]interface{}{
			"status":      "0x1",
			"blockNumber": "0x2a",
			"gasUsed":     "0x5208",
			"logs": []map[string]interface{}{
				{
					"address": "0xcontract",
					"topics":  []string{"0xtopic0", "0xtopic1"},
					"data":    "0x",
				},
			},
		},
	})
	defer srv.Close()

	receipt, err := NewEVMClient(srv.URL).GetTransactionReceipt("0xabc")
	require.NoError(t, err)
	require.NotNil(t, receipt)
	assert.Equal(t, uint64(1), receipt.Status)
	assert.Equal(t, uint64(42), receipt.BlockNumber)
	assert.Equal(t, uint64(21000), receipt.GasUsed)
	require.Len(t, receipt.Logs, 1)
	assert.Len(t, receipt.Logs[0].Topics, 2)
}

func TestWaitForReceiptRevertedTx(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{
		"eth_getTransactionReceipt": map[string]interface{}{
			"status":      "0x0",
			"blockNumber": "0x1",
			"gasUsed":     "0x5208",
		},
	})
	defer srv.Close()

	receipt, err := NewEVMClient(srv.URL).WaitForReceipt("0xabc", 5*time.Second)
	require.Error(t, err)
	require.NotNil(t, receipt)
	assert.Contains(t, err.Error(), "reverted")
}

func TestGetLogsWildcardTopicsBecomeNull(t *testing.T) {
	var captured []interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Params []interface{} `json:"params"`
			ID     int           `json:"id"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if len(req.Params) > 0 {
			filter := req.Params[0].(map[string]interface{})
			captured, _ = filter["topics"].([]interface{})
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{ //nolint:errcheck
			"jsonrpc": "2.0", "id": req.ID, "result": []interface{}{},
		})
	}))
	defer srv.Close()

	logs, err := NewEVMClient(srv.URL).GetLogs("0xcontract", []string{"0xtopic0", "", "0xtopic2"}, "0x0", "latest")
	require.NoError(t, err)
	assert.Empty(t, logs)

	require.Len(t, captured, 3)
	assert.Equal(t, "0xtopic0", captured[0])
	assert.Nil(t, captured[1])
	assert.Equal(t, "0xtopic2", captured[2])
}
