package supplychain

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	contractAddr = "0x00000000000000000000000000000000000c0de"
	me           = "0x1111111111111111111111111111111111111111"
	other        = "0x2222222222222222222222222222222222222222"
)

// Function selectors of the bundled ABI, used to key mock responses.
const (
	selAdmin            = "0xf851a440"
	selHasAdmin         = "0xa4b121e2"
	selGetUserByAddress = "0x69c212f6"
	selAddressToUserID  = "0xb5ffbbcc"
	selUsers            = "0x365b98b2"
	selGetTokenInfo     = "0x8c7a63ae"
	selGetTokenBalance  = "0xef57e2d2"
	selGetUserTokens    = "0x519dc8d2"
	selTraceLineage     = "0x479bb051"
	selTransfers        = "0x9377d711"
)

func uintWord(n uint64) string { return fmt.Sprintf("%064x", n) }

func addrWord(addr string) string {
	a := strings.ToLower(strings.TrimPrefix(addr, "0x"))
	return strings.Repeat("0", 64-len(a)) + a
}

// contractMock serves eth_call by longest-prefix match on the calldata and
// eth_getLogs from a fixed log list. Reverts carry an Error(string) payload.
type contractMock struct {
	calls   map[string]string // calldata prefix → result hex
	reverts map[string]string // calldata prefix → revert reason
	logs    []map[string]interface{}
}

func errorData(reason string) string {
	padded := []byte(reason)
	for len(padded)%32 != 0 {
		padded = append(padded, 0)
	}
	return "0x08c379a0" +
		uintWord(0x20) +
		uintWord(uint64(len(reason))) +
		fmt.Sprintf("%x", padded)
}

func (m *contractMock) serve(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Method string        `json:"method"`
			Params []interface{} `json:"params"`
			ID     int           `json:"id"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		w.Header().Set("Content-Type", "application/json")

		reply := func(result interface{}) {
			json.NewEncoder(w).Encode(map[string]interface{}{ //nolint:errcheck
				"jsonrpc": "2.0", "id": req.ID, "result": result,
			})
		}
		replyErr := func(msg, data string) {
			json.NewEncoder(w).Encode(map[string]interface{}{ //nolint:errcheck
				"jsonrpc": "2.0", "id": req.ID,
				"error": map[string]interface{}{"code": 3, "message": msg, "data": data},
			})
		}

		switch req.Method {
		case "eth_call":
			call := req.Params[0].(map[string]interface{})
			data := call["data"].(string)
			// Longest prefix wins so exact-argument entries beat selectors.
			best := ""
			for prefix := range m.reverts {
				if strings.HasPrefix(data, prefix) && len(prefix) > len(best) {
					best = prefix
				}
			}
			if best != "" {
				replyErr("execution reverted: "+m.reverts[best], errorData(m.reverts[best]))
				return
			}
			for prefix := range m.calls {
				if strings.HasPrefix(data, prefix) && len(prefix) > len(best) {
					best = prefix
				}
			}
			if best != "" {
				reply(m.calls[best])
				return
			}
			replyErr("execution reverted", "")
		case "eth_getLogs":
			reply(m.logs)
		default:
			json.NewEncoder(w).Encode(map[string]interface{}{ //nolint:errcheck
				"jsonrpc": "2.0", "id": req.ID,
				"error": map[string]interface{}{"code": -32601, "message": "method not found"},
			})
		}
	}))
}

func TestAdminRead(t *testing.T) {
	mock := &contractMock{calls: map[string]string{
		selAdmin: "0x" + addrWord(me),
	}}
	srv := mock.serve(t)
	defer srv.Close()

	admin, err := NewReader(srv.URL, contractAddr).Admin()
	require.NoError(t, err)
	assert.Equal(t, me, admin)
}

func TestHasAdmin(t *testing.T) {
	mock := &contractMock{calls: map[string]string{
		selHasAdmin: "0x" + uintWord(1),
	}}
	srv := mock.serve(t)
	defer srv.Close()

	has, err := NewReader(srv.URL, contractAddr).HasAdmin()
	require.NoError(t, err)
	assert.True(t, has)
}

func TestGetUserByAddressParsesRecord(t *testing.T) {
	mock := &contractMock{calls: map[string]string{
		selGetUserByAddress: "0x" + uintWord(7) + addrWord(me) + uintWord(2) + uintWord(2),
	}}
	srv := mock.serve(t)
	defer srv.Close()

	u, err := NewReader(srv.URL, contractAddr).GetUserByAddress(me)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), u.ID)
	assert.Equal(t, me, u.Wallet)
	assert.Equal(t, RoleFactory, u.Role)
	assert.Equal(t, StatusApproved, u.Status)
	assert.True(t, u.Registered())
}

func TestGetUserByAddressNoUser(t *testing.T) {
	mock := &contractMock{reverts: map[string]string{
		selGetUserByAddress: "No user",
	}}
	srv := mock.serve(t)
	defer srv.Close()

	_, err := NewReader(srv.URL, contractAddr).GetUserByAddress(me)
	assert.ErrorIs(t, err, ErrNoSuchUser)
}

func TestUserIDByAddress(t *testing.T) {
	mock := &contractMock{calls: map[string]string{
		selAddressToUserID + addrWord(me):    "0x" + uintWord(7),
		selAddressToUserID + addrWord(other): "0x" + uintWord(0),
	}}
	srv := mock.serve(t)
	defer srv.Close()

	r := NewReader(srv.URL, contractAddr)
	id, err := r.UserIDByAddress(me)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), id)

	// The mapping returns 0 for unregistered addresses, no revert.
	id, err = r.UserIDByAddress(other)
	require.NoError(t, err)
	assert.Zero(t, id)
}

func TestTokenInfoParsesStrings(t *testing.T) {
	// (id, name offset, features offset, parentId, creator) then tails.
	result := "0x" +
		uintWord(3) +
		uintWord(0xa0) +
		uintWord(0xe0) +
		uintWord(1) +
		addrWord(me) +
		uintWord(5) + fmt.Sprintf("%x", append([]byte("beans"), make([]byte, 27)...)) +
		uintWord(0)
	mock := &contractMock{calls: map[string]string{selGetTokenInfo: result}}
	srv := mock.serve(t)
	defer srv.Close()

	tok, err := NewReader(srv.URL, contractAddr).TokenInfo(3)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), tok.ID)
	assert.Equal(t, "beans", tok.Name)
	assert.Equal(t, "", tok.Features)
	assert.Equal(t, uint64(1), tok.ParentID)
	assert.Equal(t, me, tok.Creator)
}

func TestUserTokensList(t *testing.T) {
	mock := &contractMock{calls: map[string]string{
		selGetUserTokens: "0x" + uintWord(0x20) + uintWord(3) + uintWord(1) + uintWord(4) + uintWord(9),
	}}
	srv := mock.serve(t)
	defer srv.Close()

	ids, err := NewReader(srv.URL, contractAddr).UserTokens(me)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 4, 9}, ids)
}

func TestTraceLineageEmpty(t *testing.T) {
	mock := &contractMock{calls: map[string]string{
		selTraceLineage: "0x" + uintWord(0x20) + uintWord(0),
	}}
	srv := mock.serve(t)
	defer srv.Close()

	ids, err := NewReader(srv.URL, contractAddr).TraceLineage(1)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestTransferByIDParsesRecord(t *testing.T) {
	mock := &contractMock{calls: map[string]string{
		selTransfers: "0x" +
			uintWord(4) + uintWord(2) + addrWord(me) + addrWord(other) +
			uintWord(500) + uintWord(1) + uintWord(1_700_000_000),
	}}
	srv := mock.serve(t)
	defer srv.Close()

	tr, err := NewReader(srv.URL, contractAddr).TransferByID(4)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), tr.ID)
	assert.Equal(t, uint64(2), tr.TokenID)
	assert.Equal(t, me, tr.From)
	assert.Equal(t, other, tr.To)
	assert.Equal(t, "500", tr.Amount.String())
	assert.Equal(t, TransferAccepted, tr.Status)
	assert.Equal(t, uint64(1_700_000_000), tr.Timestamp)
	assert.True(t, tr.Outgoing(me))
	assert.True(t, tr.Incoming(other))
}

func TestWriteWithoutSignerFails(t *testing.T) {
	c := NewReader("http://127.0.0.1:0", contractAddr)
	_, err := c.ClaimAdmin()
	assert.ErrorIs(t, err, ErrSignerUnavailable)
}

func TestBindNilProvider(t *testing.T) {
	_, err := Bind(nil, "http://127.0.0.1:0", contractAddr, 31337)
	assert.ErrorIs(t, err, ErrProviderUnavailable)
}

func TestScanUsersPartitionsByStatus(t *testing.T) {
	userRecord := func(id uint64, wallet string, role Role, status UserStatus) string {
		return "0x" + uintWord(id) + addrWord(wallet) + uintWord(uint64(role)) + uintWord(uint64(status))
	}
	mock := &contractMock{calls: map[string]string{
		selUsers + uintWord(1): userRecord(1, me, RoleProducer, StatusPending),
		selUsers + uintWord(2): userRecord(2, other, RoleRetailer, StatusApproved),
		selUsers + uintWord(3): userRecord(3, me, RoleConsumer, StatusRejected),
		// Slot 4 is empty: the scan stops here.
		selUsers + uintWord(4): userRecord(0, ZeroAddress, RoleNone, StatusNone),
	}}
	srv := mock.serve(t)
	defer srv.Close()

	scan, err := NewReader(srv.URL, contractAddr).ScanUsers()
	require.NoError(t, err)
	require.Len(t, scan.Pending, 1)
	require.Len(t, scan.Approved, 1)
	require.Len(t, scan.Other, 1)
	assert.Equal(t, uint64(1), scan.Pending[0].ID)
	assert.Equal(t, uint64(2), scan.Approved[0].ID)
	assert.Equal(t, uint64(3), scan.Other[0].ID)
}

func TestTransfersForNewestFirst(t *testing.T) {
	transferRecord := func(id, ts uint64, status TransferStatus) string {
		return "0x" + uintWord(id) + uintWord(1) + addrWord(me) + addrWord(other) +
			uintWord(100) + uintWord(uint64(status)) + uintWord(ts)
	}
	mock := &contractMock{
		calls: map[string]string{
			selTransfers + uintWord(1): transferRecord(1, 100, TransferAccepted),
			selTransfers + uintWord(2): transferRecord(2, 200, TransferPending),
		},
		logs: []map[string]interface{}{
			{"address": contractAddr, "topics": []string{TopicTransferCreated, "0x" + uintWord(1)}, "data": "0x"},
			{"address": contractAddr, "topics": []string{TopicTransferCreated, "0x" + uintWord(2)}, "data": "0x"},
		},
	}
	srv := mock.serve(t)
	defer srv.Close()

	transfers, err := NewReader(srv.URL, contractAddr).TransfersFor(me)
	require.NoError(t, err)
	require.Len(t, transfers, 2)
	assert.Equal(t, uint64(2), transfers[0].ID, "newest first")
	assert.Equal(t, uint64(1), transfers[1].ID)
}

func TestTransfersForFiltersUninvolved(t *testing.T) {
	mock := &contractMock{
		calls: map[string]string{
			selTransfers + uintWord(1): "0x" + uintWord(1) + uintWord(1) + addrWord(other) + addrWord(other) +
				uintWord(100) + uintWord(0) + uintWord(100),
		},
		logs: []map[string]interface{}{
			{"address": contractAddr, "topics": []string{TopicTransferCreated, "0x" + uintWord(1)}, "data": "0x"},
		},
	}
	srv := mock.serve(t)
	defer srv.Close()

	transfers, err := NewReader(srv.URL, contractAddr).TransfersFor(me)
	require.NoError(t, err)
	assert.Empty(t, transfers)
}

func TestTokensOfResolvesBalances(t *testing.T) {
	tokenRecord := "0x" + uintWord(1) + uintWord(0xa0) + uintWord(0xe0) + uintWord(0) + addrWord(me) +
		uintWord(4) + fmt.Sprintf("%x", append([]byte("milk"), make([]byte, 28)...)) +
		uintWord(0)
	mock := &contractMock{calls: map[string]string{
		selGetUserTokens:   "0x" + uintWord(0x20) + uintWord(1) + uintWord(1),
		selGetTokenInfo:    tokenRecord,
		selGetTokenBalance: "0x" + uintWord(250),
	}}
	srv := mock.serve(t)
	defer srv.Close()

	owned, err := NewReader(srv.URL, contractAddr).TokensOf(me)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, "milk", owned[0].Name)
	assert.Equal(t, "250", owned[0].Balance)
}
