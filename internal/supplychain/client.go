package supplychain

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/chaintrace/chaintrace/internal/chain"
	"github.com/chaintrace/chaintrace/internal/config"
	"github.com/chaintrace/chaintrace/internal/contract"
	"github.com/chaintrace/chaintrace/internal/wallet"
)

// Client is a typed binding to the supply-chain contract. A read-only
// client (NewReader) answers view calls; a bound client (Bind) can also
// send state-mutating transactions signed by the provider's active account.
type Client struct {
	caller  *contract.Caller
	sender  *contract.Sender
	address string
	timeout time.Duration
}

// NewReader creates a read-only client for the contract at contractAddr.
func NewReader(rpcURL, contractAddr string) *Client {
	return &Client{
		caller:  contract.NewCallerFromEntries(rpcURL, supplyChainABI),
		address: contractAddr,
		timeout: config.TxConfirmTimeout,
	}
}

// Bind produces a client bound to whichever account the provider currently
// exposes as signer. Fails with ErrProviderUnavailable when p is nil and
// ErrSignerUnavailable when the provider holds no authorized accounts.
func Bind(p wallet.Provider, rpcURL, contractAddr string, chainID int64) (*Client, error) {
	if p == nil {
		return nil, ErrProviderUnavailable
	}
	accounts, err := p.Accounts()
	if err != nil || len(accounts) == 0 {
		return nil, ErrSignerUnavailable
	}
	signer, err := p.SignerFor(accounts[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSignerUnavailable, err)
	}

	c := NewReader(rpcURL, contractAddr)
	c.sender = contract.NewSender(rpcURL, supplyChainABI, signer, big.NewInt(chainID))
	return c, nil
}

// Address returns the contract address.
func (c *Client) Address() string { return c.address }

// Signer returns the bound signing address, or "" for a read-only client.
func (c *Client) Signer() string {
	if c.sender == nil {
		return ""
	}
	return c.sender.From()
}

// RPC returns the underlying EVM client (shared with log scans).
func (c *Client) RPC() *chain.EVMClient { return c.caller.Client() }

// ─── identity/admin reads ────────────────────────────────────────────────────

// Admin returns the contract's admin address (zero address if none).
func (c *Client) Admin() (string, error) {
	out, err := c.caller.Call(c.address, "admin")
	if err != nil {
		return "", err
	}
	return firstOut(out)
}

// HasAdmin reports whether an admin has been claimed.
func (c *Client) HasAdmin() (bool, error) {
	out, err := c.caller.Call(c.address, "hasAdmin")
	if err != nil {
		return false, err
	}
	s, err := firstOut(out)
	return s == "true", err
}

// GetUserByAddress resolves the user record for an address. The contract's
// "No user" revert comes back as ErrNoSuchUser; an id of 0 in a successful
// response also means "no such user" and is the caller's to interpret.
func (c *Client) GetUserByAddress(addr string) (*User, error) {
	out, err := c.caller.Call(c.address, "getUserByAddress", addr)
	if err != nil {
		return nil, translateRevert(err)
	}
	return parseUser(out)
}

// UserByID reads a user record straight from contract storage.
func (c *Client) UserByID(id uint64) (*User, error) {
	out, err := c.caller.Call(c.address, "users", formatUint(id))
	if err != nil {
		return nil, translateRevert(err)
	}
	return parseUser(out)
}

// UserIDByAddress returns the user id for an address (0 if unregistered).
func (c *Client) UserIDByAddress(addr string) (uint64, error) {
	out, err := c.caller.Call(c.address, "addressToUserId", addr)
	if err != nil {
		return 0, err
	}
	return firstUint(out)
}

// ─── token reads ─────────────────────────────────────────────────────────────

// TokenInfo returns a token's metadata.
func (c *Client) TokenInfo(id uint64) (*Token, error) {
	out, err := c.caller.Call(c.address, "getTokenInfo", formatUint(id))
	if err != nil {
		return nil, err
	}
	if len(out) < 5 {
		return nil, fmt.Errorf("getTokenInfo: short result (%d values)", len(out))
	}
	tokenID, err := parseUint(out[0])
	if err != nil {
		return nil, err
	}
	parentID, err := parseUint(out[3])
	if err != nil {
		return nil, err
	}
	return &Token{
		ID:       tokenID,
		Name:     out[1],
		Features: out[2],
		ParentID: parentID,
		Creator:  out[4],
	}, nil
}

// TokenBalance returns owner's balance of a token.
func (c *Client) TokenBalance(id uint64, owner string) (*big.Int, error) {
	out, err := c.caller.Call(c.address, "getTokenBalance", formatUint(id), owner)
	if err != nil {
		return nil, err
	}
	s, err := firstOut(out)
	if err != nil {
		return nil, err
	}
	return parseBig(s)
}

// UserTokens returns the token ids owner has a balance of.
func (c *Client) UserTokens(owner string) ([]uint64, error) {
	out, err := c.caller.Call(c.address, "getUserTokens", owner)
	if err != nil {
		return nil, err
	}
	return firstIDList(out)
}

// TraceLineage returns the ancestor token ids of a token, nearest first.
func (c *Client) TraceLineage(id uint64) ([]uint64, error) {
	out, err := c.caller.Call(c.address, "traceLineage", formatUint(id))
	if err != nil {
		return nil, err
	}
	return firstIDList(out)
}

// ─── transfer reads ──────────────────────────────────────────────────────────

// TransferByID reads a transfer record from contract storage.
func (c *Client) TransferByID(id uint64) (*Transfer, error) {
	out, err := c.caller.Call(c.address, "transfers", formatUint(id))
	if err != nil {
		return nil, err
	}
	if len(out) < 7 {
		return nil, fmt.Errorf("transfers: short result (%d values)", len(out))
	}
	transferID, err := parseUint(out[0])
	if err != nil {
		return nil, err
	}
	tokenID, err := parseUint(out[1])
	if err != nil {
		return nil, err
	}
	amount, err := parseBig(out[4])
	if err != nil {
		return nil, err
	}
	status, err := parseUint(out[5])
	if err != nil {
		return nil, err
	}
	ts, err := parseUint(out[6])
	if err != nil {
		return nil, err
	}
	return &Transfer{
		ID:        transferID,
		TokenID:   tokenID,
		From:      out[2],
		To:        out[3],
		Amount:    amount,
		Status:    TransferStatus(status),
		Timestamp: ts,
	}, nil
}

// UserTransfers returns the transfer ids involving owner.
func (c *Client) UserTransfers(owner string) ([]uint64, error) {
	out, err := c.caller.Call(c.address, "getUserTransfers", owner)
	if err != nil {
		return nil, err
	}
	return firstIDList(out)
}

// ─── identity/admin writes ───────────────────────────────────────────────────

// RequestUserRole submits a role request for the bound account.
func (c *Client) RequestUserRole(role Role) (*chain.TxReceipt, error) {
	return c.write("requestUserRole", formatUint(uint64(role)))
}

// ClaimAdmin claims the admin role for the bound account.
func (c *Client) ClaimAdmin() (*chain.TxReceipt, error) {
	return c.write("claimAdmin")
}

// ApproveUser approves a pending user request with the given role.
func (c *Client) ApproveUser(userID uint64, role Role) (*chain.TxReceipt, error) {
	return c.write("approveUser", formatUint(userID), formatUint(uint64(role)))
}

// RejectUser rejects a pending user request.
func (c *Client) RejectUser(userID uint64) (*chain.TxReceipt, error) {
	return c.write("rejectUser", formatUint(userID))
}

// DeactivateUser deactivates an approved user.
func (c *Client) DeactivateUser(userID uint64) (*chain.TxReceipt, error) {
	return c.write("deactivateUser", formatUint(userID))
}

// CancelMyUser withdraws the bound account's own registration.
func (c *Client) CancelMyUser() (*chain.TxReceipt, error) {
	return c.write("cancelMyUser")
}

// ─── token writes ────────────────────────────────────────────────────────────

// CreateToken mints a new token. parentID 0 creates a raw material;
// otherwise parentAmount of the parent token is consumed to derive it.
// The new token id is recovered from the TokenCreated log in the receipt
// (0 if the log could not be found).
func (c *Client) CreateToken(name, features string, parentID uint64, amount, parentAmount *big.Int) (uint64, *chain.TxReceipt, error) {
	receipt, err := c.write("createToken",
		name, features, formatUint(parentID), amount.String(), parentAmount.String())
	if err != nil {
		return 0, receipt, err
	}
	return idFromLogs(receipt, TopicTokenCreated), receipt, nil
}

// Consume burns amount of the bound account's balance of a token.
func (c *Client) Consume(tokenID uint64, amount *big.Int) (*chain.TxReceipt, error) {
	return c.write("consume", formatUint(tokenID), amount.String())
}

// ─── transfer writes ─────────────────────────────────────────────────────────

// Transfer proposes moving amount of a token to another address. The new
// transfer id is recovered from the TransferCreated log in the receipt.
func (c *Client) Transfer(to string, tokenID uint64, amount *big.Int) (uint64, *chain.TxReceipt, error) {
	receipt, err := c.write("transfer", to, formatUint(tokenID), amount.String())
	if err != nil {
		return 0, receipt, err
	}
	return idFromLogs(receipt, TopicTransferCreated), receipt, nil
}

// CreateTransfer is the contract's alternate transfer entry point with the
// (tokenId, to, amount) argument order.
func (c *Client) CreateTransfer(tokenID uint64, to string, amount *big.Int) (uint64, *chain.TxReceipt, error) {
	receipt, err := c.write("createTransfer", formatUint(tokenID), to, amount.String())
	if err != nil {
		return 0, receipt, err
	}
	return idFromLogs(receipt, TopicTransferCreated), receipt, nil
}

// AcceptTransfer accepts a pending incoming transfer.
func (c *Client) AcceptTransfer(transferID uint64) (*chain.TxReceipt, error) {
	return c.write("acceptTransfer", formatUint(transferID))
}

// RejectTransfer rejects a pending incoming transfer.
func (c *Client) RejectTransfer(transferID uint64) (*chain.TxReceipt, error) {
	return c.write("rejectTransfer", formatUint(transferID))
}

// ─── internal ────────────────────────────────────────────────────────────────

func (c *Client) write(funcName string, args ...string) (*chain.TxReceipt, error) {
	if c.sender == nil {
		return nil, ErrSignerUnavailable
	}
	return c.sender.SendAndWait(c.address, funcName, c.timeout, args...)
}

// idFromLogs pulls the first indexed id out of the receipt log matching topic.
func idFromLogs(receipt *chain.TxReceipt, topic string) uint64 {
	if receipt == nil {
		return 0
	}
	for _, log := range receipt.Logs {
		if len(log.Topics) >= 2 && strings.EqualFold(log.Topics[0], topic) {
			if id, err := contract.TopicToUint(log.Topics[1]); err == nil {
				return id
			}
		}
	}
	return 0
}

func parseUser(out []string) (*User, error) {
	if len(out) < 4 {
		return nil, fmt.Errorf("user record: short result (%d values)", len(out))
	}
	id, err := parseUint(out[0])
	if err != nil {
		return nil, err
	}
	role, err := parseUint(out[2])
	if err != nil {
		return nil, err
	}
	status, err := parseUint(out[3])
	if err != nil {
		return nil, err
	}
	return &User{
		ID:     id,
		Wallet: out[1],
		Role:   Role(role),
		Status: UserStatus(status),
	}, nil
}

func firstOut(out []string) (string, error) {
	if len(out) == 0 {
		return "", fmt.Errorf("empty result")
	}
	return out[0], nil
}

func firstUint(out []string) (uint64, error) {
	s, err := firstOut(out)
	if err != nil {
		return 0, err
	}
	return parseUint(s)
}

func firstIDList(out []string) ([]uint64, error) {
	s, err := firstOut(out)
	if err != nil {
		return nil, err
	}
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	ids := make([]uint64, 0, len(parts))
	for _, p := range parts {
		id, err := parseUint(p)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parseUint(s string) (uint64, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %q as uint: %w", s, err)
	}
	return n, nil
}

func parseBig(s string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("parsing %q as integer", s)
	}
	return n, nil
}

func formatUint(n uint64) string {
	return strconv.FormatUint(n, 10)
}
