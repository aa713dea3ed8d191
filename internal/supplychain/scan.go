package supplychain

import (
	"sort"

	"github.com/chaintrace/chaintrace/internal/contract"
)

// The contract exposes no indexed queries, so listings are linear scans:
// user ids walk storage from 1 until an empty slot, and token/transfer
// relations replay event logs from block 0. Per-item read failures are
// skipped so that one bad id never aborts a whole listing.

// maxScanMisses bounds consecutive per-item failures during the user-id
// walk, so an RPC outage cannot spin the scan forever.
const maxScanMisses = 3

// UserScan is the partition an admin view renders.
type UserScan struct {
	Pending  []User
	Approved []User
	Other    []User // rejected / inactive
}

// ScanUsers walks user ids from 1 upward until an empty wallet slot is
// encountered, partitioning records by status.
func (c *Client) ScanUsers() (*UserScan, error) {
	scan := &UserScan{}
	misses := 0
	for id := uint64(1); ; id++ {
		u, err := c.UserByID(id)
		if err != nil {
			misses++
			if misses >= maxScanMisses {
				break
			}
			continue
		}
		misses = 0
		if IsZeroAddress(u.Wallet) {
			break
		}
		switch u.Status {
		case StatusPending:
			scan.Pending = append(scan.Pending, *u)
		case StatusApproved:
			scan.Approved = append(scan.Approved, *u)
		default:
			scan.Other = append(scan.Other, *u)
		}
	}
	return scan, nil
}

// TransfersFor lists the transfers where addr is sender or recipient,
// newest first, by replaying TransferCreated logs.
func (c *Client) TransfersFor(addr string) ([]Transfer, error) {
	ids, err := c.transferIDsFromLogs(nil)
	if err != nil {
		return nil, err
	}

	var out []Transfer
	for _, id := range ids {
		t, err := c.TransferByID(id)
		if err != nil {
			continue
		}
		if t.Incoming(addr) || t.Outgoing(addr) {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp > out[j].Timestamp })
	return out, nil
}

// AcceptedTransfersForToken lists the accepted transfers of one token,
// newest first. Used for a token's movement history.
func (c *Client) AcceptedTransfersForToken(tokenID uint64) ([]Transfer, error) {
	// TransferCreated indexes the token id as its second topic.
	topics := []string{TopicTransferCreated, "", contract.UintTopic(tokenID)}
	ids, err := c.transferIDsFromLogs(topics)
	if err != nil {
		return nil, err
	}

	var out []Transfer
	for _, id := range ids {
		t, err := c.TransferByID(id)
		if err != nil {
			continue
		}
		if t.Status == TransferAccepted {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp > out[j].Timestamp })
	return out, nil
}

// ChildTokens lists the tokens derived from tokenID by replaying
// TokenCreated logs and matching parent ids.
func (c *Client) ChildTokens(tokenID uint64) ([]Token, error) {
	logs, err := c.RPC().GetLogs(c.address, []string{TopicTokenCreated}, "0x0", "latest")
	if err != nil {
		return nil, err
	}

	var out []Token
	for _, log := range logs {
		if len(log.Topics) < 2 {
			continue
		}
		id, err := contract.TopicToUint(log.Topics[1])
		if err != nil {
			continue
		}
		tok, err := c.TokenInfo(id)
		if err != nil {
			continue
		}
		if tok.ParentID == tokenID {
			out = append(out, *tok)
		}
	}
	return out, nil
}

// LineageTokens resolves a token's ancestors into full records, nearest
// first. Unresolvable ancestors are skipped.
func (c *Client) LineageTokens(tokenID uint64) ([]Token, error) {
	ids, err := c.TraceLineage(tokenID)
	if err != nil {
		return nil, err
	}

	var out []Token
	for _, id := range ids {
		if id == 0 {
			continue
		}
		tok, err := c.TokenInfo(id)
		if err != nil {
			continue
		}
		out = append(out, *tok)
	}
	return out, nil
}

// OwnedTokens resolves owner's token ids into full records with balances.
type OwnedToken struct {
	Token
	Balance string
}

// TokensOf lists owner's tokens with balances, skipping ids that fail to
// resolve.
func (c *Client) TokensOf(owner string) ([]OwnedToken, error) {
	ids, err := c.UserTokens(owner)
	if err != nil {
		return nil, err
	}

	var out []OwnedToken
	for _, id := range ids {
		tok, err := c.TokenInfo(id)
		if err != nil {
			continue
		}
		bal, err := c.TokenBalance(id, owner)
		if err != nil {
			continue
		}
		out = append(out, OwnedToken{Token: *tok, Balance: bal.String()})
	}
	return out, nil
}

// --- internal ---

func (c *Client) transferIDsFromLogs(topics []string) ([]uint64, error) {
	if topics == nil {
		topics = []string{TopicTransferCreated}
	}
	logs, err := c.RPC().GetLogs(c.address, topics, "0x0", "latest")
	if err != nil {
		return nil, err
	}

	var ids []uint64
	for _, log := range logs {
		if len(log.Topics) < 2 {
			continue
		}
		id, err := contract.TopicToUint(log.Topics[1])
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}
