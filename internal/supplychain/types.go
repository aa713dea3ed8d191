package supplychain

import (
	"math/big"
	"strings"
)

// Role is a user's assigned role in the supply chain.
type Role uint8

// Role values, matching the contract enum.
const (
	RoleNone Role = iota
	RoleProducer
	RoleFactory
	RoleRetailer
	RoleConsumer
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleProducer:
		return "producer"
	case RoleFactory:
		return "factory"
	case RoleRetailer:
		return "retailer"
	case RoleConsumer:
		return "consumer"
	case RoleAdmin:
		return "admin"
	default:
		return "none"
	}
}

// ParseRole maps a role name to its contract value. ok is false for
// unknown names.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(s) {
	case "producer":
		return RoleProducer, true
	case "factory":
		return RoleFactory, true
	case "retailer":
		return RoleRetailer, true
	case "consumer":
		return RoleConsumer, true
	case "admin":
		return RoleAdmin, true
	default:
		return RoleNone, false
	}
}

// UserStatus is the lifecycle state of a user's role request.
type UserStatus uint8

// UserStatus values, matching the contract enum.
const (
	StatusNone UserStatus = iota
	StatusPending
	StatusApproved
	StatusRejected
	StatusInactive
)

func (s UserStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusApproved:
		return "approved"
	case StatusRejected:
		return "rejected"
	case StatusInactive:
		return "inactive"
	default:
		return "none"
	}
}

// TransferStatus is the state of a proposed balance movement.
type TransferStatus uint8

// TransferStatus values, matching the contract enum. A transfer leaves
// Pending exactly once.
const (
	TransferPending TransferStatus = iota
	TransferAccepted
	TransferRejected
)

func (s TransferStatus) String() string {
	switch s {
	case TransferAccepted:
		return "accepted"
	case TransferRejected:
		return "rejected"
	default:
		return "pending"
	}
}

// User is a registered participant. ID 0 means "no such user".
type User struct {
	ID     uint64
	Wallet string
	Role   Role
	Status UserStatus
}

// Registered reports whether the record refers to an actual user.
func (u *User) Registered() bool {
	return u != nil && u.ID != 0
}

// Token is a named, balance-tracked product unit. ParentID 0 marks a raw
// material.
type Token struct {
	ID       uint64
	Name     string
	Features string
	ParentID uint64
	Creator  string
}

// Transfer is a proposed balance movement awaiting recipient acceptance.
type Transfer struct {
	ID        uint64
	TokenID   uint64
	From      string
	To        string
	Amount    *big.Int
	Status    TransferStatus
	Timestamp uint64
}

// Incoming reports whether addr is the transfer's recipient.
func (t *Transfer) Incoming(addr string) bool {
	return equalAddr(t.To, addr)
}

// Outgoing reports whether addr is the transfer's sender.
func (t *Transfer) Outgoing(addr string) bool {
	return equalAddr(t.From, addr)
}

// ZeroAddress is the EVM zero address.
const ZeroAddress = "0x0000000000000000000000000000000000000000"

func equalAddr(a, b string) bool {
	return strings.EqualFold(strings.TrimPrefix(a, "0x"), strings.TrimPrefix(b, "0x"))
}

// IsZeroAddress reports whether addr is empty or the zero address.
func IsZeroAddress(addr string) bool {
	return addr == "" || equalAddr(addr, ZeroAddress)
}
