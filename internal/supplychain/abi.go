package supplychain

import "github.com/chaintrace/chaintrace/internal/contract"

// Bundled ABI of the supply-chain contract. Struct returns (User) are
// declared flattened: a static tuple lays out on the wire exactly as its
// components, and selectors only depend on input types.
var supplyChainABI = []contract.ABIEntry{
	// ── identity/admin reads ─────────────────────────────────────────────────
	{
		Name: "admin", Type: "function",
		Inputs: nil, Outputs: []contract.ABIParam{{Name: "", Type: "address"}},
		StateMutability: "view",
	},
	{
		Name: "hasAdmin", Type: "function",
		Inputs: nil, Outputs: []contract.ABIParam{{Name: "", Type: "bool"}},
		StateMutability: "view",
	},
	{
		Name: "getUserByAddress", Type: "function",
		Inputs: []contract.ABIParam{{Name: "who", Type: "address"}},
		Outputs: []contract.ABIParam{
			{Name: "id", Type: "uint256"},
			{Name: "wallet", Type: "address"},
			{Name: "role", Type: "uint8"},
			{Name: "status", Type: "uint8"},
		},
		StateMutability: "view",
	},
	{
		Name: "users", Type: "function",
		Inputs: []contract.ABIParam{{Name: "userId", Type: "uint256"}},
		Outputs: []contract.ABIParam{
			{Name: "id", Type: "uint256"},
			{Name: "wallet", Type: "address"},
			{Name: "role", Type: "uint8"},
			{Name: "status", Type: "uint8"},
		},
		StateMutability: "view",
	},
	{
		Name: "addressToUserId", Type: "function",
		Inputs:          []contract.ABIParam{{Name: "who", Type: "address"}},
		Outputs:         []contract.ABIParam{{Name: "", Type: "uint256"}},
		StateMutability: "view",
	},

	// ── identity/admin writes ────────────────────────────────────────────────
	{
		Name: "requestUserRole", Type: "function",
		Inputs:          []contract.ABIParam{{Name: "requested", Type: "uint8"}},
		StateMutability: "nonpayable",
	},
	{
		Name: "claimAdmin", Type: "function",
		StateMutability: "nonpayable",
	},
	{
		Name: "approveUser", Type: "function",
		Inputs: []contract.ABIParam{
			{Name: "userId", Type: "uint256"},
			{Name: "role", Type: "uint8"},
		},
		StateMutability: "nonpayable",
	},
	{
		Name: "rejectUser", Type: "function",
		Inputs:          []contract.ABIParam{{Name: "userId", Type: "uint256"}},
		StateMutability: "nonpayable",
	},
	{
		Name: "deactivateUser", Type: "function",
		Inputs:          []contract.ABIParam{{Name: "userId", Type: "uint256"}},
		StateMutability: "nonpayable",
	},
	{
		Name: "cancelMyUser", Type: "function",
		StateMutability: "nonpayable",
	},

	// ── token reads ──────────────────────────────────────────────────────────
	{
		Name: "getTokenInfo", Type: "function",
		Inputs: []contract.ABIParam{{Name: "tokenId", Type: "uint256"}},
		Outputs: []contract.ABIParam{
			{Name: "id", Type: "uint256"},
			{Name: "name", Type: "string"},
			{Name: "features", Type: "string"},
			{Name: "parentId", Type: "uint256"},
			{Name: "creator", Type: "address"},
		},
		StateMutability: "view",
	},
	{
		Name: "getTokenBalance", Type: "function",
		Inputs: []contract.ABIParam{
			{Name: "tokenId", Type: "uint256"},
			{Name: "owner", Type: "address"},
		},
		Outputs:         []contract.ABIParam{{Name: "", Type: "uint256"}},
		StateMutability: "view",
	},
	{
		Name: "getUserTokens", Type: "function",
		Inputs:          []contract.ABIParam{{Name: "owner", Type: "address"}},
		Outputs:         []contract.ABIParam{{Name: "", Type: "uint256[]"}},
		StateMutability: "view",
	},
	{
		Name: "traceLineage", Type: "function",
		Inputs:          []contract.ABIParam{{Name: "tokenId", Type: "uint256"}},
		Outputs:         []contract.ABIParam{{Name: "", Type: "uint256[]"}},
		StateMutability: "view",
	},

	// ── token writes ─────────────────────────────────────────────────────────
	{
		Name: "createToken", Type: "function",
		Inputs: []contract.ABIParam{
			{Name: "name", Type: "string"},
			{Name: "features", Type: "string"},
			{Name: "parentId", Type: "uint256"},
			{Name: "amount", Type: "uint256"},
			{Name: "parentAmount", Type: "uint256"},
		},
		Outputs:         []contract.ABIParam{{Name: "tokenId", Type: "uint256"}},
		StateMutability: "nonpayable",
	},
	{
		Name: "consume", Type: "function",
		Inputs: []contract.ABIParam{
			{Name: "tokenId", Type: "uint256"},
			{Name: "amount", Type: "uint256"},
		},
		StateMutability: "nonpayable",
	},

	// ── transfer reads ───────────────────────────────────────────────────────
	{
		Name: "transfers", Type: "function",
		Inputs: []contract.ABIParam{{Name: "transferId", Type: "uint256"}},
		Outputs: []contract.ABIParam{
			{Name: "id", Type: "uint256"},
			{Name: "tokenId", Type: "uint256"},
			{Name: "from", Type: "address"},
			{Name: "to", Type: "address"},
			{Name: "amount", Type: "uint256"},
			{Name: "status", Type: "uint8"},
			{Name: "timestamp", Type: "uint256"},
		},
		StateMutability: "view",
	},
	{
		Name: "getUserTransfers", Type: "function",
		Inputs:          []contract.ABIParam{{Name: "owner", Type: "address"}},
		Outputs:         []contract.ABIParam{{Name: "", Type: "uint256[]"}},
		StateMutability: "view",
	},

	// ── transfer writes ──────────────────────────────────────────────────────
	{
		Name: "transfer", Type: "function",
		Inputs: []contract.ABIParam{
			{Name: "to", Type: "address"},
			{Name: "tokenId", Type: "uint256"},
			{Name: "amount", Type: "uint256"},
		},
		Outputs:         []contract.ABIParam{{Name: "transferId", Type: "uint256"}},
		StateMutability: "nonpayable",
	},
	{
		Name: "createTransfer", Type: "function",
		Inputs: []contract.ABIParam{
			{Name: "tokenId", Type: "uint256"},
			{Name: "to", Type: "address"},
			{Name: "amount", Type: "uint256"},
		},
		Outputs:         []contract.ABIParam{{Name: "transferId", Type: "uint256"}},
		StateMutability: "nonpayable",
	},
	{
		Name: "acceptTransfer", Type: "function",
		Inputs:          []contract.ABIParam{{Name: "transferId", Type: "uint256"}},
		StateMutability: "nonpayable",
	},
	{
		Name: "rejectTransfer", Type: "function",
		Inputs:          []contract.ABIParam{{Name: "transferId", Type: "uint256"}},
		StateMutability: "nonpayable",
	},
}

// Event topic hashes for log scans.
var (
	TopicUserRequested    = contract.EventTopic("UserRequested(uint256,address,uint8)")
	TopicUserApproved     = contract.EventTopic("UserApproved(uint256,uint8)")
	TopicUserRejected     = contract.EventTopic("UserRejected(uint256)")
	TopicUserCanceled     = contract.EventTopic("UserCanceled(uint256,address)")
	TopicAdminClaimed     = contract.EventTopic("AdminClaimed(address)")
	TopicTokenCreated     = contract.EventTopic("TokenCreated(uint256,string,uint256,address,uint256)")
	TopicTokenConsumed    = contract.EventTopic("TokenConsumed(uint256,address,uint256)")
	TopicTransferCreated  = contract.EventTopic("TransferCreated(uint256,uint256,address,address,uint256)")
	TopicTransferAccepted = contract.EventTopic("TransferAccepted(uint256)")
	TopicTransferRejected = contract.EventTopic("TransferRejected(uint256)")
)
