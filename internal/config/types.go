package config

// Config holds all chaintrace configuration.
type Config struct {
	RPCURL          string `json:"rpc_url"          mapstructure:"rpc_url"`
	ContractAddress string `json:"contract_address" mapstructure:"contract_address"`
	ChainID         int64  `json:"chain_id"         mapstructure:"chain_id"`
	DefaultWallet   string `json:"default_wallet"   mapstructure:"default_wallet"`
	WatchInterval   int    `json:"watch_interval"   mapstructure:"watch_interval"` // seconds

	// internal: config dir path used for Save()
	configDir string
}

// SessionFile is the structure of session.json: the single persisted record
// that decides whether a session is silently restored on startup.
type SessionFile struct {
	Address string `json:"address"`
	Wallet  string `json:"wallet,omitempty"`
}
