package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

const (
	defaultRPCURL   = "http://127.0.0.1:8545"
	defaultChainID  = 31337 // local anvil/hardhat
	defaultInterval = 10

	configFile  = "config.json"
	walletsFile = "wallets.json"
	sessionFile = "session.json"
)

// Load reads config from dir (or creates defaults). dir defaults to ~/.chaintrace.
// Environment variables CHAINTRACE_RPC_URL, CHAINTRACE_CONTRACT and
// CHAINTRACE_CHAIN_ID override the persisted values for a single run.
func Load(dir string) (*Config, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("could not determine home dir: %w", err)
		}
		dir = filepath.Join(home, ".chaintrace")
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("could not create config dir: %w", err)
	}

	cfg := defaults(dir)

	path := filepath.Join(dir, configFile)
	data, err := os.ReadFile(path)
	if err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
		cfg.configDir = dir
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// Save writes the config to disk.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.configDir, 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.configDir, configFile), data, 0o600)
}

// Dir returns the config directory.
func (c *Config) Dir() string {
	return c.configDir
}

// WalletsPath returns the path of wallets.json. The wallet package owns the
// file's format; config only decides where it lives.
func (c *Config) WalletsPath() string {
	return filepath.Join(c.configDir, walletsFile)
}

// SessionPath returns the path of session.json.
func (c *Config) SessionPath() string {
	return filepath.Join(c.configDir, sessionFile)
}

// LoadSession reads session.json.
func (c *Config) LoadSession() (*SessionFile, error) {
	return loadJSON[SessionFile](c.SessionPath())
}

// SaveSession writes session.json.
func (c *Config) SaveSession(sf *SessionFile) error {
	return saveJSON(c.SessionPath(), sf)
}

// ClearSession removes session.json. Missing file is not an error.
func (c *Config) ClearSession() error {
	err := os.Remove(c.SessionPath())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// --- helpers ---

func defaults(dir string) *Config {
	return &Config{
		RPCURL:        defaultRPCURL,
		ChainID:       defaultChainID,
		WatchInterval: defaultInterval,
		configDir:     dir,
	}
}

func applyEnvOverrides(c *Config) {
	if v := os.Getenv("CHAINTRACE_RPC_URL"); v != "" {
		c.RPCURL = v
	}
	if v := os.Getenv("CHAINTRACE_CONTRACT"); v != "" {
		c.ContractAddress = v
	}
	if v := os.Getenv("CHAINTRACE_CHAIN_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.ChainID = id
		}
	}
}

func loadJSON[T any](path string) (*T, error) {
	var zero T
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &zero, nil
	}
	if err != nil {
		return nil, err
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func saveJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
