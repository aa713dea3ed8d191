package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/chaintrace/chaintrace/internal/session"
	"github.com/chaintrace/chaintrace/internal/supplychain"
	"github.com/chaintrace/chaintrace/internal/ui"
	"github.com/chaintrace/chaintrace/internal/wallet"
)

// newWalletManager creates a Manager backed by the config-dir JSON store.
func newWalletManager() *wallet.Manager {
	store := wallet.NewJSONStore(cfg.WalletsPath())
	return wallet.NewManager(wallet.WithStore(store))
}

// newProvider creates the local wallet provider with a persisted grant, so
// connect survives across invocations.
func newProvider() *wallet.LocalProvider {
	return wallet.NewLocalProvider(newWalletManager(), filepath.Join(cfg.Dir(), "grant.json"))
}

// newSessionStore wires a session store over the provider with the
// config-backed persistence and a bind into the configured contract.
func newSessionStore(p wallet.Provider) *session.Store {
	bind := func() (session.ContractReader, error) {
		c, err := supplychain.Bind(p, cfg.RPCURL, cfg.ContractAddress, cfg.ChainID)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	return session.New(p, bind, cfg, session.WithLogf(logVerbose))
}

// restoredSession builds a session store and silently restores the previous
// session if the provider still authorizes the persisted address.
func restoredSession() (*session.Store, error) {
	if err := requireContract(); err != nil {
		return nil, err
	}
	s := newSessionStore(newProvider())
	if err := s.Restore(); err != nil {
		return nil, err
	}
	return s, nil
}

// boundClient returns a signing contract client for the connected session.
func boundClient() (*supplychain.Client, error) {
	if err := requireContract(); err != nil {
		return nil, err
	}
	c, err := supplychain.Bind(newProvider(), cfg.RPCURL, cfg.ContractAddress, cfg.ChainID)
	if err != nil {
		return nil, fmt.Errorf("not connected — run `chaintrace connect` first (%v)", err)
	}
	return c, nil
}

// readerClient returns a read-only contract client.
func readerClient() (*supplychain.Client, error) {
	if err := requireContract(); err != nil {
		return nil, err
	}
	return supplychain.NewReader(cfg.RPCURL, cfg.ContractAddress), nil
}

// requireContract fails fast when no contract address is configured.
func requireContract() error {
	if cfg.ContractAddress == "" {
		return fmt.Errorf("no contract address configured\n  Set one with: chaintrace config set-contract <address>\n  Or per-run: chaintrace --contract <address> ...")
	}
	return nil
}

// renderErr maps contract reverts to user-facing one-liners, leaving all
// other errors untouched.
func renderErr(err error) error {
	if err == nil {
		return nil
	}
	if msg := supplychain.FriendlyRevert(err); msg != "" {
		if verbose {
			return fmt.Errorf("%s\n  %s", msg, ui.Meta(err.Error()))
		}
		return fmt.Errorf("%s", msg)
	}
	return err
}

// logVerbose prints dim diagnostics when --verbose is set.
func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Println(ui.Meta(fmt.Sprintf(format, args...)))
	}
}
