package wallet

import (
	"encoding/json"
	"errors"
	"os"
	"sync"
)

// Provider errors.
var (
	// ErrNoAccounts means the provider holds no signing accounts, or access
	// to them was declined.
	ErrNoAccounts = errors.New("no accounts granted")
)

// EventKind identifies a provider event.
type EventKind int

const (
	// AccountsChanged fires when the set of exposed accounts changes,
	// including the empty set emitted as a side effect of Revoke.
	AccountsChanged EventKind = iota
	// ChainChanged fires when the connected chain is no longer the one the
	// session was built against.
	ChainChanged
)

// Event is a single provider notification.
type Event struct {
	Kind     EventKind
	Accounts []string // populated for AccountsChanged
}

// Provider exposes the local wallet store through the narrow surface the
// session layer needs. It plays the role a browser wallet extension plays
// for a dApp: it owns the keys, decides which accounts are currently
// exposed, and emits events when that set changes.
type Provider interface {
	// RequestAccounts asks for account access. May touch the keystore (the
	// CLI analog of an authorization prompt). Returns ErrNoAccounts when no
	// signing wallets exist or access is declined.
	RequestAccounts() ([]string, error)
	// Accounts returns the currently authorized accounts without prompting.
	Accounts() ([]string, error)
	// SignerFor returns a transaction signer for an authorized address.
	SignerFor(address string) (*Signer, error)
	// Revoke withdraws the authorization grant. Emits an AccountsChanged
	// event with an empty account list, mirroring how wallet extensions
	// report their own permission revocation.
	Revoke() error
	// Events returns the provider's notification channel.
	Events() <-chan Event
}

// LocalProvider implements Provider over the local wallet Manager. The
// authorization grant survives process restarts via a small JSON marker
// file, so a session can be silently restored on the next run.
type LocalProvider struct {
	mgr       *Manager
	grantPath string

	mu      sync.Mutex
	granted []string
	loaded  bool
	events  chan Event
}

// NewLocalProvider creates a provider over mgr. grantPath is where the
// authorization grant is persisted; empty keeps the grant in memory only.
func NewLocalProvider(mgr *Manager, grantPath string) *LocalProvider {
	return &LocalProvider{
		mgr:       mgr,
		grantPath: grantPath,
		events:    make(chan Event, 8),
	}
}

// RequestAccounts grants access to all signing wallets, default wallet
// first, verifying that the default wallet's key is actually retrievable.
func (p *LocalProvider) RequestAccounts() ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	accounts := p.signingAddresses()
	if len(accounts) == 0 {
		return nil, ErrNoAccounts
	}

	// Prompt analog: retrieving the key may require unlocking the OS
	// keychain. A refusal surfaces as a retrieval error.
	w, err := p.mgr.GetByAddress(accounts[0])
	if err != nil {
		return nil, err
	}
	if _, err := p.mgr.Keystore().Retrieve(w.KeyRef); err != nil {
		return nil, ErrNoAccounts
	}

	p.granted = accounts
	p.loaded = true
	p.saveGrant()
	p.emit(Event{Kind: AccountsChanged, Accounts: accounts})
	return accounts, nil
}

// Accounts returns the authorized accounts without touching the keystore.
func (p *LocalProvider) Accounts() ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loadGrant()
	out := make([]string, len(p.granted))
	copy(out, p.granted)
	return out, nil
}

// SignerFor returns a signer for an authorized address.
func (p *LocalProvider) SignerFor(address string) (*Signer, error) {
	p.mu.Lock()
	p.loadGrant()
	authorized := false
	for _, a := range p.granted {
		if equalFoldAddr(a, address) {
			authorized = true
			break
		}
	}
	p.mu.Unlock()

	if !authorized {
		return nil, ErrNoAccounts
	}
	w, err := p.mgr.GetByAddress(address)
	if err != nil {
		return nil, err
	}
	return NewSigner(w, p.mgr.Keystore()), nil
}

// Revoke withdraws the grant and reports the now-empty account list.
func (p *LocalProvider) Revoke() error {
	p.mu.Lock()
	p.granted = nil
	p.loaded = true
	var err error
	if p.grantPath != "" {
		err = os.Remove(p.grantPath)
		if os.IsNotExist(err) {
			err = nil
		}
	}
	p.mu.Unlock()

	p.emit(Event{Kind: AccountsChanged, Accounts: nil})
	return err
}

// Events returns the provider's notification channel.
func (p *LocalProvider) Events() <-chan Event { return p.events }

// EmitAccountsChanged reports an externally caused account switch, e.g. the
// default wallet changing under a running watch session.
func (p *LocalProvider) EmitAccountsChanged() {
	p.mu.Lock()
	p.granted = p.signingAddresses()
	p.loaded = true
	p.saveGrant()
	accounts := make([]string, len(p.granted))
	copy(accounts, p.granted)
	p.mu.Unlock()
	p.emit(Event{Kind: AccountsChanged, Accounts: accounts})
}

// EmitChainChanged reports that the node's chain no longer matches the one
// the session was built against.
func (p *LocalProvider) EmitChainChanged() {
	p.emit(Event{Kind: ChainChanged})
}

// --- internal ---

// signingAddresses returns addresses of signing wallets, default first.
// Caller must hold p.mu.
func (p *LocalProvider) signingAddresses() []string {
	var accounts []string
	if def := p.mgr.Default(); def != nil && def.Type == TypeSigning {
		accounts = append(accounts, def.Address)
	}
	for _, w := range p.mgr.List() {
		if w.Type != TypeSigning {
			continue
		}
		if len(accounts) > 0 && equalFoldAddr(w.Address, accounts[0]) {
			continue
		}
		accounts = append(accounts, w.Address)
	}
	return accounts
}

func (p *LocalProvider) emit(e Event) {
	select {
	case p.events <- e:
	default: // drop if nobody is listening
	}
}

// loadGrant reads the persisted grant once. Caller must hold p.mu.
func (p *LocalProvider) loadGrant() {
	if p.loaded {
		return
	}
	p.loaded = true
	if p.grantPath == "" {
		return
	}
	data, err := os.ReadFile(p.grantPath)
	if err != nil {
		return
	}
	var accounts []string
	if json.Unmarshal(data, &accounts) == nil {
		p.granted = accounts
	}
}

// saveGrant persists the grant. Caller must hold p.mu. Best-effort.
func (p *LocalProvider) saveGrant() {
	if p.grantPath == "" {
		return
	}
	data, err := json.Marshal(p.granted)
	if err != nil {
		return
	}
	_ = os.WriteFile(p.grantPath, data, 0o600)
}
