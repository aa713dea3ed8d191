// Package session owns the client's connection state: which wallet account
// is active, what the contract says about it, and how that state reacts to
// provider events. It is the only place allowed to mutate connection state;
// everything else consumes read-only snapshots.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/chaintrace/chaintrace/internal/config"
	"github.com/chaintrace/chaintrace/internal/supplychain"
	"github.com/chaintrace/chaintrace/internal/wallet"
)

// Session errors.
var (
	// ErrNoWallet means no wallet provider is available at all.
	ErrNoWallet = errors.New("no wallet provider available")
	// ErrNoAccounts means the provider declined to grant accounts, or holds
	// none.
	ErrNoAccounts = errors.New("no accounts granted")
)

// State is the session's connection state. Connecting is transient and
// never observable from outside: callers only see before/after.
type State int

const (
	Disconnected State = iota
	Connecting
	Connected
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	default:
		return "disconnected"
	}
}

// ContractReader is the slice of the contract binding the session needs to
// resolve who the connected account is.
type ContractReader interface {
	Admin() (string, error)
	HasAdmin() (bool, error)
	GetUserByAddress(addr string) (*supplychain.User, error)
}

// BindFunc produces a contract binding for the provider's current signer.
type BindFunc func() (ContractReader, error)

// PersistStore persists the single restoration key: the last-connected
// address. *config.Config satisfies it.
type PersistStore interface {
	LoadSession() (*config.SessionFile, error)
	SaveSession(*config.SessionFile) error
	ClearSession() error
}

// Snapshot is the immutable per-render projection handed to views.
type Snapshot struct {
	State    State
	Address  string
	IsAdmin  bool
	HasAdmin bool
	User     *supplychain.User // nil when unregistered
}

// Connected reports whether the snapshot represents a live session.
func (s Snapshot) Connected() bool { return s.State == Connected }

// Store is the single source of truth for "who is connected and what they
// are allowed to see".
type Store struct {
	provider wallet.Provider
	bind     BindFunc
	persist  PersistStore
	reload   func()
	logf     func(format string, args ...any)

	mu       sync.Mutex
	state    State
	address  string
	contract ContractReader
	user     *supplychain.User
	isAdmin  bool
	hasAdmin bool

	// manualDisconnect suppresses the account-change reaction to the
	// provider's own permission-revocation side effect during Disconnect.
	// Set before the self-triggered event, cleared by the next event.
	manualDisconnect bool
}

// Option configures a Store.
type Option func(*Store)

// WithReloadHook sets the full-reset hook invoked on disconnect and chain
// change (the CLI analog of a page reload).
func WithReloadHook(fn func()) Option {
	return func(s *Store) { s.reload = fn }
}

// WithLogf sets a logger for best-effort failures that are logged, not
// surfaced.
func WithLogf(fn func(format string, args ...any)) Option {
	return func(s *Store) { s.logf = fn }
}

// New creates a disconnected session store.
func New(provider wallet.Provider, bind BindFunc, persist PersistStore, opts ...Option) *Store {
	s := &Store{
		provider: provider,
		bind:     bind,
		persist:  persist,
		logf:     func(string, ...any) {},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Connect requests account access from the provider and establishes a
// session for the first granted account.
func (s *Store) Connect() error {
	if s.provider == nil {
		return ErrNoWallet
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Connecting
	accounts, err := s.provider.RequestAccounts()
	if err != nil || len(accounts) == 0 {
		s.state = Disconnected
		if err != nil {
			return fmt.Errorf("%w: %v", ErrNoAccounts, err)
		}
		return ErrNoAccounts
	}

	s.manualDisconnect = false
	return s.establish(accounts[0])
}

// Disconnect tears the session down: suppresses the provider's revocation
// echo, clears all session fields, best-effort revokes the permission
// grant, clears persisted state, and invokes the full-reset hook so no
// stale in-memory state survives.
func (s *Store) Disconnect() {
	s.mu.Lock()
	s.manualDisconnect = true
	s.clearLocked()
	provider := s.provider
	s.mu.Unlock()

	if provider != nil {
		if err := provider.Revoke(); err != nil {
			s.logf("revoking provider grant: %v", err)
		}
	}
	if err := s.persist.ClearSession(); err != nil {
		s.logf("clearing persisted session: %v", err)
	}
	if s.reload != nil {
		s.reload()
	}
}

// Refresh re-resolves user/role info for the connected address without
// altering connection state. No-op when disconnected. On failure the
// session degrades to a no-user/not-admin state and the error is returned
// for the caller's retry affordance.
func (s *Store) Refresh() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Connected {
		return nil
	}
	if err := s.resolveLocked(); err != nil {
		s.degradeLocked(err)
		return err
	}
	return nil
}

// Restore silently rebuilds the session when the persisted address matches
// the provider's first authorized account. A mismatch clears the persisted
// address. Never prompts.
func (s *Store) Restore() error {
	if s.provider == nil {
		return nil
	}

	sf, err := s.persist.LoadSession()
	if err != nil || sf == nil || sf.Address == "" {
		return nil
	}

	accounts, err := s.provider.Accounts()
	if err != nil {
		return err
	}
	if len(accounts) == 0 || !equalAddr(accounts[0], sf.Address) {
		// The provider's own authorization is the source of truth.
		if err := s.persist.ClearSession(); err != nil {
			s.logf("clearing stale session: %v", err)
		}
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.establish(accounts[0])
}

// HandleAccountsChanged reacts to a provider account-change event. The
// event immediately following Disconnect is the provider reporting our own
// revocation and is swallowed.
func (s *Store) HandleAccountsChanged(accounts []string) {
	s.mu.Lock()
	if s.manualDisconnect {
		s.manualDisconnect = false
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	if len(accounts) == 0 {
		s.Disconnect()
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.establish(accounts[0]); err != nil {
		s.logf("re-establishing session after account change: %v", err)
	}
}

// HandleChainChanged reacts to a chain switch: cached contract bindings
// and balances are chain-specific, so the in-memory session is dropped and
// the full-reset hook runs. The persisted address survives so the session
// can be restored against the new chain.
func (s *Store) HandleChainChanged() {
	s.mu.Lock()
	s.clearLocked()
	s.mu.Unlock()

	if s.reload != nil {
		s.reload()
	}
}

// Watch consumes provider events until ctx is done.
func (s *Store) Watch(ctx context.Context) {
	if s.provider == nil {
		return
	}
	events := s.provider.Events()
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			switch e.Kind {
			case wallet.AccountsChanged:
				s.HandleAccountsChanged(e.Accounts)
			case wallet.ChainChanged:
				s.HandleChainChanged()
			}
		}
	}
}

// Snapshot returns an immutable projection of the current session.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		State:    s.state,
		Address:  s.address,
		IsAdmin:  s.isAdmin,
		HasAdmin: s.hasAdmin,
	}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	return snap
}

// Contract returns the current binding, or nil when disconnected.
func (s *Store) Contract() ContractReader {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contract
}

// --- internal (callers hold s.mu) ---

// establish runs the connect-success path for addr: persist, bind, resolve.
func (s *Store) establish(addr string) error {
	s.state = Connecting
	s.address = addr

	if err := s.persist.SaveSession(&config.SessionFile{Address: addr}); err != nil {
		s.logf("persisting session address: %v", err)
	}

	contract, err := s.bind()
	if err != nil {
		s.clearLocked()
		return err
	}
	s.contract = contract
	s.state = Connected

	if err := s.resolveLocked(); err != nil {
		// Degrade rather than crash: the session stays connected with no
		// user and no admin rights.
		s.degradeLocked(err)
	}
	return nil
}

// resolveLocked re-reads admin and user info for the connected address.
func (s *Store) resolveLocked() error {
	adminAddr, err := s.contract.Admin()
	if err != nil {
		return err
	}
	hasAdmin, err := s.contract.HasAdmin()
	if err != nil {
		return err
	}
	s.hasAdmin = hasAdmin

	user, err := s.contract.GetUserByAddress(s.address)
	switch {
	case errors.Is(err, supplychain.ErrNoSuchUser):
		// Expected for unregistered addresses, not a failure.
		user = nil
	case err != nil:
		return err
	case !user.Registered():
		// id 0 is the contract's "no such user" value.
		user = nil
	}
	s.user = user

	// Admin status comes from the privileged deployment address or from an
	// on-chain role claim. An unclaimed (zero) admin address grants nobody.
	if supplychain.IsZeroAddress(adminAddr) {
		s.isAdmin = false
		return nil
	}
	byAddress := equalAddr(adminAddr, s.address)
	byRole := user != nil && user.Role == supplychain.RoleAdmin
	s.isAdmin = byAddress || byRole
	return nil
}

// degradeLocked drops to a no-user/not-admin state after a resolution
// failure.
func (s *Store) degradeLocked(err error) {
	s.logf("resolving user info: %v", err)
	s.user = nil
	s.isAdmin = false
}

// clearLocked resets every session field except the manual-disconnect flag.
func (s *Store) clearLocked() {
	s.state = Disconnected
	s.address = ""
	s.contract = nil
	s.user = nil
	s.isAdmin = false
	s.hasAdmin = false
}

func equalAddr(a, b string) bool {
	return strings.EqualFold(strings.TrimPrefix(a, "0x"), strings.TrimPrefix(b, "0x"))
}
