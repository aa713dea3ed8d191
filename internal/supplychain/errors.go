package supplychain

import (
	"errors"
	"strings"

	"github.com/chaintrace/chaintrace/internal/chain"
)

// Binding and lookup errors.
var (
	// ErrProviderUnavailable means no wallet provider is present.
	ErrProviderUnavailable = errors.New("wallet provider unavailable")
	// ErrSignerUnavailable means the provider cannot produce a signer
	// (no accounts authorized).
	ErrSignerUnavailable = errors.New("provider cannot produce a signer")
	// ErrNoSuchUser is the expected revert from a lookup-by-address when the
	// address has no registered user. Callers treat it as a valid
	// "unregistered" result, not a failure.
	ErrNoSuchUser = errors.New("no user registered for address")
)

// noUserRevert is the reason substring the contract emits for
// lookup-by-address on an unregistered address.
const noUserRevert = "No user"

// translateRevert converts the specific "No user" revert into ErrNoSuchUser
// and passes everything else through.
func translateRevert(err error) error {
	var rev *chain.RevertError
	if errors.As(err, &rev) && strings.Contains(rev.Reason, noUserRevert) {
		return ErrNoSuchUser
	}
	return err
}

// knownReverts maps contract revert reason substrings to user-facing
// messages. Unmatched reverts fall back to a generic message.
var knownReverts = []struct {
	substr  string
	message string
}{
	{"No user", "This address is not registered."},
	{"Admin already claimed", "An admin has already been claimed for this contract."},
	{"Not admin", "Only the admin can do that."},
	{"Already registered", "This address already has a role request or an active role."},
	{"User not pending", "That user request is not pending anymore."},
	{"User not active", "That user is not active."},
	{"Invalid role", "That role cannot be requested."},
	{"Insufficient balance", "Not enough token balance for this operation."},
	{"Insufficient parent balance", "Not enough parent token balance to derive from."},
	{"Token does not exist", "That token id does not exist."},
	{"Transfer not pending", "That transfer was already accepted or rejected."},
	{"Not recipient", "Only the transfer's recipient can do that."},
	{"Not authorized", "Your role does not allow this operation."},
}

// FriendlyRevert returns a specific user-facing message for a known contract
// revert, a generic one for unknown reverts, and "" when err is not a
// revert at all.
func FriendlyRevert(err error) string {
	var rev *chain.RevertError
	if !errors.As(err, &rev) {
		return ""
	}
	for _, k := range knownReverts {
		if strings.Contains(rev.Reason, k.substr) {
			return k.message
		}
	}
	return "The contract rejected the operation. Run with --verbose for the raw reason."
}
