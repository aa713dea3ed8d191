package supplychain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/chaintrace/chaintrace/internal/chain"
	"github.com/stretchr/testify/assert"
)

func TestTranslateRevertNoUser(t *testing.T) {
	err := translateRevert(&chain.RevertError{Reason: "No user"})
	assert.ErrorIs(t, err, ErrNoSuchUser)
}

func TestTranslateRevertWrapped(t *testing.T) {
	wrapped := fmt.Errorf("calling getUserByAddress: %w", &chain.RevertError{Reason: "No user"})
	assert.ErrorIs(t, translateRevert(wrapped), ErrNoSuchUser)
}

func TestTranslateRevertOtherReasonPassesThrough(t *testing.T) {
	orig := &chain.RevertError{Reason: "Not admin"}
	err := translateRevert(orig)
	assert.NotErrorIs(t, err, ErrNoSuchUser)
	var rev *chain.RevertError
	assert.ErrorAs(t, err, &rev)
}

func TestTranslateRevertPlainError(t *testing.T) {
	orig := errors.New("connection refused")
	assert.Equal(t, orig, translateRevert(orig))
}

func TestFriendlyRevertKnownReasons(t *testing.T) {
	tests := []struct {
		reason string
		expect string
	}{
		{"Not admin", "Only the admin can do that."},
		{"Insufficient balance", "Not enough token balance for this operation."},
		{"Transfer not pending", "That transfer was already accepted or rejected."},
		{"Not authorized", "Your role does not allow this operation."},
	}
	for _, tt := range tests {
		t.Run(tt.reason, func(t *testing.T) {
			msg := FriendlyRevert(&chain.RevertError{Reason: tt.reason})
			assert.Equal(t, tt.expect, msg)
		})
	}
}

func TestFriendlyRevertUnknownReason(t *testing.T) {
	msg := FriendlyRevert(&chain.RevertError{Reason: "some exotic condition"})
	assert.Contains(t, msg, "rejected the operation")
}

func TestFriendlyRevertNonRevert(t *testing.T) {
	assert.Empty(t, FriendlyRevert(errors.New("dial tcp: connection refused")))
	assert.Empty(t, FriendlyRevert(nil))
}

func TestRoleParsing(t *testing.T) {
	r, ok := ParseRole("Producer")
	assert.True(t, ok)
	assert.Equal(t, RoleProducer, r)

	_, ok = ParseRole("wizard")
	assert.False(t, ok)
}

func TestIsZeroAddress(t *testing.T) {
	assert.True(t, IsZeroAddress(""))
	assert.True(t, IsZeroAddress(ZeroAddress))
	assert.True(t, IsZeroAddress("0x0000000000000000000000000000000000000000"))
	assert.False(t, IsZeroAddress(me))
}
