package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateAddr(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		expect string
	}{
		{"full address", "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", "0xf39F…2266"},
		{"short stays intact", "0x1234", "0x1234"},
		{"empty", "", ""},
		{"exactly ten chars", "0x12345678", "0x12345678"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, TruncateAddr(tt.in))
		})
	}
}

func TestStatusBadgeKeepsText(t *testing.T) {
	for _, status := range []string{"approved", "pending", "rejected", "inactive", "accepted", "none"} {
		assert.Contains(t, StatusBadge(status), status)
	}
}

func TestStatusBadgeCaseInsensitive(t *testing.T) {
	// Styling must match regardless of the caller's capitalization.
	assert.Contains(t, StatusBadge("Approved"), "Approved")
	assert.Contains(t, StatusBadge("PENDING"), "PENDING")
}

func TestMessageHelpers(t *testing.T) {
	assert.Contains(t, Success("done"), "done")
	assert.Contains(t, Info("note"), "note")
	assert.Contains(t, Hint("try this"), "try this")
	assert.Contains(t, Warn("careful"), "careful")
	assert.Contains(t, Err("boom"), "boom")
}

func TestBannerMentionsProduct(t *testing.T) {
	b := Banner()
	assert.True(t, strings.Contains(b, "Supply chain"))
}
