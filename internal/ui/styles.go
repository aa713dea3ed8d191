package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette.
var (
	ColorSuccess   = lipgloss.Color("#00D26A") // green  — approved, accepted
	ColorWarning   = lipgloss.Color("#FFB800") // yellow — pending, outgoing
	ColorError     = lipgloss.Color("#FF4444") // red    — rejected, errors
	ColorAddress   = lipgloss.Color("#00B4D8") // cyan   — addresses, hashes
	ColorValue     = lipgloss.Color("#FFFFFF") // white bold — amounts
	ColorMeta      = lipgloss.Color("#555555") // dim gray  — timestamps, metadata
	ColorBorder    = lipgloss.Color("#1E3A5F") // dark blue — UI chrome
	ColorRole      = lipgloss.Color("#9B5DE5") // purple    — role names
	ColorHighlight = lipgloss.Color("#F15BB5") // pink      — headers
)

// Base styles.
var (
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	StyleAddress = lipgloss.NewStyle().Foreground(ColorAddress)
	StyleValue   = lipgloss.NewStyle().Foreground(ColorValue).Bold(true)
	StyleMeta    = lipgloss.NewStyle().Foreground(ColorMeta)
	StyleRole    = lipgloss.NewStyle().Foreground(ColorRole).Bold(true)

	StyleBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	StyleTitle = lipgloss.NewStyle().
			Foreground(ColorRole).
			Bold(true).
			MarginBottom(1)

	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorHighlight).
			Bold(true).
			Underline(true)

	StyleDim = lipgloss.NewStyle().Foreground(ColorMeta)
)

// Banner returns the chaintrace ASCII banner.
func Banner() string {
	art := `
   ██████╗██╗  ██╗ █████╗ ██╗███╗   ██╗████████╗██████╗  █████╗  ██████╗███████╗
  ██╔════╝██║  ██║██╔══██╗██║████╗  ██║╚══██╔══╝██╔══██╗██╔══██╗██╔════╝██╔════╝
  ██║     ███████║███████║██║██╔██╗ ██║   ██║   ██████╔╝███████║██║     █████╗
  ██║     ██╔══██║██╔══██║██║██║╚██╗██║   ██║   ██╔══██╗██╔══██║██║     ██╔══╝
  ╚██████╗██║  ██║██║  ██║██║██║ ╚████║   ██║   ██║  ██║██║  ██║╚██████╗███████╗
   ╚═════╝╚═╝  ╚═╝╚═╝  ╚═╝╚═╝╚═╝  ╚═══╝   ╚═╝   ╚═╝  ╚═╝╚═╝  ╚═╝ ╚═════╝╚══════╝`

	tagline := StyleMeta.Render("     Supply chain provenance on chain  ⚡  v1.0.0")

	return StyleRole.Render(art) + "\n" + tagline + "\n"
}

// Success formats a success message.
func Success(msg string) string { return StyleSuccess.Render("✓ " + msg) }

// Info formats an informational message.
func Info(msg string) string { return StyleAddress.Render("ℹ " + msg) }

// Hint formats a follow-up suggestion.
func Hint(msg string) string { return StyleMeta.Render("→ " + msg) }

// Warn formats a warning message.
func Warn(msg string) string { return StyleWarning.Render("⚠ " + msg) }

// Err formats an error message.
func Err(msg string) string { return StyleError.Render("✗ " + msg) }

// Addr formats an address.
func Addr(a string) string { return StyleAddress.Render(a) }

// Val formats a value.
func Val(v string) string { return StyleValue.Render(v) }

// Meta formats metadata text.
func Meta(m string) string { return StyleMeta.Render(m) }

// Role formats a role name.
func Role(r string) string { return StyleRole.Render(r) }

// StatusBadge colors a user/transfer status word by outcome.
func StatusBadge(status string) string {
	switch strings.ToLower(status) {
	case "approved", "accepted":
		return StyleSuccess.Render(status)
	case "pending":
		return StyleWarning.Render(status)
	case "rejected", "inactive":
		return StyleError.Render(status)
	default:
		return StyleMeta.Render(status)
	}
}

// TruncateAddr shortens an address for display: 0x1234…5678.
func TruncateAddr(addr string) string {
	if len(addr) <= 10 {
		return addr
	}
	return addr[:6] + "…" + addr[len(addr)-4:]
}
