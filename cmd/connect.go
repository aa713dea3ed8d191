package cmd

import (
	"errors"
	"fmt"

	"github.com/chaintrace/chaintrace/internal/session"
	"github.com/chaintrace/chaintrace/internal/ui"
	"github.com/spf13/cobra"
)

var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Connect a wallet and start a session",
	Long: `Request account access from the local wallet store and establish a
session for the first authorized account. The session is persisted and
silently restored by later commands until you disconnect.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireContract(); err != nil {
			return err
		}

		s := newSessionStore(newProvider())
		if err := s.Connect(); err != nil {
			// A declined or empty wallet is a soft outcome, not a failure.
			if errors.Is(err, session.ErrNoAccounts) {
				fmt.Println(ui.Warn("Wallet connection declined or no signing wallet available."))
				fmt.Println(ui.Hint("Add one with: chaintrace wallet add <name> --key <private-key>"))
				return nil
			}
			return renderErr(err)
		}

		snap := s.Snapshot()
		fmt.Println(ui.Success("Connected: " + ui.Addr(snap.Address)))
		printIdentity(snap)
		return nil
	},
}

var disconnectCmd = &cobra.Command{
	Use:   "disconnect",
	Short: "End the current session",
	Long: `Tear down the current session: revoke the wallet authorization grant
and clear the persisted session state. The next connect starts fresh.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := restoredSession()
		if err != nil {
			return err
		}
		if !s.Snapshot().Connected() {
			fmt.Println(ui.Meta("No active session."))
			return nil
		}
		s.Disconnect()
		fmt.Println(ui.Success("Disconnected."))
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the connected account and its on-chain identity",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := restoredSession()
		if err != nil {
			return err
		}
		snap := s.Snapshot()
		if !snap.Connected() {
			fmt.Println(ui.Meta("Not connected."))
			fmt.Println(ui.Hint("Start a session with: chaintrace connect"))
			return nil
		}

		if err := s.Refresh(); err != nil {
			fmt.Println(ui.Warn("Could not refresh on-chain identity. Showing a degraded view."))
			logVerbose("refresh: %v", err)
		}
		snap = s.Snapshot()

		fmt.Println(ui.Meta("Account: ") + ui.Addr(snap.Address))
		printIdentity(snap)
		return nil
	},
}

// printIdentity renders the role/status lines shared by connect and whoami.
func printIdentity(snap session.Snapshot) {
	switch {
	case snap.User != nil:
		fmt.Printf("%s %s  %s %s\n",
			ui.Meta("Role:"), ui.Role(snap.User.Role.String()),
			ui.Meta("Status:"), ui.StatusBadge(snap.User.Status.String()))
	case snap.IsAdmin:
		fmt.Println(ui.Meta("Role: ") + ui.Role("admin"))
	default:
		fmt.Println(ui.Meta("Not registered on this contract."))
		fmt.Println(ui.Hint("Request a role with: chaintrace register request <role>"))
	}
	if snap.IsAdmin {
		fmt.Println(ui.Success("You are the contract admin."))
	} else if !snap.HasAdmin {
		fmt.Println(ui.Hint("No admin claimed yet. Claim it with: chaintrace admin claim"))
	}
}
