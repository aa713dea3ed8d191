package cmd

import (
	"fmt"

	"github.com/chaintrace/chaintrace/internal/ui"
	"github.com/chaintrace/chaintrace/internal/wallet"
	"github.com/spf13/cobra"
)

var walletKeyFlag string

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Manage local wallets",
}

var walletAddCmd = &cobra.Command{
	Use:   "add <name> [address]",
	Short: "Add a wallet",
	Long: `Add a wallet to the local store.

With --key the private key goes into the OS keychain and the wallet can
sign transactions. Without it the wallet is watch-only: the address can
be inspected but never connected.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		mgr := newWalletManager()

		if walletKeyFlag != "" {
			if err := mgr.AddWithKey(name, walletKeyFlag); err != nil {
				return err
			}
			w, _ := mgr.Get(name)
			fmt.Println(ui.Success(fmt.Sprintf("Signing wallet %q added: %s", name, ui.Addr(w.Address))))
			fmt.Println(ui.Hint(fmt.Sprintf("Connect it with: chaintrace wallet use %s && chaintrace connect", name)))
			return nil
		}

		if len(args) < 2 {
			return fmt.Errorf("address required for watch-only wallet\n  Usage: chaintrace wallet add <name> <address>\n  Or for signing: chaintrace wallet add <name> --key <private-key>")
		}
		address := args[1]
		if err := mgr.Add(name, &wallet.Wallet{
			Name:    name,
			Address: address,
			Type:    wallet.TypeWatchOnly,
		}); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("Watch-only wallet %q added: %s", name, ui.Addr(address))))
		return nil
	},
}

var walletListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all wallets",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr := newWalletManager()
		wallets := mgr.List()

		if len(wallets) == 0 {
			fmt.Println(ui.Info("No wallets configured yet."))
			fmt.Println(ui.Hint("Add one with: chaintrace wallet add <name> --key <private-key>"))
			return nil
		}

		t := ui.NewTable([]ui.Column{
			{Title: "Name", Width: 16},
			{Title: "Address", Width: 44},
			{Title: "Type", Width: 12},
			{Title: "Default", Width: 8},
		})
		for _, w := range wallets {
			def := ""
			if w.IsDefault {
				def = ui.StyleSuccess.Render("✓")
			}
			t.AddRow(ui.Row{ui.Val(w.Name), ui.Addr(w.Address), ui.Meta(w.Type), def})
		}
		fmt.Println(t.Render())
		fmt.Println(ui.Meta(fmt.Sprintf("%d wallet(s) configured", len(wallets))))
		return nil
	},
}

var walletRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a wallet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if !ui.ConfirmDanger(fmt.Sprintf("Remove wallet %q?", name)) {
			fmt.Println(ui.Meta("Cancelled."))
			return nil
		}
		mgr := newWalletManager()
		if err := mgr.Remove(name); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("Wallet %q removed.", name)))
		return nil
	},
}

var walletUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Set the default wallet",
	Long: `Set the wallet used for connect and signing. Changing the default while
a session is active switches the session to the new account, the same way
picking a different account in a wallet extension would.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		mgr := newWalletManager()
		if err := mgr.SetDefault(name); err != nil {
			return err
		}
		cfg.DefaultWallet = name
		cfg.Save() //nolint:errcheck
		fmt.Println(ui.Success(fmt.Sprintf("Default wallet set to %q.", name)))

		// An active session follows the account switch.
		if cfg.ContractAddress != "" {
			p := newProvider()
			s := newSessionStore(p)
			if err := s.Restore(); err == nil && s.Snapshot().Connected() {
				w, _ := mgr.Get(name)
				if w != nil && w.Type == wallet.TypeSigning {
					s.HandleAccountsChanged([]string{w.Address})
					fmt.Println(ui.Info("Active session switched to " + ui.Addr(w.Address)))
				}
			}
		}
		return nil
	},
}

func init() {
	walletAddCmd.Flags().StringVar(&walletKeyFlag, "key", "", "private key for signing wallet (stored in OS keychain)")
	walletCmd.AddCommand(walletAddCmd, walletListCmd, walletRemoveCmd, walletUseCmd)
}
