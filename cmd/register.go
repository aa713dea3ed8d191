package cmd

import (
	"errors"
	"fmt"

	"github.com/chaintrace/chaintrace/internal/supplychain"
	"github.com/chaintrace/chaintrace/internal/ui"
	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Request, inspect or withdraw a role registration",
}

var registerRequestCmd = &cobra.Command{
	Use:   "request <role>",
	Short: "Request a supply chain role for the connected account",
	Long: `Request one of: producer, factory, retailer, consumer.

The request goes into the pending queue and stays there until the admin
approves or rejects it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		role, ok := supplychain.ParseRole(args[0])
		if !ok || role == supplychain.RoleAdmin {
			return fmt.Errorf("unknown role %q — choose one of: producer, factory, retailer, consumer", args[0])
		}

		c, err := boundClient()
		if err != nil {
			return err
		}

		sp := ui.NewSpinner(fmt.Sprintf("Requesting %s role...", role))
		sp.Start()
		receipt, err := c.RequestUserRole(role)
		sp.Stop()
		if err != nil {
			return renderErr(err)
		}

		fmt.Println(ui.Success(fmt.Sprintf("Role request submitted (%s).", role)))
		fmt.Println(ui.Meta("Tx: " + receipt.Hash))
		fmt.Println(ui.Hint("The admin must approve it before you can act. Check with: chaintrace whoami"))
		return nil
	},
}

var registerCancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Withdraw your own registration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := boundClient()
		if err != nil {
			return err
		}

		id, err := c.UserIDByAddress(c.Signer())
		if err != nil {
			return renderErr(err)
		}
		if id == 0 {
			fmt.Println(ui.Meta("No registration to withdraw."))
			return nil
		}

		if !ui.ConfirmDanger(fmt.Sprintf("Withdraw registration #%d? An approved role is lost.", id)) {
			fmt.Println(ui.Meta("Cancelled."))
			return nil
		}

		receipt, err := c.CancelMyUser()
		if err != nil {
			return renderErr(err)
		}
		fmt.Println(ui.Success("Registration withdrawn."))
		fmt.Println(ui.Meta("Tx: " + receipt.Hash))
		return nil
	},
}

var registerStatusCmd = &cobra.Command{
	Use:   "status [address]",
	Short: "Show the registration record for an address",
	Long:  `Without an address, shows the connected account's record.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var addr string
		if len(args) > 0 {
			addr = args[0]
		} else {
			c, err := boundClient()
			if err != nil {
				return err
			}
			addr = c.Signer()
		}

		r, err := readerClient()
		if err != nil {
			return err
		}
		u, err := r.GetUserByAddress(addr)
		if err != nil {
			if errors.Is(err, supplychain.ErrNoSuchUser) {
				fmt.Println(ui.Meta("No registration for " + addr))
				return nil
			}
			return renderErr(err)
		}
		if !u.Registered() {
			fmt.Println(ui.Meta("No registration for " + addr))
			return nil
		}

		fmt.Println(ui.KeyValueBlock("Registration", [][2]string{
			{"ID", fmt.Sprintf("%d", u.ID)},
			{"Wallet", u.Wallet},
			{"Role", u.Role.String()},
			{"Status", u.Status.String()},
		}))
		return nil
	},
}

func init() {
	registerCmd.AddCommand(registerRequestCmd, registerCancelCmd, registerStatusCmd)
}
