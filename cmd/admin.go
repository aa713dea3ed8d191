package cmd

import (
	"fmt"
	"strconv"

	"github.com/chaintrace/chaintrace/internal/supplychain"
	"github.com/chaintrace/chaintrace/internal/ui"
	"github.com/spf13/cobra"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Admin operations: claim the role, review registrations",
}

var adminClaimCmd = &cobra.Command{
	Use:   "claim",
	Short: "Claim the admin role (first come, first served)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := boundClient()
		if err != nil {
			return err
		}

		sp := ui.NewSpinner("Claiming admin...")
		sp.Start()
		receipt, err := c.ClaimAdmin()
		sp.Stop()
		if err != nil {
			return renderErr(err)
		}

		fmt.Println(ui.Success("You are now the contract admin."))
		fmt.Println(ui.Meta("Tx: " + receipt.Hash))
		return nil
	},
}

var adminUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "List all registrations, pending first",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := readerClient()
		if err != nil {
			return err
		}

		sp := ui.NewSpinner("Scanning registrations...")
		sp.Start()
		scan, err := r.ScanUsers()
		sp.Stop()
		if err != nil {
			return renderErr(err)
		}

		printUserSection("Pending", scan.Pending)
		printUserSection("Approved", scan.Approved)
		printUserSection("Rejected / inactive", scan.Other)

		if len(scan.Pending) > 0 {
			fmt.Println(ui.Hint("Approve with: chaintrace admin approve <id> <role>"))
		}
		return nil
	},
}

var adminApproveCmd = &cobra.Command{
	Use:   "approve <user-id> <role>",
	Short: "Approve a pending registration with a role",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		role, ok := supplychain.ParseRole(args[1])
		if !ok {
			return fmt.Errorf("unknown role %q", args[1])
		}

		c, err := boundClient()
		if err != nil {
			return err
		}
		receipt, err := c.ApproveUser(id, role)
		if err != nil {
			return renderErr(err)
		}
		fmt.Println(ui.Success(fmt.Sprintf("User %d approved as %s.", id, role)))
		fmt.Println(ui.Meta("Tx: " + receipt.Hash))
		return nil
	},
}

var adminRejectCmd = &cobra.Command{
	Use:   "reject <user-id>",
	Short: "Reject a pending registration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if !ui.ConfirmDanger(fmt.Sprintf("Reject registration %d?", id)) {
			fmt.Println(ui.Meta("Cancelled."))
			return nil
		}

		c, err := boundClient()
		if err != nil {
			return err
		}
		receipt, err := c.RejectUser(id)
		if err != nil {
			return renderErr(err)
		}
		fmt.Println(ui.Success(fmt.Sprintf("User %d rejected.", id)))
		fmt.Println(ui.Meta("Tx: " + receipt.Hash))
		return nil
	},
}

var adminDeactivateCmd = &cobra.Command{
	Use:   "deactivate <user-id>",
	Short: "Deactivate an approved user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if !ui.ConfirmDanger(fmt.Sprintf("Deactivate user %d? They lose their role.", id)) {
			fmt.Println(ui.Meta("Cancelled."))
			return nil
		}

		c, err := boundClient()
		if err != nil {
			return err
		}
		receipt, err := c.DeactivateUser(id)
		if err != nil {
			return renderErr(err)
		}
		fmt.Println(ui.Success(fmt.Sprintf("User %d deactivated.", id)))
		fmt.Println(ui.Meta("Tx: " + receipt.Hash))
		return nil
	},
}

func init() {
	adminCmd.AddCommand(adminClaimCmd, adminUsersCmd, adminApproveCmd, adminRejectCmd, adminDeactivateCmd)
}

func printUserSection(title string, users []supplychain.User) {
	fmt.Println(ui.StyleHeader.Render(title))
	if len(users) == 0 {
		fmt.Println(ui.Meta("  none"))
		fmt.Println()
		return
	}
	t := ui.NewTable([]ui.Column{
		{Title: "ID", Width: 6},
		{Title: "Wallet", Width: 44},
		{Title: "Role", Width: 10},
		{Title: "Status", Width: 10},
	})
	for _, u := range users {
		t.AddRow(ui.Row{
			fmt.Sprintf("%d", u.ID),
			ui.Addr(u.Wallet),
			ui.Role(u.Role.String()),
			ui.StatusBadge(u.Status.String()),
		})
	}
	fmt.Println(t.Render())
}

func parseID(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
