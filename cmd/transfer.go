package cmd

import (
	"fmt"

	"github.com/chaintrace/chaintrace/internal/supplychain"
	"github.com/chaintrace/chaintrace/internal/ui"
	"github.com/spf13/cobra"
)

var transferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "Propose, review and settle token transfers",
}

var transferSendCmd = &cobra.Command{
	Use:   "send <to> <token-id> <amount>",
	Short: "Propose a transfer to another participant",
	Long: `Propose moving amount units of a token to another address. The balance
moves only after the recipient accepts.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		to := args[0]
		tokenID, err := parseID(args[1])
		if err != nil {
			return err
		}
		amount, err := parseAmount(args[2])
		if err != nil {
			return err
		}

		c, err := boundClient()
		if err != nil {
			return err
		}

		sp := ui.NewSpinner("Proposing transfer...")
		sp.Start()
		id, receipt, err := c.Transfer(to, tokenID, amount)
		sp.Stop()
		if err != nil {
			return renderErr(err)
		}

		fmt.Println(ui.Success(fmt.Sprintf("Transfer %d proposed: %s of token %d → %s", id, amount, tokenID, ui.TruncateAddr(to))))
		fmt.Println(ui.Meta("Tx: " + receipt.Hash))
		fmt.Println(ui.Hint("The recipient settles it with: chaintrace transfer accept " + fmt.Sprintf("%d", id)))
		return nil
	},
}

var transferListCmd = &cobra.Command{
	Use:   "list [address]",
	Short: "List transfers involving an address, newest first",
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

		sp := ui.NewSpinner("Loading transfers...")
		sp.Start()
		transfers, err := r.TransfersFor(addr)
		sp.Stop()
		if err != nil {
			return renderErr(err)
		}

		if len(transfers) == 0 {
			fmt.Println(ui.Meta("No transfers involving " + addr))
			return nil
		}

		t := ui.NewTable([]ui.Column{
			{Title: "ID", Width: 6},
			{Title: "Token", Width: 7},
			{Title: "Dir", Width: 4},
			{Title: "Counterparty", Width: 14},
			{Title: "Amount", Width: 14},
			{Title: "Status", Width: 10},
		})
		var pendingIncoming int
		for _, tr := range transfers {
			dir := ui.StyleWarning.Render("out")
			counterparty := tr.To
			if tr.Incoming(addr) {
				dir = ui.StyleSuccess.Render("in")
				counterparty = tr.From
				if tr.Status == supplychain.TransferPending {
					pendingIncoming++
				}
			}
			t.AddRow(ui.Row{
				fmt.Sprintf("%d", tr.ID),
				fmt.Sprintf("%d", tr.TokenID),
				dir,
				ui.TruncateAddr(counterparty),
				tr.Amount.String(),
				ui.StatusBadge(tr.Status.String()),
			})
		}
		fmt.Println(t.Render())
		if pendingIncoming > 0 {
			fmt.Println(ui.Hint(fmt.Sprintf("%d incoming transfer(s) awaiting your decision: chaintrace transfer accept <id>", pendingIncoming)))
		}
		return nil
	},
}

var transferAcceptCmd = &cobra.Command{
	Use:   "accept <transfer-id>",
	Short: "Accept a pending incoming transfer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		c, err := boundClient()
		if err != nil {
			return err
		}

		sp := ui.NewSpinner("Accepting transfer...")
		sp.Start()
		receipt, err := c.AcceptTransfer(id)
		sp.Stop()
		if err != nil {
			return renderErr(err)
		}
		fmt.Println(ui.Success(fmt.Sprintf("Transfer %d accepted. Balance updated.", id)))
		fmt.Println(ui.Meta("Tx: " + receipt.Hash))
		return nil
	},
}

var transferRejectCmd = &cobra.Command{
	Use:   "reject <transfer-id>",
	Short: "Reject a pending incoming transfer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if !ui.ConfirmDanger(fmt.Sprintf("Reject transfer %d? The sender keeps the balance.", id)) {
			fmt.Println(ui.Meta("Cancelled."))
			return nil
		}

		c, err := boundClient()
		if err != nil {
			return err
		}
		receipt, err := c.RejectTransfer(id)
		if err != nil {
			return renderErr(err)
		}
		fmt.Println(ui.Success(fmt.Sprintf("Transfer %d rejected.", id)))
		fmt.Println(ui.Meta("Tx: " + receipt.Hash))
		return nil
	},
}

func init() {
	transferCmd.AddCommand(transferSendCmd, transferListCmd, transferAcceptCmd, transferRejectCmd)
}
