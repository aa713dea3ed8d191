package cmd

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/chaintrace/chaintrace/internal/ui"
	"github.com/spf13/cobra"
)

var (
	tokenFeaturesFlag     string
	tokenParentFlag       uint64
	tokenParentAmountFlag string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Create, inspect and trace supply chain tokens",
}

var tokenCreateCmd = &cobra.Command{
	Use:   "create <name> <amount>",
	Short: "Mint a new token",
	Long: `Mint amount units of a new token.

Without --parent the token is a raw material. With --parent the new token
is derived: --parent-amount units of the parent token are consumed from
your balance.

  # Producer mints a raw material
  chaintrace token create "Arabica beans" 1000 --features "origin=ET,grade=A"

  # Factory derives a product, consuming 200 beans
  chaintrace token create "Roasted coffee" 50 --parent 1 --parent-amount 200`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.TrimSpace(args[0])
		if name == "" {
			return fmt.Errorf("token name must not be empty")
		}
		amount, err := parseAmount(args[1])
		if err != nil {
			return err
		}

		parentAmount := big.NewInt(0)
		if tokenParentFlag != 0 {
			if tokenParentAmountFlag == "" {
				return fmt.Errorf("--parent requires --parent-amount")
			}
			parentAmount, err = parseAmount(tokenParentAmountFlag)
			if err != nil {
				return err
			}
		}

		c, err := boundClient()
		if err != nil {
			return err
		}

		sp := ui.NewSpinner("Minting token...")
		sp.Start()
		id, receipt, err := c.CreateToken(name, tokenFeaturesFlag, tokenParentFlag, amount, parentAmount)
		sp.Stop()
		if err != nil {
			return renderErr(err)
		}

		fmt.Println(ui.Success(fmt.Sprintf("Token %d created: %s × %s", id, name, amount)))
		fmt.Println(ui.Meta("Tx: " + receipt.Hash))
		if tokenParentFlag != 0 {
			fmt.Println(ui.Meta(fmt.Sprintf("Consumed %s of parent token %d", parentAmount, tokenParentFlag)))
		}
		return nil
	},
}

var tokenListCmd = &cobra.Command{
	Use:   "list [address]",
	Short: "List tokens held by an address (default: connected account)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var owner string
		if len(args) > 0 {
			owner = args[0]
		} else {
			c, err := boundClient()
			if err != nil {
				return err
			}
			owner = c.Signer()
		}

		r, err := readerClient()
		if err != nil {
			return err
		}

		sp := ui.NewSpinner("Loading tokens...")
		sp.Start()
		tokens, err := r.TokensOf(owner)
		sp.Stop()
		if err != nil {
			return renderErr(err)
		}

		if len(tokens) == 0 {
			fmt.Println(ui.Meta("No tokens held by " + owner))
			return nil
		}

		t := ui.NewTable([]ui.Column{
			{Title: "ID", Width: 6},
			{Title: "Name", Width: 28},
			{Title: "Balance", Width: 14},
			{Title: "Parent", Width: 8},
			{Title: "Features", Width: 28},
		})
		for _, tok := range tokens {
			parent := "-"
			if tok.ParentID != 0 {
				parent = fmt.Sprintf("%d", tok.ParentID)
			}
			t.AddRow(ui.Row{
				fmt.Sprintf("%d", tok.ID),
				ui.Val(tok.Name),
				tok.Balance,
				parent,
				ui.Meta(tok.Features),
			})
		}
		fmt.Println(t.Render())
		return nil
	},
}

var tokenInfoCmd = &cobra.Command{
	Use:   "info <token-id>",
	Short: "Show a token's metadata, lineage and movement history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		r, err := readerClient()
		if err != nil {
			return err
		}

		sp := ui.NewSpinner("Loading token...")
		sp.Start()
		tok, err := r.TokenInfo(id)
		if err != nil {
			sp.Stop()
			return renderErr(err)
		}
		lineage, _ := r.LineageTokens(id)
		children, _ := r.ChildTokens(id)
		history, _ := r.AcceptedTransfersForToken(id)
		sp.Stop()

		parent := "- (raw material)"
		if tok.ParentID != 0 {
			parent = fmt.Sprintf("%d", tok.ParentID)
		}
		pairs := [][2]string{
			{"Name", tok.Name},
			{"Features", tok.Features},
			{"Parent", parent},
			{"Creator", tok.Creator},
		}
		if s, err := restoredSession(); err == nil {
			if snap := s.Snapshot(); snap.Connected() {
				if bal, err := r.TokenBalance(id, snap.Address); err == nil {
					pairs = append(pairs, [2]string{"Your balance", bal.String()})
				}
			}
		}
		fmt.Println(ui.KeyValueBlock(fmt.Sprintf("Token %d", tok.ID), pairs))

		if len(lineage) > 0 {
			fmt.Println(ui.StyleHeader.Render("Lineage (nearest ancestor first)"))
			for _, a := range lineage {
				fmt.Printf("  %s %s\n", ui.Meta(fmt.Sprintf("#%d", a.ID)), ui.Val(a.Name))
			}
			fmt.Println()
		}

		if len(children) > 0 {
			fmt.Println(ui.StyleHeader.Render("Derived tokens"))
			for _, ch := range children {
				fmt.Printf("  %s %s\n", ui.Meta(fmt.Sprintf("#%d", ch.ID)), ui.Val(ch.Name))
			}
			fmt.Println()
		}

		if len(history) > 0 {
			fmt.Println(ui.StyleHeader.Render("Accepted transfers (newest first)"))
			t := ui.NewTable([]ui.Column{
				{Title: "ID", Width: 6},
				{Title: "From", Width: 14},
				{Title: "To", Width: 14},
				{Title: "Amount", Width: 14},
			})
			for _, tr := range history {
				t.AddRow(ui.Row{
					fmt.Sprintf("%d", tr.ID),
					ui.TruncateAddr(tr.From),
					ui.TruncateAddr(tr.To),
					tr.Amount.String(),
				})
			}
			fmt.Println(t.Render())
		}
		return nil
	},
}

var tokenConsumeCmd = &cobra.Command{
	Use:   "consume <token-id> <amount>",
	Short: "Burn part of your balance of a token",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		amount, err := parseAmount(args[1])
		if err != nil {
			return err
		}

		c, err := boundClient()
		if err != nil {
			return err
		}
		receipt, err := c.Consume(id, amount)
		if err != nil {
			return renderErr(err)
		}
		fmt.Println(ui.Success(fmt.Sprintf("Consumed %s of token %d.", amount, id)))
		fmt.Println(ui.Meta("Tx: " + receipt.Hash))
		return nil
	},
}

var tokenTraceCmd = &cobra.Command{
	Use:   "trace <token-id>",
	Short: "Trace a token back to its raw materials",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		r, err := readerClient()
		if err != nil {
			return err
		}

		tok, err := r.TokenInfo(id)
		if err != nil {
			return renderErr(err)
		}
		lineage, err := r.LineageTokens(id)
		if err != nil {
			return renderErr(err)
		}

		fmt.Printf("%s %s\n", ui.Meta(fmt.Sprintf("#%d", tok.ID)), ui.Val(tok.Name))
		for i, a := range lineage {
			fmt.Printf("%s└─ %s %s\n", strings.Repeat("   ", i+1), ui.Meta(fmt.Sprintf("#%d", a.ID)), ui.Val(a.Name))
		}
		if len(lineage) == 0 {
			fmt.Println(ui.Meta("Raw material — no ancestors."))
		}
		return nil
	},
}

func init() {
	tokenCreateCmd.Flags().StringVar(&tokenFeaturesFlag, "features", "", "free-form feature description")
	tokenCreateCmd.Flags().Uint64Var(&tokenParentFlag, "parent", 0, "parent token id to derive from")
	tokenCreateCmd.Flags().StringVar(&tokenParentAmountFlag, "parent-amount", "", "units of the parent token to consume")
	tokenCmd.AddCommand(tokenCreateCmd, tokenListCmd, tokenInfoCmd, tokenConsumeCmd, tokenTraceCmd)
}

func parseAmount(s string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok || n.Sign() <= 0 {
		return nil, fmt.Errorf("amount must be a positive integer, got %q", s)
	}
	return n, nil
}
