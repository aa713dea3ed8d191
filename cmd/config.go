package cmd

import (
	"fmt"
	"strconv"

	"github.com/chaintrace/chaintrace/internal/ui"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		contract := cfg.ContractAddress
		if contract == "" {
			contract = "(not set)"
		}
		wallet := cfg.DefaultWallet
		if wallet == "" {
			wallet = "(none)"
		}
		fmt.Println(ui.KeyValueBlock("Configuration", [][2]string{
			{"Config dir", cfg.Dir()},
			{"RPC URL", cfg.RPCURL},
			{"Contract", contract},
			{"Chain ID", strconv.FormatInt(cfg.ChainID, 10)},
			{"Default wallet", wallet},
			{"Watch interval", fmt.Sprintf("%ds", cfg.WatchInterval)},
		}))
		return nil
	},
}

var configSetRPCCmd = &cobra.Command{
	Use:   "set-rpc <url>",
	Short: "Persist the RPC endpoint",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg.RPCURL = args[0]
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success("RPC endpoint set to " + args[0]))
		return nil
	},
}

var configSetContractCmd = &cobra.Command{
	Use:   "set-contract <address>",
	Short: "Persist the supply chain contract address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg.ContractAddress = args[0]
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success("Contract address set to " + args[0]))
		return nil
	},
}

var configSetChainIDCmd = &cobra.Command{
	Use:   "set-chain-id <id>",
	Short: "Persist the chain id used for transaction signing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid chain id %q", args[0])
		}
		cfg.ChainID = id
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success("Chain id set to " + args[0]))
		return nil
	},
}

var configSetIntervalCmd = &cobra.Command{
	Use:   "set-interval <seconds>",
	Short: "Persist the dashboard refresh interval",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("interval must be a positive number of seconds")
		}
		cfg.WatchInterval = n
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("Watch interval set to %ds", n)))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetRPCCmd, configSetContractCmd, configSetChainIDCmd, configSetIntervalCmd)
}
