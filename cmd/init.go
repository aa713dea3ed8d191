package cmd

import (
	"fmt"

	"github.com/chaintrace/chaintrace/internal/chain"
	"github.com/chaintrace/chaintrace/internal/ui"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the chaintrace configuration",
	Long: `Write the initial config file and verify the RPC endpoint.

Combine with the global flags to set everything in one go:
  chaintrace init --rpc http://127.0.0.1:8545 --contract 0xYourContract`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(ui.Banner())

		if err := cfg.Save(); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}
		fmt.Println(ui.Success("Config written to " + cfg.Dir()))

		// Reachability check, not fatal: the node may simply not be up yet.
		client := chain.NewEVMClient(cfg.RPCURL)
		if block, err := client.GetBlockNumber(); err == nil {
			fmt.Println(ui.Success(fmt.Sprintf("RPC reachable at %s (block %d)", cfg.RPCURL, block)))
			if id, err := client.ChainID(); err == nil && id != cfg.ChainID {
				fmt.Println(ui.Warn(fmt.Sprintf("Node reports chain id %d, config says %d.", id, cfg.ChainID)))
				fmt.Println(ui.Hint(fmt.Sprintf("Fix with: chaintrace config set-chain-id %d", id)))
			}
		} else {
			fmt.Println(ui.Warn("RPC not reachable at " + cfg.RPCURL))
			fmt.Println(ui.Hint("Point at a node with: chaintrace config set-rpc <url>"))
		}

		if cfg.ContractAddress == "" {
			fmt.Println(ui.Hint("Set the contract with: chaintrace config set-contract <address>"))
		}
		fmt.Println(ui.Hint("Then: chaintrace wallet add <name> --key <private-key> && chaintrace connect"))
		return nil
	},
}
